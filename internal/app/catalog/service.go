package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/PabloGalante/lumina-store/internal/domain"
	"github.com/PabloGalante/lumina-store/internal/observability"
)

// Catalog is the immutable product list, loaded once at process start.
// Every read returns copies so callers cannot mutate it.
type Catalog struct {
	products []domain.Product
	byID     map[domain.ProductID]int
}

// New validates products and builds a Catalog preserving their order.
func New(products []domain.Product) (*Catalog, error) {
	if len(products) == 0 {
		return nil, domain.ErrCatalogEmpty
	}

	c := &Catalog{
		products: make([]domain.Product, 0, len(products)),
		byID:     make(map[domain.ProductID]int, len(products)),
	}
	for _, p := range products {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateProduct, p.ID)
		}
		c.byID[p.ID] = len(c.products)
		c.products = append(c.products, p.Clone())
	}
	return c, nil
}

// Load reads the product list from src and builds the catalog.
func Load(ctx context.Context, src domain.CatalogSource) (*Catalog, error) {
	log := observability.LoggerFromContext(ctx)

	products, err := src.LoadProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	c, err := New(products)
	if err != nil {
		return nil, fmt.Errorf("build catalog: %w", err)
	}

	log.Info("catalog loaded", "products", len(c.products))
	return c, nil
}

// Products returns the full catalog in load order.
func (c *Catalog) Products() []domain.Product {
	return cloneAll(c.products)
}

func (c *Catalog) Product(id domain.ProductID) (domain.Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return domain.Product{}, false
	}
	return c.products[i].Clone(), true
}

func (c *Catalog) Categories() []domain.Category {
	return domain.Categories()
}

// Filter returns every product for All, otherwise the products of that
// category in catalog order.
func (c *Catalog) Filter(category domain.Category) []domain.Product {
	if category == domain.CategoryAll {
		return c.Products()
	}
	out := []domain.Product{}
	for _, p := range c.products {
		if p.Category == category {
			out = append(out, p.Clone())
		}
	}
	return out
}

// Featured returns the first n products.
func (c *Catalog) Featured(n int) []domain.Product {
	if n <= 0 {
		return []domain.Product{}
	}
	if n > len(c.products) {
		n = len(c.products)
	}
	return cloneAll(c.products[:n])
}

// Search matches query case-insensitively against name and description.
// An empty query matches nothing.
func (c *Catalog) Search(query string) []domain.Product {
	q := strings.ToLower(strings.TrimSpace(query))
	out := []domain.Product{}
	if q == "" {
		return out
	}
	for _, p := range c.products {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Description), q) {
			out = append(out, p.Clone())
		}
	}
	return out
}

func (c *Catalog) Len() int {
	return len(c.products)
}

func cloneAll(ps []domain.Product) []domain.Product {
	out := make([]domain.Product, len(ps))
	for i, p := range ps {
		out[i] = p.Clone()
	}
	return out
}
