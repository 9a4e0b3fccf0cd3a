package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogsrc "github.com/PabloGalante/lumina-store/internal/adapters/catalog"
	"github.com/PabloGalante/lumina-store/internal/app/catalog"
	"github.com/PabloGalante/lumina-store/internal/domain"
)

func loadSeed(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Load(context.Background(), catalogsrc.NewEmbeddedSource())
	require.NoError(t, err)
	return c
}

func ids(ps []domain.Product) []domain.ProductID {
	out := make([]domain.ProductID, len(ps))
	for i, p := range ps {
		out[i] = p.ID
	}
	return out
}

func TestFilterAllReturnsCatalogInOrder(t *testing.T) {
	c := loadSeed(t)

	assert.Equal(t, []domain.ProductID{"1", "2", "3", "4", "5", "6"}, ids(c.Filter(domain.CategoryAll)))
	assert.Equal(t, ids(c.Products()), ids(c.Filter(domain.CategoryAll)))
}

func TestFilterByCategoryPreservesOrder(t *testing.T) {
	c := loadSeed(t)

	tests := []struct {
		category domain.Category
		want     []domain.ProductID
	}{
		{domain.CategoryElectronics, []domain.ProductID{"1", "6"}},
		{domain.CategoryAccessories, []domain.ProductID{"2"}},
		{domain.CategoryHome, []domain.ProductID{"3"}},
		{domain.CategoryKitchen, []domain.ProductID{"4"}},
		{domain.CategoryLifestyle, []domain.ProductID{"5"}},
		{domain.Category("Garden"), []domain.ProductID{}},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			got := c.Filter(tt.category)
			assert.Equal(t, tt.want, ids(got))
			for _, p := range got {
				assert.Equal(t, tt.category, p.Category)
			}
		})
	}
}

func TestReadsAreCopies(t *testing.T) {
	c := loadSeed(t)

	ps := c.Products()
	ps[0].Name = "changed"
	ps[0].Features[0] = "changed"

	p, ok := c.Product("1")
	require.True(t, ok)
	assert.Equal(t, "Aether Wireless Headphones", p.Name)
	assert.Equal(t, "Noise Cancelling", p.Features[0])
}

func TestProductLookup(t *testing.T) {
	c := loadSeed(t)

	p, ok := c.Product("4")
	require.True(t, ok)
	assert.Equal(t, "Lumina Espresso Machine", p.Name)

	_, ok = c.Product("404")
	assert.False(t, ok)
}

func TestFeatured(t *testing.T) {
	c := loadSeed(t)

	assert.Equal(t, []domain.ProductID{"1", "2", "3"}, ids(c.Featured(3)))
	assert.Len(t, c.Featured(100), 6)
	assert.Empty(t, c.Featured(0))
}

func TestSearch(t *testing.T) {
	c := loadSeed(t)

	assert.Equal(t, []domain.ProductID{"4"}, ids(c.Search("ESPRESSO")))
	assert.Equal(t, []domain.ProductID{"2"}, ids(c.Search("sapphire")))
	assert.Empty(t, c.Search("   "))
	assert.Empty(t, c.Search("submarine"))
}

func TestNewRejectsBadCatalogs(t *testing.T) {
	p := domain.Product{
		ID:       "1",
		Name:     "Thing",
		Price:    decimal.NewFromInt(1),
		Category: domain.CategoryHome,
	}

	_, err := catalog.New(nil)
	assert.ErrorIs(t, err, domain.ErrCatalogEmpty)

	_, err = catalog.New([]domain.Product{p, p})
	assert.ErrorIs(t, err, domain.ErrDuplicateProduct)

	bad := p
	bad.Price = decimal.NewFromInt(-1)
	_, err = catalog.New([]domain.Product{bad})
	var invalid *domain.InvalidProductError
	assert.ErrorAs(t, err, &invalid)
}

type failingSource struct{}

func (failingSource) LoadProducts(ctx context.Context) ([]domain.Product, error) {
	return nil, errors.New("backend down")
}

func TestLoadWrapsSourceErrors(t *testing.T) {
	_, err := catalog.Load(context.Background(), failingSource{})
	assert.ErrorContains(t, err, "backend down")
}
