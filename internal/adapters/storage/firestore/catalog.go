package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/shopspring/decimal"
	"google.golang.org/api/iterator"

	"github.com/PabloGalante/lumina-store/internal/domain"
)

// CatalogSource reads the product list from a Firestore collection.
// It is read once at startup; the service never writes to it.
type CatalogSource struct {
	client     *firestore.Client
	collection string
}

// NewCatalogSource creates a Firestore catalog source.
// Uses the project passed (LUMINA_GCP_PROJECT).
func NewCatalogSource(ctx context.Context, projectID, collection string) (*CatalogSource, error) {
	if projectID == "" {
		return nil, fmt.Errorf("projectID is required for Firestore catalog")
	}
	if collection == "" {
		collection = "products"
	}

	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("creating firestore client: %w", err)
	}

	return &CatalogSource{client: client, collection: collection}, nil
}

func (s *CatalogSource) Close() error {
	return s.client.Close()
}

// ─────────────────────────────────────────
// Firestore Types
// ─────────────────────────────────────────

// productDoc keeps the price as a decimal string so no float rounding
// happens on the way in.
type productDoc struct {
	Position    int      `firestore:"position"`
	Name        string   `firestore:"name"`
	Price       string   `firestore:"price"`
	Description string   `firestore:"description"`
	Category    string   `firestore:"category"`
	Image       string   `firestore:"image"`
	Rating      float64  `firestore:"rating"`
	Stock       int      `firestore:"stock"`
	Features    []string `firestore:"features"`
}

// ─────────────────────────────────────────
// CatalogSource implementation
// ─────────────────────────────────────────

func (s *CatalogSource) LoadProducts(ctx context.Context) ([]domain.Product, error) {
	iter := s.client.Collection(s.collection).OrderBy("position", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var out []domain.Product
	for {
		snap, err := iter.Next()
		if err != nil {
			if err == iterator.Done {
				break
			}
			return nil, fmt.Errorf("firestore LoadProducts: %w", err)
		}

		var doc productDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("decode productDoc %s: %w", snap.Ref.ID, err)
		}

		p, err := toProduct(snap.Ref.ID, doc)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func toProduct(id string, doc productDoc) (domain.Product, error) {
	price, err := decimal.NewFromString(doc.Price)
	if err != nil {
		return domain.Product{}, fmt.Errorf("product %s: bad price %q: %w", id, doc.Price, err)
	}

	return domain.Product{
		ID:          domain.ProductID(id),
		Name:        doc.Name,
		Price:       price,
		Description: doc.Description,
		Category:    domain.Category(doc.Category),
		Image:       doc.Image,
		Rating:      doc.Rating,
		Stock:       doc.Stock,
		Features:    doc.Features,
	}, nil
}
