// Package catalog provides catalog sources that ship with the binary.
package catalog

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/PabloGalante/lumina-store/internal/domain"
)

//go:embed seed/products.json
var seedProducts []byte

// EmbeddedSource serves the product list compiled into the binary,
// or an explicit JSON document when one is given.
type EmbeddedSource struct {
	data []byte
}

// NewEmbeddedSource returns the built-in Lumina catalog.
func NewEmbeddedSource() *EmbeddedSource {
	return &EmbeddedSource{data: seedProducts}
}

// NewJSONSource reads products from a JSON array document.
func NewJSONSource(data []byte) *EmbeddedSource {
	return &EmbeddedSource{data: data}
}

func (s *EmbeddedSource) LoadProducts(ctx context.Context) ([]domain.Product, error) {
	dec := json.NewDecoder(bytes.NewReader(s.data))
	dec.DisallowUnknownFields()

	var products []domain.Product
	if err := dec.Decode(&products); err != nil {
		return nil, fmt.Errorf("decode catalog json: %w", err)
	}
	return products, nil
}
