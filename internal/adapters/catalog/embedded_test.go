package catalog_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogsrc "github.com/PabloGalante/lumina-store/internal/adapters/catalog"
	"github.com/PabloGalante/lumina-store/internal/domain"
)

func TestEmbeddedSourceLoadsSeed(t *testing.T) {
	products, err := catalogsrc.NewEmbeddedSource().LoadProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 6)

	first := products[0]
	assert.Equal(t, domain.ProductID("1"), first.ID)
	assert.Equal(t, "Aether Wireless Headphones", first.Name)
	assert.True(t, decimal.RequireFromString("349.99").Equal(first.Price))
	assert.Equal(t, domain.CategoryElectronics, first.Category)
	assert.Equal(t, []string{"Noise Cancelling", "40h Battery", "Bluetooth 5.2"}, first.Features)

	for _, p := range products {
		assert.NoError(t, p.Validate())
	}
}

func TestJSONSourceRejectsGarbage(t *testing.T) {
	_, err := catalogsrc.NewJSONSource([]byte(`{"not":"a list"}`)).LoadProducts(context.Background())
	assert.Error(t, err)

	_, err = catalogsrc.NewJSONSource([]byte(`[{"id":"1","colour":"red"}]`)).LoadProducts(context.Background())
	assert.Error(t, err)
}
