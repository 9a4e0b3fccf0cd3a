package firestore

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/lumina-store/internal/domain"
)

func TestToProduct(t *testing.T) {
	p, err := toProduct("4", productDoc{
		Position:    4,
		Name:        "Lumina Espresso Machine",
		Price:       "899.00",
		Description: "Barista-quality coffee at home.",
		Category:    "Kitchen",
		Rating:      4.7,
		Stock:       3,
		Features:    []string{"15 Bar Pump"},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.ProductID("4"), p.ID)
	assert.Equal(t, domain.CategoryKitchen, p.Category)
	assert.True(t, decimal.RequireFromString("899").Equal(p.Price))
	assert.NoError(t, p.Validate())
}

func TestToProductRejectsBadPrice(t *testing.T) {
	_, err := toProduct("x", productDoc{Name: "x", Price: "cheap"})
	assert.ErrorContains(t, err, "bad price")
}
