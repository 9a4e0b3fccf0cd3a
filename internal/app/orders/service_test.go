package orders_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/lumina-store/internal/adapters/storage/memory"
	"github.com/PabloGalante/lumina-store/internal/app/orders"
	"github.com/PabloGalante/lumina-store/internal/domain"
)

func TestListOrders_DefaultLimit(t *testing.T) {
	ctx := context.Background()
	store := memory.NewOrderStore()
	svc := orders.NewService(store)

	var cart domain.Cart
	cart.Add(domain.Product{ID: "p1", Name: "Lamp", Price: decimal.RequireFromString("10.00")})

	for i := 0; i < 25; i++ {
		require.NoError(t, store.AppendOrder(ctx, domain.NewOrder("s1", cart, domain.Customer{}, time.Now())))
	}
	require.NoError(t, store.AppendOrder(ctx, domain.NewOrder("s2", cart, domain.Customer{}, time.Now())))

	got, err := svc.ListOrders(ctx, "s1", 0)
	require.NoError(t, err)
	assert.Len(t, got, 20)
	for _, o := range got {
		assert.Equal(t, domain.SessionID("s1"), o.SessionID)
	}

	got, err = svc.ListOrders(ctx, "s2", 5)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestListOrders_NilStore(t *testing.T) {
	got, err := orders.NewService(nil).ListOrders(context.Background(), "s1", 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}
