package orders

import (
	"context"

	"github.com/PabloGalante/lumina-store/internal/config"
	"github.com/PabloGalante/lumina-store/internal/domain"
)

// Service reads checkout receipts.
type Service struct {
	store domain.OrderStore
}

func NewService(store domain.OrderStore) *Service {
	return &Service{
		store: store,
	}
}

// ListOrders returns the last `limit` receipts of a session, oldest first.
// If limit <= 0, DefaultOrderLimit is used.
func (s *Service) ListOrders(
	ctx context.Context,
	sessionID domain.SessionID,
	limit int,
) ([]*domain.Order, error) {
	if s.store == nil {
		return []*domain.Order{}, nil
	}

	if limit <= 0 {
		limit = config.DefaultOrderLimit
	}

	return s.store.ListOrdersBySession(ctx, sessionID, limit)
}
