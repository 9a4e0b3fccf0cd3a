package memory

import (
	"context"
	"sync"

	"github.com/PabloGalante/lumina-store/internal/domain"
)

// OrderStore is a simple in-memory implementation of domain.OrderStore.
// It is NOT persistent; receipts vanish with the process.
type OrderStore struct {
	mu          sync.RWMutex
	orders      map[domain.OrderID]*domain.Order
	bySessionID map[domain.SessionID][]domain.OrderID
}

func NewOrderStore() *OrderStore {
	return &OrderStore{
		orders:      make(map[domain.OrderID]*domain.Order),
		bySessionID: make(map[domain.SessionID][]domain.OrderID),
	}
}

func (s *OrderStore) AppendOrder(ctx context.Context, order *domain.Order) error {
	if order == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.orders[order.ID] = order
	s.bySessionID[order.SessionID] = append(s.bySessionID[order.SessionID], order.ID)
	return nil
}

// ListOrdersBySession returns the last `limit` orders of a session, oldest first.
// If limit <= 0, returns all.
func (s *OrderStore) ListOrdersBySession(
	ctx context.Context,
	sessionID domain.SessionID,
	limit int,
) ([]*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.bySessionID[sessionID]
	if len(ids) == 0 {
		return []*domain.Order{}, nil
	}

	if limit <= 0 || limit > len(ids) {
		limit = len(ids)
	}
	selected := ids[len(ids)-limit:]

	out := make([]*domain.Order, 0, len(selected))
	for _, id := range selected {
		if o, ok := s.orders[id]; ok {
			out = append(out, o)
		}
	}
	return out, nil
}

// DeleteOrdersBySession drops the receipts of an ended session.
func (s *OrderStore) DeleteOrdersBySession(ctx context.Context, sessionID domain.SessionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range s.bySessionID[sessionID] {
		delete(s.orders, id)
	}
	delete(s.bySessionID, sessionID)
	return nil
}
