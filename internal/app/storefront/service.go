package storefront

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/PabloGalante/lumina-store/internal/app/concierge"
	"github.com/PabloGalante/lumina-store/internal/domain"
	"github.com/PabloGalante/lumina-store/internal/observability"
)

const OrderConfirmedText = "Order confirmed! Thank you for shopping with Lumina."

// Catalog is the read side the storefront screens need.
type Catalog interface {
	domain.CatalogLookup
	Categories() []domain.Category
	Filter(category domain.Category) []domain.Product
	Featured(n int) []domain.Product
}

// Service runs cart, navigation and checkout operations against a session.
// Each operation is one atomic update of the session.
type Service struct {
	sessionStore domain.SessionStore
	orderStore   domain.OrderStore
	catalog      Catalog
	now          func() time.Time
}

func NewService(sessionStore domain.SessionStore, orderStore domain.OrderStore, catalog Catalog) *Service {
	return &Service{
		sessionStore: sessionStore,
		orderStore:   orderStore,
		catalog:      catalog,
		now:          time.Now,
	}
}

// StartSession opens a session on the home screen with the concierge
// welcome already in the conversation.
func (s *Service) StartSession(ctx context.Context) (*domain.Session, error) {
	now := s.now()
	sess := domain.NewSession(domain.SessionID(uuid.NewString()), now)
	sess.Conversation.Append(concierge.WelcomeMessage(now))

	ctx = observability.WithSessionID(ctx, string(sess.ID))
	log := observability.LoggerFromContext(ctx)

	if err := s.sessionStore.CreateSession(ctx, sess); err != nil {
		log.Error("failed to create session", "error", err)
		return nil, err
	}

	log.Info("session started")
	return sess.Clone(), nil
}

func (s *Service) GetSession(ctx context.Context, id domain.SessionID) (*domain.Session, error) {
	return s.sessionStore.GetSession(ctx, id)
}

// EndSession destroys the session together with its cart, chat and receipts.
func (s *Service) EndSession(ctx context.Context, id domain.SessionID) error {
	ctx = observability.WithSessionID(ctx, string(id))
	log := observability.LoggerFromContext(ctx)

	if err := s.sessionStore.DeleteSession(ctx, id); err != nil {
		return err
	}
	if err := s.orderStore.DeleteOrdersBySession(ctx, id); err != nil {
		log.Error("failed to drop orders", "error", err)
		return err
	}

	log.Info("session ended")
	return nil
}

// ─────────────────────────────────────────────
// Cart
// ─────────────────────────────────────────────

type AddToCartOutput struct {
	Cart     CartSummary
	Quantity int
	Notice   string
}

// AddToCart adds one unit of a catalog product.
func (s *Service) AddToCart(ctx context.Context, id domain.SessionID, productID domain.ProductID) (*AddToCartOutput, error) {
	ctx = observability.WithSessionID(ctx, string(id))

	p, ok := s.catalog.Product(productID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrProductNotFound, productID)
	}

	var qty int
	sess, err := s.update(ctx, id, func(sess *domain.Session) error {
		qty = sess.Cart.Add(p)
		return nil
	})
	if err != nil {
		return nil, err
	}

	observability.LoggerFromContext(ctx).Info("added to cart",
		"product_id", productID,
		"quantity", qty)

	return &AddToCartOutput{
		Cart:     Summarize(sess.Cart),
		Quantity: qty,
		Notice:   p.Name + " added to cart!",
	}, nil
}

// RemoveFromCart drops a line; a missing line is not an error.
func (s *Service) RemoveFromCart(ctx context.Context, id domain.SessionID, productID domain.ProductID) (*CartSummary, error) {
	sess, err := s.update(ctx, id, func(sess *domain.Session) error {
		sess.Cart.Remove(productID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	summary := Summarize(sess.Cart)
	return &summary, nil
}

// UpdateQuantity moves a line by delta, never below one.
func (s *Service) UpdateQuantity(
	ctx context.Context,
	id domain.SessionID,
	productID domain.ProductID,
	delta int,
) (*CartSummary, error) {
	sess, err := s.update(ctx, id, func(sess *domain.Session) error {
		sess.Cart.UpdateQuantity(productID, delta)
		return nil
	})
	if err != nil {
		return nil, err
	}
	summary := Summarize(sess.Cart)
	return &summary, nil
}

func (s *Service) Cart(ctx context.Context, id domain.SessionID) (*CartSummary, error) {
	sess, err := s.sessionStore.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	summary := Summarize(sess.Cart)
	return &summary, nil
}

// ─────────────────────────────────────────────
// Navigation
// ─────────────────────────────────────────────

func (s *Service) Navigate(ctx context.Context, id domain.SessionID, screen domain.Screen) (*Page, error) {
	return s.updateAndRender(ctx, id, func(sess *domain.Session) error {
		return sess.Navigate(screen)
	})
}

func (s *Service) SelectCategory(ctx context.Context, id domain.SessionID, category domain.Category) (*Page, error) {
	return s.updateAndRender(ctx, id, func(sess *domain.Session) error {
		return sess.SelectCategory(category)
	})
}

// ViewProduct selects a product and opens its detail screen.
func (s *Service) ViewProduct(ctx context.Context, id domain.SessionID, productID domain.ProductID) (*Page, error) {
	if _, ok := s.catalog.Product(productID); !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrProductNotFound, productID)
	}
	return s.updateAndRender(ctx, id, func(sess *domain.Session) error {
		sess.ViewProduct(productID)
		return nil
	})
}

func (s *Service) ClearSelection(ctx context.Context, id domain.SessionID) (*Page, error) {
	return s.updateAndRender(ctx, id, func(sess *domain.Session) error {
		sess.ClearSelection()
		return nil
	})
}

func (s *Service) Render(ctx context.Context, id domain.SessionID) (*Page, error) {
	sess, err := s.sessionStore.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	return Render(sess, s.catalog), nil
}

// ─────────────────────────────────────────────
// Checkout
// ─────────────────────────────────────────────

type CheckoutInput struct {
	Customer domain.Customer
}

type CheckoutOutput struct {
	Order        *domain.Order
	Confirmation string
}

// Checkout records a receipt, clears the cart and returns to home.
// No payment is taken.
func (s *Service) Checkout(ctx context.Context, id domain.SessionID, in CheckoutInput) (*CheckoutOutput, error) {
	ctx = observability.WithSessionID(ctx, string(id))
	log := observability.LoggerFromContext(ctx)

	customer := domain.Customer{
		FullName:        strings.TrimSpace(in.Customer.FullName),
		ShippingAddress: strings.TrimSpace(in.Customer.ShippingAddress),
	}

	var order *domain.Order
	_, err := s.update(ctx, id, func(sess *domain.Session) error {
		if sess.Cart.IsEmpty() {
			return domain.ErrEmptyCart
		}
		order = domain.NewOrder(sess.ID, sess.Cart, customer, s.now())
		if err := s.orderStore.AppendOrder(ctx, order); err != nil {
			return fmt.Errorf("append order: %w", err)
		}
		sess.CompleteCheckout()
		return nil
	})
	if err != nil {
		log.Warn("checkout failed", "error", err)
		return nil, err
	}

	log.Info("order placed",
		"order_id", order.ID,
		"items", order.ItemCount,
		"total", order.Total.StringFixed(2))

	return &CheckoutOutput{
		Order:        order,
		Confirmation: OrderConfirmedText,
	}, nil
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

func (s *Service) update(ctx context.Context, id domain.SessionID, fn func(*domain.Session) error) (*domain.Session, error) {
	return s.sessionStore.UpdateSession(ctx, id, func(sess *domain.Session) error {
		if err := fn(sess); err != nil {
			return err
		}
		sess.UpdatedAt = s.now()
		return nil
	})
}

func (s *Service) updateAndRender(ctx context.Context, id domain.SessionID, fn func(*domain.Session) error) (*Page, error) {
	sess, err := s.update(ctx, id, fn)
	if err != nil {
		return nil, err
	}
	return Render(sess, s.catalog), nil
}
