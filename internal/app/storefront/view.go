package storefront

import (
	"github.com/shopspring/decimal"

	"github.com/PabloGalante/lumina-store/internal/config"
	"github.com/PabloGalante/lumina-store/internal/domain"
)

const EmptyCartMessage = "Your bag is currently empty."

// CartSummary is the cart as the cart and checkout screens show it.
// Shipping is free and tax is not estimated yet, so Total equals Subtotal.
type CartSummary struct {
	Lines        []domain.CartLine
	ItemCount    int
	Subtotal     decimal.Decimal
	Shipping     decimal.Decimal
	Tax          decimal.Decimal
	Total        decimal.Decimal
	EmptyMessage string
}

func (c CartSummary) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Summarize derives the summary from the current lines.
func Summarize(cart domain.Cart) CartSummary {
	snapshot := cart.Clone()
	subtotal := snapshot.Total()

	s := CartSummary{
		Lines:     snapshot.Lines,
		ItemCount: snapshot.ItemCount(),
		Subtotal:  subtotal,
		Shipping:  decimal.Zero,
		Tax:       decimal.Zero,
		Total:     subtotal,
	}
	if s.Lines == nil {
		s.Lines = []domain.CartLine{}
		s.EmptyMessage = EmptyCartMessage
	}
	return s
}

// Page is everything a client needs to draw the current screen.
// Only the fields of the resolved screen are filled.
type Page struct {
	Screen    domain.Screen
	Requested domain.Screen
	Title     string
	CartCount int

	Featured   []domain.Product
	Categories []domain.Category
	Category   domain.Category
	Products   []domain.Product
	Product    *domain.Product
	Cart       *CartSummary
	Messages   []domain.ChatMessage
	Busy       bool
}

// ResolveScreen applies the one guarded transition: the product screen
// needs a selection that still exists in the catalog, otherwise the
// shop is shown.
func ResolveScreen(view domain.View, catalog Catalog) (domain.Screen, *domain.Product) {
	if view.Screen != domain.ScreenProduct {
		return view.Screen, nil
	}
	if view.SelectedProduct == "" {
		return domain.ScreenShop, nil
	}
	p, ok := catalog.Product(view.SelectedProduct)
	if !ok {
		return domain.ScreenShop, nil
	}
	return domain.ScreenProduct, &p
}

// Render derives the page for a session. It never fails.
func Render(sess *domain.Session, catalog Catalog) *Page {
	screen, product := ResolveScreen(sess.View, catalog)

	page := &Page{
		Screen:    screen,
		Requested: sess.View.Screen,
		CartCount: sess.Cart.ItemCount(),
	}

	switch screen {
	case domain.ScreenHome:
		page.Title = "Elevate Your Standard."
		page.Featured = catalog.Featured(config.FeaturedProducts)
	case domain.ScreenShop:
		page.Title = "The Collection"
		page.Categories = catalog.Categories()
		page.Category = sess.View.Category
		page.Products = catalog.Filter(sess.View.Category)
	case domain.ScreenProduct:
		page.Title = product.Name
		page.Product = product
	case domain.ScreenCart:
		page.Title = "Your Shopping Bag"
		summary := Summarize(sess.Cart)
		page.Cart = &summary
	case domain.ScreenCheckout:
		page.Title = "Ready for Checkout"
		summary := Summarize(sess.Cart)
		page.Cart = &summary
	case domain.ScreenConcierge:
		page.Title = "AI Concierge"
		page.Messages = append([]domain.ChatMessage(nil), sess.Conversation.Messages...)
		page.Busy = sess.Conversation.Busy
	}

	return page
}
