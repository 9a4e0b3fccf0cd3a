package httpadapter

import (
	"time"

	"github.com/PabloGalante/lumina-store/internal/app/storefront"
	"github.com/PabloGalante/lumina-store/internal/domain"
)

// ─────────────────────────────────────────────
// Requests
// ─────────────────────────────────────────────

type navigateRequest struct {
	Screen string `json:"screen"`
}

type selectCategoryRequest struct {
	Category string `json:"category"`
}

type addToCartRequest struct {
	ProductID string `json:"product_id"`
}

type updateQuantityRequest struct {
	Delta int `json:"delta"`
}

type checkoutRequest struct {
	FullName        string `json:"full_name"`
	ShippingAddress string `json:"shipping_address"`
}

type sendMessageRequest struct {
	Text string `json:"text"`
}

// ─────────────────────────────────────────────
// Responses
// ─────────────────────────────────────────────

type productResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Price       string   `json:"price"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Image       string   `json:"image"`
	Rating      float64  `json:"rating"`
	Stock       int      `json:"stock"`
	Features    []string `json:"features"`
}

type cartLineResponse struct {
	Product  productResponse `json:"product"`
	Quantity int             `json:"quantity"`
	Subtotal string          `json:"subtotal"`
}

type cartResponse struct {
	Lines        []cartLineResponse `json:"lines"`
	ItemCount    int                `json:"item_count"`
	Subtotal     string             `json:"subtotal"`
	Shipping     string             `json:"shipping"`
	Tax          string             `json:"tax"`
	Total        string             `json:"total"`
	Empty        bool               `json:"empty"`
	EmptyMessage string             `json:"empty_message,omitempty"`
}

type messageResponse struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Text      string    `json:"text"`
	Fallback  bool      `json:"fallback,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type viewResponse struct {
	Screen          string `json:"screen"`
	Category        string `json:"category"`
	SelectedProduct string `json:"selected_product,omitempty"`
}

type sessionResponse struct {
	ID        string       `json:"id"`
	View      viewResponse `json:"view"`
	CartCount int          `json:"cart_count"`
	Busy      bool         `json:"busy"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

type createSessionResponse struct {
	Session sessionResponse  `json:"session"`
	Welcome *messageResponse `json:"welcome_message,omitempty"`
}

type pageResponse struct {
	Screen     string            `json:"screen"`
	Requested  string            `json:"requested_screen"`
	Title      string            `json:"title"`
	CartCount  int               `json:"cart_count"`
	Featured   []productResponse `json:"featured,omitempty"`
	Categories []string          `json:"categories,omitempty"`
	Category   string            `json:"category,omitempty"`
	Products   []productResponse `json:"products,omitempty"`
	Product    *productResponse  `json:"product,omitempty"`
	Cart       *cartResponse     `json:"cart,omitempty"`
	Messages   []messageResponse `json:"messages,omitempty"`
	Busy       bool              `json:"busy,omitempty"`
}

type addToCartResponse struct {
	Cart     cartResponse `json:"cart"`
	Quantity int          `json:"quantity"`
	Notice   string       `json:"notice"`
}

type orderResponse struct {
	ID        string             `json:"id"`
	Lines     []cartLineResponse `json:"lines"`
	ItemCount int                `json:"item_count"`
	Total     string             `json:"total"`
	Customer  domain.Customer    `json:"customer"`
	PlacedAt  time.Time          `json:"placed_at"`
}

type checkoutResponse struct {
	Order        orderResponse `json:"order"`
	Confirmation string        `json:"confirmation"`
}

type replyResponse struct {
	Text     string `json:"text"`
	Status   string `json:"status"`
	Fallback bool   `json:"fallback"`
}

type sendMessageResponse struct {
	UserMessage      messageResponse `json:"user_message"`
	AssistantMessage messageResponse `json:"assistant_message"`
	Reply            replyResponse   `json:"reply"`
}

type timelineResponse struct {
	Messages []messageResponse `json:"messages"`
	Busy     bool              `json:"busy"`
}

// ─────────────────────────────────────────────
// Mapping
// ─────────────────────────────────────────────

func toProductResponse(p domain.Product) productResponse {
	features := p.Features
	if features == nil {
		features = []string{}
	}
	return productResponse{
		ID:          string(p.ID),
		Name:        p.Name,
		Price:       p.Price.StringFixed(2),
		Description: p.Description,
		Category:    string(p.Category),
		Image:       p.Image,
		Rating:      p.Rating,
		Stock:       p.Stock,
		Features:    features,
	}
}

func toProductsResponse(ps []domain.Product) []productResponse {
	out := make([]productResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, toProductResponse(p))
	}
	return out
}

func toCartLinesResponse(lines []domain.CartLine) []cartLineResponse {
	out := make([]cartLineResponse, 0, len(lines))
	for _, l := range lines {
		out = append(out, cartLineResponse{
			Product:  toProductResponse(l.Product),
			Quantity: l.Quantity,
			Subtotal: l.Subtotal().StringFixed(2),
		})
	}
	return out
}

func toCartResponse(c storefront.CartSummary) cartResponse {
	return cartResponse{
		Lines:        toCartLinesResponse(c.Lines),
		ItemCount:    c.ItemCount,
		Subtotal:     c.Subtotal.StringFixed(2),
		Shipping:     c.Shipping.StringFixed(2),
		Tax:          c.Tax.StringFixed(2),
		Total:        c.Total.StringFixed(2),
		Empty:        c.IsEmpty(),
		EmptyMessage: c.EmptyMessage,
	}
}

func toMessageResponse(m domain.ChatMessage) messageResponse {
	return messageResponse{
		ID:        string(m.ID),
		Role:      string(m.Role),
		Text:      m.Text,
		Fallback:  m.Fallback,
		CreatedAt: m.CreatedAt,
	}
}

func toMessagesResponse(msgs []domain.ChatMessage) []messageResponse {
	out := make([]messageResponse, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, toMessageResponse(m))
	}
	return out
}

func toSessionResponse(s *domain.Session) sessionResponse {
	return sessionResponse{
		ID: string(s.ID),
		View: viewResponse{
			Screen:          string(s.View.Screen),
			Category:        string(s.View.Category),
			SelectedProduct: string(s.View.SelectedProduct),
		},
		CartCount: s.Cart.ItemCount(),
		Busy:      s.Conversation.Busy,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func toPageResponse(p *storefront.Page) pageResponse {
	resp := pageResponse{
		Screen:    string(p.Screen),
		Requested: string(p.Requested),
		Title:     p.Title,
		CartCount: p.CartCount,
		Category:  string(p.Category),
		Busy:      p.Busy,
	}
	if p.Featured != nil {
		resp.Featured = toProductsResponse(p.Featured)
	}
	if p.Products != nil {
		resp.Products = toProductsResponse(p.Products)
	}
	for _, c := range p.Categories {
		resp.Categories = append(resp.Categories, string(c))
	}
	if p.Product != nil {
		pr := toProductResponse(*p.Product)
		resp.Product = &pr
	}
	if p.Cart != nil {
		cr := toCartResponse(*p.Cart)
		resp.Cart = &cr
	}
	if p.Messages != nil {
		resp.Messages = toMessagesResponse(p.Messages)
	}
	return resp
}

func toOrderResponse(o *domain.Order) orderResponse {
	return orderResponse{
		ID:        string(o.ID),
		Lines:     toCartLinesResponse(o.Lines),
		ItemCount: o.ItemCount,
		Total:     o.Total.StringFixed(2),
		Customer:  o.Customer,
		PlacedAt:  o.PlacedAt,
	}
}

func toReplyResponse(r domain.Reply) replyResponse {
	return replyResponse{
		Text:     r.Text,
		Status:   string(r.Status),
		Fallback: r.IsFallback(),
	}
}
