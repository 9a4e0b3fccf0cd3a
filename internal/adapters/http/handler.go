package httpadapter

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/PabloGalante/lumina-store/internal/app/catalog"
	"github.com/PabloGalante/lumina-store/internal/app/concierge"
	"github.com/PabloGalante/lumina-store/internal/app/orders"
	"github.com/PabloGalante/lumina-store/internal/app/storefront"
	"github.com/PabloGalante/lumina-store/internal/config"
	"github.com/PabloGalante/lumina-store/internal/domain"
	"github.com/PabloGalante/lumina-store/internal/observability"
)

// SessionCounter reports how many sessions are live.
type SessionCounter interface {
	Len() int
}

// Services groups the application services the API exposes.
// Sessions is optional and only feeds /healthz.
type Services struct {
	Catalog    *catalog.Catalog
	Storefront *storefront.Service
	Concierge  *concierge.Service
	Orders     *orders.Service
	Sessions   SessionCounter
}

type Options struct {
	MaxImageBytes int64
}

type Server struct {
	svc  Services
	opts Options
}

func NewServer(svc Services, opts Options) http.Handler {
	if opts.MaxImageBytes <= 0 {
		opts.MaxImageBytes = 8 << 20
	}
	s := &Server{svc: svc, opts: opts}

	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.handleHealthz).Methods(http.MethodGet)

	cat := r.PathPrefix("/catalog").Subrouter()
	cat.HandleFunc("/categories", s.handleListCategories).Methods(http.MethodGet)
	cat.HandleFunc("/products", s.handleListProducts).Methods(http.MethodGet)
	cat.HandleFunc("/products/{productID}", s.handleGetProduct).Methods(http.MethodGet)

	r.HandleFunc("/sessions", s.handleCreateSession).Methods(http.MethodPost)

	sess := r.PathPrefix("/sessions/{id}").Subrouter()
	sess.HandleFunc("", s.handleGetSession).Methods(http.MethodGet)
	sess.HandleFunc("", s.handleDeleteSession).Methods(http.MethodDelete)
	sess.HandleFunc("/page", s.handleGetPage).Methods(http.MethodGet)
	sess.HandleFunc("/navigate", s.handleNavigate).Methods(http.MethodPost)
	sess.HandleFunc("/category", s.handleSelectCategory).Methods(http.MethodPost)
	sess.HandleFunc("/selection", s.handleClearSelection).Methods(http.MethodDelete)
	sess.HandleFunc("/products/{productID}/view", s.handleViewProduct).Methods(http.MethodPost)
	sess.HandleFunc("/cart", s.handleGetCart).Methods(http.MethodGet)
	sess.HandleFunc("/cart/items", s.handleAddToCart).Methods(http.MethodPost)
	sess.HandleFunc("/cart/items/{productID}", s.handleUpdateQuantity).Methods(http.MethodPatch)
	sess.HandleFunc("/cart/items/{productID}", s.handleRemoveFromCart).Methods(http.MethodDelete)
	sess.HandleFunc("/checkout", s.handleCheckout).Methods(http.MethodPost)
	sess.HandleFunc("/orders", s.handleListOrders).Methods(http.MethodGet)
	sess.HandleFunc("/messages", s.handleListMessages).Methods(http.MethodGet)
	sess.HandleFunc("/messages", s.handleSendMessage).Methods(http.MethodPost)

	r.HandleFunc("/concierge/image", s.handleAnalyzeImage).Methods(http.MethodPost)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	return chainMiddlewares(r, withRecover, withLogging, withCORS, withRequestID)
}

// ─────────────────────────────────────────────
// Catalog
// ─────────────────────────────────────────────

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	resp := map[string]any{
		"status":   "ok",
		"products": s.svc.Catalog.Len(),
	}
	if s.svc.Sessions != nil {
		resp["sessions"] = s.svc.Sessions.Len()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListCategories(w http.ResponseWriter, _ *http.Request) {
	cats := s.svc.Catalog.Categories()
	out := make([]string, 0, len(cats))
	for _, c := range cats {
		out = append(out, string(c))
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": out})
}

// /catalog/products?category=Home&q=lamp
// An unknown category yields an empty list, not an error.
func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	category := domain.Category(r.URL.Query().Get("category"))
	if category == "" {
		category = domain.CategoryAll
	}
	products := s.svc.Catalog.Filter(category)

	if q := strings.TrimSpace(r.URL.Query().Get("q")); q != "" {
		matches := make(map[domain.ProductID]struct{})
		for _, p := range s.svc.Catalog.Search(q) {
			matches[p.ID] = struct{}{}
		}
		kept := products[:0]
		for _, p := range products {
			if _, ok := matches[p.ID]; ok {
				kept = append(kept, p)
			}
		}
		products = kept
	}

	writeJSON(w, http.StatusOK, map[string]any{"products": toProductsResponse(products)})
}

func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	p, ok := s.svc.Catalog.Product(domain.ProductID(mux.Vars(r)["productID"]))
	if !ok {
		writeError(w, http.StatusNotFound, domain.ErrProductNotFound.Error())
		return
	}
	writeJSON(w, http.StatusOK, toProductResponse(p))
}

// ─────────────────────────────────────────────
// Sessions and navigation
// ─────────────────────────────────────────────

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.svc.Storefront.StartSession(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	resp := createSessionResponse{Session: toSessionResponse(sess)}
	if msgs := sess.Conversation.Messages; len(msgs) > 0 {
		m := toMessageResponse(msgs[0])
		resp.Welcome = &m
	}

	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.svc.Storefront.GetSession(r.Context(), sessionID(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionResponse(sess))
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Storefront.EndSession(r.Context(), sessionID(r)); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetPage(w http.ResponseWriter, r *http.Request) {
	page, err := s.svc.Storefront.Render(r.Context(), sessionID(r))
	s.writePage(w, r, page, err)
}

func (s *Server) handleNavigate(w http.ResponseWriter, r *http.Request) {
	var req navigateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	screen, err := domain.ParseScreen(req.Screen)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	page, err := s.svc.Storefront.Navigate(r.Context(), sessionID(r), screen)
	s.writePage(w, r, page, err)
}

func (s *Server) handleSelectCategory(w http.ResponseWriter, r *http.Request) {
	var req selectCategoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	category, err := domain.ParseCategory(req.Category)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	page, err := s.svc.Storefront.SelectCategory(r.Context(), sessionID(r), category)
	s.writePage(w, r, page, err)
}

func (s *Server) handleViewProduct(w http.ResponseWriter, r *http.Request) {
	page, err := s.svc.Storefront.ViewProduct(r.Context(), sessionID(r), productID(r))
	s.writePage(w, r, page, err)
}

func (s *Server) handleClearSelection(w http.ResponseWriter, r *http.Request) {
	page, err := s.svc.Storefront.ClearSelection(r.Context(), sessionID(r))
	s.writePage(w, r, page, err)
}

func (s *Server) writePage(w http.ResponseWriter, r *http.Request, page *storefront.Page, err error) {
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toPageResponse(page))
}

// ─────────────────────────────────────────────
// Cart and checkout
// ─────────────────────────────────────────────

func (s *Server) handleGetCart(w http.ResponseWriter, r *http.Request) {
	cart, err := s.svc.Storefront.Cart(r.Context(), sessionID(r))
	s.writeCart(w, r, cart, err)
}

func (s *Server) handleAddToCart(w http.ResponseWriter, r *http.Request) {
	var req addToCartRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.ProductID) == "" {
		writeError(w, http.StatusBadRequest, "product_id is required")
		return
	}

	out, err := s.svc.Storefront.AddToCart(r.Context(), sessionID(r), domain.ProductID(req.ProductID))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, addToCartResponse{
		Cart:     toCartResponse(out.Cart),
		Quantity: out.Quantity,
		Notice:   out.Notice,
	})
}

func (s *Server) handleUpdateQuantity(w http.ResponseWriter, r *http.Request) {
	var req updateQuantityRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	cart, err := s.svc.Storefront.UpdateQuantity(r.Context(), sessionID(r), productID(r), req.Delta)
	s.writeCart(w, r, cart, err)
}

func (s *Server) handleRemoveFromCart(w http.ResponseWriter, r *http.Request) {
	cart, err := s.svc.Storefront.RemoveFromCart(r.Context(), sessionID(r), productID(r))
	s.writeCart(w, r, cart, err)
}

func (s *Server) writeCart(w http.ResponseWriter, r *http.Request, cart *storefront.CartSummary, err error) {
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toCartResponse(*cart))
}

func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	out, err := s.svc.Storefront.Checkout(r.Context(), sessionID(r), storefront.CheckoutInput{
		Customer: domain.Customer{
			FullName:        req.FullName,
			ShippingAddress: req.ShippingAddress,
		},
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, checkoutResponse{
		Order:        toOrderResponse(out.Order),
		Confirmation: out.Confirmation,
	})
}

func (s *Server) handleListOrders(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r)
	if _, err := s.svc.Storefront.GetSession(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}

	list, err := s.svc.Orders.ListOrders(r.Context(), id, queryLimit(r, config.DefaultOrderLimit))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]orderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, toOrderResponse(o))
	}
	writeJSON(w, http.StatusOK, map[string]any{"orders": out})
}

// ─────────────────────────────────────────────
// Concierge
// ─────────────────────────────────────────────

func (s *Server) handleListMessages(w http.ResponseWriter, r *http.Request) {
	msgs, busy, err := s.svc.Concierge.Timeline(r.Context(), sessionID(r), queryLimit(r, config.DefaultMessageLimit))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, timelineResponse{
		Messages: toMessagesResponse(msgs),
		Busy:     busy,
	})
}

// The reply is always 200 once the turn was accepted; a fallback is
// signalled in the body, never as an HTTP error.
func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	var req sendMessageRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	out, err := s.svc.Concierge.SendMessage(r.Context(), concierge.SendMessageInput{
		SessionID: sessionID(r),
		Text:      req.Text,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, sendMessageResponse{
		UserMessage:      toMessageResponse(out.UserMessage),
		AssistantMessage: toMessageResponse(out.AssistantMessage),
		Reply:            toReplyResponse(out.Reply),
	})
}

// /concierge/image takes the raw image bytes as the request body.
func (s *Server) handleAnalyzeImage(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.opts.MaxImageBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "image too large")
			return
		}
		writeError(w, http.StatusBadRequest, "could not read image")
		return
	}
	if len(data) == 0 {
		writeError(w, http.StatusBadRequest, domain.ErrEmptyImage.Error())
		return
	}

	mimeType := r.Header.Get("Content-Type")
	if !strings.HasPrefix(mimeType, "image/") {
		mimeType = http.DetectContentType(data)
	}
	if !strings.HasPrefix(mimeType, "image/") {
		writeError(w, http.StatusUnsupportedMediaType, "body is not an image: "+mimeType)
		return
	}

	reply := s.svc.Concierge.AnalyzeImage(r.Context(), data, mimeType)
	writeJSON(w, http.StatusOK, toReplyResponse(reply))
}

// ─────────────────────────────────────────────
// HTTP Helpers
// ─────────────────────────────────────────────

func sessionID(r *http.Request) domain.SessionID {
	return domain.SessionID(mux.Vars(r)["id"])
}

func productID(r *http.Request) domain.ProductID {
	return domain.ProductID(mux.Vars(r)["productID"])
}

func queryLimit(r *http.Request, def int) int {
	n, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, config.MaxJSONBodyBytes))
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{
		"error": msg,
	})
}

// writeServiceError maps domain errors to status codes. Anything
// unrecognised is logged and reported as a 500 without detail.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound),
		errors.Is(err, domain.ErrProductNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrUnknownScreen),
		errors.Is(err, domain.ErrUnknownCategory),
		errors.Is(err, domain.ErrEmptyMessage),
		errors.Is(err, domain.ErrEmptyImage):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrEmptyCart),
		errors.Is(err, domain.ErrConversationBusy),
		errors.Is(err, domain.ErrSessionExists):
		writeError(w, http.StatusConflict, err.Error())
	default:
		observability.LoggerFromContext(r.Context()).Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
