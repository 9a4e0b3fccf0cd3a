package domain

import "errors"

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrSessionExists    = errors.New("session already exists")
	ErrProductNotFound  = errors.New("product not found")
	ErrDuplicateProduct = errors.New("duplicate product id")
	ErrCatalogEmpty     = errors.New("catalog has no products")
	ErrUnknownScreen    = errors.New("unknown screen")
	ErrUnknownCategory  = errors.New("unknown category")
	ErrEmptyCart        = errors.New("cart is empty")
	ErrEmptyMessage     = errors.New("message text is empty")
	ErrConversationBusy = errors.New("a concierge request is already in flight")
	ErrEmptyReply       = errors.New("model returned empty text")
	ErrLLMUnavailable   = errors.New("llm client not configured")
	ErrEmptyImage       = errors.New("image is empty")
)
