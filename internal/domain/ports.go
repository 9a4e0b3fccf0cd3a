package domain

import "context"

// LLMClient defines how the core application talks to a text generation service.
type LLMClient interface {
	GenerateReply(ctx context.Context, req GenerationRequest) (string, error)
	DescribeImage(ctx context.Context, req ImageRequest) (string, error)
}

// PromptMessage is one turn forwarded to the model.
type PromptMessage struct {
	Role Role
	Text string
}

// GenerationRequest is a single grounded text call.
type GenerationRequest struct {
	Model       string
	System      string
	Messages    []PromptMessage
	Temperature float32
}

// ImageRequest is a single multimodal call with inline image bytes.
type ImageRequest struct {
	Model       string
	Data        []byte
	MIMEType    string
	Instruction string
}

// CatalogLookup is the read side of the catalog the concierge grounds on.
type CatalogLookup interface {
	Products() []Product
	Product(id ProductID) (Product, bool)
}

// CatalogSource loads the product list once at startup.
type CatalogSource interface {
	LoadProducts(ctx context.Context) ([]Product, error)
}

// SessionStore defines session persistence. UpdateSession runs fn as one
// atomic read-modify-write and returns a copy of the result.
type SessionStore interface {
	CreateSession(ctx context.Context, session *Session) error
	GetSession(ctx context.Context, id SessionID) (*Session, error)
	UpdateSession(ctx context.Context, id SessionID, fn func(*Session) error) (*Session, error)
	DeleteSession(ctx context.Context, id SessionID) error
}

// OrderStore keeps checkout receipts.
type OrderStore interface {
	AppendOrder(ctx context.Context, order *Order) error
	ListOrdersBySession(ctx context.Context, sessionID SessionID, limit int) ([]*Order, error)
	DeleteOrdersBySession(ctx context.Context, sessionID SessionID) error
}
