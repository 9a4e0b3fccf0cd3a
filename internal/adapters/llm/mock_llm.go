package llm

import (
	"context"
	"fmt"

	"github.com/PabloGalante/lumina-store/internal/domain"
)

// MockLLM answers deterministically without leaving the process.
type MockLLM struct{}

func NewMockLLM() *MockLLM {
	return &MockLLM{}
}

func (m *MockLLM) GenerateReply(ctx context.Context, req domain.GenerationRequest) (string, error) {
	last := ""
	if n := len(req.Messages); n > 0 {
		last = req.Messages[n-1].Text
	}
	return fmt.Sprintf("Thank you for asking about %q. Our collection has something for you; browse the shop for details.", last), nil
}

func (m *MockLLM) DescribeImage(ctx context.Context, req domain.ImageRequest) (string, error) {
	return fmt.Sprintf("A product photo (%s, %d bytes).", req.MIMEType, len(req.Data)), nil
}
