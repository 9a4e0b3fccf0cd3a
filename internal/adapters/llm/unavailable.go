package llm

import (
	"context"

	"github.com/PabloGalante/lumina-store/internal/domain"
)

// UnavailableLLM is wired in when no credential is configured.
// Every call fails, so the concierge always answers with its fallback text.
type UnavailableLLM struct{}

func NewUnavailableLLM() *UnavailableLLM {
	return &UnavailableLLM{}
}

func (UnavailableLLM) GenerateReply(ctx context.Context, req domain.GenerationRequest) (string, error) {
	return "", domain.ErrLLMUnavailable
}

func (UnavailableLLM) DescribeImage(ctx context.Context, req domain.ImageRequest) (string, error) {
	return "", domain.ErrLLMUnavailable
}
