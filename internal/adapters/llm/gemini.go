package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/PabloGalante/lumina-store/internal/domain"
)

// GeminiConfig selects between the Gemini API (API key) and Vertex AI.
type GeminiConfig struct {
	APIKey   string
	Vertex   bool
	Project  string
	Location string
	BaseURL  string // optional endpoint override, e.g. a proxy
}

type GeminiClient struct {
	client *genai.Client
}

// NewGeminiClient creates an LLMClient backed by Gemini.
func NewGeminiClient(ctx context.Context, cfg GeminiConfig) (*GeminiClient, error) {
	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.Vertex {
		if cfg.Project == "" || cfg.Location == "" {
			return nil, fmt.Errorf("project and location must be set for Vertex AI")
		}
		cc = &genai.ClientConfig{
			Project:  cfg.Project,
			Location: cfg.Location,
			Backend:  genai.BackendVertexAI,
		}
	} else if cfg.APIKey == "" {
		return nil, domain.ErrLLMUnavailable
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}

	return &GeminiClient{client: client}, nil
}

// GenerateReply implements domain.LLMClient with a single GenerateContent call.
func (g *GeminiClient) GenerateReply(ctx context.Context, req domain.GenerationRequest) (string, error) {
	contents := make([]*genai.Content, 0, len(req.Messages))
	for _, m := range req.Messages {
		role := genai.Role(genai.RoleUser)
		if m.Role == domain.RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Text, role))
	}

	temp := req.Temperature
	cfg := &genai.GenerateContentConfig{
		Temperature: &temp,
	}
	if req.System != "" {
		cfg.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}

	res, err := g.client.Models.GenerateContent(ctx, req.Model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	text := res.Text()
	if text == "" {
		return "", domain.ErrEmptyReply
	}
	return text, nil
}

// DescribeImage sends inline image bytes plus an instruction to the image model.
func (g *GeminiClient) DescribeImage(ctx context.Context, req domain.ImageRequest) (string, error) {
	parts := []*genai.Part{
		genai.NewPartFromBytes(req.Data, req.MIMEType),
		genai.NewPartFromText(req.Instruction),
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	res, err := g.client.Models.GenerateContent(ctx, req.Model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("gemini describe image: %w", err)
	}

	text := res.Text()
	if text == "" {
		return "", domain.ErrEmptyReply
	}
	return text, nil
}
