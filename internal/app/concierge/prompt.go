package concierge

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/PabloGalante/lumina-store/internal/domain"
)

const (
	// FallbackText is shown when the model cannot be reached.
	FallbackText = "I apologize, but I'm having trouble connecting to my knowledge base. How else can I assist you with our collection today?"

	// EmptyReplyText is shown when the model answers with no text.
	EmptyReplyText = "I'm sorry, I couldn't process that."

	// ImageFallbackText is shown when an image cannot be analyzed.
	ImageFallbackText = "Unable to analyze image. Please try a clearer photo."

	// WelcomeText opens every new conversation.
	WelcomeText = "Welcome to Lumina. I am your personal concierge. Looking for something specific, or would you like a curated recommendation?"

	imageInstruction = "Identify the product in this image. Is it a watch, headphones, home appliance, or something else? Describe its style and likely category."
)

const systemTemplate = `
You are Lumina's Elite Shopping Concierge.
Your goal is to help users find the perfect products from our luxury catalog.

Available Products: %s

Guidelines:
1. Be sophisticated, helpful, and concise.
2. If a user describes a need, suggest the most relevant product(s).
3. Mention specific features and prices.
4. If we don't have something, politely offer the closest alternative.
5. Always maintain a premium, high-end tone.
`

// productProjection bounds prompt size to the fields the model needs.
type productProjection struct {
	ID          domain.ProductID `json:"id"`
	Name        string           `json:"name"`
	Price       decimal.Decimal  `json:"price"`
	Category    domain.Category  `json:"category"`
	Description string           `json:"description"`
}

// BuildSystemPrompt embeds the catalog projection into the grounding instruction.
func BuildSystemPrompt(products []domain.Product) (string, error) {
	proj := make([]productProjection, len(products))
	for i, p := range products {
		proj[i] = productProjection{
			ID:          p.ID,
			Name:        p.Name,
			Price:       p.Price,
			Category:    p.Category,
			Description: p.Description,
		}
	}

	raw, err := json.Marshal(proj)
	if err != nil {
		return "", fmt.Errorf("marshal catalog projection: %w", err)
	}
	return fmt.Sprintf(systemTemplate, raw), nil
}

// BuildMessages returns the turns forwarded to the model: the latest user
// text, preceded by the prior history when forwardHistory is set.
// Forwarded history starts at the first user turn and leaves out fallback
// apologies, so the model never sees canned text as its own answer.
func BuildMessages(userText string, history []domain.ChatMessage, forwardHistory bool) []domain.PromptMessage {
	var msgs []domain.PromptMessage
	if forwardHistory {
		for _, m := range history {
			if m.Text == "" || m.Fallback {
				continue
			}
			if len(msgs) == 0 && m.Role != domain.RoleUser {
				continue
			}
			msgs = append(msgs, domain.PromptMessage{Role: m.Role, Text: m.Text})
		}
	}
	return append(msgs, domain.PromptMessage{Role: domain.RoleUser, Text: userText})
}
