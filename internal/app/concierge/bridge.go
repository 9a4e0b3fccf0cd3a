package concierge

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/PabloGalante/lumina-store/internal/domain"
	"github.com/PabloGalante/lumina-store/internal/observability"
)

const (
	defaultModel      = "gemini-3-flash-preview"
	defaultImageModel = "gemini-2.5-flash-image"
	defaultImageMIME  = "image/jpeg"
)

type Options struct {
	Model       string
	ImageModel  string
	Temperature float32

	// ForwardHistory sends prior turns along with the latest one.
	// Off by default: only the latest user turn reaches the model.
	ForwardHistory bool
}

// Bridge turns shopper text into a catalog-grounded reply with one model
// call. It never returns an error: failures come back as fallback replies.
type Bridge struct {
	llm  domain.LLMClient
	opts Options
}

func NewBridge(llm domain.LLMClient, opts Options) *Bridge {
	if opts.Model == "" {
		opts.Model = defaultModel
	}
	if opts.ImageModel == "" {
		opts.ImageModel = defaultImageModel
	}
	return &Bridge{llm: llm, opts: opts}
}

// GetRecommendation grounds userText on the catalog and asks the model once.
// The caller has already rejected blank text.
func (b *Bridge) GetRecommendation(
	ctx context.Context,
	userText string,
	catalog domain.CatalogLookup,
	history []domain.ChatMessage,
) (reply domain.Reply) {
	log := observability.LoggerFromContext(ctx).With("model", b.opts.Model)
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("llm client panic: %v", r)
			log.Error("concierge request failed", "error", err)
			reply = domain.FallbackReply(FallbackText, err)
		}
		log.Info("concierge request done",
			"status", reply.Status,
			"elapsed_ms", time.Since(start).Milliseconds())
	}()

	system, err := BuildSystemPrompt(catalog.Products())
	if err != nil {
		log.Error("failed to build grounding prompt", "error", err)
		return domain.FallbackReply(FallbackText, err)
	}

	text, err := b.llm.GenerateReply(ctx, domain.GenerationRequest{
		Model:       b.opts.Model,
		System:      system,
		Messages:    BuildMessages(userText, history, b.opts.ForwardHistory),
		Temperature: b.opts.Temperature,
	})
	if err == nil && text == "" {
		err = domain.ErrEmptyReply
	}
	if err != nil {
		return b.fallback(ctx, err, FallbackText)
	}

	return domain.OKReply(text)
}

// AnalyzeImage asks the image model to describe a product photo.
// Same contract as GetRecommendation: it always resolves.
func (b *Bridge) AnalyzeImage(ctx context.Context, image []byte, mimeType string) (reply domain.Reply) {
	log := observability.LoggerFromContext(ctx).With("model", b.opts.ImageModel)

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("llm client panic: %v", r)
			log.Error("image analysis failed", "error", err)
			reply = domain.FallbackReply(ImageFallbackText, err)
		}
	}()

	if len(image) == 0 {
		return domain.FallbackReply(ImageFallbackText, domain.ErrEmptyImage)
	}
	if mimeType == "" {
		mimeType = defaultImageMIME
	}

	text, err := b.llm.DescribeImage(ctx, domain.ImageRequest{
		Model:       b.opts.ImageModel,
		Data:        image,
		MIMEType:    mimeType,
		Instruction: imageInstruction,
	})
	if err == nil && text == "" {
		err = domain.ErrEmptyReply
	}
	if err != nil {
		log.Error("image analysis failed", "error", err, "bytes", len(image))
		return domain.FallbackReply(ImageFallbackText, err)
	}

	return domain.OKReply(text)
}

func (b *Bridge) fallback(ctx context.Context, err error, text string) domain.Reply {
	log := observability.LoggerFromContext(ctx)
	if errors.Is(err, domain.ErrEmptyReply) {
		log.Warn("model returned no text")
		return domain.FallbackReply(EmptyReplyText, err)
	}
	log.Error("concierge request failed", "error", err)
	return domain.FallbackReply(text, err)
}
