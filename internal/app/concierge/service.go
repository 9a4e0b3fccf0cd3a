package concierge

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/PabloGalante/lumina-store/internal/domain"
	"github.com/PabloGalante/lumina-store/internal/observability"
)

var errRequestAborted = errors.New("concierge request aborted")

// Service is the conversation panel: it keeps the per-session chat and
// allows one outstanding concierge call per session.
type Service struct {
	bridge       *Bridge
	sessionStore domain.SessionStore
	catalog      domain.CatalogLookup
	now          func() time.Time
}

func NewService(bridge *Bridge, sessionStore domain.SessionStore, catalog domain.CatalogLookup) *Service {
	return &Service{
		bridge:       bridge,
		sessionStore: sessionStore,
		catalog:      catalog,
		now:          time.Now,
	}
}

type SendMessageInput struct {
	SessionID domain.SessionID
	Text      string
}

type SendMessageOutput struct {
	UserMessage      domain.ChatMessage
	AssistantMessage domain.ChatMessage
	Reply            domain.Reply
}

// SendMessage appends the user turn, asks the bridge and appends the reply.
// A second call while one is outstanding fails with ErrConversationBusy.
// The busy flag is cleared exactly once on every path after it was set.
func (s *Service) SendMessage(ctx context.Context, in SendMessageInput) (out *SendMessageOutput, err error) {
	if strings.TrimSpace(in.Text) == "" {
		return nil, domain.ErrEmptyMessage
	}

	ctx = observability.WithSessionID(ctx, string(in.SessionID))
	log := observability.LoggerFromContext(ctx)

	userMsg := domain.NewChatMessage(domain.RoleUser, in.Text, s.now())

	var history []domain.ChatMessage
	_, err = s.sessionStore.UpdateSession(ctx, in.SessionID, func(sess *domain.Session) error {
		history = append([]domain.ChatMessage(nil), sess.Conversation.Messages...)
		if err := sess.Conversation.Begin(userMsg); err != nil {
			return err
		}
		sess.UpdatedAt = s.now()
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrConversationBusy) {
			log.Warn("discarding message while a request is in flight")
		}
		return nil, err
	}

	reply := domain.FallbackReply(FallbackText, errRequestAborted)
	defer func() {
		assistantMsg, ferr := s.finish(ctx, in.SessionID, reply)
		if ferr != nil {
			log.Error("failed to record concierge reply", "error", ferr)
			out, err = nil, ferr
			return
		}
		out = &SendMessageOutput{
			UserMessage:      userMsg,
			AssistantMessage: assistantMsg,
			Reply:            reply,
		}
	}()

	reply = s.bridge.GetRecommendation(ctx, in.Text, s.catalog, history)
	// out and err are set by the deferred finish.
	return nil, nil
}

// finish runs detached from ctx so a cancelled request still clears the flag.
func (s *Service) finish(ctx context.Context, id domain.SessionID, reply domain.Reply) (domain.ChatMessage, error) {
	msg := domain.NewChatMessage(domain.RoleAssistant, reply.Text, s.now())
	msg.Fallback = reply.IsFallback()

	_, err := s.sessionStore.UpdateSession(context.WithoutCancel(ctx), id, func(sess *domain.Session) error {
		sess.Conversation.Finish(msg)
		sess.UpdatedAt = s.now()
		return nil
	})
	if err != nil {
		return domain.ChatMessage{}, err
	}
	return msg, nil
}

// Timeline returns the last `limit` messages and whether a call is outstanding.
// If limit <= 0, returns all.
func (s *Service) Timeline(ctx context.Context, id domain.SessionID, limit int) ([]domain.ChatMessage, bool, error) {
	sess, err := s.sessionStore.GetSession(ctx, id)
	if err != nil {
		return nil, false, err
	}

	msgs := sess.Conversation.Messages
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	return msgs, sess.Conversation.Busy, nil
}

// AnalyzeImage describes a product photo. It is not tied to a session.
func (s *Service) AnalyzeImage(ctx context.Context, image []byte, mimeType string) domain.Reply {
	return s.bridge.AnalyzeImage(ctx, image, mimeType)
}

// WelcomeMessage is the first assistant turn of a new session.
func WelcomeMessage(now time.Time) domain.ChatMessage {
	return domain.NewChatMessage(domain.RoleAssistant, WelcomeText, now)
}
