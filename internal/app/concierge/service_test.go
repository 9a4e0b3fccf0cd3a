package concierge_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/lumina-store/internal/adapters/llm"
	"github.com/PabloGalante/lumina-store/internal/adapters/storage/memory"
	"github.com/PabloGalante/lumina-store/internal/app/concierge"
	"github.com/PabloGalante/lumina-store/internal/domain"
)

func newChat(t *testing.T, client domain.LLMClient) (*concierge.Service, *memory.SessionStore) {
	t.Helper()
	store := memory.NewSessionStore()

	sess := domain.NewSession("s1", time.Now())
	sess.Conversation.Append(concierge.WelcomeMessage(time.Now()))
	require.NoError(t, store.CreateSession(context.Background(), sess))

	bridge := concierge.NewBridge(client, concierge.Options{})
	return concierge.NewService(bridge, store, testCatalog(t)), store
}

func TestSendMessageAppendsBothTurns(t *testing.T) {
	ctx := context.Background()
	svc, _ := newChat(t, llm.NewMockLLM())

	out, err := svc.SendMessage(ctx, concierge.SendMessageInput{SessionID: "s1", Text: "Something for coffee lovers"})
	require.NoError(t, err)

	assert.Equal(t, domain.RoleUser, out.UserMessage.Role)
	assert.Equal(t, domain.RoleAssistant, out.AssistantMessage.Role)
	assert.Equal(t, domain.ReplyOK, out.Reply.Status)
	assert.Equal(t, out.Reply.Text, out.AssistantMessage.Text)

	msgs, busy, err := svc.Timeline(ctx, "s1", 0)
	require.NoError(t, err)
	assert.False(t, busy)
	require.Len(t, msgs, 3)
	assert.Equal(t, concierge.WelcomeText, msgs[0].Text)
	assert.Equal(t, "Something for coffee lovers", msgs[1].Text)
	assert.Less(t, string(msgs[1].ID), string(msgs[2].ID))
}

func TestSendMessageRejectsBlankText(t *testing.T) {
	svc, _ := newChat(t, llm.NewMockLLM())

	_, err := svc.SendMessage(context.Background(), concierge.SendMessageInput{SessionID: "s1", Text: " \n\t "})
	assert.ErrorIs(t, err, domain.ErrEmptyMessage)

	msgs, _, err := svc.Timeline(context.Background(), "s1", 0)
	require.NoError(t, err)
	assert.Len(t, msgs, 1)
}

func TestSendMessageUnknownSession(t *testing.T) {
	svc, _ := newChat(t, llm.NewMockLLM())

	_, err := svc.SendMessage(context.Background(), concierge.SendMessageInput{SessionID: "nope", Text: "hi"})
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSendMessageFailingTransportClearsBusy(t *testing.T) {
	ctx := context.Background()
	svc, _ := newChat(t, &stubLLM{err: errors.New("401 unauthorized")})

	out, err := svc.SendMessage(ctx, concierge.SendMessageInput{SessionID: "s1", Text: "hello"})
	require.NoError(t, err)

	assert.True(t, out.Reply.IsFallback())
	assert.Equal(t, concierge.FallbackText, out.AssistantMessage.Text)

	_, busy, err := svc.Timeline(ctx, "s1", 0)
	require.NoError(t, err)
	assert.False(t, busy)
}

func TestSendMessageEmptyModelTextIsRecordedAsFallback(t *testing.T) {
	ctx := context.Background()
	svc, _ := newChat(t, &stubLLM{text: ""})

	out, err := svc.SendMessage(ctx, concierge.SendMessageInput{SessionID: "s1", Text: "hello"})
	require.NoError(t, err)
	assert.Equal(t, domain.ReplyFallback, out.Reply.Status)
	assert.Equal(t, concierge.EmptyReplyText, out.AssistantMessage.Text)
	assert.True(t, out.AssistantMessage.Fallback)

	msgs, _, err := svc.Timeline(ctx, "s1", 0)
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	assert.True(t, msgs[2].Fallback)
	assert.False(t, msgs[0].Fallback)
}

func TestSendMessageForwardedHistorySkipsFallbacks(t *testing.T) {
	ctx := context.Background()
	store := memory.NewSessionStore()
	sess := domain.NewSession("s1", time.Now())
	sess.Conversation.Append(concierge.WelcomeMessage(time.Now()))
	require.NoError(t, store.CreateSession(ctx, sess))

	stub := &stubLLM{err: errors.New("503 unavailable")}
	bridge := concierge.NewBridge(stub, concierge.Options{ForwardHistory: true})
	svc := concierge.NewService(bridge, store, testCatalog(t))

	_, err := svc.SendMessage(ctx, concierge.SendMessageInput{SessionID: "s1", Text: "first"})
	require.NoError(t, err)

	stub.err, stub.text = nil, "answer"
	_, err = svc.SendMessage(ctx, concierge.SendMessageInput{SessionID: "s1", Text: "second"})
	require.NoError(t, err)

	require.Len(t, stub.requests, 2)
	assert.Equal(t, []domain.PromptMessage{
		{Role: domain.RoleUser, Text: "first"},
		{Role: domain.RoleUser, Text: "second"},
	}, stub.requests[1].Messages)
}

func TestSendMessagePanickingClientClearsBusy(t *testing.T) {
	ctx := context.Background()
	svc, _ := newChat(t, &stubLLM{panics: true})

	out, err := svc.SendMessage(ctx, concierge.SendMessageInput{SessionID: "s1", Text: "hello"})
	require.NoError(t, err)
	assert.Equal(t, concierge.FallbackText, out.AssistantMessage.Text)

	_, busy, err := svc.Timeline(ctx, "s1", 0)
	require.NoError(t, err)
	assert.False(t, busy)
}

func TestSendMessageDiscardsConcurrentSend(t *testing.T) {
	ctx := context.Background()
	stub := &stubLLM{
		text:    "first answer",
		block:   make(chan struct{}),
		started: make(chan struct{}, 1),
	}
	svc, _ := newChat(t, stub)

	done := make(chan error, 1)
	go func() {
		_, err := svc.SendMessage(ctx, concierge.SendMessageInput{SessionID: "s1", Text: "first"})
		done <- err
	}()
	<-stub.started

	_, busy, err := svc.Timeline(ctx, "s1", 0)
	require.NoError(t, err)
	assert.True(t, busy)

	_, err = svc.SendMessage(ctx, concierge.SendMessageInput{SessionID: "s1", Text: "second"})
	assert.ErrorIs(t, err, domain.ErrConversationBusy)

	close(stub.block)
	require.NoError(t, <-done)

	msgs, busy, err := svc.Timeline(ctx, "s1", 0)
	require.NoError(t, err)
	assert.False(t, busy)
	require.Len(t, msgs, 3)
	assert.Equal(t, "first", msgs[1].Text)
	assert.Equal(t, "first answer", msgs[2].Text)

	// A new send is accepted once the first one resolved.
	stub.block, stub.started = nil, nil
	_, err = svc.SendMessage(ctx, concierge.SendMessageInput{SessionID: "s1", Text: "third"})
	require.NoError(t, err)
}

func TestSendMessageCancelledContextStillClearsBusy(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	stub := &stubLLM{err: context.Canceled}
	svc, _ := newChat(t, stub)
	cancel()

	out, err := svc.SendMessage(ctx, concierge.SendMessageInput{SessionID: "s1", Text: "hello"})
	require.NoError(t, err)
	assert.True(t, out.Reply.IsFallback())

	_, busy, err := svc.Timeline(context.Background(), "s1", 0)
	require.NoError(t, err)
	assert.False(t, busy)
}

func TestSendMessageSessionDeletedMidFlight(t *testing.T) {
	ctx := context.Background()
	stub := &stubLLM{text: "late", block: make(chan struct{}), started: make(chan struct{}, 1)}
	svc, store := newChat(t, stub)

	done := make(chan error, 1)
	go func() {
		_, err := svc.SendMessage(ctx, concierge.SendMessageInput{SessionID: "s1", Text: "hi"})
		done <- err
	}()
	<-stub.started
	require.NoError(t, store.DeleteSession(ctx, "s1"))
	close(stub.block)

	assert.ErrorIs(t, <-done, domain.ErrSessionNotFound)
}

func TestTimelineLimit(t *testing.T) {
	ctx := context.Background()
	svc, _ := newChat(t, llm.NewMockLLM())

	for _, text := range []string{"a", "b"} {
		_, err := svc.SendMessage(ctx, concierge.SendMessageInput{SessionID: "s1", Text: text})
		require.NoError(t, err)
	}

	msgs, _, err := svc.Timeline(ctx, "s1", 2)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "b", msgs[0].Text)
}
