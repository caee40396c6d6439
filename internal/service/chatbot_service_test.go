package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"realestate-chatbot-be/internal/dto"
	"realestate-chatbot-be/internal/entity"
	"realestate-chatbot-be/internal/pkg/logger"
	"realestate-chatbot-be/internal/pkg/metrics"
	"realestate-chatbot-be/internal/repository/contract"
	"realestate-chatbot-be/internal/repository/memory"
	"realestate-chatbot-be/pkg/chat"
	"realestate-chatbot-be/pkg/events"
	"realestate-chatbot-be/pkg/lead"
	"realestate-chatbot-be/pkg/llm"
	"realestate-chatbot-be/pkg/rag/access"
	"realestate-chatbot-be/pkg/rag/format"
	"realestate-chatbot-be/pkg/rag/history"
	"realestate-chatbot-be/pkg/rag/response"
	"realestate-chatbot-be/pkg/training"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const leadTopic = "LEAD_CAPTURED"

type harness struct {
	store    *memory.ChatbotStore
	provider *llm.MockProvider
	pubSub   *gochannel.GoChannel
	service  IChatbotService
}

func newHarness(t *testing.T, reply string, replyErr error) *harness {
	t.Helper()
	nop := logger.NewNopLogger()
	store := memory.NewChatbotStore()
	provider := llm.NewMockProvider(reply, replyErr)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	t.Cleanup(func() { _ = pubSub.Close() })

	generator := response.NewGenerator(
		lead.NewDefaultExtractor(),
		training.NewMatcher(store, training.DefaultConfig(), nop),
		provider,
		history.NewLoader(10, 2000),
		format.NewLinkRewriter("acme-realty.com", "/properties/"),
		NewConversationLog(store),
		nop,
		response.Config{AssistantName: "Ava"},
	)

	svc := NewChatbotService(
		store,
		generator,
		access.NewVerifier(store, 0, nop),
		NewPublisherService(leadTopic, pubSub),
		metrics.NewChatbot(prometheus.NewRegistry()),
		nop,
	)
	return &harness{store: store, provider: provider, pubSub: pubSub, service: svc}
}

func TestRespondDemoTraffic(t *testing.T) {
	h := newHarness(t, "Our Pro plan is $79/month.", nil)

	res, err := h.service.Respond(context.Background(), &dto.RespondRequest{
		Message:   "How much is the Pro plan?",
		AccountID: "",
	})
	require.NoError(t, err)
	assert.Equal(t, chat.SourceAI, res.Source)
	assert.NotEmpty(t, res.ConversationID)
	assert.Nil(t, res.LeadInfo)

	turns, err := h.store.ListTurns(context.Background(), uuid.Nil, res.ConversationID)
	require.NoError(t, err)
	assert.Empty(t, turns)
}

func TestRespondTrainingAnswerIsLogged(t *testing.T) {
	h := newHarness(t, "unused", nil)
	acc := uuid.New()
	h.store.SeedQA(acc, training.QAPair{Question: "What are your office hours?", Answer: "Mon-Fri 9-5", Priority: 5})

	res, err := h.service.Respond(context.Background(), &dto.RespondRequest{
		Message:     "office hours please",
		AccountID:   acc.String(),
		VisitorInfo: lead.VisitorInfo{VisitorID: "v1"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Mon-Fri 9-5", res.Response)
	assert.Equal(t, chat.SourceTraining, res.Source)
	assert.Equal(t, 0, h.provider.Calls())

	turns, err := h.service.GetConversation(context.Background(), acc, res.ConversationID)
	require.NoError(t, err)
	require.Len(t, turns, 1)
	assert.Equal(t, "office hours please", turns[0].UserMessage)
	assert.Equal(t, "v1", turns[0].VisitorID)
}

func TestRespondFeatureDisabled(t *testing.T) {
	h := newHarness(t, "unused", nil)
	acc := uuid.New()
	h.store.GrantFeature(acc, access.FeatureChatbot, false)

	_, err := h.service.Respond(context.Background(), &dto.RespondRequest{Message: "hi", AccountID: acc.String()})
	assert.ErrorIs(t, err, access.ErrFeatureDisabled)
	assert.Equal(t, 0, h.provider.Calls())
}

func TestRespondModelFailureIsSoft(t *testing.T) {
	h := newHarness(t, "", errors.New("quota exceeded"))
	acc := uuid.New()

	res, err := h.service.Respond(context.Background(), &dto.RespondRequest{Message: "hello", AccountID: acc.String(), ConversationID: "c1"})
	require.NoError(t, err)
	assert.Equal(t, chat.SourceError, res.Source)
	assert.Equal(t, response.ApologyMessage, res.Response)
	assert.Equal(t, "c1", res.ConversationID)

	_, err = h.service.GetConversation(context.Background(), acc, "c1")
	assert.ErrorIs(t, err, ErrConversationNotFound)
}

func TestRespondPublishesCapturedLead(t *testing.T) {
	h := newHarness(t, "Nice to meet you, Dana!", nil)
	acc := uuid.New()

	messages, err := h.pubSub.Subscribe(context.Background(), leadTopic)
	require.NoError(t, err)

	res, err := h.service.Respond(context.Background(), &dto.RespondRequest{
		Message:     "Hi, I'm Dana Cruz, reach me at dana@example.com",
		AccountID:   acc.String(),
		VisitorInfo: lead.VisitorInfo{Phone: "555-123-4567", VisitorID: "v1"},
	})
	require.NoError(t, err)
	require.NotNil(t, res.LeadInfo)
	assert.Equal(t, "Dana Cruz", res.LeadInfo.Name)

	select {
	case msg := <-messages:
		var payload dto.LeadCapturedMessage
		require.NoError(t, json.Unmarshal(msg.Payload, &payload))
		msg.Ack()
		assert.Equal(t, acc.String(), payload.AccountID)
		assert.Equal(t, "v1", payload.VisitorID)
		assert.Equal(t, "dana@example.com", payload.Lead.Email)
		assert.Equal(t, "555-123-4567", payload.Lead.Phone)
	case <-time.After(2 * time.Second):
		t.Fatal("no lead published")
	}
}

type recordingForwarder struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (r *recordingForwarder) Publish(_ context.Context, e events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return r.err
}

func (r *recordingForwarder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

func TestLeadConsumerMergesAndForwards(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := memory.NewChatbotStore()
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()
	forwarder := &recordingForwarder{err: errors.New("nats down")}

	consumer := NewLeadConsumerService(pubSub, leadTopic, store, forwarder, logger.NewNopLogger())
	require.NoError(t, consumer.Consume(ctx))

	publisher := NewPublisherService(leadTopic, pubSub)
	acc := uuid.New()
	require.NoError(t, publisher.PublishLeadCaptured(ctx, dto.LeadCapturedMessage{
		AccountID: acc.String(), VisitorID: "v1", ConversationID: "c1",
		Lead: lead.VisitorInfo{Name: "Dana Cruz"},
	}))
	require.NoError(t, publisher.PublishLeadCaptured(ctx, dto.LeadCapturedMessage{
		AccountID: acc.String(), VisitorID: "v1", ConversationID: "c1",
		Lead: lead.VisitorInfo{Email: "dana@example.com"},
	}))
	// malformed messages are dropped without blocking the stream
	require.NoError(t, publisher.PublishLeadCaptured(ctx, dto.LeadCapturedMessage{AccountID: "not-a-uuid", VisitorID: "v2"}))

	require.Eventually(t, func() bool { return forwarder.count() == 2 }, 2*time.Second, 10*time.Millisecond)

	stored, ok := store.Lead(acc, "v1")
	require.True(t, ok)
	assert.Equal(t, "Dana Cruz", stored.Name)
	assert.Equal(t, "dana@example.com", stored.Email)

	forwarder.mu.Lock()
	last := forwarder.events[1].(events.LeadCaptured)
	forwarder.mu.Unlock()
	assert.Equal(t, "Dana Cruz", last.Lead.Name)
}

// flakyStore fails every lead write for one visitor
type flakyStore struct {
	contract.ChatbotStore
	failVisitor string

	mu    sync.Mutex
	calls int
}

func (f *flakyStore) UpsertLead(ctx context.Context, accountID uuid.UUID, visitorID, conversationID string, info lead.VisitorInfo) (*entity.Lead, error) {
	if visitorID == f.failVisitor {
		f.mu.Lock()
		f.calls++
		f.mu.Unlock()
		return nil, errors.New("connection refused")
	}
	return f.ChatbotStore.UpsertLead(ctx, accountID, visitorID, conversationID, info)
}

func (f *flakyStore) failedCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestLeadConsumerStopsRetryingFailedStore(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mem := memory.NewChatbotStore()
	store := &flakyStore{ChatbotStore: mem, failVisitor: "v-broken"}
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	consumer := NewLeadConsumerService(pubSub, leadTopic, store, nil, logger.NewNopLogger())
	consumer.(*leadConsumerService).retryDelay = time.Millisecond
	require.NoError(t, consumer.Consume(ctx))

	publisher := NewPublisherService(leadTopic, pubSub)
	acc := uuid.New()
	require.NoError(t, publisher.PublishLeadCaptured(ctx, dto.LeadCapturedMessage{
		AccountID: acc.String(), VisitorID: "v-broken", Lead: lead.VisitorInfo{Name: "Lost Lead"},
	}))
	require.NoError(t, publisher.PublishLeadCaptured(ctx, dto.LeadCapturedMessage{
		AccountID: acc.String(), VisitorID: "v-ok", Lead: lead.VisitorInfo{Email: "ok@example.com"},
	}))

	require.Eventually(t, func() bool {
		_, ok := mem.Lead(acc, "v-ok")
		return ok && store.failedCalls() == maxLeadAttempts
	}, 2*time.Second, 10*time.Millisecond)

	// no further redeliveries once the message is given up on
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, maxLeadAttempts, store.failedCalls())
}
