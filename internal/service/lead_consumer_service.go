package service

import (
	"context"
	"encoding/json"
	"time"

	"realestate-chatbot-be/internal/dto"
	"realestate-chatbot-be/internal/pkg/logger"
	"realestate-chatbot-be/internal/repository/contract"
	"realestate-chatbot-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

// EventPublisher forwards events off-process (NATS JetStream)
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

const (
	maxLeadAttempts   = 3
	defaultRetryDelay = 200 * time.Millisecond
)

type ILeadConsumerService interface {
	Consume(ctx context.Context) error
}

type leadConsumerService struct {
	subscriber message.Subscriber
	topicName  string
	store      contract.ChatbotStore
	forwarder  EventPublisher
	audit      logger.ILogger

	retryDelay time.Duration
	// delivery attempts per message UUID, touched only by the consume goroutine
	attempts map[string]int
}

// NewLeadConsumerService merges captured leads into the store. forwarder may
// be nil when NATS is not connected.
func NewLeadConsumerService(
	subscriber message.Subscriber,
	topicName string,
	store contract.ChatbotStore,
	forwarder EventPublisher,
	audit logger.ILogger,
) ILeadConsumerService {
	return &leadConsumerService{
		subscriber: subscriber,
		topicName:  topicName,
		store:      store,
		forwarder:  forwarder,
		audit:      audit,
		retryDelay: defaultRetryDelay,
		attempts:   make(map[string]int),
	}
}

func (lc *leadConsumerService) Consume(ctx context.Context) error {
	messages, err := lc.subscriber.Subscribe(ctx, lc.topicName)
	if err != nil {
		return err
	}

	// one goroutine serializes merges; the read-merge-write in UpsertLead is not atomic on every backend
	go func() {
		for msg := range messages {
			lc.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (lc *leadConsumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.LeadCapturedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		lc.audit.Error("LEAD", "Dropping unreadable lead message", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		msg.Ack()
		return
	}

	accountID, err := uuid.Parse(payload.AccountID)
	if err != nil || payload.VisitorID == "" {
		lc.audit.Warn("LEAD", "Dropping lead without account or visitor", map[string]interface{}{
			"account_id": payload.AccountID,
			"visitor_id": payload.VisitorID,
		})
		msg.Ack()
		return
	}

	merged, err := lc.store.UpsertLead(ctx, accountID, payload.VisitorID, payload.ConversationID, payload.Lead)
	if err != nil {
		lc.retryOrDrop(ctx, msg, payload, err)
		return
	}
	delete(lc.attempts, msg.UUID)

	lc.audit.Info("LEAD", "Lead captured", map[string]interface{}{
		"account_id":        payload.AccountID,
		"visitor_id":        payload.VisitorID,
		"conversation_id":   payload.ConversationID,
		"name":              merged.Name,
		"email":             merged.Email,
		"phone":             merged.Phone,
		"budget":            merged.Budget,
		"property_interest": merged.PropertyInterest,
	})

	if lc.forwarder != nil {
		event := events.LeadCaptured{
			AccountID:      payload.AccountID,
			VisitorID:      payload.VisitorID,
			ConversationID: payload.ConversationID,
			Lead:           merged.VisitorInfo(),
			CapturedAt:     payload.CapturedAt,
		}
		if err := lc.forwarder.Publish(ctx, event); err != nil {
			// the lead is stored; forwarding is best-effort
			lc.audit.Warn("LEAD", "Failed to forward lead event", map[string]interface{}{
				"account_id": payload.AccountID,
				"error":      err.Error(),
			})
		}
	}

	msg.Ack()
}

// retryOrDrop redelivers a lead that failed to store, backing off a little
// longer each time, and gives up after maxLeadAttempts.
func (lc *leadConsumerService) retryOrDrop(ctx context.Context, msg *message.Message, payload dto.LeadCapturedMessage, err error) {
	lc.attempts[msg.UUID]++
	attempt := lc.attempts[msg.UUID]

	fields := map[string]interface{}{
		"message_id": msg.UUID,
		"account_id": payload.AccountID,
		"visitor_id": payload.VisitorID,
		"attempt":    attempt,
		"error":      err.Error(),
	}

	if attempt >= maxLeadAttempts {
		delete(lc.attempts, msg.UUID)
		lc.audit.Error("LEAD", "Giving up on lead after repeated store failures", fields)
		msg.Ack()
		return
	}

	lc.audit.Warn("LEAD", "Failed to store lead, retrying", fields)

	select {
	case <-time.After(time.Duration(attempt) * lc.retryDelay):
	case <-ctx.Done():
	}
	msg.Nack()
}
