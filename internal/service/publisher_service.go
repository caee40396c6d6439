package service

import (
	"context"
	"encoding/json"

	"realestate-chatbot-be/internal/dto"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

type IPublisherService interface {
	PublishLeadCaptured(ctx context.Context, msg dto.LeadCapturedMessage) error
}

type publisherService struct {
	topicName string
	publisher message.Publisher
}

func NewPublisherService(topicName string, publisher message.Publisher) IPublisherService {
	return &publisherService{
		topicName: topicName,
		publisher: publisher,
	}
}

func (ps *publisherService) PublishLeadCaptured(ctx context.Context, msg dto.LeadCapturedMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	// the consumer outlives the request, so ctx is not attached to the message
	m := message.NewMessage(watermill.NewUUID(), payload)
	return ps.publisher.Publish(ps.topicName, m)
}
