package service

import (
	"context"
	"encoding/json"

	"ai-copilot-be/internal/dto"
	"ai-copilot-be/internal/entity"
	"ai-copilot-be/internal/pkg/logger"
	"ai-copilot-be/internal/repository/contract"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains completion-served events into the audit table so
// the request path never waits on a database write.
type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	auditRepo contract.CompletionAuditRepository
	logger    logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	auditRepo contract.CompletionAuditRepository,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		auditRepo: auditRepo,
		logger:    log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.CompletionServedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("ConsumerService", "Failed to unmarshal audit event", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	audit := &entity.CompletionAudit{
		UserId:     payload.UserId,
		Language:   payload.Language,
		Mode:       payload.Mode,
		CacheHit:   payload.CacheHit,
		Confidence: payload.Confidence,
		LatencyMs:  payload.LatencyMs,
	}
	if err := cs.auditRepo.Create(ctx, audit); err != nil {
		cs.logger.Error("ConsumerService", "Failed to persist audit record", map[string]interface{}{
			"user_id": payload.UserId,
			"error":   err.Error(),
		})
		msg.Nack() // Nack for retriable errors
		return
	}

	msg.Ack()
}
