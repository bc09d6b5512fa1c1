package services

import (
	"context"
	"fmt"
	"hive-signal/contract"
	"hive-signal/domain"
	"hive-signal/domain/event"
	"hive-signal/errors"
	"hive-signal/gateway"
	"hive-signal/repositories"
	"log/slog"

	"github.com/go-playground/validator/v10"
)

type IMessageService interface {
	Submit(ctx context.Context, draft domain.MessageDraft) (domain.Message, error)
	List(ownerID string) ([]domain.Message, error)
}

// MessageService runs the submission pipeline: validate, persist, dispatch.
// Persistence is the commit point. Dispatch is best effort and its failure
// only shows up in telemetry.
type MessageService struct {
	log        *slog.Logger
	repository repositories.IMessageRepository
	gateway    gateway.IGateway
	sink       contract.EventSink
	validate   *validator.Validate
}

func NewMessageService(log *slog.Logger, repository repositories.IMessageRepository,
	gw gateway.IGateway, sink contract.EventSink) *MessageService {
	return &MessageService{
		log:        log,
		repository: repository,
		gateway:    gw,
		sink:       sink,
		validate:   newDraftValidator(),
	}
}

var _ IMessageService = (*MessageService)(nil)

func (s *MessageService) Submit(ctx context.Context, draft domain.MessageDraft) (domain.Message, error) {
	// 1. Validate before any side effect
	if err := validateDraft(s.validate, draft); err != nil {
		return domain.Message{}, err
	}

	// 2. Persist. Nothing is dispatched unless this succeeds
	message, err := s.repository.Create(draft)
	if err != nil {
		s.log.Error("Failed to persist message", "err", err)
		return domain.Message{}, fmt.Errorf("%w: %v", errors.ErrPersistence, err)
	}
	s.emit(ctx, event.New(event.MessageStoredType, event.MessageStored{
		MessageID: message.ID,
		OwnerID:   message.OwnerID,
	}))

	// 3. Dispatch. A caller hanging up must not abort delivery of a stored message
	s.dispatch(context.WithoutCancel(ctx), message)
	return message, nil
}

func (s *MessageService) dispatch(ctx context.Context, message domain.Message) {
	result := s.gateway.Send(ctx, message.PhoneNumber, message.Content)
	if !result.Success {
		s.log.Debug("Message saved but SMS sending failed", "id", message.ID, "err", result.Err())
		s.emit(ctx, event.New(event.DispatchFailedType, event.DispatchFailed{
			MessageID:   message.ID,
			OwnerID:     message.OwnerID,
			PhoneNumber: message.PhoneNumber,
			Detail:      result.ErrorDetail,
		}))
		return
	}
	s.emit(ctx, event.New(event.DispatchSucceededType, event.DispatchSucceeded{
		MessageID:         message.ID,
		OwnerID:           message.OwnerID,
		ProviderMessageID: result.ProviderMessageID,
	}))
}

func (s *MessageService) emit(ctx context.Context, e event.Event) {
	if s.sink == nil {
		return
	}
	if err := s.sink.Consume(ctx, e); err != nil {
		s.log.Debug("Telemetry event dropped", "type", e.Type, "err", err)
	}
}

// List returns the owner's full history, newest first.
func (s *MessageService) List(ownerID string) ([]domain.Message, error) {
	if ownerID == "" {
		return nil, errors.NewValidationError(errors.Violation{Field: "owner_id", Message: "can't be blank"})
	}
	messages, err := s.repository.ListByOwner(ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	if messages == nil {
		messages = []domain.Message{}
	}
	return messages, nil
}
