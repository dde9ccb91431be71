package message

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sirwalterjones/sessionremind/internal/model"
	"github.com/sirwalterjones/sessionremind/internal/repository"
	"github.com/sirwalterjones/sessionremind/pkg/errors"
)

type Service struct {
	repo repository.MessageRepository
}

func NewService(repo repository.MessageRepository) *Service {
	return &Service{repo: repo}
}

// Create stores a new message. Reminders enter the dispatch state machine
// as scheduled; manual and registration-confirmation messages may be
// created already sent, bypassing it entirely.
func (s *Service) Create(ctx context.Context, req *model.CreateMessageRequest) (*model.Message, error) {
	msg := &model.Message{
		ID:             uuid.New(),
		RecipientName:  req.RecipientName,
		RecipientPhone: req.RecipientPhone,
		RecipientEmail: req.RecipientEmail,
		SessionTitle:   req.SessionTitle,
		SessionTime:    req.SessionTime,
		Body:           req.Body,
		DueAt:          req.DueAt,
		SessionAt:      req.SessionAt,
		Kind:           req.Kind,
		Status:         model.MessageStatusScheduled,
		OwnerID:        req.OwnerID,
		CreatedAt:      time.Now(),
	}

	if req.CreateAsSent {
		if req.Kind != model.KindManual && req.Kind != model.KindRegistrationConfirmation {
			return nil, errors.BadRequest(
				fmt.Sprintf("kind %s cannot be created as sent", req.Kind), nil)
		}
		now := time.Now()
		msg.Status = model.MessageStatusSent
		msg.SentAt = &now
	} else if req.DueAt.IsZero() {
		return nil, errors.BadRequest("due_at is required for scheduled messages", nil)
	}

	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, errors.Internal(err)
	}
	return msg, nil
}

// Get returns a message if it belongs to ownerID. Records owned by
// anyone else answer not-found so ids cannot be probed across accounts.
func (s *Service) Get(ctx context.Context, id uuid.UUID, ownerID string) (*model.Message, error) {
	msg, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, errors.Internal(err)
	}
	if msg == nil || msg.OwnerID != ownerID {
		return nil, errors.NotFound("message", nil)
	}
	return msg, nil
}

func (s *Service) ListByOwner(ctx context.Context, ownerID string) ([]*model.Message, error) {
	msgs, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, errors.Internal(err)
	}
	return msgs, nil
}

func (s *Service) ListAll(ctx context.Context) ([]*model.Message, error) {
	msgs, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, errors.Internal(err)
	}
	return msgs, nil
}

// Cancel removes a scheduled message from the store. Only scheduled
// records are cancellable; the error for anything else carries the
// current state so the caller can explain the refusal. Cancellation
// deletes the record rather than keeping a cancelled row for audit,
// matching the user-facing "cancelled" label.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID, ownerID string) (*model.CancelledMessage, error) {
	msg, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, errors.Internal(err)
	}
	if msg == nil || msg.OwnerID != ownerID {
		return nil, errors.NotFound("message", nil)
	}
	if msg.Status != model.MessageStatusScheduled {
		return nil, errors.InvalidState(
			fmt.Sprintf("message is %s and can no longer be cancelled", msg.Status), nil)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, errors.Internal(err)
	}

	return &model.CancelledMessage{
		ID:             msg.ID,
		RecipientName:  msg.RecipientName,
		RecipientPhone: msg.RecipientPhone,
		Kind:           msg.Kind,
		DueAt:          msg.DueAt,
	}, nil
}
