package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/sirwalterjones/sessionremind/internal/model"
)

// ErrDuplicateEmail is returned by UserRepository.Create when the email
// is already registered, so callers can answer with a client error
// instead of a server fault.
var ErrDuplicateEmail = errors.New("email already registered")

// All repository interfaces in one file
type (
	// MessageRepository is the only component allowed to touch stored
	// message records. ListAll returns defensive copies in insertion
	// order. ReplaceAll swaps the whole collection; callers that derive
	// a new collection persist it back through it. UpdateStatus is a
	// silent no-op when no record matches the id, so callers must not
	// assume the write happened without re-reading.
	MessageRepository interface {
		Create(ctx context.Context, msg *model.Message) error
		Get(ctx context.Context, id uuid.UUID) (*model.Message, error)
		ListAll(ctx context.Context) ([]*model.Message, error)
		ListByOwner(ctx context.Context, ownerID string) ([]*model.Message, error)
		ReplaceAll(ctx context.Context, msgs []*model.Message) error
		UpdateStatus(ctx context.Context, id uuid.UUID, status model.MessageStatus) error
		Delete(ctx context.Context, id uuid.UUID) error
	}

	// UsageRepository tracks per-owner monthly send counters.
	UsageRepository interface {
		Increment(ctx context.Context, ownerID, period string) error
		Get(ctx context.Context, ownerID, period string) (*model.Usage, error)
	}

	UserRepository interface {
		Create(ctx context.Context, user *model.User) error
		Get(ctx context.Context, id uuid.UUID) (*model.User, error)
		GetByEmail(ctx context.Context, email string) (*model.User, error)
		Update(ctx context.Context, user *model.User) error
	}
)
