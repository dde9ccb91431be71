// Package memory holds in-process repository implementations. The message
// store here is not persistent: everything is lost on restart. It backs
// tests and the zero-dependency dev mode; production deployments use the
// postgres implementations with the same contract.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sirwalterjones/sessionremind/internal/model"
	"github.com/sirwalterjones/sessionremind/internal/repository"
)

type MessageStore struct {
	mu   sync.RWMutex
	msgs []*model.Message
}

func NewMessageStore() *MessageStore {
	return &MessageStore{}
}

var _ repository.MessageRepository = (*MessageStore)(nil)

func (s *MessageStore) Create(_ context.Context, msg *model.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if msg.ID == uuid.Nil {
		msg.ID = uuid.New()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}

	cp := *msg
	s.msgs = append(s.msgs, &cp)
	return nil
}

func (s *MessageStore) Get(_ context.Context, id uuid.UUID) (*model.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, m := range s.msgs {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

// ListAll returns copies of every record in insertion order.
func (s *MessageStore) ListAll(_ context.Context) ([]*model.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*model.Message, 0, len(s.msgs))
	for _, m := range s.msgs {
		cp := *m
		out = append(out, &cp)
	}
	return out, nil
}

func (s *MessageStore) ListByOwner(_ context.Context, ownerID string) ([]*model.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*model.Message
	for _, m := range s.msgs {
		if m.OwnerID == ownerID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *MessageStore) ReplaceAll(_ context.Context, msgs []*model.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]*model.Message, 0, len(msgs))
	for _, m := range msgs {
		cp := *m
		next = append(next, &cp)
	}
	s.msgs = next
	return nil
}

// UpdateStatus rewrites only the status field (and sent_at when the new
// status is sent). A missing id is a silent no-op, not an error.
func (s *MessageStore) UpdateStatus(_ context.Context, id uuid.UUID, status model.MessageStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range s.msgs {
		if m.ID == id {
			m.Status = status
			if status == model.MessageStatusSent {
				now := time.Now()
				m.SentAt = &now
			}
			return nil
		}
	}
	return nil
}

func (s *MessageStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, m := range s.msgs {
		if m.ID == id {
			s.msgs = append(s.msgs[:i], s.msgs[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("message not found")
}
