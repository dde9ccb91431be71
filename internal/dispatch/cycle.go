package dispatch

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sirwalterjones/sessionremind/internal/model"
	"github.com/sirwalterjones/sessionremind/internal/repository"
	"github.com/sirwalterjones/sessionremind/pkg/logger"
)

// Sender delivers one SMS. Implementations map transport-level failures
// (non-2xx, network errors) into the returned error; the cycle records
// the message as failed and keeps going.
type Sender interface {
	Send(ctx context.Context, phone, body string) error
}

// UsageAccount increments a per-owner send counter. Calls are best-effort:
// a failure never reverts a sent message.
type UsageAccount interface {
	Increment(ctx context.Context, ownerID string) error
}

// FailureNotifier is told about messages that transition to failed.
type FailureNotifier interface {
	NotifyFailure(ctx context.Context, msg *model.Message)
}

type Cycle struct {
	store  repository.MessageRepository
	gate   *Gate
	sender Sender
	usage  UsageAccount
	logger *logger.Logger

	notifier FailureNotifier
	now      func() time.Time
}

func NewCycle(store repository.MessageRepository, gate *Gate, sender Sender, usage UsageAccount, lgr *logger.Logger) *Cycle {
	return &Cycle{
		store:  store,
		gate:   gate,
		sender: sender,
		usage:  usage,
		logger: lgr,
		now:    time.Now,
	}
}

// WithFailureNotifier attaches an optional notifier for failed sends.
func (c *Cycle) WithFailureNotifier(n FailureNotifier) *Cycle {
	c.notifier = n
	return c
}

// WithClock overrides the wall clock. Tests only.
func (c *Cycle) WithClock(now func() time.Time) *Cycle {
	c.now = now
	return c
}

// MessageResult is the per-message outcome line in a cycle summary.
type MessageResult struct {
	ID        uuid.UUID           `json:"id"`
	Recipient string              `json:"recipient"`
	Kind      model.MessageKind   `json:"kind"`
	Outcome   model.MessageStatus `json:"outcome"`
}

// Result summarizes one batch pass. The trigger surface returns it with a
// 200 regardless of how much was done; callers tell "nothing to do" from
// "error" by the shape, not the HTTP status.
type Result struct {
	ProcessedCount int             `json:"processed_count"`
	DueTotal       int             `json:"due_total"`
	SentCount      int             `json:"sent_count"`
	FailedCount    int             `json:"failed_count"`
	SkippedCount   int             `json:"skipped_count"`
	Reason         string          `json:"reason,omitempty"`
	Messages       []MessageResult `json:"per_message_results"`
}

// Run executes one batch pass: gate check, due-set selection, then a
// strictly serial substitute/send/update sequence per message. A sender
// failure is contained to its message; only a failure to read the
// collection aborts the cycle.
//
// Delivery is at-least-once. A crash between the gateway accepting a send
// and the status write leaves the record scheduled, and the next cycle
// re-sends it. There is no idempotency key.
func (c *Cycle) Run(ctx context.Context) (*Result, error) {
	now := c.now()

	if !c.gate.DispatchAllowed(now) {
		res := &Result{
			Reason: fmt.Sprintf("quiet hours: dispatch resumes at %02d:00 %s", c.gate.ThresholdHour(), c.gate.Zone()),
		}
		// Count what would have been eligible so operators can see the
		// backlog. Read-only; nothing is written during the embargo.
		if msgs, err := c.store.ListAll(ctx); err == nil {
			res.SkippedCount = len(c.dueSet(msgs, now))
		} else {
			c.logger.Error(err, "failed to count embargoed messages")
		}
		return res, nil
	}

	msgs, err := c.store.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read message store: %w", err)
	}

	due := c.dueSet(msgs, now)
	res := &Result{
		DueTotal: len(due),
		Messages: make([]MessageResult, 0, len(due)),
	}

	for _, msg := range due {
		outcome := c.dispatchOne(ctx, msg)
		res.ProcessedCount++
		if outcome == model.MessageStatusSent {
			res.SentCount++
		} else {
			res.FailedCount++
		}
		res.Messages = append(res.Messages, MessageResult{
			ID:        msg.ID,
			Recipient: msg.RecipientName,
			Kind:      msg.Kind,
			Outcome:   outcome,
		})
	}

	return res, nil
}

// dueSet selects scheduled records whose due time has passed, preserving
// the store's insertion order.
func (c *Cycle) dueSet(msgs []*model.Message, now time.Time) []*model.Message {
	var due []*model.Message
	for _, m := range msgs {
		if m.Status == model.MessageStatusScheduled && !m.DueAt.After(now) {
			due = append(due, m)
		}
	}
	return due
}

func (c *Cycle) dispatchOne(ctx context.Context, msg *model.Message) model.MessageStatus {
	body := RenderBody(msg)
	phone := NormalizePhone(msg.RecipientPhone)

	if err := c.sender.Send(ctx, phone, body); err != nil {
		c.logger.Error(err, "send failed",
			"message_id", msg.ID.String(),
			"kind", string(msg.Kind))
		if err := c.store.UpdateStatus(ctx, msg.ID, model.MessageStatusFailed); err != nil {
			c.logger.Error(err, "failed to mark message failed", "message_id", msg.ID.String())
		}
		if c.notifier != nil {
			c.notifier.NotifyFailure(ctx, msg)
		}
		return model.MessageStatusFailed
	}

	if err := c.store.UpdateStatus(ctx, msg.ID, model.MessageStatusSent); err != nil {
		// The gateway already accepted the send; the record stays
		// scheduled and will be re-sent next cycle.
		c.logger.Error(err, "failed to mark message sent", "message_id", msg.ID.String())
	}

	if msg.OwnerID != "" {
		if err := c.usage.Increment(ctx, msg.OwnerID); err != nil {
			c.logger.Error(err, "failed to increment usage", "owner_id", msg.OwnerID)
		}
	}

	return model.MessageStatusSent
}
