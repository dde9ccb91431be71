package model

import (
	"time"

	"github.com/google/uuid"
)

type MessageStatus string

const (
	MessageStatusScheduled MessageStatus = "scheduled"
	MessageStatusSent      MessageStatus = "sent"
	MessageStatusFailed    MessageStatus = "failed"
	MessageStatusCancelled MessageStatus = "cancelled"
)

// Terminal reports whether no further transitions are permitted out of s.
func (s MessageStatus) Terminal() bool {
	return s == MessageStatusSent || s == MessageStatusFailed || s == MessageStatusCancelled
}

type MessageKind string

const (
	KindThreeDayReminder         MessageKind = "three_day_reminder"
	KindOneDayReminder           MessageKind = "one_day_reminder"
	KindManual                   MessageKind = "manual"
	KindRegistrationConfirmation MessageKind = "registration_confirmation"
)

// Message is one reminder/notification instance. Contact fields are a
// snapshot taken at creation time and are never mutated afterwards;
// only Status and SentAt change once the record exists.
type Message struct {
	ID             uuid.UUID     `db:"id" json:"id"`
	RecipientName  string        `db:"recipient_name" json:"recipient_name"`
	RecipientPhone string        `db:"recipient_phone" json:"recipient_phone"`
	RecipientEmail string        `db:"recipient_email" json:"recipient_email,omitempty"`
	SessionTitle   string        `db:"session_title" json:"session_title"`
	SessionTime    string        `db:"session_time" json:"session_time"`
	Body           string        `db:"body" json:"body"`
	DueAt          time.Time     `db:"due_at" json:"due_at"`
	SessionAt      time.Time     `db:"session_at" json:"session_at"`
	Kind           MessageKind   `db:"kind" json:"kind"`
	Status         MessageStatus `db:"status" json:"status"`
	// OwnerID is empty for records created before ownership tracking
	// existed; such orphans stay valid but cannot be billed.
	OwnerID   string     `db:"owner_id" json:"owner_id,omitempty"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	SentAt    *time.Time `db:"sent_at" json:"sent_at,omitempty"`
}

type CreateMessageRequest struct {
	RecipientName  string      `json:"recipient_name" binding:"required"`
	RecipientPhone string      `json:"recipient_phone" binding:"required,usphone"`
	RecipientEmail string      `json:"recipient_email" binding:"omitempty,email"`
	SessionTitle   string      `json:"session_title"`
	SessionTime    string      `json:"session_time"`
	Body           string      `json:"body" binding:"required"`
	DueAt          time.Time   `json:"due_at"`
	SessionAt      time.Time   `json:"session_at"`
	Kind           MessageKind `json:"kind" binding:"required,oneof=three_day_reminder one_day_reminder manual registration_confirmation"`
	OwnerID        string      `json:"owner_id"`
	// Manual and registration messages are created already sent by the
	// caller; they never enter the dispatch state machine.
	CreateAsSent bool `json:"create_as_sent"`
}

// CancelledMessage echoes what was removed by a cancellation request.
type CancelledMessage struct {
	ID             uuid.UUID   `json:"id"`
	RecipientName  string      `json:"recipient_name"`
	RecipientPhone string      `json:"recipient_phone"`
	Kind           MessageKind `json:"kind"`
	DueAt          time.Time   `json:"due_at"`
}
