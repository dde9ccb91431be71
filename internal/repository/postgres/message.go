package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sirwalterjones/sessionremind/internal/model"
)

const messageColumns = `
	id, recipient_name, recipient_phone, recipient_email,
	session_title, session_time, body,
	due_at, session_at, kind, status, owner_id,
	created_at, sent_at
`

func (r *messageRepository) Create(ctx context.Context, msg *model.Message) error {
	query := `
		INSERT INTO messages (
			id, recipient_name, recipient_phone, recipient_email,
			session_title, session_time, body,
			due_at, session_at, kind, status, owner_id,
			created_at, sent_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	if msg.ID == uuid.Nil {
		msg.ID = uuid.New()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, query,
		msg.ID,
		msg.RecipientName,
		msg.RecipientPhone,
		msg.RecipientEmail,
		msg.SessionTitle,
		msg.SessionTime,
		msg.Body,
		msg.DueAt,
		msg.SessionAt,
		msg.Kind,
		msg.Status,
		msg.OwnerID,
		msg.CreatedAt,
		msg.SentAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

func (r *messageRepository) Get(ctx context.Context, id uuid.UUID) (*model.Message, error) {
	query := `SELECT ` + messageColumns + ` FROM messages WHERE id = $1`

	var msg model.Message
	err := r.db.GetContext(ctx, &msg, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get message: %w", err)
	}
	return &msg, nil
}

func (r *messageRepository) ListAll(ctx context.Context) ([]*model.Message, error) {
	query := `SELECT ` + messageColumns + ` FROM messages ORDER BY created_at ASC, id ASC`

	var msgs []*model.Message
	if err := r.db.SelectContext(ctx, &msgs, query); err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return msgs, nil
}

func (r *messageRepository) ListByOwner(ctx context.Context, ownerID string) ([]*model.Message, error) {
	query := `SELECT ` + messageColumns + ` FROM messages WHERE owner_id = $1 ORDER BY created_at ASC, id ASC`

	var msgs []*model.Message
	if err := r.db.SelectContext(ctx, &msgs, query, ownerID); err != nil {
		return nil, fmt.Errorf("failed to list messages for owner: %w", err)
	}
	return msgs, nil
}

// ReplaceAll swaps the whole collection inside one transaction so a reader
// never observes a partially written set.
func (r *messageRepository) ReplaceAll(ctx context.Context, msgs []*model.Message) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM messages`); err != nil {
		return fmt.Errorf("failed to clear messages: %w", err)
	}

	insert := `
		INSERT INTO messages (
			id, recipient_name, recipient_phone, recipient_email,
			session_title, session_time, body,
			due_at, session_at, kind, status, owner_id,
			created_at, sent_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	for _, msg := range msgs {
		if _, err := tx.ExecContext(ctx, insert,
			msg.ID,
			msg.RecipientName,
			msg.RecipientPhone,
			msg.RecipientEmail,
			msg.SessionTitle,
			msg.SessionTime,
			msg.Body,
			msg.DueAt,
			msg.SessionAt,
			msg.Kind,
			msg.Status,
			msg.OwnerID,
			msg.CreatedAt,
			msg.SentAt,
		); err != nil {
			return fmt.Errorf("failed to insert message %s: %w", msg.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit replace: %w", err)
	}
	return nil
}

// UpdateStatus rewrites only the status column (and stamps sent_at when
// the new status is sent). A missing id is not an error.
func (r *messageRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.MessageStatus) error {
	query := `
		UPDATE messages
		SET status = $1,
		    sent_at = CASE WHEN $1 = 'sent' THEN NOW() ELSE sent_at END
		WHERE id = $2
	`
	if _, err := r.db.ExecContext(ctx, query, status, id); err != nil {
		return fmt.Errorf("failed to update message status: %w", err)
	}
	return nil
}

func (r *messageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM messages WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("message not found")
	}

	return nil
}
