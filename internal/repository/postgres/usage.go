package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sirwalterjones/sessionremind/internal/model"
)

func (r *usageRepository) Increment(ctx context.Context, ownerID, period string) error {
	query := `
		INSERT INTO usage_counters (owner_id, period, sent_count, updated_at)
		VALUES ($1, $2, 1, NOW())
		ON CONFLICT (owner_id, period)
		DO UPDATE SET sent_count = usage_counters.sent_count + 1, updated_at = NOW()
	`
	if _, err := r.db.ExecContext(ctx, query, ownerID, period); err != nil {
		return fmt.Errorf("failed to increment usage: %w", err)
	}
	return nil
}

func (r *usageRepository) Get(ctx context.Context, ownerID, period string) (*model.Usage, error) {
	query := `
		SELECT owner_id, period, sent_count, updated_at
		FROM usage_counters
		WHERE owner_id = $1 AND period = $2
	`
	var usage model.Usage
	err := r.db.GetContext(ctx, &usage, query, ownerID, period)
	if errors.Is(err, sql.ErrNoRows) {
		return &model.Usage{OwnerID: ownerID, Period: period}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get usage: %w", err)
	}
	return &usage, nil
}
