package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sirwalterjones/sessionremind/internal/model"
)

func newMsg(name string) *model.Message {
	return &model.Message{
		ID:             uuid.New(),
		RecipientName:  name,
		RecipientPhone: "6788978571",
		Body:           "hi",
		DueAt:          time.Now(),
		Kind:           model.KindManual,
		Status:         model.MessageStatusScheduled,
	}
}

func TestMessageStoreInsertionOrder(t *testing.T) {
	ctx := context.Background()
	store := NewMessageStore()

	a, b, c := newMsg("a"), newMsg("b"), newMsg("c")
	for _, m := range []*model.Message{a, b, c} {
		require.NoError(t, store.Create(ctx, m))
	}

	got, err := store.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []uuid.UUID{a.ID, b.ID, c.ID}, []uuid.UUID{got[0].ID, got[1].ID, got[2].ID})
}

func TestMessageStoreListAllReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMessageStore()

	m := newMsg("a")
	require.NoError(t, store.Create(ctx, m))

	got, err := store.ListAll(ctx)
	require.NoError(t, err)

	// Mutating the returned slice must not leak into the store.
	got[0].Status = model.MessageStatusFailed

	again, err := store.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.MessageStatusScheduled, again[0].Status)
}

func TestMessageStoreUpdateStatus(t *testing.T) {
	ctx := context.Background()
	store := NewMessageStore()

	m := newMsg("a")
	require.NoError(t, store.Create(ctx, m))

	require.NoError(t, store.UpdateStatus(ctx, m.ID, model.MessageStatusSent))

	got, err := store.Get(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, model.MessageStatusSent, got.Status)
	assert.NotNil(t, got.SentAt)
	// Everything else untouched.
	assert.Equal(t, "a", got.RecipientName)
	assert.Equal(t, m.DueAt.Unix(), got.DueAt.Unix())
}

func TestMessageStoreUpdateStatusMissingIDIsNoop(t *testing.T) {
	ctx := context.Background()
	store := NewMessageStore()

	require.NoError(t, store.Create(ctx, newMsg("a")))
	assert.NoError(t, store.UpdateStatus(ctx, uuid.New(), model.MessageStatusSent))

	got, err := store.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.MessageStatusScheduled, got[0].Status)
}

func TestMessageStoreReplaceAll(t *testing.T) {
	ctx := context.Background()
	store := NewMessageStore()

	require.NoError(t, store.Create(ctx, newMsg("a")))
	require.NoError(t, store.Create(ctx, newMsg("b")))

	keep := newMsg("c")
	require.NoError(t, store.ReplaceAll(ctx, []*model.Message{keep}))

	got, err := store.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, keep.ID, got[0].ID)
}

func TestMessageStoreDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMessageStore()

	m := newMsg("a")
	require.NoError(t, store.Create(ctx, m))
	require.NoError(t, store.Delete(ctx, m.ID))

	got, err := store.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)

	assert.Error(t, store.Delete(ctx, m.ID))
}
