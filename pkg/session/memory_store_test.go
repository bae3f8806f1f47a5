package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formintake/pkg/session"
)

func TestMemoryStore_CRUD(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := session.NewMemoryStore(0)
	defer store.Close()

	s := session.NewSession("token-1", time.Hour)
	s.Set("k", "v")
	require.NoError(t, store.Create(ctx, s))

	got, err := store.Get(ctx, "token-1")
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.ID)

	// returned sessions are copies
	got.Set("k", "changed")
	again, err := store.Get(ctx, "token-1")
	require.NoError(t, err)
	v, _ := again.GetString("k")
	assert.Equal(t, "v", v)

	require.NoError(t, store.Update(ctx, got))
	again, err = store.Get(ctx, "token-1")
	require.NoError(t, err)
	v, _ = again.GetString("k")
	assert.Equal(t, "changed", v)

	at := time.Now().Add(time.Minute)
	require.NoError(t, store.UpdateActivity(ctx, "token-1", at))
	again, err = store.Get(ctx, "token-1")
	require.NoError(t, err)
	assert.True(t, at.Equal(again.LastActivityAt))

	require.NoError(t, store.Delete(ctx, "token-1"))
	_, err = store.Get(ctx, "token-1")
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}

func TestMemoryStore_Errors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := session.NewMemoryStore(0)

	assert.ErrorIs(t, store.Create(ctx, nil), session.ErrInvalidSession)
	assert.ErrorIs(t, store.Create(ctx, &session.Session{}), session.ErrInvalidSession)
	assert.ErrorIs(t, store.Update(ctx, session.NewSession("nope", time.Hour)), session.ErrSessionNotFound)
	assert.ErrorIs(t, store.UpdateActivity(ctx, "nope", time.Now()), session.ErrSessionNotFound)
}

func TestMemoryStore_Expiry(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := session.NewMemoryStore(0)

	expired := session.NewSession("old", time.Hour)
	expired.ExpiresAt = time.Now().Add(-time.Second)
	require.NoError(t, store.Create(ctx, expired))
	require.NoError(t, store.Create(ctx, session.NewSession("fresh", time.Hour)))

	_, err := store.Get(ctx, "old")
	assert.ErrorIs(t, err, session.ErrSessionExpired)

	expired2 := session.NewSession("old2", time.Hour)
	expired2.ExpiresAt = time.Now().Add(-time.Second)
	require.NoError(t, store.Create(ctx, expired2))
	require.NoError(t, store.DeleteExpired(ctx))
	assert.Equal(t, 1, store.Len())
}

func TestMemoryStore_CleanupLoop(t *testing.T) {
	t.Parallel()

	store := session.NewMemoryStore(10 * time.Millisecond)
	defer store.Close()

	s := session.NewSession("short", time.Hour)
	s.ExpiresAt = time.Now().Add(-time.Second)
	require.NoError(t, store.Create(context.Background(), s))

	assert.Eventually(t, func() bool { return store.Len() == 0 }, time.Second, 10*time.Millisecond)
	assert.NoError(t, store.Close())
}
