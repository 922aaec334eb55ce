package session

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pos_system/internal/domain"
)

func newTestStore(t *testing.T) (*Store, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewStore(rdb, DefaultTimeout), rdb
}

// writeRecord plants a session record directly so tests can control the
// last-activity timestamp.
func writeRecord(t *testing.T, rdb *redis.Client, sess *Session) {
	t.Helper()
	b, err := json.Marshal(sess)
	require.NoError(t, err)
	require.NoError(t, rdb.Set(context.Background(), sessionKey(sess.ID), b, 2*DefaultTimeout).Err())
}

func TestCreateAndGet(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	user := &domain.User{ID: 7, Username: "alice", Role: domain.RoleAdmin}
	sess, err := store.Create(ctx, user)
	require.NoError(t, err)
	assert.Len(t, sess.ID, 64, "session id should be 32 random bytes hex encoded")

	got, err := store.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(7), got.UserID)
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, domain.RoleAdmin, got.Role)
	assert.False(t, got.LoginTime.IsZero())
	assert.False(t, got.LastActivity.IsZero())
}

func TestGetUnknownSession(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Get(context.Background(), "no-such-session")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSecondLoginInvalidatesFirstSession(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	user := &domain.User{ID: 1, Username: "bob", Role: domain.RoleCashier}

	first, err := store.Create(ctx, user)
	require.NoError(t, err)
	second, err := store.Create(ctx, user)
	require.NoError(t, err)
	require.NotEqual(t, first.ID, second.ID)

	// The first identifier must no longer resolve
	_, err = store.Get(ctx, first.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// The second stays valid
	_, err = store.Get(ctx, second.ID)
	assert.NoError(t, err)
}

func TestExpiredSessionIsReportedExpiredThenGone(t *testing.T) {
	store, rdb := newTestStore(t)
	ctx := context.Background()

	// One second past the 8 hour inactivity window
	stale := time.Now().Add(-DefaultTimeout - time.Second)
	sess := &Session{
		ID:           "feedfacefeedface",
		UserID:       3,
		Username:     "carol",
		Role:         domain.RoleCashier,
		LoginTime:    stale,
		LastActivity: stale,
	}
	writeRecord(t, rdb, sess)

	// First read reports expiry, never plain absence
	_, err := store.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, ErrExpired)

	// The expired record is destroyed, so a second read sees nothing
	_, err = store.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionJustInsideWindowIsValid(t *testing.T) {
	store, rdb := newTestStore(t)

	recent := time.Now().Add(-DefaultTimeout + time.Minute)
	sess := &Session{
		ID:           "cafebabecafebabe",
		UserID:       4,
		Username:     "dave",
		Role:         domain.RoleAdmin,
		LoginTime:    recent,
		LastActivity: recent,
	}
	writeRecord(t, rdb, sess)

	got, err := store.Get(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "dave", got.Username)
}

func TestTouchSlidesTheExpiryWindow(t *testing.T) {
	store, rdb := newTestStore(t)
	ctx := context.Background()

	// Seven hours idle: still valid, but close to the edge
	old := time.Now().Add(-7 * time.Hour)
	sess := &Session{
		ID:           "deadbeefdeadbeef",
		UserID:       5,
		Username:     "erin",
		Role:         domain.RoleSuperAdmin,
		LoginTime:    old,
		LastActivity: old,
	}
	writeRecord(t, rdb, sess)

	got, err := store.Get(ctx, sess.ID)
	require.NoError(t, err)
	require.NoError(t, store.Touch(ctx, got))

	refreshed, err := store.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), refreshed.LastActivity, 5*time.Second)
	// Login time is untouched; only activity slides
	assert.WithinDuration(t, old, refreshed.LoginTime, 5*time.Second)
}

func TestDeleteIsIdempotent(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	sess, err := store.Create(ctx, &domain.User{ID: 6, Username: "frank", Role: domain.RoleCashier})
	require.NoError(t, err)

	assert.NoError(t, store.Delete(ctx, sess.ID))
	assert.NoError(t, store.Delete(ctx, sess.ID), "deleting an already deleted session is not an error")
	assert.NoError(t, store.Delete(ctx, "never-existed"))

	_, err = store.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRemaining(t *testing.T) {
	fresh := &Session{LastActivity: time.Now()}
	assert.InDelta(t, DefaultTimeout.Seconds(), fresh.Remaining(DefaultTimeout).Seconds(), 5)

	stale := &Session{LastActivity: time.Now().Add(-DefaultTimeout - time.Hour)}
	assert.Equal(t, time.Duration(0), stale.Remaining(DefaultTimeout), "remaining time clamps at zero")
}
