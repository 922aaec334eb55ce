package session

import (
	"context"       // Context for Redis operations
	"crypto/rand"   // Unguessable session identifiers
	"encoding/hex"  // Hex encoding for session identifiers
	"encoding/json" // JSON encoding of session records
	"errors"        // Sentinel errors
	"strconv"       // User id to key conversion
	"time"          // Timestamps and timeouts

	"github.com/redis/go-redis/v9" // Redis client

	"pos_system/internal/domain" // Domain models
)

// DefaultTimeout is the sliding inactivity window after which a session expires
const DefaultTimeout = 8 * time.Hour

// CookieName is the browser cookie carrying the session identifier
const CookieName = "pos_session"

// Store errors. Expiry and absence are distinct so callers can report
// SESSION_EXPIRED and NOT_AUTHENTICATED separately.
var (
	ErrNotFound = errors.New("session not found")
	ErrExpired  = errors.New("session expired")
)

// Session is the server-side session record. Role is snapshotted at login
// and stays authoritative until the user logs in again.
type Session struct {
	ID           string      `json:"-"`             // Opaque identifier, kept out of the stored record
	UserID       uint        `json:"user_id"`       // Owning user
	Username     string      `json:"username"`      // Username at login time
	Role         domain.Role `json:"role"`          // Role snapshot taken at login
	LoginTime    time.Time   `json:"login_time"`    // When the session was created
	LastActivity time.Time   `json:"last_activity"` // Last authenticated request
}

// Remaining returns the time left before the session expires, clamped at zero
func (s *Session) Remaining(timeout time.Duration) time.Duration {
	rem := timeout - time.Since(s.LastActivity)
	if rem < 0 {
		return 0
	}
	return rem
}

// Store keeps session records in Redis. Expiry is computed from the record's
// last-activity timestamp; the Redis TTL is only a garbage-collection backstop,
// set to twice the timeout so an expired record is still observable as expired
// rather than silently absent.
type Store struct {
	rdb     *redis.Client // Redis connection
	timeout time.Duration // Sliding inactivity window
}

// NewStore creates a session store with the given inactivity timeout
func NewStore(rdb *redis.Client, timeout time.Duration) *Store {
	if timeout <= 0 {
		timeout = DefaultTimeout // Fall back to the 8 hour default
	}
	return &Store{rdb: rdb, timeout: timeout}
}

// Timeout returns the store's sliding inactivity window
func (s *Store) Timeout() time.Duration {
	return s.timeout
}

// sessionKey is the Redis key holding a session record
func sessionKey(id string) string {
	return "pos:session:" + id
}

// userKey points at the user's current session, used for overwrite-on-login
func userKey(userID uint) string {
	return "pos:session:user:" + strconv.Itoa(int(userID))
}

// newSessionID returns 32 random bytes, hex encoded
func newSessionID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// Create opens a new session for a verified user. Any session the user already
// holds is destroyed first, so a second login invalidates the first session's
// identifier.
func (s *Store) Create(ctx context.Context, user *domain.User) (*Session, error) {
	id, err := newSessionID()
	if err != nil {
		return nil, err
	}
	// A fresh login replaces the user's previous session
	if old, err := s.rdb.Get(ctx, userKey(user.ID)).Result(); err == nil && old != "" {
		_ = s.rdb.Del(ctx, sessionKey(old)).Err()
	}
	now := time.Now()
	sess := &Session{
		ID:           id,            // New opaque identifier
		UserID:       user.ID,       // Owning user
		Username:     user.Username, // Username at login
		Role:         user.Role,     // Role snapshot
		LoginTime:    now,           // Login instant
		LastActivity: now,           // Counts as activity
	}
	b, err := json.Marshal(sess)
	if err != nil {
		return nil, err
	}
	ttl := 2 * s.timeout // GC backstop; real expiry is checked against last activity
	if err := s.rdb.Set(ctx, sessionKey(id), b, ttl).Err(); err != nil {
		return nil, err
	}
	if err := s.rdb.Set(ctx, userKey(user.ID), id, ttl).Err(); err != nil {
		return nil, err
	}
	return sess, nil
}

// Get loads a session by identifier. Returns ErrExpired when the record exists
// but its last activity is older than the timeout (the record is deleted on the
// spot), and ErrNotFound when no record exists.
func (s *Store) Get(ctx context.Context, id string) (*Session, error) {
	val, err := s.rdb.Get(ctx, sessionKey(id)).Result()
	if err == redis.Nil {
		return nil, ErrNotFound // No such session
	} else if err != nil {
		return nil, err // Redis failure
	}
	var sess Session
	if err := json.Unmarshal([]byte(val), &sess); err != nil {
		return nil, err
	}
	sess.ID = id
	// Sliding expiry: inactivity beyond the timeout invalidates the session
	if time.Since(sess.LastActivity) > s.timeout {
		_ = s.Delete(ctx, id)
		return nil, ErrExpired
	}
	return &sess, nil
}

// Touch refreshes the session's last-activity timestamp and TTL backstop.
// Called on every successful authenticated request.
func (s *Store) Touch(ctx context.Context, sess *Session) error {
	sess.LastActivity = time.Now()
	b, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	ttl := 2 * s.timeout
	if err := s.rdb.Set(ctx, sessionKey(sess.ID), b, ttl).Err(); err != nil {
		return err
	}
	return s.rdb.Expire(ctx, userKey(sess.UserID), ttl).Err()
}

// Delete destroys a session. Deleting a session that does not exist is not an
// error, so logout is idempotent.
func (s *Store) Delete(ctx context.Context, id string) error {
	if val, err := s.rdb.Get(ctx, sessionKey(id)).Result(); err == nil {
		var sess Session
		if json.Unmarshal([]byte(val), &sess) == nil {
			// Drop the user pointer only if it still points at this session
			if cur, err := s.rdb.Get(ctx, userKey(sess.UserID)).Result(); err == nil && cur == id {
				_ = s.rdb.Del(ctx, userKey(sess.UserID)).Err()
			}
		}
	}
	return s.rdb.Del(ctx, sessionKey(id)).Err()
}
