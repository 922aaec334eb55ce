package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"pos_system/internal/domain"
	"pos_system/internal/session"
)

// testEnv is a full router over an in-memory sqlite database and a miniredis
// instance, so handler tests run the exact route wiring production uses.
type testEnv struct {
	t     *testing.T
	db    *gorm.DB
	rdb   *redis.Client
	store *session.Store
	r     *gin.Engine
}

func newTestEnv(t *testing.T) *testEnv {
	return newTestEnvWithTimeout(t, session.DefaultTimeout)
}

func newTestEnvWithTimeout(t *testing.T, timeout time.Duration) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	// A pooled :memory: sqlite hands each connection its own empty database;
	// pin the pool to one connection so every query sees the same schema
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Expense{}, &domain.MenuItem{}, &domain.Order{}, &domain.OrderItem{}))

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	store := session.NewStore(rdb, timeout)
	return &testEnv{t: t, db: db, rdb: rdb, store: store, r: NewRouter(db, rdb, store, false)}
}

// createUser inserts a user directly, hashing with MinCost to keep tests fast
func (e *testEnv) createUser(username, password string, role domain.Role) *domain.User {
	e.t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(e.t, err)
	user := &domain.User{Username: username, Password: string(hash), Role: role}
	require.NoError(e.t, e.db.Create(user).Error)
	return user
}

// do performs a request against the router, optionally with a JSON body and a
// session cookie
func (e *testEnv) do(method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	e.t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(e.t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	e.r.ServeHTTP(w, req)
	return w
}

// login posts credentials and returns the response plus the session cookie,
// if one was set
func (e *testEnv) login(username, password string) (*httptest.ResponseRecorder, *http.Cookie) {
	e.t.Helper()
	w := e.do(http.MethodPost, "/auth/login", gin.H{"username": username, "password": password}, nil)
	for _, ck := range w.Result().Cookies() {
		if ck.Name == session.CookieName && ck.Value != "" {
			return w, ck
		}
	}
	return w, nil
}

// mustLogin fails the test unless login succeeds
func (e *testEnv) mustLogin(username, password string) *http.Cookie {
	e.t.Helper()
	w, ck := e.login(username, password)
	require.Equal(e.t, http.StatusOK, w.Code, "login failed: %s", w.Body.String())
	require.NotNil(e.t, ck, "no session cookie set")
	return ck
}

// parseBody unmarshals a JSON response body into a generic map
func parseBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), "body: %s", w.Body.String())
	return body
}
