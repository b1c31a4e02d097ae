package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/portfolio-backend/auth"
	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/rpupo63/portfolio-backend/services"
	"github.com/stretchr/testify/require"
)

const (
	testAdminEmail    = "admin@example.com"
	testAdminPassword = "correct horse"
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []services.Message
}

func (m *recordingMailer) Send(_ context.Context, msg services.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return nil
}

var sixDigits = regexp.MustCompile(`\b\d{6}\b`)

func (m *recordingMailer) lastCode(t *testing.T) string {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	require.NotEmpty(t, m.sent)
	return sixDigits.FindString(m.sent[len(m.sent)-1].Text)
}

type recordingNotifier struct {
	mu       sync.Mutex
	received []models.Feedback
}

func (n *recordingNotifier) NotifyFeedback(_ context.Context, f models.Feedback) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.received = append(n.received, f)
	return nil
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.received)
}

type testEnv struct {
	t        *testing.T
	db       database.Database
	clock    *testClock
	mailer   *recordingMailer
	notifier *recordingNotifier
	tokens   *auth.TokenIssuer
	router   *chi.Mux
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	gdb, err := database.OpenSQLite(":memory:", 1)
	require.NoError(t, err)
	db := database.New(gdb)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.Migrate(ctx))

	hash, err := auth.HashPassword(testAdminPassword)
	require.NoError(t, err)
	require.NoError(t, db.AdminCredentialsRepo().Add(ctx, &models.AdminCredentials{
		Email:         testAdminEmail,
		EmailPassword: "app-password",
		PasswordHash:  hash,
	}))

	clock := &testClock{now: time.Now()}
	store, err := auth.NewStore(16, 5*time.Minute, auth.WithClock(clock.Now))
	require.NoError(t, err)
	tokens := auth.NewTokenIssuer("test-secret", 24*time.Hour)
	mailer := &recordingMailer{}
	notifier := &recordingNotifier{}

	router := newRouter(Dependencies{
		Database: db,
		Auth:     auth.NewService(db, store, tokens, mailer),
		Notifier: notifier,
	}, withAcceptedOrigins([]string{"https://portfolio.example.com"}))

	return &testEnv{
		t:        t,
		db:       db,
		clock:    clock,
		mailer:   mailer,
		notifier: notifier,
		tokens:   tokens,
		router:   router,
	}
}

func (e *testEnv) adminToken() string {
	e.t.Helper()
	token, _, err := e.tokens.Issue(testAdminEmail, "admin-id")
	require.NoError(e.t, err)
	return token
}

// do sends a request through the router. A non-empty token is sent as a bearer token.
func (e *testEnv) do(method, path string, body any, token string) *httptest.ResponseRecorder {
	e.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			require.NoError(e.t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func validProject() map[string]string {
	return map[string]string{
		"title":                "Portfolio",
		"description":          "Personal site",
		"detailedDescription":  "A longer description",
		"image":                "https://img.example.com/p.png",
		"category":             "web",
		"programmingLanguages": "Go,JavaScript",
		"skills":               "APIs,React",
		"projectLink":          "https://github.com/example/portfolio",
	}
}

func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, status int) {
	t.Helper()
	require.Equal(t, status, rec.Code, rec.Body.String())
}
