package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-todo-list/internal/config"
	"github.com/MKhiriev/go-todo-list/internal/logger"
	"github.com/MKhiriev/go-todo-list/internal/service"
	"github.com/MKhiriev/go-todo-list/internal/store"
	"github.com/MKhiriev/go-todo-list/internal/utils"
	"github.com/MKhiriev/go-todo-list/models"
)

// outbox keeps every mail the reset flow sends.
type outbox struct {
	mu    sync.Mutex
	mails []models.Mail
}

func (o *outbox) Send(_ context.Context, mail models.Mail) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.mails = append(o.mails, mail)
	return nil
}

func (o *outbox) lastResetSecret(t *testing.T) string {
	t.Helper()
	o.mu.Lock()
	defer o.mu.Unlock()

	require.NotEmpty(t, o.mails)
	_, rest, ok := strings.Cut(o.mails[len(o.mails)-1].Text, "/reset-password/")
	require.True(t, ok)
	secret, _, _ := strings.Cut(rest, "\n")
	return secret
}

type liveEnv struct {
	router http.Handler
	outbox *outbox
}

// newLiveEnv wires the real services over an in-memory sqlite database.
func newLiveEnv(t *testing.T) *liveEnv {
	t.Helper()

	ctx := context.Background()
	db, err := store.NewConnectSQLite(ctx, config.DB{
		Driver: config.DriverSQLite,
		DSN:    fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()),
	}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.Migrate(ctx))

	cfg := config.StructuredConfig{
		App: config.App{
			Env:           config.EnvDevelopment,
			TokenSignKey:  "live-sign-key",
			TokenIssuer:   "go-todo-list",
			TokenDuration: 7 * 24 * time.Hour,
			ResetTokenTTL: 10 * time.Minute,
			FrontendURL:   "http://localhost:5173",
		},
	}

	mail := &outbox{}
	services := service.NewServices(service.Dependencies{
		Storages:    store.NewStorages(db, logger.Nop()),
		DB:          db,
		MailAdapter: mail,
		Hasher:      utils.NewPasswordHasher(utils.Argon2Params{Time: 1, Memory: 1024, Threads: 1, KeyLen: 32, SaltLen: 16}),
		BuildInfo:   models.NewAppBuildInfo("test", "", ""),
	}, cfg, logger.Nop())

	return &liveEnv{
		router: NewHandler(services, Options{}, logger.Nop()).Init(),
		outbox: mail,
	}
}

func (e *liveEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var raw []byte
	if body != nil {
		var err error
		raw, err = json.Marshal(body)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *liveEnv) signUp(t *testing.T, name, email, password string) string {
	t.Helper()

	rec := e.do(t, http.MethodPost, "/api/auth/signup", "", map[string]string{"name": name, "email": email, "password": password})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	resp := decode[models.AuthResponse](t, rec)
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestLive_TodoScenario(t *testing.T) {
	env := newLiveEnv(t)
	token := env.signUp(t, "Ada", "ada@x.com", "secret123")

	rec := env.do(t, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ada@x.com", decode[models.UserResponse](t, rec).User.Email)

	rec = env.do(t, http.MethodPost, "/api/todos", token, map[string]string{"title": "Buy milk"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[models.TodoResponse](t, rec).Todo
	assert.Equal(t, "Buy milk", created.Title)
	assert.False(t, created.Completed)
	require.NotEmpty(t, created.TodoID)

	todoPath := "/api/todos/" + created.TodoID

	rec = env.do(t, http.MethodPatch, todoPath+"/toggle", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[models.TodoResponse](t, rec).Todo.Completed)

	rec = env.do(t, http.MethodPatch, todoPath+"/toggle", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decode[models.TodoResponse](t, rec).Todo.Completed)

	rec = env.do(t, http.MethodGet, todoPath, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[models.TodoResponse](t, rec).Todo
	assert.Equal(t, created.Title, got.Title)
	assert.Equal(t, created.UserID, got.UserID)

	rec = env.do(t, http.MethodGet, "/api/todos", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, decode[models.TodosResponse](t, rec).Count)

	rec = env.do(t, http.MethodDelete, todoPath, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, todoPath, token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Todo not found", decode[models.MessageResponse](t, rec).Message)
}

func TestLive_OtherUsersTodoIsUntouched(t *testing.T) {
	env := newLiveEnv(t)
	owner := env.signUp(t, "Ada", "ada@x.com", "secret123")
	intruder := env.signUp(t, "Bob", "bob@x.com", "secret456")

	rec := env.do(t, http.MethodPost, "/api/todos", owner, map[string]string{"title": "Private", "description": "mine"})
	require.Equal(t, http.StatusCreated, rec.Code)
	todoPath := "/api/todos/" + decode[models.TodoResponse](t, rec).Todo.TodoID

	for _, req := range []struct{ method, path string }{
		{http.MethodGet, todoPath},
		{http.MethodPut, todoPath},
		{http.MethodPatch, todoPath + "/toggle"},
		{http.MethodDelete, todoPath},
	} {
		rec = env.do(t, req.method, req.path, intruder, map[string]string{"title": "stolen"})
		assert.Equal(t, http.StatusUnauthorized, rec.Code, req.method)
		assert.NotContains(t, rec.Body.String(), "Private")
	}

	rec = env.do(t, http.MethodGet, todoPath, owner, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	todo := decode[models.TodoResponse](t, rec).Todo
	assert.Equal(t, "Private", todo.Title)
	assert.False(t, todo.Completed)
}

func TestLive_PasswordReset(t *testing.T) {
	env := newLiveEnv(t)
	env.signUp(t, "Ada", "ada@x.com", "secret123")

	rec := env.do(t, http.MethodPost, "/api/auth/forgot-password", "", map[string]string{"email": "ada@x.com"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	secret := env.outbox.lastResetSecret(t)

	rec = env.do(t, http.MethodPut, "/api/auth/reset-password/"+secret, "", map[string]string{"password": "newpass1"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.NotEmpty(t, decode[models.AuthResponse](t, rec).Token)

	rec = env.do(t, http.MethodPut, "/api/auth/reset-password/"+secret, "", map[string]string{"password": "newpass2"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid or expired token", decode[models.MessageResponse](t, rec).Message)

	rec = env.do(t, http.MethodPost, "/api/auth/signin", "", map[string]string{"email": "ada@x.com", "password": "newpass1"})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/auth/signin", "", map[string]string{"email": "ada@x.com", "password": "secret123"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
