package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-todo-list/internal/logger"
	"github.com/MKhiriev/go-todo-list/internal/service"
	"github.com/MKhiriev/go-todo-list/models"
)

// ---- Stub services ----

type stubAuthService struct {
	signUpFn       func(ctx context.Context, request models.SignUpRequest) (models.User, models.Token, error)
	signInFn       func(ctx context.Context, request models.SignInRequest) (models.User, models.Token, error)
	meFn           func(ctx context.Context, userID string) (models.User, error)
	authenticateFn func(ctx context.Context, tokenString string) (models.User, error)
}

func (s *stubAuthService) SignUp(ctx context.Context, request models.SignUpRequest) (models.User, models.Token, error) {
	return s.signUpFn(ctx, request)
}

func (s *stubAuthService) SignIn(ctx context.Context, request models.SignInRequest) (models.User, models.Token, error) {
	return s.signInFn(ctx, request)
}

func (s *stubAuthService) Me(ctx context.Context, userID string) (models.User, error) {
	if s.meFn == nil {
		return models.User{UserID: userID, Name: "John", Email: "john@example.com"}, nil
	}
	return s.meFn(ctx, userID)
}

func (s *stubAuthService) CreateToken(context.Context, models.User) (models.Token, error) {
	return models.Token{}, nil
}

func (s *stubAuthService) ParseToken(context.Context, string) (models.Token, error) {
	return models.Token{}, nil
}

// Authenticate accepts "good-token" for user-1 unless overridden.
func (s *stubAuthService) Authenticate(ctx context.Context, tokenString string) (models.User, error) {
	if s.authenticateFn != nil {
		return s.authenticateFn(ctx, tokenString)
	}
	if tokenString == "good-token" {
		return models.User{UserID: "user-1", Name: "John", Email: "john@example.com"}, nil
	}
	return models.User{}, service.ErrTokenIsInvalid
}

type stubResetService struct {
	requestResetFn  func(ctx context.Context, request models.ForgotPasswordRequest) error
	resetPasswordFn func(ctx context.Context, request models.ResetPasswordRequest) (models.Token, error)
}

func (s *stubResetService) RequestReset(ctx context.Context, request models.ForgotPasswordRequest) error {
	return s.requestResetFn(ctx, request)
}

func (s *stubResetService) ResetPassword(ctx context.Context, request models.ResetPasswordRequest) (models.Token, error) {
	return s.resetPasswordFn(ctx, request)
}

type stubTodoService struct {
	listFn   func(ctx context.Context, userID string) ([]models.Todo, error)
	getFn    func(ctx context.Context, userID, todoID string) (models.Todo, error)
	createFn func(ctx context.Context, userID string, request models.CreateTodoRequest) (models.Todo, error)
	updateFn func(ctx context.Context, userID, todoID string, update models.TodoUpdate) (models.Todo, error)
	toggleFn func(ctx context.Context, userID, todoID string) (models.Todo, error)
	deleteFn func(ctx context.Context, userID, todoID string) error
}

func (s *stubTodoService) ListTodos(ctx context.Context, userID string) ([]models.Todo, error) {
	return s.listFn(ctx, userID)
}

func (s *stubTodoService) GetTodo(ctx context.Context, userID, todoID string) (models.Todo, error) {
	return s.getFn(ctx, userID, todoID)
}

func (s *stubTodoService) CreateTodo(ctx context.Context, userID string, request models.CreateTodoRequest) (models.Todo, error) {
	return s.createFn(ctx, userID, request)
}

func (s *stubTodoService) UpdateTodo(ctx context.Context, userID, todoID string, update models.TodoUpdate) (models.Todo, error) {
	return s.updateFn(ctx, userID, todoID, update)
}

func (s *stubTodoService) ToggleTodo(ctx context.Context, userID, todoID string) (models.Todo, error) {
	return s.toggleFn(ctx, userID, todoID)
}

func (s *stubTodoService) DeleteTodo(ctx context.Context, userID, todoID string) error {
	return s.deleteFn(ctx, userID, todoID)
}

// recordingErrorLog keeps every recorded entry.
type recordingErrorLog struct {
	mu      sync.Mutex
	records []models.ErrorLog
}

func (s *recordingErrorLog) Record(_ context.Context, errorLog models.ErrorLog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, errorLog)
}

func (s *recordingErrorLog) all() []models.ErrorLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.ErrorLog(nil), s.records...)
}

type stubAppInfoService struct{}

func (stubAppInfoService) GetAppBuildInfo(context.Context) models.AppBuildInfo {
	return models.NewAppBuildInfo("v1.0.0", "2026-03-01", "abc123")
}

// ---- Helpers ----

type testEnv struct {
	auth     *stubAuthService
	reset    *stubResetService
	todos    *stubTodoService
	errorLog *recordingErrorLog
	handler  *Handler
	router   http.Handler
}

func newTestEnv(t *testing.T, opts Options) *testEnv {
	t.Helper()

	env := &testEnv{
		auth:     &stubAuthService{},
		reset:    &stubResetService{},
		todos:    &stubTodoService{},
		errorLog: &recordingErrorLog{},
	}
	env.handler = NewHandler(&service.Services{
		AuthService:          env.auth,
		PasswordResetService: env.reset,
		TodoService:          env.todos,
		ErrorLogService:      env.errorLog,
		AppInfoService:       stubAppInfoService{},
	}, opts, logger.Nop())
	env.router = env.handler.Init()

	return env
}

func (e *testEnv) do(t *testing.T, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) doAuthed(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	return e.do(t, method, path, body, "Authorization", "Bearer good-token")
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}
