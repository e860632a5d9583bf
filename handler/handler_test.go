package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/Dibbotcf/Legacyscript/config"
	"github.com/Dibbotcf/Legacyscript/middleware"
	"github.com/Dibbotcf/Legacyscript/service"
	"github.com/Dibbotcf/Legacyscript/store"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const (
	testPublicKey = "public-anon-key"
	testAdmin     = "LegacyED"
	testPassword  = "EDScript"
)

// envelope mirrors the {success, data, error} wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

type testServer struct {
	router *gin.Engine
	cfg    *config.Config
	store  *store.Memory
	token  string
}

// tickingClock advances one millisecond per call so generated ids differ.
func tickingClock(start time.Time) func() time.Time {
	var mu sync.Mutex
	current := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		current = current.Add(time.Millisecond)
		return current
	}
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	return &config.Config{
		Server:    config.ServerConfig{BasePath: "/api"},
		Auth:      config.AuthConfig{PublicKey: testPublicKey, JWTSecret: "test-secret", TokenExpireHours: 1},
		Share:     config.ShareConfig{FrontendOrigin: "https://legacyscript.example"},
		RateLimit: config.RateLimitConfig{Requests: 1000, WindowSeconds: 60},
		Users:     []config.User{{Username: testAdmin, PasswordHash: string(hash)}},
	}
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	cfg := testConfig(t)
	mem := store.NewMemory()
	svc := service.New(mem, service.WithClock(tickingClock(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))))

	token, _, err := middleware.GenerateToken(testAdmin, &cfg.Auth)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	return &testServer{
		router: NewRouter(cfg, svc),
		cfg:    cfg,
		store:  mem,
		token:  token,
	}
}

// do sends a request with the given bearer credential ("" for none).
func (s *testServer) do(t *testing.T, method, path, credential string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("Failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if credential != "" {
		req.Header.Set("Authorization", "Bearer "+credential)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) admin(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	return s.do(t, method, path, s.token, body)
}

func (s *testServer) public(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	return s.do(t, method, path, testPublicKey, body)
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("Failed to parse response %q: %v", w.Body.String(), err)
	}
	return env
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	env := decodeEnvelope(t, w)
	if !env.Success {
		t.Fatalf("Expected success envelope, got %s", w.Body.String())
	}
	if err := json.Unmarshal(env.Data, v); err != nil {
		t.Fatalf("Failed to parse data %s: %v", env.Data, err)
	}
}

var errBoom = errors.New("connection refused")

type brokenStore struct{}

func (brokenStore) Get(context.Context, string) ([]byte, error)           { return nil, errBoom }
func (brokenStore) Set(context.Context, string, []byte) error             { return errBoom }
func (brokenStore) Delete(context.Context, string) error                  { return errBoom }
func (brokenStore) GetByPrefix(context.Context, string) ([][]byte, error) { return nil, errBoom }
func (brokenStore) Close() error                                          { return nil }

func newBrokenServer(t *testing.T) *testServer {
	t.Helper()
	cfg := testConfig(t)
	token, _, err := middleware.GenerateToken(testAdmin, &cfg.Auth)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}
	return &testServer{
		router: NewRouter(cfg, service.New(brokenStore{})),
		cfg:    cfg,
		token:  token,
	}
}
