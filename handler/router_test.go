package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Dibbotcf/Legacyscript/service"
	"github.com/Dibbotcf/Legacyscript/store"
)

func TestRouterAccessControl(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		method     string
		path       string
		credential string
		expected   int
	}{
		{"GET", "/api/submissions", "", http.StatusUnauthorized},
		{"GET", "/api/submissions", testPublicKey, http.StatusUnauthorized},
		{"GET", "/api/submissions", srv.token, http.StatusOK},
		{"DELETE", "/api/submissions/1", testPublicKey, http.StatusUnauthorized},
		{"GET", "/api/invoices", testPublicKey, http.StatusUnauthorized},
		{"GET", "/api/invoices", srv.token, http.StatusOK},
		{"PUT", "/api/invoices/inv-1", testPublicKey, http.StatusUnauthorized},
		{"DELETE", "/api/invoices/inv-1", testPublicKey, http.StatusUnauthorized},
		{"POST", "/api/invoices/inv-1/share", testPublicKey, http.StatusUnauthorized},
		{"GET", "/api/invoices/shared/INV-1", "", http.StatusUnauthorized},
		{"GET", "/api/invoices/shared/INV-1", testPublicKey, http.StatusNotFound},
		{"GET", "/api/invoices/shared/INV-1", srv.token, http.StatusNotFound},
		{"GET", "/api/auth/me", testPublicKey, http.StatusUnauthorized},
		{"GET", "/api/health", "", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := srv.do(t, tt.method, tt.path, tt.credential, nil)
			if w.Code != tt.expected {
				t.Errorf("Expected status %d, got %d", tt.expected, w.Code)
			}
		})
	}
}

func TestRouterPreflight(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/submissions", nil)
	req.Header.Set("Origin", "https://legacyscript.example")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()

	srv.router.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("Expected status 204, got %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("Expected open CORS origin")
	}
}

func TestRouterResponseHeaders(t *testing.T) {
	srv := newTestServer(t)

	w := srv.admin(t, "GET", "/api/invoices", nil)

	if w.Header().Get("X-Request-ID") == "" {
		t.Error("Expected X-Request-ID header")
	}
	if w.Header().Get("Cache-Control") == "" {
		t.Error("Expected no-cache headers on API responses")
	}
}

func TestRouterRateLimit(t *testing.T) {
	cfg := testConfig(t)
	cfg.RateLimit.Requests = 2
	router := NewRouter(cfg, service.New(store.NewMemory()))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("GET", "/api/health", nil)
		req.RemoteAddr = "192.168.1.10:4000"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Errorf("Expected 200, 200, 429; got %v", codes)
	}
}

func TestRouterCustomBasePath(t *testing.T) {
	cfg := testConfig(t)
	cfg.Server.BasePath = "/make-server"
	router := NewRouter(cfg, service.New(store.NewMemory()))

	req := httptest.NewRequest("GET", "/make-server/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
}

// An admin session exercises the whole back-office lifecycle.
func TestBackOfficeScenario(t *testing.T) {
	srv := newTestServer(t)

	w := srv.public(t, "POST", "/api/submissions", map[string]string{
		"name": "Rafi", "email": "rafi@example.com", "phone": "+8801700000000", "message": "Quote please",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Submit: expected 200, got %d", w.Code)
	}

	inv := sampleInvoice("inv-rafi")
	inv.ClientName = "Rafi"
	if w := srv.admin(t, "POST", "/api/invoices", inv); w.Code != http.StatusOK {
		t.Fatalf("Create invoice: expected 200, got %d", w.Code)
	}

	w = srv.admin(t, "POST", "/api/invoices/inv-rafi/share", nil)
	var shared ShareResponse
	decodeData(t, w, &shared)

	inv.Status = "sent"
	inv.ShareID = shared.ShareID
	if w := srv.admin(t, "PUT", "/api/invoices/inv-rafi", inv); w.Code != http.StatusOK {
		t.Fatalf("Update invoice: expected 200, got %d", w.Code)
	}

	if w := srv.public(t, "GET", "/api/invoices/shared/"+shared.ShareID, nil); w.Code != http.StatusOK {
		t.Fatalf("Shared lookup: expected 200, got %d", w.Code)
	}

	if w := srv.admin(t, "DELETE", "/api/invoices/inv-rafi", nil); w.Code != http.StatusOK {
		t.Fatalf("Delete invoice: expected 200, got %d", w.Code)
	}

	if w := srv.public(t, "GET", "/api/invoices/shared/"+shared.ShareID, nil); w.Code != http.StatusNotFound {
		t.Errorf("Expected deleted invoice's link to stop resolving, got %d", w.Code)
	}
}
