package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Dibbotcf/Legacyscript/config"
	"github.com/Dibbotcf/Legacyscript/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testAuthConfig() *config.AuthConfig {
	return &config.AuthConfig{
		PublicKey:        "public-anon-key",
		JWTSecret:        "test-secret-key",
		TokenExpireHours: 24,
	}
}

func signClaims(t *testing.T, claims Claims, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}
	return s
}

func TestGenerateToken(t *testing.T) {
	cfg := testAuthConfig()

	token, expiresAt, err := GenerateToken("LegacyED", cfg)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	if token == "" {
		t.Error("Expected non-empty token")
	}

	expectedExpiry := time.Now().Add(24 * time.Hour)
	if expiresAt.Before(expectedExpiry.Add(-time.Minute)) || expiresAt.After(expectedExpiry.Add(time.Minute)) {
		t.Errorf("Expiry time %v is not within expected range of %v", expiresAt, expectedExpiry)
	}

	claims, ok := parseAdminToken(token, cfg)
	if !ok {
		t.Fatal("Expected generated token to parse")
	}
	if claims.Username != "LegacyED" || claims.Role != RoleAdmin {
		t.Errorf("Unexpected claims: %+v", claims)
	}
}

func TestAdminAuth(t *testing.T) {
	cfg := testAuthConfig()

	token, _, err := GenerateToken("LegacyED", cfg)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	otherSecret := signClaims(t, Claims{
		Username: "LegacyED",
		Role:     RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}, "another-secret")

	noRole := signClaims(t, Claims{
		Username: "LegacyED",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}, cfg.JWTSecret)

	tests := []struct {
		name           string
		authHeader     string
		expectedStatus int
	}{
		{"valid token", "Bearer " + token, http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"invalid format", token, http.StatusUnauthorized},
		{"empty bearer", "Bearer ", http.StatusUnauthorized},
		{"invalid token", "Bearer invalid.token.here", http.StatusUnauthorized},
		{"public key is not enough", "Bearer " + cfg.PublicKey, http.StatusUnauthorized},
		{"wrong secret", "Bearer " + otherSecret, http.StatusUnauthorized},
		{"missing role", "Bearer " + noRole, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seenUser string
			var seenCtxUser string

			router := gin.New()
			router.Use(AdminAuth(cfg))
			router.GET("/test", func(c *gin.Context) {
				seenUser = GetUsername(c)
				seenCtxUser, _ = c.Request.Context().Value(logger.UsernameKey).(string)
				c.JSON(http.StatusOK, gin.H{"success": true})
			})

			req := httptest.NewRequest("GET", "/test", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, w.Code)
			}
			if tt.expectedStatus == http.StatusOK {
				if seenUser != "LegacyED" || seenCtxUser != "LegacyED" {
					t.Errorf("Expected username in gin and request context, got %q and %q", seenUser, seenCtxUser)
				}
			}
		})
	}
}

func TestAdminAuthExpiredToken(t *testing.T) {
	cfg := testAuthConfig()

	tokenString := signClaims(t, Claims{
		Username: "LegacyED",
		Role:     RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}, cfg.JWTSecret)

	router := gin.New()
	router.Use(AdminAuth(cfg))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+tokenString)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status %d for expired token, got %d", http.StatusUnauthorized, w.Code)
	}
}

func TestPublicAuth(t *testing.T) {
	cfg := testAuthConfig()

	token, _, err := GenerateToken("LegacyED", cfg)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	tests := []struct {
		name           string
		authHeader     string
		expectedStatus int
		expectedUser   string
	}{
		{"public key", "Bearer " + cfg.PublicKey, http.StatusOK, ""},
		{"admin token", "Bearer " + token, http.StatusOK, "LegacyED"},
		{"missing header", "", http.StatusUnauthorized, ""},
		{"wrong key", "Bearer not-the-key", http.StatusUnauthorized, ""},
		{"basic scheme", "Basic " + cfg.PublicKey, http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seenUser string

			router := gin.New()
			router.Use(PublicAuth(cfg))
			router.POST("/test", func(c *gin.Context) {
				seenUser = GetUsername(c)
				c.JSON(http.StatusOK, gin.H{"success": true})
			})

			req := httptest.NewRequest("POST", "/test", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, w.Code)
			}
			if seenUser != tt.expectedUser {
				t.Errorf("Expected username %q, got %q", tt.expectedUser, seenUser)
			}
		})
	}
}

func TestGetUsername(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	if GetUsername(c) != "" {
		t.Error("Expected empty string for unset username")
	}

	c.Set("username", "LegacyED")
	if GetUsername(c) != "LegacyED" {
		t.Errorf("Expected 'LegacyED', got '%s'", GetUsername(c))
	}
}

func TestGetRole(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/", nil).WithContext(context.Background())

	if GetRole(c) != "" {
		t.Error("Expected empty string for unset role")
	}

	setUser(c, &Claims{Username: "LegacyED", Role: RoleAdmin})
	if GetRole(c) != RoleAdmin {
		t.Errorf("Expected role %q, got %q", RoleAdmin, GetRole(c))
	}
}
