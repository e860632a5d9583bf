package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/Dibbotcf/Legacyscript/config"
	"github.com/Dibbotcf/Legacyscript/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// RoleAdmin is the only role issued by the login endpoint.
const RoleAdmin = "admin"

// Claims represents the JWT claims
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken generates a new admin JWT for username
func GenerateToken(username string, cfg *config.AuthConfig) (string, time.Time, error) {
	expiresAt := time.Now().Add(time.Duration(cfg.TokenExpireHours) * time.Hour)

	claims := Claims{
		Username: username,
		Role:     RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(cfg.JWTSecret))
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiresAt, nil
}

// parseAdminToken returns the claims of a valid, unexpired admin token.
func parseAdminToken(tokenString string, cfg *config.AuthConfig) (*Claims, bool) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid || claims.Role != RoleAdmin {
		return nil, false
	}
	return claims, true
}

// bearerToken extracts the token from "Bearer <token>".
func bearerToken(c *gin.Context) (string, string) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", "Authorization header required"
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", "Invalid authorization header format"
	}
	return parts[1], ""
}

func unauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": msg})
}

func setUser(c *gin.Context, claims *Claims) {
	c.Set("username", claims.Username)
	c.Set("role", claims.Role)

	ctx := context.WithValue(c.Request.Context(), logger.UsernameKey, claims.Username)
	c.Request = c.Request.WithContext(ctx)
}

// PublicAuth accepts either the static public key embedded in the site or an admin token.
func PublicAuth(cfg *config.AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, problem := bearerToken(c)
		if problem != "" {
			unauthorized(c, problem)
			return
		}

		if subtle.ConstantTimeCompare([]byte(token), []byte(cfg.PublicKey)) == 1 {
			c.Next()
			return
		}

		claims, ok := parseAdminToken(token, cfg)
		if !ok {
			unauthorized(c, "Invalid credentials")
			return
		}
		setUser(c, claims)
		c.Next()
	}
}

// AdminAuth validates an admin JWT and stores the user in the context
func AdminAuth(cfg *config.AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, problem := bearerToken(c)
		if problem != "" {
			unauthorized(c, problem)
			return
		}

		claims, ok := parseAdminToken(token, cfg)
		if !ok {
			unauthorized(c, "Invalid or expired token")
			return
		}
		setUser(c, claims)
		c.Next()
	}
}

// GetUsername gets the username from context
func GetUsername(c *gin.Context) string {
	if username, exists := c.Get("username"); exists {
		return username.(string)
	}
	return ""
}

// GetRole gets the role from context
func GetRole(c *gin.Context) string {
	if role, exists := c.Get("role"); exists {
		return role.(string)
	}
	return ""
}
