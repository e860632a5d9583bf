package handler

import (
	"net/http"
	"time"

	"github.com/Dibbotcf/Legacyscript/config"
	"github.com/Dibbotcf/Legacyscript/middleware"
	"github.com/Dibbotcf/Legacyscript/pkg/logger"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type AuthHandler struct {
	config *config.Config
}

func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{config: cfg}
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expiresAt"`
	Username  string `json:"username"`
}

// Login exchanges admin credentials for a session token
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request")
		return
	}

	user := h.config.FindUser(req.Username)
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		logger.Warn(c.Request.Context(), "login failed", "username", req.Username)
		respondError(c, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	token, expiresAt, err := middleware.GenerateToken(user.Username, &h.config.Auth)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	logger.Info(c.Request.Context(), "admin signed in", "username", user.Username)
	respondData(c, LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt.UTC().Format(time.RFC3339),
		Username:  user.Username,
	})
}

// GetCurrentUser returns the signed-in administrator
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	respondData(c, gin.H{
		"username": middleware.GetUsername(c),
		"role":     middleware.GetRole(c),
	})
}
