package handlers

import (
	"net/http"
	"time"

	"country-explorer/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionResponse represents the session creation response
type SessionResponse struct {
	Token     string    `json:"token"`
	SessionID string    `json:"session_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// CreateSession starts an anonymous lookup session and returns the token the
// page uses to open its websocket.
// POST /api/session
func CreateSession(c *gin.Context) {
	sessionID := uuid.NewString()

	token, expiresAt, err := auth.GenerateToken(sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to generate token",
		})
		return
	}

	c.JSON(http.StatusCreated, SessionResponse{
		Token:     token,
		SessionID: sessionID,
		ExpiresAt: expiresAt,
	})
}
