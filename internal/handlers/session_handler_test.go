package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"country-explorer/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestCreateSession_IssuesToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/session", CreateSession)

	req := httptest.NewRequest(http.MethodPost, "/api/session", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp SessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	_, err := uuid.Parse(resp.SessionID)
	require.NoError(t, err)

	claims, err := auth.ValidateToken(resp.Token)
	require.NoError(t, err)
	require.Equal(t, resp.SessionID, claims.SessionID)
}
