package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"country-explorer/internal/cache"
	"country-explorer/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestPurgeExpiredCache(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	store := cache.NewGormStore(db)
	c := cache.NewExpiringCache(store, time.Hour)

	c.Set("france", map[string]string{"name": "France"})
	stale := []byte(`{"timestamp":1,"data":{"name":"Spain"}}`)
	require.NoError(t, store.Set(cache.KeyPrefix+"spain", stale))

	r := gin.New()
	r.DELETE("/api/cache/expired", PurgeExpiredCache(c))
	req := httptest.NewRequest(http.MethodDelete, "/api/cache/expired", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Removed   int `json:"removed"`
		Remaining int `json:"remaining"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Removed)
	require.Equal(t, 1, resp.Remaining)
}
