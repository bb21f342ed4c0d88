package controller

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/casaviva/hogar-backend/internal/db"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPinger struct{ err error }

func (s stubPinger) Ping(context.Context) error { return s.err }

func TestHealthController_Health(t *testing.T) {
	gin.SetMode(gin.TestMode)
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	tests := []struct {
		name        string
		redis       Pinger
		wantStorage string
	}{
		{"Memory storage", nil, "memory"},
		{"Redis up", stubPinger{}, "redis"},
		{"Redis down", stubPinger{err: errors.New("refused")}, "redis down"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.GET("/health", NewHealthController(testDB, tt.redis).Health)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, http.StatusOK, w.Code)
			body := decodeJSON(t, w)
			assert.Equal(t, "healthy", body["status"])
			checks := body["checks"].(map[string]interface{})
			assert.Equal(t, "up", checks["database"])
			assert.Equal(t, tt.wantStorage, checks["cart_storage"])
		})
	}
}

func TestHealthController_DatabaseDown(t *testing.T) {
	gin.SetMode(gin.TestMode)
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	db.CleanupTestDB(testDB)

	router := gin.New()
	router.GET("/health", NewHealthController(testDB, nil).Health)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "unhealthy", decodeJSON(t, w)["status"])
}
