package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentease_backend/internal/api"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func setupRouter() *gin.Engine {
	r := gin.New()
	r.GET("/healthz", Health)
	r.HEAD("/healthz", Health)
	r.OPTIONS("/healthz", Health)
	return r
}

func TestHealth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		method     string
		wantStatus int
		wantBody   bool
	}{
		{http.MethodGet, http.StatusOK, true},
		{http.MethodHead, http.StatusOK, false},
		{http.MethodOptions, http.StatusNoContent, false},
	}

	router := setupRouter()

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			t.Parallel()

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(tt.method, "/healthz", nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
			if !tt.wantBody {
				assert.Zero(t, w.Body.Len())
				return
			}
			var resp api.HealthResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, "ok", resp.Status)
			assert.Nil(t, resp.Checks)
		})
	}
}

func TestReady(t *testing.T) {
	t.Parallel()

	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	tests := []struct {
		name       string
		checks     map[string]Check
		wantStatus int
		want       api.HealthResponse
	}{
		{
			name:       "no checks",
			checks:     nil,
			wantStatus: http.StatusOK,
			want:       api.HealthResponse{Status: "ok"},
		},
		{
			name:       "all healthy",
			checks:     map[string]Check{"storage": ok, "redis": ok},
			wantStatus: http.StatusOK,
			want:       api.HealthResponse{Status: "ok", Checks: map[string]string{"storage": "ok", "redis": "ok"}},
		},
		{
			name:       "one failing",
			checks:     map[string]Check{"storage": ok, "redis": down},
			wantStatus: http.StatusServiceUnavailable,
			want:       api.HealthResponse{Status: "unavailable", Checks: map[string]string{"storage": "ok", "redis": "connection refused"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := gin.New()
			r.GET("/readyz", Ready(tt.checks, time.Second))
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			var resp api.HealthResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.want, resp)
		})
	}
}

func TestReady_PassesDeadline(t *testing.T) {
	t.Parallel()

	var hadDeadline bool
	r := gin.New()
	r.GET("/readyz", Ready(map[string]Check{"storage": func(ctx context.Context) error {
		_, hadDeadline = ctx.Deadline()
		return nil
	}}, time.Second))

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/readyz", nil))

	assert.True(t, hadDeadline)
}
