package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/Shimizu-Technology/exam-prep-api/internal/handlers"
	"github.com/Shimizu-Technology/exam-prep-api/internal/middleware"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rl := middleware.NewRateLimiter(100)
	t.Cleanup(rl.Stop)
	return Setup(&handlers.Handler{JWTSecret: "router-test"}, rl, []string{"http://localhost:3000"})
}

func TestSetup_ProtectedRoutesRequireToken(t *testing.T) {
	r := newTestRouter(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/auth/me"},
		{http.MethodPost, "/api/auth/refresh"},
		{http.MethodGet, "/api/study-plans"},
		{http.MethodGet, "/api/study-plans/abc/dashboard"},
		{http.MethodGet, "/api/placement/profiles"},
		{http.MethodPut, "/api/placement/profiles/abc/plan"},
	}

	for _, p := range paths {
		t.Run(p.method+" "+p.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(p.method, p.path, nil))
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestSetup_DocsAndRequestID(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/docs/openapi.yaml", nil)
	req.Header.Set(middleware.RequestIDHeader, "trace-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "trace-123", w.Header().Get(middleware.RequestIDHeader))
	assert.Contains(t, w.Body.String(), "openapi:")
}

func TestSetup_PublicRouteValidation(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/youtube/search", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code, "missing query is rejected before touching the catalog")
}
