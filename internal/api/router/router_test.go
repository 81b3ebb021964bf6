package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"edusync/backend/config"
	"edusync/backend/internal/api/handler"
	"edusync/backend/internal/repository"
	"edusync/backend/internal/service"
	"edusync/backend/pkg/jwt"
	"edusync/backend/pkg/password"
	"edusync/backend/pkg/validation"
)

// newTestEngine wires real handlers over nil repositories; only requests
// rejected before reaching a service are exercised.
func newTestEngine(t *testing.T) (*gin.Engine, *jwt.Manager) {
	t.Helper()
	if err := validation.Setup(); err != nil {
		t.Fatalf("validation setup: %v", err)
	}
	cfg := &config.Config{
		Server:    config.ServerConfig{Port: 8080, CORS: config.CORSConfig{AllowOrigins: []string{"http://localhost:3000"}}},
		Auth:      config.AuthConfig{JWTSecret: "router-test-secret-0123456", Issuer: "EduSync", Audience: "EduSyncClient", ExpiryHours: 1},
		Storage:   config.StorageConfig{MaxUploadBytes: 1 << 20},
		RateLimit: config.RateLimitConfig{AuthRequests: 5, AuthWindow: time.Minute},
	}
	logger := zap.NewNop()
	jwtMgr := jwt.NewManager(&cfg.Auth)
	svc := service.NewService(cfg, &repository.Repository{}, jwtMgr, password.NewHasher(4), nil, logger)
	return Setup(cfg, handler.NewHandler(svc), jwtMgr, nil, nil, logger), jwtMgr
}

func TestRouter_AccessControl(t *testing.T) {
	engine, jwtMgr := newTestEngine(t)
	student, _ := jwtMgr.GenerateToken("a1b2c3d4-e5f6-4a7b-8c9d-0e1f2a3b4c5d", "s@example.com", "Student")
	instructor, _ := jwtMgr.GenerateToken("a1b2c3d4-e5f6-4a7b-8c9d-0e1f2a3b4c5e", "i@example.com", "Instructor")

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		status int
	}{
		{"users need a token", http.MethodGet, "/api/Users", "", http.StatusUnauthorized},
		{"user create needs a token", http.MethodPost, "/api/Users", "", http.StatusUnauthorized},
		{"students cannot create users", http.MethodPost, "/api/Users", student, http.StatusForbidden},
		{"results need a token", http.MethodGet, "/api/Results", "", http.StatusUnauthorized},
		{"course create needs a token", http.MethodPost, "/api/Courses", "", http.StatusUnauthorized},
		{"students cannot create courses", http.MethodPost, "/api/Courses", student, http.StatusForbidden},
		{"students cannot upload media", http.MethodPost, "/api/Courses/upload-media", student, http.StatusForbidden},
		{"students cannot export results", http.MethodGet, "/api/Courses/3f2b8c1a-4d5e-4f60-8a7b-9c0d1e2f3a4b/results/export", student, http.StatusForbidden},
		{"instructors cannot record results", http.MethodPost, "/api/Results", instructor, http.StatusForbidden},
		{"students cannot delete assessments", http.MethodDelete, "/api/Assessments/3f2b8c1a-4d5e-4f60-8a7b-9c0d1e2f3a4b", student, http.StatusForbidden},
		{"malformed course id", http.MethodGet, "/api/Courses/not-a-uuid", "", http.StatusBadRequest},
		{"public read ignores a bad token", http.MethodGet, "/api/Courses/not-a-uuid", "not-a-token", http.StatusBadRequest},
		{"public assessment read ignores a bad token", http.MethodGet, "/api/Assessments/not-a-uuid", "not-a-token", http.StatusBadRequest},
		{"youtube check is public", http.MethodPost, "/api/Courses/test-youtube", "", http.StatusBadRequest},
		{"health", http.MethodGet, "/health", "", http.StatusOK},
		{"metrics", http.MethodGet, "/metrics", "", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(`{}`))
			req.Header.Set("Content-Type", "application/json")
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
		})
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	engine, _ := newTestEngine(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/Courses", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
