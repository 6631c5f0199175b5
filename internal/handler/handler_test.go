package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/Jeroboam-francis/Backend-BlogItwebsite/internal/config"
	"github.com/Jeroboam-francis/Backend-BlogItwebsite/internal/database"
	"github.com/Jeroboam-francis/Backend-BlogItwebsite/internal/middleware"
	"github.com/Jeroboam-francis/Backend-BlogItwebsite/internal/router"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	strongPassword = "correct horse battery staple"
	testJWTSecret  = "handler-test-secret"
)

// newTestEnv wires the real route table against a fresh temp database,
// opened through database.Init so tests run the production DB settings.
func newTestEnv(t *testing.T) (*gin.Engine, *gorm.DB, *config.Config) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Init(config.DatabaseConfig{
		Path: filepath.Join(t.TempDir(), "test.db"),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	log := logrus.New()
	log.SetOutput(io.Discard)

	cfg := &config.Config{
		Server:   config.ServerConfig{Mode: gin.TestMode},
		JWT:      config.JWTConfig{Secret: testJWTSecret},
		Security: config.SecurityConfig{BcryptCost: 4}, // low cost keeps tests fast
		Upload:   config.UploadConfig{Dir: t.TempDir(), MaxSizeMB: 5},
	}

	return router.SetupRouter(cfg, db, log), db, cfg
}

func newTestServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	r, db, _ := newTestEnv(t)
	return r, db
}

func doJSON(r *gin.Engine, method, path string, body interface{}, cookie *http.Cookie) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var envelope struct {
		Code int                    `json:"code"`
		Data map[string]interface{} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return envelope.Data
}

func registerUser(t *testing.T, r *gin.Engine, userName, email string) {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/auth/register", map[string]string{
		"firstName":    "Test",
		"lastName":     "User",
		"emailAddress": email,
		"userName":     userName,
		"password":     strongPassword,
	}, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("register %s: status = %d, body = %s", userName, w.Code, w.Body.String())
	}
}

func loginCookie(t *testing.T, r *gin.Engine, identifier string) *http.Cookie {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/auth/login", map[string]string{
		"identifier": identifier,
		"password":   strongPassword,
	}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("login %s: status = %d, body = %s", identifier, w.Code, w.Body.String())
	}
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionCookieName {
			return c
		}
	}
	t.Fatalf("login %s: no %s cookie in response", identifier, middleware.SessionCookieName)
	return nil
}

func createBlog(t *testing.T, r *gin.Engine, cookie *http.Cookie, title string) uint {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/auth/CreateBlogs", map[string]string{
		"title":       title,
		"description": "D",
		"content":     "C",
	}, cookie)
	if w.Code != http.StatusCreated {
		t.Fatalf("create blog: status = %d, body = %s", w.Code, w.Body.String())
	}
	data := decodeData(t, w)
	blog, ok := data["blog"].(map[string]interface{})
	if !ok {
		t.Fatalf("create blog: missing blog in %v", data)
	}
	return uint(blog["id"].(float64))
}
