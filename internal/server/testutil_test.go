package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"warbler/internal/cache"
	"warbler/internal/config"
	"warbler/internal/database"
	"warbler/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupServerTest builds a full app (routes, sessions, in-memory SQLite)
// for end-to-end handler tests.
func setupServerTest(t *testing.T) (*fiber.App, *Server, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// keep the pool on a single connection so every query sees the same
	// in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))

	cache.SetClient(nil)

	cfg := &config.Config{
		Port:               "0",
		JWTSecret:          "test-secret-key",
		SessionIdleTimeout: 60,
		Env:                "test",
	}
	srv, err := NewServerWithDeps(cfg, db, nil)
	require.NoError(t, err)

	app := NewApp()
	srv.SetupRoutes(app)

	return app, srv, db
}

// testClient is a minimal browser stand-in: it keeps cookies between
// requests and can follow redirect chains.
type testClient struct {
	t       *testing.T
	app     *fiber.App
	cookies map[string]string
}

func newTestClient(t *testing.T, app *fiber.App) *testClient {
	return &testClient{t: t, app: app, cookies: make(map[string]string)}
}

func (tc *testClient) do(req *http.Request, follow bool) (*http.Response, string) {
	tc.t.Helper()

	for name, value := range tc.cookies {
		req.AddCookie(&http.Cookie{Name: name, Value: value})
	}

	resp, err := tc.app.Test(req, -1)
	require.NoError(tc.t, err)

	for _, cookie := range resp.Cookies() {
		expired := !cookie.Expires.IsZero() && cookie.Expires.Before(time.Now())
		if cookie.MaxAge < 0 || expired || cookie.Value == "" {
			delete(tc.cookies, cookie.Name)
			continue
		}
		tc.cookies[cookie.Name] = cookie.Value
	}

	if follow && (resp.StatusCode == http.StatusFound || resp.StatusCode == http.StatusSeeOther || resp.StatusCode == http.StatusMovedPermanently) {
		location := resp.Header.Get("Location")
		require.NotEmpty(tc.t, location)
		_ = resp.Body.Close()
		next := httptest.NewRequest(http.MethodGet, location, nil)
		return tc.do(next, true)
	}

	body, err := io.ReadAll(resp.Body)
	require.NoError(tc.t, err)
	_ = resp.Body.Close()

	return resp, string(body)
}

func (tc *testClient) get(path string, follow bool) (*http.Response, string) {
	tc.t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	return tc.do(req, follow)
}

func (tc *testClient) postForm(path string, form url.Values, follow bool) (*http.Response, string) {
	tc.t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return tc.do(req, follow)
}

const testPassword = "Password123!abc"

// createTestUser persists a user with the shared test password.
func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: string(hashed),
		ImageURL: models.DefaultImageURL,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// logIn authenticates the client through the login form.
func logIn(t *testing.T, tc *testClient, username string) {
	t.Helper()
	resp, _ := tc.postForm("/login", url.Values{
		"username": {username},
		"password": {testPassword},
	}, false)
	require.Equal(t, http.StatusFound, resp.StatusCode)
}
