package alerts_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	alerts "github.com/vecino/alerts"
)

// testEnv wires a full application against a private in-memory database.
type testEnv struct {
	app    *fiber.App
	repo   alerts.RepositoryManager
	tokens *alerts.TokenService
	cfg    alerts.Config
	db     *bun.DB
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := testConfig()

	db, err := alerts.OpenDB("file::memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, alerts.RunMigrations(context.Background(), db))

	repo := alerts.NewRepositoryManager(db)
	tokens := alerts.NewTokenService(cfg, nil)
	app := alerts.NewServer(cfg, repo, tokens, nil)

	return &testEnv{app: app, repo: repo, tokens: tokens, cfg: cfg, db: db}
}

// createUser inserts a user with a hashed password, bypassing HTTP.
func (e *testEnv) createUser(t *testing.T, username, email, password string) *alerts.User {
	t.Helper()

	hash, err := alerts.HashPassword(password)
	require.NoError(t, err)

	user, err := e.repo.Users().Create(context.Background(), &alerts.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		IsActive:     true,
	})
	require.NoError(t, err)
	return user
}

// sessionCookie returns a raw Cookie header value carrying a fresh token.
func (e *testEnv) sessionCookie(t *testing.T, user *alerts.User) string {
	t.Helper()

	token, err := e.tokens.Generate(user)
	require.NoError(t, err)
	return e.cfg.CookieName + "=Bearer " + token
}

func jsonRequest(method, target string, body string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func doRequest(t *testing.T, app *fiber.App, req *http.Request) *http.Response {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}
