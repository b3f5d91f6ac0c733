package alerts_test

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	alerts "github.com/vecino/alerts"
)

type logCall struct {
	level  string
	format string
	args   []any
}

// spyLogger records calls so tests can check format strings against their
// arguments the way a printf-style sink would consume them.
type spyLogger struct {
	calls []logCall
}

func (l *spyLogger) record(level, format string, args ...any) {
	l.calls = append(l.calls, logCall{level: level, format: format, args: args})
}

func (l *spyLogger) Debug(format string, args ...any) { l.record("debug", format, args...) }
func (l *spyLogger) Info(format string, args ...any)  { l.record("info", format, args...) }
func (l *spyLogger) Error(format string, args ...any) { l.record("error", format, args...) }

func (l *spyLogger) rendered() []string {
	out := make([]string, 0, len(l.calls))
	for _, call := range l.calls {
		out = append(out, fmt.Sprintf(call.format, call.args...))
	}
	return out
}

func TestLoggerCallSitesArePrintfStyle(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "ada", "ada@example.com", "correct-horse")

	spy := &spyLogger{}
	app := alerts.NewServer(env.cfg, env.repo, env.tokens, spy)

	resp := doRequest(t, app, jsonRequest(http.MethodPost, "/api/auth/login",
		`{"email":"ada@example.com","password":"correct-horse"}`))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doRequest(t, app, jsonRequest(http.MethodPost, "/api/auth/login",
		`{"email":"ada@example.com","password":"wrong"}`))
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	req := jsonRequest(http.MethodGet, "/api/auth/me", "")
	req.Header.Set("Cookie", alerts.DefaultCookieName+"=Bearer garbage")
	resp = doRequest(t, app, req)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	require.NotEmpty(t, spy.calls)
	for _, line := range spy.rendered() {
		assert.NotContains(t, line, "%!", "format and arguments must agree: %s", line)
	}

	joined := strings.Join(spy.rendered(), "\n")
	assert.Contains(t, joined, "login successful for ada@example.com")
	assert.Contains(t, joined, "login failed for ada@example.com")
}
