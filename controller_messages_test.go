package alerts_test

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	alerts "github.com/vecino/alerts"
)

// messagesEnv sets up a user, their session cookie, and an alert to post under.
func messagesEnv(t *testing.T) (*testEnv, *alerts.User, string, *alerts.Alert) {
	t.Helper()

	env := newTestEnv(t)
	user := env.createUser(t, "ada", "ada@example.com", "correct-horse")
	cookie := env.sessionCookie(t, user)

	alert, err := env.repo.Alerts().Create(context.Background(), &alerts.Alert{
		Title:       "Power outage downtown",
		Description: "Grid maintenance until noon",
		AlertType:   1,
		UserID:      user.ID,
	})
	require.NoError(t, err)

	return env, user, cookie, alert
}

func authedJSON(method, target, body, cookie string) *http.Request {
	req := jsonRequest(method, target, body)
	req.Header.Set("Cookie", cookie)
	return req
}

func TestMessagesRequireSession(t *testing.T) {
	env, _, _, alert := messagesEnv(t)

	base := fmt.Sprintf("/api/alerts/%d/messages/", alert.ID)
	resp := doRequest(t, env.app, jsonRequest(http.MethodGet, base, ""))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "not authenticated")

	resp = doRequest(t, env.app, jsonRequest(http.MethodPost, base, `{"content":"hi"}`))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMessageCreateAndList(t *testing.T) {
	env, user, cookie, alert := messagesEnv(t)

	base := fmt.Sprintf("/api/alerts/%d/messages/", alert.ID)
	resp := doRequest(t, env.app, authedJSON(http.MethodPost, base,
		`{"content":"Anyone know when power is back?"}`, cookie))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created alerts.Message
	decodeBody(t, resp, &created)
	assert.NotZero(t, created.ID)
	assert.Equal(t, alert.ID, created.AlertID)
	assert.Equal(t, user.ID, created.SenderID)

	resp = doRequest(t, env.app, authedJSON(http.MethodPost, base,
		`{"content":"ETA is noon per the utility"}`, cookie))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doRequest(t, env.app, authedJSON(http.MethodGet, base, "", cookie))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list []alerts.Message
	decodeBody(t, resp, &list)
	require.Len(t, list, 2)
	assert.Equal(t, "Anyone know when power is back?", list[0].Content)
	require.NotNil(t, list[0].Sender, "thread listing joins the sender")
	assert.Equal(t, "ada", list[0].Sender.Username)
	assert.Empty(t, list[0].Sender.PasswordHash)
}

func TestMessageCreateUnknownAlert(t *testing.T) {
	env, _, cookie, _ := messagesEnv(t)

	resp := doRequest(t, env.app, authedJSON(http.MethodPost, "/api/alerts/999/messages/",
		`{"content":"hello?"}`, cookie))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestMessageDeleteSenderOnly(t *testing.T) {
	env, _, cookie, alert := messagesEnv(t)

	other := env.createUser(t, "grace", "grace@example.com", "another-pass")
	otherCookie := env.sessionCookie(t, other)

	base := fmt.Sprintf("/api/alerts/%d/messages/", alert.ID)
	resp := doRequest(t, env.app, authedJSON(http.MethodPost, base, `{"content":"mine"}`, cookie))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var msg alerts.Message
	decodeBody(t, resp, &msg)
	target := fmt.Sprintf("%s%d", base, msg.ID)

	resp = doRequest(t, env.app, authedJSON(http.MethodDelete, target, "", otherCookie))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "not authorized to delete this message")

	resp = doRequest(t, env.app, authedJSON(http.MethodDelete, target, "", cookie))
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doRequest(t, env.app, authedJSON(http.MethodDelete, target, "", cookie))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestMessageReadReceiptIdempotent(t *testing.T) {
	env, user, cookie, alert := messagesEnv(t)

	base := fmt.Sprintf("/api/alerts/%d/messages/", alert.ID)
	resp := doRequest(t, env.app, authedJSON(http.MethodPost, base, `{"content":"read me"}`, cookie))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var msg alerts.Message
	decodeBody(t, resp, &msg)
	readURL := fmt.Sprintf("%s%d/read", base, msg.ID)

	resp = doRequest(t, env.app, authedJSON(http.MethodPost, readURL, "", cookie))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var first alerts.MessageRead
	decodeBody(t, resp, &first)
	assert.Equal(t, msg.ID, first.MessageID)
	assert.Equal(t, user.ID, first.UserID)

	resp = doRequest(t, env.app, authedJSON(http.MethodPost, readURL, "", cookie))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var second alerts.MessageRead
	decodeBody(t, resp, &second)
	assert.Equal(t, first.ID, second.ID, "repeated reads return the existing receipt")
}

func TestMessageReactions(t *testing.T) {
	env, user, cookie, alert := messagesEnv(t)

	base := fmt.Sprintf("/api/alerts/%d/messages/", alert.ID)
	resp := doRequest(t, env.app, authedJSON(http.MethodPost, base, `{"content":"react to me"}`, cookie))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var msg alerts.Message
	decodeBody(t, resp, &msg)
	reactionURL := fmt.Sprintf("%s%d/reaction", base, msg.ID)

	resp = doRequest(t, env.app, authedJSON(http.MethodPost, reactionURL, `{"emoji":"👍"}`, cookie))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var reaction alerts.MessageReaction
	decodeBody(t, resp, &reaction)
	assert.Equal(t, "👍", reaction.Emoji)
	assert.Equal(t, user.ID, reaction.UserID)

	// Same emoji twice conflicts; a different emoji is a new reaction.
	resp = doRequest(t, env.app, authedJSON(http.MethodPost, reactionURL, `{"emoji":"👍"}`, cookie))
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "reaction already added")

	resp = doRequest(t, env.app, authedJSON(http.MethodPost, reactionURL, `{"emoji":"🎉"}`, cookie))
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doRequest(t, env.app, authedJSON(http.MethodDelete, reactionURL+"?emoji="+url.QueryEscape("👍"), "", cookie))
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doRequest(t, env.app, authedJSON(http.MethodDelete, reactionURL+"?emoji="+url.QueryEscape("👍"), "", cookie))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doRequest(t, env.app, authedJSON(http.MethodDelete, reactionURL, "", cookie))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "emoji query parameter is required")
}
