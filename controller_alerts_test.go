package alerts_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	alerts "github.com/vecino/alerts"
)

func createAlertPayload(userID int64) string {
	return fmt.Sprintf(`{
		"alert_title": "Road closed on Main St",
		"description": "Water main burst, avoid the area",
		"alert_type": 2,
		"postal_code": "08012",
		"user_id": %d
	}`, userID)
}

func TestAlertCRUD(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "ada", "ada@example.com", "correct-horse")

	// Create
	resp := doRequest(t, env.app, jsonRequest(http.MethodPost, "/api/alerts/", createAlertPayload(user.ID)))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created alerts.Alert
	decodeBody(t, resp, &created)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Road closed on Main St", created.Title)
	assert.Equal(t, user.ID, created.UserID)
	assert.False(t, created.CreatedAt.IsZero())

	// Get
	resp = doRequest(t, env.app, jsonRequest(http.MethodGet, fmt.Sprintf("/api/alerts/%d", created.ID), ""))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var fetched alerts.Alert
	decodeBody(t, resp, &fetched)
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, created.Title, fetched.Title)

	// List
	resp = doRequest(t, env.app, jsonRequest(http.MethodGet, "/api/alerts/", ""))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list []alerts.Alert
	decodeBody(t, resp, &list)
	require.Len(t, list, 1)

	// Delete
	resp = doRequest(t, env.app, jsonRequest(http.MethodDelete, fmt.Sprintf("/api/alerts/%d", created.ID), ""))
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doRequest(t, env.app, jsonRequest(http.MethodGet, fmt.Sprintf("/api/alerts/%d", created.ID), ""))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAlertPartialUpdate(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "ada", "ada@example.com", "correct-horse")

	resp := doRequest(t, env.app, jsonRequest(http.MethodPost, "/api/alerts/", createAlertPayload(user.ID)))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created alerts.Alert
	decodeBody(t, resp, &created)

	resp = doRequest(t, env.app, jsonRequest(http.MethodPut, fmt.Sprintf("/api/alerts/%d", created.ID),
		`{"alert_title": "Road reopened"}`))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated alerts.Alert
	decodeBody(t, resp, &updated)
	assert.Equal(t, "Road reopened", updated.Title)
	assert.Equal(t, created.Description, updated.Description, "omitted fields keep their values")
	assert.Equal(t, created.AlertType, updated.AlertType)
	assert.Equal(t, created.PostalCode, updated.PostalCode)
}

func TestAlertValidation(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		body string
	}{
		{"Missing title", `{"description":"d","alert_type":1,"user_id":1}`},
		{"Missing description", `{"alert_title":"t","alert_type":1,"user_id":1}`},
		{"Missing user", `{"alert_title":"t","description":"d","alert_type":1}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp := doRequest(t, env.app, jsonRequest(http.MethodPost, "/api/alerts/", tc.body))
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestAlertNotFound(t *testing.T) {
	env := newTestEnv(t)

	resp := doRequest(t, env.app, jsonRequest(http.MethodGet, "/api/alerts/999", ""))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doRequest(t, env.app, jsonRequest(http.MethodPut, "/api/alerts/999", `{"alert_title":"x"}`))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doRequest(t, env.app, jsonRequest(http.MethodDelete, "/api/alerts/999", ""))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doRequest(t, env.app, jsonRequest(http.MethodGet, "/api/alerts/not-a-number", ""))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
