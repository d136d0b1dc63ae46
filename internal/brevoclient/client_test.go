package brevoclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ticketbridge/contact-sync/internal/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(Config{
		BaseURL: srv.URL,
		APIKey:  "test-key",
		Timeout: 2 * time.Second,
	})
}

func TestGetContact_Found(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/contacts/jean@example.org", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("api-key"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"email": "jean@example.org",
			"attributes": {"PRENOM": "Jean", "SCORE": 42, "OPT_IN": true}
		}`))
	})

	contact, err := client.GetContact(context.Background(), "jean@example.org")
	require.NoError(t, err)

	assert.Equal(t, "jean@example.org", contact.Email)
	assert.Equal(t, "Jean", contact.Attributes["PRENOM"])
	assert.Equal(t, "42", contact.Attributes["SCORE"], "numeric attributes flatten to strings")
	assert.Equal(t, "true", contact.Attributes["OPT_IN"])
}

func TestGetContact_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.GetContact(context.Background(), "nobody@example.org")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetContact_ServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.GetContact(context.Background(), "jean@example.org")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound, "a store outage must not look like a missing contact")
}

func TestFindContactByPhone(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "phone_id", r.URL.Query().Get("identifierType"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"email": "owner@example.org", "attributes": {}}`))
	})

	contact, err := client.FindContactByPhone(context.Background(), "+33612345678")
	require.NoError(t, err)
	assert.Equal(t, "owner@example.org", contact.Email)
}

func TestUpsertContact_RequestShape(t *testing.T) {
	var captured upsertRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/contacts", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "test-key", r.Header.Get("api-key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.WriteHeader(http.StatusCreated)
	})

	attrs := models.Attributes{models.AttrFirstName: "Jean"}
	require.NoError(t, client.UpsertContact(context.Background(), "jean@example.org", attrs))

	assert.Equal(t, "jean@example.org", captured.Email)
	assert.Equal(t, "Jean", captured.Attributes[models.AttrFirstName])
	assert.True(t, captured.UpdateEnabled)
	assert.True(t, captured.UpdateEnabledSms)
	assert.NotNil(t, captured.ListIDs)
	assert.Empty(t, captured.ListIDs)
}

func TestUpsertContact_ErrorIncludesStoreMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message": "invalid phone number"}`))
	})

	err := client.UpsertContact(context.Background(), "jean@example.org", models.Attributes{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
	assert.Contains(t, err.Error(), "invalid phone number")
}

func TestNilClientIsSafe(t *testing.T) {
	var client *Client

	_, err := client.GetContact(context.Background(), "jean@example.org")
	assert.Error(t, err)

	_, err = client.FindContactByPhone(context.Background(), "+33612345678")
	assert.Error(t, err)

	assert.Error(t, client.UpsertContact(context.Background(), "jean@example.org", nil))
}
