// Package brevoclient is the HTTP client for the external contact store.
// The store owns create/update semantics; this client only shapes requests
// and classifies responses.
package brevoclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/ticketbridge/contact-sync/internal/metrics"
	"github.com/ticketbridge/contact-sync/internal/models"
)

// ErrNotFound indicates the store holds no contact for the given identifier.
// Callers treat it as "no prior state", not as a failure.
var ErrNotFound = errors.New("contact not found")

type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func New(cfg Config) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// Contact is the stored state of one contact, keyed by e-mail.
type Contact struct {
	Email      string            `json:"email"`
	Attributes models.Attributes `json:"attributes"`
}

// contactResponse is the wire shape of a contact fetch. Attribute values can
// come back as numbers or booleans for attributes managed by other tooling,
// so they are decoded loosely and flattened to strings.
type contactResponse struct {
	Email      string         `json:"email"`
	Attributes map[string]any `json:"attributes"`
}

func (r *contactResponse) toContact() *Contact {
	c := &Contact{
		Email:      r.Email,
		Attributes: make(models.Attributes, len(r.Attributes)),
	}
	for name, value := range r.Attributes {
		switch v := value.(type) {
		case string:
			c.Attributes[name] = v
		case float64:
			c.Attributes[name] = strconv.FormatFloat(v, 'f', -1, 64)
		case bool:
			c.Attributes[name] = strconv.FormatBool(v)
		}
	}
	return c
}

// GetContact fetches the stored contact for the given identity key.
// Returns ErrNotFound when the store has never seen this e-mail.
func (c *Client) GetContact(ctx context.Context, email string) (*Contact, error) {
	if c == nil {
		return nil, fmt.Errorf("brevo client not configured")
	}
	return c.getContact(ctx, url.PathEscape(email), "get_contact")
}

// FindContactByPhone looks up the contact currently bound to a canonical
// phone number. Returns ErrNotFound when no contact owns it.
func (c *Client) FindContactByPhone(ctx context.Context, phone string) (*Contact, error) {
	if c == nil {
		return nil, fmt.Errorf("brevo client not configured")
	}
	return c.getContact(ctx, url.PathEscape(phone)+"?identifierType=phone_id", "find_by_phone")
}

func (c *Client) getContact(ctx context.Context, identifier, operation string) (*Contact, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/contacts/"+identifier, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	request.Header.Set("Accept", "application/json")
	request.Header.Set("api-key", c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(request)
	metrics.StoreRequestDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("contact store response status %d", resp.StatusCode)
	}

	var result contactResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return result.toContact(), nil
}

// upsertRequest matches the store's create-or-update contract. List
// membership is deliberately left empty; segment assignment belongs to other
// tooling.
type upsertRequest struct {
	Email            string            `json:"email"`
	Attributes       models.Attributes `json:"attributes"`
	UpdateEnabled    bool              `json:"updateEnabled"`
	UpdateEnabledSms bool              `json:"updateEnabledSms"`
	ListIDs          []int64           `json:"listIds"`
}

// UpsertContact creates or updates the contact with the reconciled attribute
// set. Both general-attribute and SMS-channel update semantics are requested.
func (c *Client) UpsertContact(ctx context.Context, email string, attrs models.Attributes) error {
	if c == nil {
		return fmt.Errorf("brevo client not configured")
	}

	reqBody := upsertRequest{
		Email:            email,
		Attributes:       attrs,
		UpdateEnabled:    true,
		UpdateEnabledSms: true,
		ListIDs:          []int64{},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/contacts", bytes.NewReader(bodyBytes))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Accept", "application/json")
	request.Header.Set("api-key", c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(request)
	metrics.StoreRequestDuration.WithLabelValues("upsert").Observe(time.Since(start).Seconds())
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		var errBody map[string]string
		_ = json.NewDecoder(resp.Body).Decode(&errBody)
		return fmt.Errorf("contact store response status %d: %s", resp.StatusCode, errBody["message"])
	}

	return nil
}
