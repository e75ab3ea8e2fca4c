package gotrue

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/getevo/evo/v2/lib/settings"
)

// Sentinel errors surfaced to the auth service. Anything else coming out of the
// provider is wrapped as an upstream failure.
var (
	ErrDuplicateEmail     = errors.New("email address is already registered")
	ErrInvalidCredentials = errors.New("invalid login credentials")
	ErrNotConfigured      = errors.New("identity provider is not configured")
)

const requestTimeout = 10 * time.Second

// Client talks to a GoTrue-compatible authentication API. The service-role key
// authorizes admin endpoints; the anon key authorizes end-user flows such as the
// password grant. The client is configured once at startup and never mutated.
type Client struct {
	BaseURL    string
	ServiceKey string
	AnonKey    string
	HTTPClient *http.Client
}

var defaultClient *Client

// Initialize builds the process-wide admin client from settings.
func Initialize() error {
	baseURL := settings.Get("PROVIDER.URL").String()
	serviceKey := settings.Get("PROVIDER.SERVICE_KEY").String()
	anonKey := settings.Get("PROVIDER.ANON_KEY").String()

	if baseURL == "" || serviceKey == "" {
		return fmt.Errorf("provider configuration incomplete: PROVIDER.URL and PROVIDER.SERVICE_KEY are required")
	}

	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "https://" + baseURL
	}

	defaultClient = New(baseURL, serviceKey, anonKey)
	return nil
}

// New creates a provider client. Used directly by tests; production code goes
// through Initialize and Default.
func New(baseURL, serviceKey, anonKey string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		ServiceKey: serviceKey,
		AnonKey:    anonKey,
		HTTPClient: &http.Client{Timeout: requestTimeout},
	}
}

// Default returns the process-wide client or nil if Initialize has not run.
func Default() *Client {
	return defaultClient
}

// apiError is the error body shape GoTrue responds with.
type apiError struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	Message          string `json:"msg"`
	Code             int    `json:"code"`
}

func (e apiError) text() string {
	if e.Message != "" {
		return e.Message
	}
	if e.ErrorDescription != "" {
		return e.ErrorDescription
	}
	return e.Error
}

// do performs a JSON request against the auth API and decodes the response into
// out (when out is non-nil and the response has a body).
func (c *Client) do(ctx context.Context, method, path, bearer string, body any, out any) error {
	if c == nil {
		return ErrNotConfigured
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+"/auth/v1"+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.apikey(bearer))
	req.Header.Set("Authorization", "Bearer "+bearer)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("provider request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr apiError
		data, _ := io.ReadAll(resp.Body)
		json.Unmarshal(data, &apiErr)
		return c.mapError(resp.StatusCode, apiErr)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode provider response: %w", err)
		}
	}

	return nil
}

// apikey picks the anon key for end-user bearer tokens, the service key for
// admin calls made with the service key itself.
func (c *Client) apikey(bearer string) string {
	if bearer == c.ServiceKey || c.AnonKey == "" {
		return c.ServiceKey
	}
	return c.AnonKey
}

func (c *Client) mapError(status int, apiErr apiError) error {
	msg := apiErr.text()
	lower := strings.ToLower(msg)

	switch {
	case status == http.StatusUnprocessableEntity && strings.Contains(lower, "already been registered"):
		return ErrDuplicateEmail
	case status == http.StatusConflict:
		return ErrDuplicateEmail
	case apiErr.Error == "invalid_grant", strings.Contains(lower, "invalid login credentials"):
		return ErrInvalidCredentials
	}

	if msg == "" {
		msg = http.StatusText(status)
	}
	return fmt.Errorf("provider returned %d: %s", status, msg)
}
