// Package api is the gateway to the backend REST API that owns all
// persistent state. The raw verbs never return a Go error: transport and
// HTTP failures come back as field errors in the Result, so every call site
// branches on data vs errors rather than recovering from panics. The typed
// per-entity wrappers fold a failed Result into a *RequestError.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"
)

// FieldErrors is the backend's error shape: messages grouped by field.
type FieldErrors map[string][]string

// Join folds all field messages into a single display string, best effort.
func (e FieldErrors) Join() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var msgs []string
	for _, k := range keys {
		msgs = append(msgs, e[k]...)
	}
	return strings.Join(msgs, " ")
}

// Result is the uniform outcome of a gateway call. Exactly one of Data and
// Errors is meaningful; callers must check Failed before trusting Data.
type Result struct {
	Data   json.RawMessage
	Errors FieldErrors
}

// Failed reports whether the call produced errors.
func (r Result) Failed() bool {
	return len(r.Errors) > 0
}

// Decode unmarshals the normalized payload into v.
func (r Result) Decode(v any) error {
	if len(r.Data) == 0 {
		return nil
	}
	return json.Unmarshal(r.Data, v)
}

// RequestError is a failed gateway call surfaced as a Go error by the typed
// entity wrappers.
type RequestError struct {
	Fields FieldErrors
}

func (e *RequestError) Error() string {
	return e.Fields.Join()
}

// AsError converts a failed Result into a *RequestError, or nil on success.
func (r Result) AsError() error {
	if !r.Failed() {
		return nil
	}
	return &RequestError{Fields: r.Errors}
}

type contextKey string

const tokenContextKey contextKey = "bearer_token"

// ContextWithToken returns a context carrying the bearer token attached to
// outgoing requests.
func ContextWithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenContextKey, token)
}

func tokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenContextKey).(string)
	return token
}

// Observer receives one callback per completed upstream request. Used to
// feed the perf collector without this package depending on it. A zero
// status means the request never reached the backend.
type Observer interface {
	ObserveUpstream(method, endpoint string, status int, durationMs float64)
}

// Client issues requests against the backend API base URL.
type Client struct {
	baseURL       string
	publicBaseURL string
	http          *http.Client
	observer      Observer
}

// SetObserver attaches an upstream observer. Call before the client is
// shared across goroutines.
func (c *Client) SetObserver(o Observer) {
	c.observer = o
}

// New creates a gateway client for the given base URL (including the API
// version prefix, e.g. http://backend:8000/api/v1).
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    http.DefaultClient,
	}
}

// NewWithHTTPClient creates a gateway client using a custom http.Client.
// Intended for tests.
func NewWithHTTPClient(baseURL string, hc *http.Client) *Client {
	c := New(baseURL)
	c.http = hc
	return c
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SetPublicBaseURL configures the browser-facing address of the backend. The
// server often reaches the backend over an internal hostname (a container or
// cluster address) that browsers cannot resolve; asset URLs emitted into HTML
// are rewritten onto this address.
func (c *Client) SetPublicBaseURL(u string) {
	c.publicBaseURL = strings.TrimRight(u, "/")
}

// PublicURL rewrites a backend-relative or internal-host URL into one the
// browser can fetch. URLs outside the backend pass through unchanged.
func (c *Client) PublicURL(u string) string {
	if u == "" || c.publicBaseURL == "" {
		return u
	}
	if strings.HasPrefix(u, c.baseURL) {
		return c.publicBaseURL + strings.TrimPrefix(u, c.baseURL)
	}
	if strings.HasPrefix(u, "/") {
		return c.publicBaseURL + u
	}
	return u
}

func (c *Client) Get(ctx context.Context, endpoint string) Result {
	return c.request(ctx, http.MethodGet, endpoint, nil)
}

func (c *Client) Post(ctx context.Context, endpoint string, body any) Result {
	return c.request(ctx, http.MethodPost, endpoint, body)
}

func (c *Client) Put(ctx context.Context, endpoint string, body any) Result {
	return c.request(ctx, http.MethodPut, endpoint, body)
}

func (c *Client) Patch(ctx context.Context, endpoint string, body any) Result {
	return c.request(ctx, http.MethodPatch, endpoint, body)
}

func (c *Client) Delete(ctx context.Context, endpoint string) Result {
	return c.request(ctx, http.MethodDelete, endpoint, nil)
}

// envelope is the wrapped response shape some backend paths return.
type envelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// errorBody covers the error shapes the backend has been observed to return.
type errorBody struct {
	Errors  FieldErrors `json:"errors"`
	Message string      `json:"message"`
	Error   *struct {
		Message string      `json:"message"`
		Details FieldErrors `json:"details"`
	} `json:"error"`
}

// request performs one best-effort call. No retry, no timeout beyond the
// http.Client's; failures are returned, never raised.
func (c *Client) request(ctx context.Context, method, endpoint string, body any) Result {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return Result{Errors: FieldErrors{"request": {fmt.Sprintf("could not encode request: %v", err)}}}
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return Result{Errors: FieldErrors{"request": {fmt.Sprintf("could not build request: %v", err)}}}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token := tokenFromContext(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	elapsedMs := float64(time.Since(start).Microseconds()) / 1000.0
	if err != nil {
		if c.observer != nil {
			c.observer.ObserveUpstream(method, endpoint, 0, elapsedMs)
		}
		slog.Error("api_request_failed", "method", method, "endpoint", endpoint, "error", err)
		return Result{Errors: FieldErrors{"network": {"Network error. Please try again."}}}
	}
	if c.observer != nil {
		c.observer.ObserveUpstream(method, endpoint, resp.StatusCode, elapsedMs)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		slog.Error("api_read_failed", "method", method, "endpoint", endpoint, "error", err)
		return Result{Errors: FieldErrors{"network": {"Network error. Please try again."}}}
	}

	isJSON := strings.Contains(resp.Header.Get("Content-Type"), "application/json")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Result{Errors: extractErrors(raw, isJSON, resp.StatusCode)}
	}

	if !isJSON || len(raw) == 0 {
		return Result{}
	}
	return Result{Data: normalizePayload(raw)}
}

// normalizePayload unwraps the {success, data, message} envelope when
// present; bare payloads pass through unchanged, so both response shapes
// look identical to callers.
func normalizePayload(raw []byte) json.RawMessage {
	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && env.Success != nil && env.Data != nil {
		return env.Data
	}
	return raw
}

// extractErrors folds a non-2xx body into field errors, synthesizing a
// single message when the backend gives nothing usable.
func extractErrors(raw []byte, isJSON bool, status int) FieldErrors {
	if isJSON {
		var eb errorBody
		if err := json.Unmarshal(raw, &eb); err == nil {
			if len(eb.Errors) > 0 {
				return eb.Errors
			}
			if eb.Error != nil && len(eb.Error.Details) > 0 {
				return eb.Error.Details
			}
			if eb.Message != "" {
				return FieldErrors{"message": {eb.Message}}
			}
			if eb.Error != nil && eb.Error.Message != "" {
				return FieldErrors{"message": {eb.Error.Message}}
			}
		}
	}
	return FieldErrors{"message": {fmt.Sprintf("An error occurred (HTTP %d)", status)}}
}
