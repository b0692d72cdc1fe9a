// Package adguard is the single point of contact with an AdGuard Home
// instance's REST API under /control, authenticated with HTTP Basic Auth.
// Every error leaving this package has credentials scrubbed from it.
package adguard

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// ErrAuth is the fixed authentication failure message. It deliberately
// carries no server detail so credentials can never ride along.
var ErrAuth = errors.New("Authentication failed -- check ADGUARD_USERNAME and ADGUARD_PASSWORD")

// Client talks to one AdGuard Home instance. It holds no mutable state
// after construction and is safe for concurrent use.
type Client struct {
	baseURL  string
	username string
	password string
	http     *http.Client
	logger   *log.Logger
	debug    bool
}

// NewClient creates a client rooted at baseURL (trailing slashes stripped).
// Every request is bound to the given timeout.
func NewClient(baseURL, username, password string, timeout time.Duration, logger *log.Logger, debug bool) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		username: username,
		password: password,
		http:     &http.Client{Timeout: timeout},
		logger:   logger,
		debug:    debug,
	}
}

// BaseURL returns the configured base URL without a trailing slash.
func (c *Client) BaseURL() string { return c.baseURL }

// sanitize scrubs the client's own credentials from a message.
func (c *Client) sanitize(msg string) string {
	return Sanitize(msg, c.username, c.password)
}

func (c *Client) controlURL(path string) string {
	return c.baseURL + "/control/" + strings.TrimLeft(path, "/")
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%s %s: encoding body: %w", method, path, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.controlURL(path), reader)
	if err != nil {
		return nil, fmt.Errorf("%s %s failed: %s", method, path, c.sanitize(err.Error()))
	}
	req.SetBasicAuth(c.username, c.password)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		// Transport failures (including timeouts) can echo the request URL,
		// which may embed credentials; scrub before propagating.
		return nil, fmt.Errorf("%s %s failed: %s", method, path, c.sanitize(err.Error()))
	}
	if c.debug {
		c.logger.Printf("adguard: %s %s -> %s", method, path, resp.Status)
	}
	return resp, nil
}

// statusErr converts a non-2xx response into an error carrying the HTTP
// status code, with the reason phrase sanitized.
func (c *Client) statusErr(method, path string, resp *http.Response) error {
	return fmt.Errorf("%s %s failed: %s", method, path, c.sanitize(resp.Status))
}

func isJSON(contentType string) bool {
	return strings.Contains(strings.ToLower(contentType), "application/json")
}

// Get issues an authenticated GET. On success the body is JSON-decoded when
// the response declares a JSON content type, falling back to the raw text
// when it does not (or when decoding fails).
func (c *Client) Get(ctx context.Context, path string) (any, error) {
	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.statusErr(http.MethodGet, path, resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("GET %s: reading body: %s", path, c.sanitize(err.Error()))
	}
	return decodeBody(resp.Header.Get("Content-Type"), data), nil
}

// Post issues an authenticated POST. A non-nil body is sent as JSON. A
// success response that declares Content-Length 0 yields the empty string
// (several endpoints answer 200 with no body); otherwise the body is decoded
// like Get.
func (c *Client) Post(ctx context.Context, path string, body any) (any, error) {
	resp, err := c.do(ctx, http.MethodPost, path, body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.statusErr(http.MethodPost, path, resp)
	}

	if resp.Header.Get("Content-Length") == "0" {
		return "", nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("POST %s: reading body: %s", path, c.sanitize(err.Error()))
	}
	return decodeBody(resp.Header.Get("Content-Type"), data), nil
}

// GetRaw issues an authenticated GET and always returns the raw body text,
// regardless of content type. Needed for endpoints serving non-JSON payloads
// such as Apple configuration profiles.
func (c *Client) GetRaw(ctx context.Context, path string) (string, error) {
	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", c.statusErr(http.MethodGet, path, resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("GET %s: reading body: %s", path, c.sanitize(err.Error()))
	}
	return string(data), nil
}

// ValidateConnection checks that the instance is reachable and the
// credentials work, via GET /control/status. 401 and 403 map to ErrAuth;
// any other failure becomes a sanitized connectivity error naming the
// configured base URL.
func (c *Client) ValidateConnection(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodGet, "status", nil)
	if err != nil {
		return fmt.Errorf("cannot reach AdGuard Home at %s: %s", c.baseURL, c.sanitize(err.Error()))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return ErrAuth
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return fmt.Errorf("cannot reach AdGuard Home at %s: %s", c.baseURL, c.sanitize(resp.Status))
	}
	return nil
}

// decodeBody JSON-decodes data when the content type indicates JSON,
// returning the raw text otherwise or when decoding fails.
func decodeBody(contentType string, data []byte) any {
	if isJSON(contentType) {
		var v any
		if err := json.Unmarshal(data, &v); err == nil {
			return v
		}
	}
	return string(data)
}
