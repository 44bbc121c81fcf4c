// internal/app/system/studiesapi/client.go
package studiesapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/dalemusser/humorproject/internal/app/system/inputval"
	"github.com/dalemusser/humorproject/internal/domain/models"
	"go.uber.org/zap"
)

// ErrNotConfigured is returned when no base URL was provided.
var ErrNotConfigured = errors.New("studiesapi: base URL not configured")

// User-facing messages.
const (
	MsgNotConfigured = "The studies REST API URL is not configured."
	MsgNotFound      = "No humor studies found for this account."
	MsgUnexpected    = "Unexpected studies response."
	MsgUnavailable   = "Unable to load studies."
)

// maxErrorBody caps how much of a failed response is read for its message.
const maxErrorBody = 4 << 10

// Error is a failed lookup whose Message is safe to show to the user.
type Error struct {
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("studiesapi: status %d: %s", e.Status, e.Message)
	}
	return "studiesapi: " + e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Message returns the text to render for err. Unknown errors map to a
// generic message.
func Message(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrNotConfigured) {
		return MsgNotConfigured
	}
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return MsgUnavailable
}

// Client talks to the external studies REST API.
type Client struct {
	base *url.URL
	http *http.Client
	log  *zap.Logger
}

// New builds a Client. An empty baseURL yields a client whose Fetch
// always returns ErrNotConfigured.
func New(baseURL string, timeout time.Duration, logger *zap.Logger) (*Client, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Client{
		http: &http.Client{Timeout: timeout},
		log:  logger,
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return c, nil
	}
	if !inputval.IsValidHTTPURL(baseURL) {
		return nil, fmt.Errorf("studiesapi: base URL must be an absolute http or https URL, got %q", baseURL)
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("studiesapi: parse base URL: %w", err)
	}
	c.base = u
	return c, nil
}

// Configured reports whether a base URL is set.
func (c *Client) Configured() bool {
	return c != nil && c.base != nil
}

// Fetch returns the studies assigned to email, ordered by start time with
// undated studies last.
func (c *Client) Fetch(ctx context.Context, email string) ([]models.Study, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	endpoint := c.base.ResolveReference(&url.URL{Path: "/studies"})
	q := endpoint.Query()
	q.Set("email", email)
	endpoint.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-store")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("studies request failed", zap.String("url", endpoint.Redacted()), zap.Error(err))
		return nil, &Error{Message: MsgUnavailable, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		var payload struct {
			Message string `json:"message"`
		}
		msg := MsgNotFound
		if json.NewDecoder(io.LimitReader(resp.Body, maxErrorBody)).Decode(&payload) == nil && payload.Message != "" {
			msg = payload.Message
		}
		return nil, &Error{Status: resp.StatusCode, Message: msg}

	case resp.StatusCode < 200 || resp.StatusCode > 299:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		msg := strings.TrimSpace(string(body))
		if msg == "" {
			msg = fmt.Sprintf("Request failed (%d).", resp.StatusCode)
		}
		c.log.Warn("studies request rejected", zap.Int("status", resp.StatusCode))
		return nil, &Error{Status: resp.StatusCode, Message: msg}
	}

	var studies []models.Study
	if err := json.NewDecoder(resp.Body).Decode(&studies); err != nil || studies == nil {
		if studies == nil && err == nil {
			err = errors.New("payload is not an array")
		}
		c.log.Warn("studies response malformed", zap.Error(err))
		return nil, &Error{Status: resp.StatusCode, Message: MsgUnexpected, Err: err}
	}

	Sort(studies)
	return studies, nil
}

// Sort orders studies by start time ascending. Studies without a start
// time keep their relative order at the end.
func Sort(studies []models.Study) {
	sort.SliceStable(studies, func(i, j int) bool {
		a, b := studies[i].StartAt, studies[j].StartAt
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		}
		return a.Before(*b)
	})
}
