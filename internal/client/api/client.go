// Package api is the generic REST request executor used by the client
// services. It joins paths onto a base URL, encodes JSON bodies, injects the
// bearer credential on protected requests and decodes backend rejections into
// *Error.
//
// Protected requests answered with 401 trigger the unauthorized handler,
// which the application wires to a forced logout.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/expenseshare/internal/common"
	"github.com/dmitrijs2005/expenseshare/internal/logging"
)

const contentTypeJSON = "application/json"

// TokenSource yields the stored credential, if any.
type TokenSource interface {
	Token(ctx context.Context) (string, bool)
}

// RequestOptions tune a single request.
type RequestOptions struct {
	// RequireToken attaches "Authorization: Bearer <token>" and makes a 401
	// response fire the unauthorized handler.
	RequireToken bool
	ContentType  string
	APIKey       string
	XAPIKey      string
	StreamUserID string
	NoCache      bool
	// Query values that are nil or "" are dropped.
	Query map[string]any
}

type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	logger  logging.Logger

	mu             sync.RWMutex
	onUnauthorized func(ctx context.Context)
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http = &http.Client{Timeout: d} }
}

func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

func WithLogger(l logging.Logger) Option {
	return func(c *Client) { c.logger = l.With("module", "api") }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
		logger:  logging.NewDiscardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetUnauthorizedHandler installs fn as the reaction to a 401 on a protected
// request. Passing nil removes it.
func (c *Client) SetUnauthorizedHandler(fn func(ctx context.Context)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUnauthorized = fn
}

func (c *Client) unauthorizedHandler() func(ctx context.Context) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.onUnauthorized
}

// URL resolves path against the base URL and appends the non-empty query
// values. Absolute http(s) URLs are used as given.
func (c *Client) URL(path string, query map[string]any) string {
	u := path
	if !strings.HasPrefix(path, "https://") && !strings.HasPrefix(path, "http://") {
		u = c.baseURL + "/" + strings.TrimLeft(path, "/")
	}

	values := url.Values{}
	for k, v := range query {
		if v == nil {
			continue
		}
		s := fmt.Sprint(v)
		if s == "" {
			continue
		}
		values.Set(k, s)
	}
	if len(values) == 0 {
		return u
	}
	sep := "?"
	if strings.Contains(u, "?") {
		sep = "&"
	}
	return u + sep + values.Encode()
}

func (c *Client) Get(ctx context.Context, path string, out any, opts RequestOptions) error {
	return c.Do(ctx, http.MethodGet, path, nil, out, opts)
}

func (c *Client) Post(ctx context.Context, path string, body, out any, opts RequestOptions) error {
	return c.Do(ctx, http.MethodPost, path, body, out, opts)
}

func (c *Client) Put(ctx context.Context, path string, body, out any, opts RequestOptions) error {
	return c.Do(ctx, http.MethodPut, path, body, out, opts)
}

func (c *Client) Patch(ctx context.Context, path string, body, out any, opts RequestOptions) error {
	return c.Do(ctx, http.MethodPatch, path, body, out, opts)
}

func (c *Client) Delete(ctx context.Context, path string, body, out any, opts RequestOptions) error {
	return c.Do(ctx, http.MethodDelete, path, body, out, opts)
}

// Do performs exactly one attempt. A transport failure is reported as
// ErrNetwork (joined with the context error when the call was cancelled); a
// non-2xx answer as *Error. On success the body is decoded into out, which
// may be nil, a *[]byte for the raw body, or any JSON target.
func (c *Client) Do(ctx context.Context, method, path string, body, out any, opts RequestOptions) error {
	req, err := c.newRequest(ctx, method, path, body, opts)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%w: %w", ErrNetwork, ctxErr)
		}
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: reading response: %v", ErrNetwork, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := decodeError(resp.StatusCode, data)
		if resp.StatusCode == http.StatusUnauthorized && opts.RequireToken {
			c.logger.Warn(ctx, "protected request rejected as unauthorized", "method", method, "path", path)
			if fn := c.unauthorizedHandler(); fn != nil {
				fn(ctx)
			}
		}
		return apiErr
	}

	return decodeBody(data, out)
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any, opts RequestOptions) (*http.Request, error) {
	contentType := opts.ContentType
	if contentType == "" {
		contentType = contentTypeJSON
	}

	reader, err := encodeBody(body, contentType)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.URL(path, opts.Query), reader)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", contentTypeJSON)
	if opts.APIKey != "" {
		req.Header.Set("api-key", opts.APIKey)
	}
	if opts.StreamUserID != "" {
		req.Header.Set("stream-user-id", opts.StreamUserID)
	}
	if opts.XAPIKey != "" {
		req.Header.Set("x-api-key", opts.XAPIKey)
	}
	if opts.NoCache {
		req.Header.Set("Cache-Control", "no-cache, no-store, must-revalidate, max-age=0")
	}
	if opts.RequireToken && c.tokens != nil {
		if token, ok := c.tokens.Token(ctx); ok {
			req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
		}
	}
	return req, nil
}

func encodeBody(body any, contentType string) (io.Reader, error) {
	if body == nil {
		return nil, nil
	}
	switch b := body.(type) {
	case io.Reader:
		return b, nil
	case []byte:
		return bytes.NewReader(b), nil
	case string:
		if contentType != contentTypeJSON {
			return strings.NewReader(b), nil
		}
	}
	if contentType != contentTypeJSON {
		return nil, fmt.Errorf("cannot encode %T as %s", body, contentType)
	}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding request body: %w", err)
	}
	return bytes.NewReader(data), nil
}

func decodeBody(data []byte, out any) error {
	if out == nil {
		return nil
	}
	if raw, ok := out.(*[]byte); ok {
		*raw = append((*raw)[:0], data...)
		return nil
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func decodeError(status int, data []byte) *Error {
	apiErr := &Error{}
	if len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, apiErr); err != nil {
			apiErr = &Error{}
		}
	}
	apiErr.Status = status
	return apiErr
}
