// Package budgea implements the HTTP client for the Budgea/Powens banking
// aggregation API. Every call resolves its credentials at call time, issues
// exactly one request, and returns the raw JSON body. There is no retry: a
// failed request is a failed command, which keeps non-idempotent calls such
// as transfer creation exactly-once.
package budgea

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/derickschaefer/biapi/internal/apperr"
)

// UserAgent is sent on every request.
const UserAgent = "biapi-cli/1.0"

// Doer sends one HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// CredentialSource supplies the endpoint and bearer token for a request.
// *auth.Resolver satisfies it.
type CredentialSource interface {
	AccessToken() (string, error)
	BaseURL() string
}

// Client is the Budgea API HTTP client.
type Client struct {
	creds      CredentialSource
	httpClient Doer
}

// NewClient creates a Client. A nil doer uses http.DefaultClient, leaving
// timeouts to the transport defaults.
func NewClient(creds CredentialSource, doer Doer) *Client {
	if doer == nil {
		doer = http.DefaultClient
	}
	return &Client{creds: creds, httpClient: doer}
}

// Params holds query parameters for a GET. Values may be strings, integers,
// floats, booleans or json.Number; nil values are omitted.
type Params map[string]any

// Values encodes p, skipping nil entries.
func (p Params) Values() url.Values {
	v := url.Values{}
	for k, val := range p {
		switch x := val.(type) {
		case nil:
			continue
		case string:
			v.Set(k, x)
		case int:
			v.Set(k, strconv.Itoa(x))
		case int64:
			v.Set(k, strconv.FormatInt(x, 10))
		case float64:
			v.Set(k, strconv.FormatFloat(x, 'f', -1, 64))
		case bool:
			v.Set(k, strconv.FormatBool(x))
		case json.Number:
			v.Set(k, x.String())
		default:
			v.Set(k, fmt.Sprint(x))
		}
	}
	return v
}

// Keys returns the parameter names that will be sent, sorted.
func (p Params) Keys() []string {
	var keys []string
	for k, v := range p {
		if v != nil {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// Get fetches path with params encoded as the query string.
func (c *Client) Get(ctx context.Context, path string, params Params) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, path, params, nil)
}

// Post sends body as JSON to path.
func (c *Client) Post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, path, nil, jsonBody(body))
}

// Put sends body as JSON to path.
func (c *Client) Put(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPut, path, nil, jsonBody(body))
}

// Delete removes the resource at path. An empty response yields nil.
func (c *Client) Delete(ctx context.Context, path string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// jsonBody makes a nil body encode as an empty object.
func jsonBody(body any) any {
	if body == nil {
		return struct{}{}
	}
	return body
}

// ─── Low-level HTTP ───────────────────────────────────────────────────────────

// do performs one request. Token resolution happens before anything touches
// the network.
func (c *Client) do(ctx context.Context, method, path string, params Params, body any) (json.RawMessage, error) {
	base := c.creds.BaseURL()
	token, err := c.creds.AccessToken()
	if err != nil {
		return nil, err
	}

	reqURL := strings.TrimRight(base, "/") + path
	if len(params) > 0 {
		if q := params.Values().Encode(); q != "" {
			reqURL += "?" + q
		}
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return nil, apperr.Configf("building request for %s: %v", reqURL, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", UserAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	slog.Debug("api request", "method", method, "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &apperr.NetworkError{Method: method, URL: reqURL, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &apperr.NetworkError{Method: method, URL: reqURL, Err: fmt.Errorf("reading body: %w", err)}
	}

	slog.Debug("api response", "method", method, "path", path, "status", resp.StatusCode, "bytes", len(raw))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &apperr.APIError{Status: resp.StatusCode, Raw: string(raw)}
		var parsed any
		if json.Unmarshal(raw, &parsed) == nil {
			apiErr.Body = parsed
		}
		return nil, apiErr
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, nil
	}
	if !json.Valid(trimmed) {
		return nil, fmt.Errorf("decoding response from %s %s: body is not valid JSON", method, path)
	}
	return json.RawMessage(trimmed), nil
}

// ─── Path helpers ─────────────────────────────────────────────────────────────

// resource joins path segments, escaping each caller-supplied id.
func resource(base string, ids ...string) string {
	var b strings.Builder
	b.WriteString(base)
	for _, id := range ids {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(id))
	}
	return b.String()
}

// expandParams returns params carrying expand when it is non-empty.
func expandParams(expand string) Params {
	p := Params{}
	if expand != "" {
		p["expand"] = expand
	}
	return p
}

// Page holds limit/offset pagination, passed through unchanged.
type Page struct {
	Limit  int
	Offset int
}

func (pg Page) params() Params {
	return Params{"limit": pg.Limit, "offset": pg.Offset}
}
