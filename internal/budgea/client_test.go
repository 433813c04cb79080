package budgea_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/derickschaefer/biapi/internal/apperr"
	"github.com/derickschaefer/biapi/internal/budgea"
)

// ─── Helpers ──────────────────────────────────────────────────────────────────

// staticCreds is a fixed CredentialSource.
type staticCreds struct {
	base  string
	token string
}

func (s staticCreds) BaseURL() string { return s.base }

func (s staticCreds) AccessToken() (string, error) {
	if s.token == "" {
		return "", apperr.Configf("access token not configured")
	}
	return s.token, nil
}

// countingDoer records how many requests reach the transport.
type countingDoer struct {
	calls int32
	next  budgea.Doer
}

func (d *countingDoer) Do(req *http.Request) (*http.Response, error) {
	atomic.AddInt32(&d.calls, 1)
	if d.next == nil {
		return nil, errors.New("no transport")
	}
	return d.next.Do(req)
}

// captured is the last request seen by the test server.
type captured struct {
	Method string
	Path   string
	Query  map[string][]string
	Header http.Header
	Body   []byte
}

// newServer starts an httptest server that records each request and replies
// with status and body.
func newServer(t *testing.T, status int, body string) (*httptest.Server, *captured, *int32) {
	t.Helper()
	var last captured
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		b, _ := io.ReadAll(r.Body)
		last = captured{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.Query(),
			Header: r.Header.Clone(),
			Body:   b,
		}
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, &last, &hits
}

func newClient(srv *httptest.Server) *budgea.Client {
	return budgea.NewClient(staticCreds{base: srv.URL + "/2.0", token: "tok-123"}, srv.Client())
}

// ─── Credentials ──────────────────────────────────────────────────────────────

func TestMissingTokenFailsBeforeNetwork(t *testing.T) {
	doer := &countingDoer{}
	c := budgea.NewClient(staticCreds{base: "https://demo.biapi.pro/2.0"}, doer)

	for name, call := range map[string]func() error{
		"get":    func() error { _, err := c.Get(context.Background(), "/users/me", nil); return err },
		"post":   func() error { _, err := c.Post(context.Background(), "/auth/init", nil); return err },
		"put":    func() error { _, err := c.Put(context.Background(), "/users/me/transfers/1", nil); return err },
		"delete": func() error { _, err := c.Delete(context.Background(), "/auth/token"); return err },
	} {
		err := call()
		require.Error(t, err, name)
		assert.Equal(t, apperr.KindConfiguration, apperr.KindOf(err), name)
	}
	assert.Zero(t, atomic.LoadInt32(&doer.calls), "no request may reach the transport")
}

// ─── Request construction ─────────────────────────────────────────────────────

func TestGetSendsHeadersAndQuery(t *testing.T) {
	srv, last, _ := newServer(t, http.StatusOK, `{"id":1}`)
	c := newClient(srv)

	data, err := c.Get(context.Background(), "/users/me", budgea.Params{"expand": "accounts"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1}`, string(data))

	assert.Equal(t, http.MethodGet, last.Method)
	assert.Equal(t, "/2.0/users/me", last.Path)
	assert.Equal(t, "accounts", last.Query["expand"][0])
	assert.Equal(t, "Bearer tok-123", last.Header.Get("Authorization"))
	assert.Equal(t, "application/json", last.Header.Get("Accept"))
	assert.Empty(t, last.Header.Get("Content-Type"), "GET has no body")
}

func TestBaseURLTrailingSlash(t *testing.T) {
	srv, last, _ := newServer(t, http.StatusOK, `{}`)
	c := budgea.NewClient(staticCreds{base: srv.URL + "/2.0/", token: "t"}, srv.Client())

	_, err := c.Get(context.Background(), "/banks", nil)
	require.NoError(t, err)
	assert.Equal(t, "/2.0/banks", last.Path)
}

func TestPostSendsJSONBody(t *testing.T) {
	srv, last, _ := newServer(t, http.StatusOK, `{"auth_token":"x","expires_in":1800}`)
	c := newClient(srv)

	_, err := c.InitToken(context.Background(), budgea.InitRequest{ClientID: "cid", ClientSecret: "sec"})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, last.Method)
	assert.Equal(t, "/2.0/auth/init", last.Path)
	assert.Equal(t, "application/json", last.Header.Get("Content-Type"))
	assert.JSONEq(t, `{"client_id":"cid","client_secret":"sec"}`, string(last.Body))
}

func TestPostNilBodyIsEmptyObject(t *testing.T) {
	srv, last, _ := newServer(t, http.StatusOK, `{}`)
	_, err := newClient(srv).Post(context.Background(), "/auth/init", nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(last.Body))
}

func TestAnonymousInitOmitsCredentials(t *testing.T) {
	srv, last, _ := newServer(t, http.StatusOK, `{}`)
	_, err := newClient(srv).InitToken(context.Background(), budgea.InitRequest{})
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(last.Body))
}

// ─── Responses ────────────────────────────────────────────────────────────────

func TestNotFoundIsAPIError(t *testing.T) {
	srv, _, _ := newServer(t, http.StatusNotFound, `{"code":"not_found"}`)
	_, err := newClient(srv).Get(context.Background(), "/users/me/accounts/999", nil)
	require.Error(t, err)

	var apiErr *apperr.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, map[string]any{"code": "not_found"}, apiErr.Body)
	assert.Contains(t, err.Error(), "404")
	assert.Contains(t, err.Error(), "not_found")
}

func TestErrorBodyNotJSONKeepsRawText(t *testing.T) {
	srv, _, _ := newServer(t, http.StatusBadGateway, "upstream unavailable")
	_, err := newClient(srv).Get(context.Background(), "/banks", nil)

	var apiErr *apperr.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Nil(t, apiErr.Body)
	assert.Equal(t, "upstream unavailable", apiErr.Raw)
	assert.Contains(t, err.Error(), "502")
}

func TestServerErrorIsNotRetried(t *testing.T) {
	srv, _, hits := newServer(t, http.StatusInternalServerError, `{"message":"boom"}`)
	_, err := newClient(srv).Post(context.Background(), "/users/me/accounts/1/recipients/2/transfers", map[string]any{"amount": 1})
	require.Error(t, err)
	assert.Equal(t, apperr.KindAPI, apperr.KindOf(err))
	assert.Equal(t, int32(1), atomic.LoadInt32(hits), "exactly one attempt")
}

func TestDeleteEmptyBodyReturnsNil(t *testing.T) {
	srv, last, _ := newServer(t, http.StatusNoContent, "")
	data, err := newClient(srv).RevokeToken(context.Background())
	require.NoError(t, err)
	assert.Nil(t, data)
	assert.Equal(t, http.MethodDelete, last.Method)
	assert.Equal(t, "/2.0/auth/token", last.Path)
}

func TestInvalidSuccessBody(t *testing.T) {
	srv, _, _ := newServer(t, http.StatusOK, "<html>")
	_, err := newClient(srv).Get(context.Background(), "/banks", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not valid JSON")
}

func TestScalarResponse(t *testing.T) {
	srv, _, _ := newServer(t, http.StatusOK, " 42 \n")
	data, err := newClient(srv).Get(context.Background(), "/x", nil)
	require.NoError(t, err)
	assert.Equal(t, "42", string(data))
}

// ─── Transport failures ───────────────────────────────────────────────────────

func TestConnectionRefusedIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c := budgea.NewClient(staticCreds{base: base, token: "t"}, nil)
	_, err := c.Get(context.Background(), "/users/me", nil)
	require.Error(t, err)
	assert.Equal(t, apperr.KindNetwork, apperr.KindOf(err))

	var netErr *apperr.NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, http.MethodGet, netErr.Method)
}

func TestCancelledContextIsNetworkError(t *testing.T) {
	srv, _, _ := newServer(t, http.StatusOK, `{}`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newClient(srv).Get(ctx, "/users/me", nil)
	require.Error(t, err)
	assert.Equal(t, apperr.KindNetwork, apperr.KindOf(err))
	assert.ErrorIs(t, err, context.Canceled)
}

// ─── Params ───────────────────────────────────────────────────────────────────

func TestParamsValuesSkipsNil(t *testing.T) {
	p := budgea.Params{
		"limit":  10,
		"offset": 0,
		"expand": nil,
		"amount": 12.5,
		"flag":   true,
		"num":    json.Number("7"),
	}
	v := p.Values()
	assert.Equal(t, "10", v.Get("limit"))
	assert.Equal(t, "0", v.Get("offset"))
	assert.Equal(t, "12.5", v.Get("amount"))
	assert.Equal(t, "true", v.Get("flag"))
	assert.Equal(t, "7", v.Get("num"))
	_, present := v["expand"]
	assert.False(t, present, "nil values must be omitted")
	assert.Equal(t, []string{"amount", "flag", "limit", "num", "offset"}, p.Keys())
}
