package catalog

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	require.NoError(t, err)
	return c
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestNewClientRejectsInvalidBase(t *testing.T) {
	_, err := NewClient("localhost:8080")
	assert.Error(t, err)
}

func TestClientListSendsTokenAndCategory(t *testing.T) {
	var gotQuery url.Values
	var gotAccept, gotUserAgent string
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		gotAccept = r.Header.Get("Accept")
		gotUserAgent = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(`{"status":"success","data":[{"name":"A","id_kp":1},null,{"name":"B"}]}`))
	})

	items, err := c.List(testContext(t), "secret", "serial")
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B"}, titles(items))
	assert.Equal(t, "secret", gotQuery.Get(ParamToken))
	assert.Equal(t, "serial", gotQuery.Get(ParamList))
	assert.Equal(t, "application/json", gotAccept)
	assert.Equal(t, defaultUserAgent, gotUserAgent)
}

func TestClientSearchEncodesQuery(t *testing.T) {
	var gotQuery url.Values
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(`{"status":"success","data":{"1":{"name":"Heat"}}}`))
	})

	items, err := c.Search(testContext(t), "t", SearchQuery{Name: "Heat", Year: " ", Category: "movie"})
	require.NoError(t, err)

	assert.Equal(t, []string{"Heat"}, titles(items))
	assert.Equal(t, "Heat", gotQuery.Get(ParamName))
	assert.Equal(t, "movie", gotQuery.Get(ParamList))
	assert.False(t, gotQuery.Has(ParamYear))
}

func TestClientFetchErrors(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{
			name:   "http status",
			status: http.StatusBadGateway,
			body:   `{"status":"success","data":[]}`,
			check: func(t *testing.T, err error) {
				var target *TransportError
				require.ErrorAs(t, err, &target)
				assert.Equal(t, http.StatusBadGateway, target.StatusCode)
			},
		},
		{
			name:   "not json",
			status: http.StatusOK,
			body:   `<html>maintenance</html>`,
			check: func(t *testing.T, err error) {
				var target *DecodeError
				require.ErrorAs(t, err, &target)
				assert.Error(t, errors.Unwrap(err))
			},
		},
		{
			name:   "application error with message",
			status: http.StatusOK,
			body:   `{"status":"error","error_info":"token expired"}`,
			check: func(t *testing.T, err error) {
				var target *ApplicationError
				require.ErrorAs(t, err, &target)
				assert.Equal(t, "token expired", err.Error())
			},
		},
		{
			name:   "application error without message",
			status: http.StatusOK,
			body:   `{"status":false,"error_info":{"code":3}}`,
			check: func(t *testing.T, err error) {
				var target *ApplicationError
				require.ErrorAs(t, err, &target)
				assert.Equal(t, "request was not successful", err.Error())
			},
		},
		{
			name:   "valid non-object json",
			status: http.StatusOK,
			body:   `[1,2]`,
			check: func(t *testing.T, err error) {
				var target *ApplicationError
				require.ErrorAs(t, err, &target)
				assert.Equal(t, "request was not successful", err.Error())
			},
		},
		{
			name:   "json string",
			status: http.StatusOK,
			body:   `"oops"`,
			check: func(t *testing.T, err error) {
				var target *ApplicationError
				require.ErrorAs(t, err, &target)
			},
		},
		{
			name:   "json number",
			status: http.StatusOK,
			body:   `42`,
			check: func(t *testing.T, err error) {
				var target *ApplicationError
				require.ErrorAs(t, err, &target)
				var decodeErr *DecodeError
				assert.False(t, errors.As(err, &decodeErr))
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			})
			_, err := c.Fetch(testContext(t), "secret", Params{ParamList: "movie"})
			require.Error(t, err)
			assert.NotContains(t, err.Error(), "secret")
			tc.check(t, err)
		})
	}
}

func TestClientFetchReturnsNilDataWhenAbsent(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"success"}`))
	})
	data, err := c.Fetch(testContext(t), "t", nil)
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestClientTransportFailureRedactsToken(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	base := server.URL
	server.Close()

	c, err := NewClient(base)
	require.NoError(t, err)

	_, err = c.Fetch(testContext(t), "secret", Params{ParamList: "movie"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "execute request")
	assert.NotContains(t, err.Error(), "secret")
}

func TestDetailsUsesKinopoiskOverIMDb(t *testing.T) {
	var gotQuery url.Values
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(`{"status":"success","data":{"name":"Heat","id_kp":"42","description":"Full text"}}`))
	})

	summary := Item{KinopoiskID: "42", IMDbID: "tt0113277", Name: "Heat"}
	detailed := c.Details(testContext(t), "t", summary)

	assert.Equal(t, "42", gotQuery.Get(ParamKinopoisk))
	assert.False(t, gotQuery.Has(ParamIMDb))
	assert.Equal(t, "Full text", detailed.Summary())
	assert.Equal(t, summary.Key(), detailed.Key())
}

func TestDetailsWithoutIdentifierSkipsRequest(t *testing.T) {
	var hits atomic.Int32
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	})

	item := Item{Description: "orphan"}
	assert.Equal(t, item, c.Details(testContext(t), "t", item))
	assert.Zero(t, hits.Load())
}

func TestDetailsFallsBackToSummary(t *testing.T) {
	cases := map[string]func(w http.ResponseWriter){
		"server error": func(w http.ResponseWriter) { w.WriteHeader(http.StatusInternalServerError) },
		"empty result": func(w http.ResponseWriter) { _, _ = w.Write([]byte(`{"status":"success","data":[]}`)) },
		"app error":    func(w http.ResponseWriter) { _, _ = w.Write([]byte(`{"status":"error"}`)) },
	}
	for name, respond := range cases {
		t.Run(name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { respond(w) }))
			t.Cleanup(server.Close)

			var logs bytes.Buffer
			c, err := NewClient(server.URL, WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))
			require.NoError(t, err)

			summary := Item{IMDbID: "tt1", Name: "Summary"}
			assert.Equal(t, summary, c.Details(testContext(t), "secret", summary))
			assert.Contains(t, logs.String(), "detail fetch failed")
			assert.NotContains(t, logs.String(), "secret")
		})
	}
}
