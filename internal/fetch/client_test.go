package fetch_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshwaterdesigns/freshwater-cdn/internal/fetch"
)

func TestClientInjectsHeaders(t *testing.T) {
	var gotUA, gotCookie string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotCookie = r.Header.Get("Cookie")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client, err := fetch.NewClient(fetch.ClientOptions{
		Timeout:   5 * time.Second,
		UserAgent: "freshwater-test/1.0",
		Cookie:    "session=abc",
	})
	require.NoError(t, err)

	resp, err := client.Get(srv.URL)
	require.NoError(t, err)
	_ = resp.Body.Close()

	assert.Equal(t, "freshwater-test/1.0", gotUA)
	assert.Equal(t, "session=abc", gotCookie)
}

func TestCookieFileFirstLineWins(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cookies.txt")
	require.NoError(t, os.WriteFile(path, []byte("\n  jar=42\nignored=1\n"), 0644))

	var gotCookie string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCookie = r.Header.Get("Cookie")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client, err := fetch.NewClient(fetch.ClientOptions{Timeout: 5 * time.Second, CookieFile: path})
	require.NoError(t, err)

	resp, err := client.Get(srv.URL)
	require.NoError(t, err)
	_ = resp.Body.Close()

	assert.Equal(t, "jar=42", gotCookie)
}

func TestDoWithRetryRecoversFrom5xx(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client, err := fetch.NewClient(fetch.ClientOptions{Timeout: 5 * time.Second})
	require.NoError(t, err)

	req, err := http.NewRequest("GET", srv.URL, nil)
	require.NoError(t, err)

	resp, err := fetch.DoWithRetry(client, req, 3, time.Millisecond)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 3, hits.Load())
}

func TestDoWithRetryGivesUp(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client, err := fetch.NewClient(fetch.ClientOptions{Timeout: 5 * time.Second})
	require.NoError(t, err)

	req, err := http.NewRequest("GET", srv.URL, nil)
	require.NoError(t, err)

	resp, err := fetch.DoWithRetry(client, req, 2, time.Millisecond)
	require.Error(t, err)
	if resp != nil {
		_ = resp.Body.Close()
	}
}

func TestDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><div class="js-scroller"></div></body></html>`))
	}))
	defer srv.Close()

	client, err := fetch.NewClient(fetch.ClientOptions{Timeout: 5 * time.Second})
	require.NoError(t, err)

	doc, err := fetch.Document(context.Background(), client, srv.URL)
	require.NoError(t, err)

	assert.Equal(t, 1, doc.Find(".js-scroller").Length())
}

func TestPickUserAgent(t *testing.T) {
	assert.Equal(t, "custom", fetch.PickUserAgent("custom"))
	assert.Contains(t, fetch.PickUserAgent(""), "Mozilla/5.0")
}
