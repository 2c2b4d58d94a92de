package resource

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "index.html")
	require.NoError(t, os.WriteFile(path, []byte("<p>local</p>"), 0o644))

	res, err := NewFetcher(nil, "", nil).Fetch(context.Background(), "file://"+filepath.ToSlash(path))
	require.NoError(t, err)
	assert.Equal(t, Basic, res.Type)
	assert.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, "<p>local</p>", string(res.Data))
	assert.Equal(t, "file", res.URL.Scheme)
}

func TestFetch_MissingFile(t *testing.T) {
	_, err := NewFetcher(nil, "", nil).Fetch(context.Background(), "file:///definitely/not/here.html")
	assert.ErrorIs(t, err, ErrNetwork)
	assert.ErrorIs(t, err, os.ErrNotExist)

	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, NetworkError, fe.Kind)
}

func TestFetch_HTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "wisp-test", r.Header.Get("User-Agent"))
		w.Header().Set("X-Test", "yes")
		_, _ = w.Write([]byte("<p>remote</p>"))
	}))
	defer srv.Close()

	res, err := NewFetcher(srv.Client(), "wisp-test", nil).Fetch(context.Background(), srv.URL+"/a")
	require.NoError(t, err)
	assert.Equal(t, "<p>remote</p>", string(res.Data))
	assert.Equal(t, "yes", res.Headers.Get("X-Test"))
	assert.Equal(t, srv.URL+"/a", res.URL.String())
}

func TestFetch_HTTPStatusIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := NewFetcher(srv.Client(), "", nil).Fetch(context.Background(), srv.URL)
	assert.ErrorIs(t, err, ErrNetwork)
}

func TestFetch_Errors(t *testing.T) {
	f := NewFetcher(nil, "", nil)
	tests := []struct {
		url  string
		want error
	}{
		{"ftp://example.com/x", ErrSchemeUnsupported},
		{"mailto:someone@example.com", ErrSchemeUnsupported},
		{"://broken", ErrURLParse},
		{"no-scheme.html", ErrURLParse},
	}
	for _, tt := range tests {
		_, err := f.Fetch(context.Background(), tt.url)
		assert.ErrorIs(t, err, tt.want, "url %q", tt.url)
	}
}

func TestFetch_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewFetcher(nil, "", nil).Fetch(ctx, "file:///etc/hosts")
	assert.ErrorIs(t, err, context.Canceled)
}
