package net

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultUserAgent = "wisp/0.1 (compatible; Go)"
	DefaultTimeout   = 30 * time.Second
)

// NewClient returns an HTTP client with the given overall timeout. A
// non-positive timeout selects DefaultTimeout.
func NewClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// Result is a successful GET.
type Result struct {
	URL    *url.URL // final URL after redirects
	Status int
	Header http.Header
	Body   []byte
}

// StatusError is returned for responses outside the 2xx range.
type StatusError struct {
	URL    string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d fetching %s", e.Status, e.URL)
}

// Fetch retrieves rawURL with a GET request. A nil client uses a fresh one
// with DefaultTimeout, an empty userAgent DefaultUserAgent.
func Fetch(ctx context.Context, client *http.Client, rawURL, userAgent string) (*Result, error) {
	if client == nil {
		client = NewClient(0)
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{URL: rawURL, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	return &Result{
		URL:    resp.Request.URL,
		Status: resp.StatusCode,
		Header: resp.Header,
		Body:   body,
	}, nil
}

// ResolveURL resolves a possibly-relative URI against a base URL.
// If ref is already absolute, it is returned as-is.
func ResolveURL(base, ref string) string {
	baseURL, err := url.Parse(base)
	if err != nil {
		return ref
	}
	refURL, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return baseURL.ResolveReference(refURL).String()
}

// IsNetworkURL returns true if the string looks like an HTTP or HTTPS URL.
func IsNetworkURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
