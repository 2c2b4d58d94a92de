package resource

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"

	"go.uber.org/zap"

	stdnet "wisp/std/net"
)

// ResponseType classifies a response the way the Fetch standard does. Only
// basic responses are produced.
type ResponseType int

const (
	Basic ResponseType = iota
)

func (t ResponseType) String() string {
	if t == Basic {
		return "basic"
	}
	return fmt.Sprintf("ResponseType(%d)", int(t))
}

type Response struct {
	Type    ResponseType
	URL     *url.URL
	Status  int
	Headers http.Header
	Data    []byte
}

type FetchErrorKind int

const (
	NetworkError FetchErrorKind = iota
	URLParseError
	SchemeUnsupportedError
)

var (
	ErrNetwork           = errors.New("network error")
	ErrURLParse          = errors.New("invalid url")
	ErrSchemeUnsupported = errors.New("unsupported url scheme")
)

func (k FetchErrorKind) sentinel() error {
	switch k {
	case URLParseError:
		return ErrURLParse
	case SchemeUnsupportedError:
		return ErrSchemeUnsupported
	}
	return ErrNetwork
}

// FetchError matches the sentinel of its kind with errors.Is and unwraps to
// the underlying cause.
type FetchError struct {
	Kind FetchErrorKind
	URL  string
	Err  error
}

func (e *FetchError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("fetching %s: %v", e.URL, e.Kind.sentinel())
	}
	return fmt.Sprintf("fetching %s: %v: %v", e.URL, e.Kind.sentinel(), e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

func (e *FetchError) Is(target error) bool { return target == e.Kind.sentinel() }

// Fetcher retrieves resources by absolute URL.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (*Response, error)
}

// DefaultFetcher reads file URLs from the local file system and fetches
// http and https URLs over the network.
type DefaultFetcher struct {
	client    *http.Client
	userAgent string
	log       *zap.Logger
}

// NewFetcher creates a DefaultFetcher. A nil client uses the default
// network timeout and an empty userAgent the default agent string.
func NewFetcher(client *http.Client, userAgent string, log *zap.Logger) *DefaultFetcher {
	if client == nil {
		client = stdnet.NewClient(0)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &DefaultFetcher{client: client, userAgent: userAgent, log: log.Named("fetch")}
}

func (f *DefaultFetcher) Fetch(ctx context.Context, rawURL string) (*Response, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, &FetchError{Kind: URLParseError, URL: rawURL, Err: err}
	}
	if u.Scheme == "" {
		return nil, &FetchError{Kind: URLParseError, URL: rawURL, Err: errors.New("missing scheme")}
	}

	switch u.Scheme {
	case "file":
		f.log.Info("local resource requested", zap.String("path", u.Path))
		if err := ctx.Err(); err != nil {
			return nil, &FetchError{Kind: NetworkError, URL: rawURL, Err: err}
		}
		data, err := os.ReadFile(u.Path)
		if err != nil {
			return nil, &FetchError{Kind: NetworkError, URL: rawURL, Err: err}
		}
		return &Response{
			Type:    Basic,
			URL:     u,
			Status:  http.StatusOK,
			Headers: http.Header{},
			Data:    data,
		}, nil
	case "http", "https":
		f.log.Info("remote resource requested", zap.String("url", u.String()))
		res, err := stdnet.Fetch(ctx, f.client, u.String(), f.userAgent)
		if err != nil {
			return nil, &FetchError{Kind: NetworkError, URL: rawURL, Err: err}
		}
		return &Response{
			Type:    Basic,
			URL:     res.URL,
			Status:  res.Status,
			Headers: res.Header,
			Data:    res.Body,
		}, nil
	}
	return nil, &FetchError{Kind: SchemeUnsupportedError, URL: rawURL, Err: fmt.Errorf("scheme %q", u.Scheme)}
}
