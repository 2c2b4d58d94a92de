package resource

import (
	"net/url"
	"path/filepath"
	"strings"

	stdnet "wisp/std/net"
)

// NormalizeFileURL turns a command line argument into a URL. Network and
// file URLs are returned unchanged, absolute paths get the file scheme and
// relative paths are taken relative to baseDir.
func NormalizeFileURL(baseDir, u string) string {
	if stdnet.IsNetworkURL(u) || strings.HasPrefix(u, "file://") {
		return u
	}
	if filepath.IsAbs(u) {
		return "file://" + filepath.ToSlash(u)
	}
	return "file://" + filepath.ToSlash(filepath.Join(baseDir, u))
}

// ResolveURL resolves ref, typically a link target, against the URL of the
// current page.
func ResolveURL(current, ref string) (string, error) {
	if stdnet.IsNetworkURL(ref) || strings.HasPrefix(ref, "file://") {
		return ref, nil
	}
	if _, err := url.Parse(current); err != nil {
		return "", &FetchError{Kind: URLParseError, URL: current, Err: err}
	}
	if _, err := url.Parse(ref); err != nil {
		return "", &FetchError{Kind: URLParseError, URL: ref, Err: err}
	}
	return stdnet.ResolveURL(current, ref), nil
}
