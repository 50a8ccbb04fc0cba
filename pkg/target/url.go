package target

import (
	"errors"
	"net/url"
	"strings"

	"github.com/vango-dev/nestroute/pkg/routepath"
)

// ErrCannotBeABase is returned when a target is rendered against a URL that
// cannot host a path, such as "mailto:someone@example.com". It reports a
// precondition violation, not a routing miss.
var ErrCannotBeABase = errors.New("target: base URL cannot be a base")

// AppendURL renders t below base.
//
// The rendered segments are appended to the base path (an empty trailing base
// segment is dropped first) and the base query is replaced by the rendered
// query. An empty rendered query leaves no "?". Any fragment is dropped.
func AppendURL(base string, t Target) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	if u.Opaque != "" {
		return "", ErrCannotBeABase
	}

	path, query := RenderPath(t)
	prefix := strings.TrimSuffix(u.EscapedPath(), "/")

	escaped := prefix
	if len(path) > 0 {
		escaped += routepath.JoinPath(path)
	}
	if escaped == "" && (u.Host != "" || strings.HasPrefix(base, "/")) {
		escaped = "/"
	}

	decoded, err := url.PathUnescape(escaped)
	if err != nil {
		return "", err
	}
	u.Path = decoded
	u.RawPath = escaped
	u.RawQuery = query.Encode()
	u.ForceQuery = false
	u.Fragment = ""
	u.RawFragment = ""
	return u.String(), nil
}

// ParseURL parses the part of full that lies below base.
//
// As many leading path segments as base has are discarded from full; the rest
// is handed to parse together with every query pair of full. A full URL with
// fewer segments than base is a miss.
func ParseURL[T any](base, full string, parse ParseFunc[T]) (T, bool) {
	var zero T

	baseURL, err := url.Parse(base)
	if err != nil || baseURL.Opaque != "" {
		return zero, false
	}
	fullURL, err := url.Parse(full)
	if err != nil || fullURL.Opaque != "" {
		return zero, false
	}

	segments, err := routepath.SplitPath(fullURL.EscapedPath())
	if err != nil {
		return zero, false
	}
	skip := routepath.SegmentCount(baseURL.EscapedPath())
	if len(segments) < skip {
		return zero, false
	}
	return parse(segments[skip:], routepath.ParseQuery(fullURL.RawQuery))
}
