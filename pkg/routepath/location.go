package routepath

import (
	"net/url"
	"strings"
)

// SplitPath splits a path into percent-decoded segments.
//
// The leading slash is dropped, and so is a single trailing empty segment:
// "/bar/42/" yields ["bar" "42"], not ["bar" "42" ""]. The root path yields
// no segments.
func SplitPath(path string) ([]string, error) {
	path = strings.TrimPrefix(path, "/")
	if path == "" {
		return nil, nil
	}

	raw := strings.Split(path, "/")
	if raw[len(raw)-1] == "" {
		raw = raw[:len(raw)-1]
	}

	segments := make([]string, 0, len(raw))
	for _, seg := range raw {
		decoded, err := url.PathUnescape(seg)
		if err != nil {
			return nil, ErrInvalidPercentEscape
		}
		segments = append(segments, decoded)
	}
	return segments, nil
}

// SegmentCount returns the number of segments SplitPath would produce for
// path, without decoding them.
func SegmentCount(path string) int {
	path = strings.TrimPrefix(path, "/")
	if path == "" {
		return 0
	}
	n := strings.Count(path, "/") + 1
	if strings.HasSuffix(path, "/") {
		n--
	}
	return n
}

// JoinPath escapes each segment and joins them with a leading slash.
func JoinPath(segments []string) string {
	if len(segments) == 0 {
		return "/"
	}
	var b strings.Builder
	for _, seg := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(seg))
	}
	return b.String()
}

// SplitLocation splits a location ("/path?query") into decoded path segments
// and ordered query pairs.
func SplitLocation(location string) ([]string, Query, error) {
	path, rawQuery := SplitPathAndQuery(location)
	segments, err := SplitPath(path)
	if err != nil {
		return nil, nil, err
	}
	return segments, ParseQuery(rawQuery), nil
}

// JoinLocation renders segments and query pairs into a location string.
// An empty query renders no "?".
func JoinLocation(segments []string, query Query) string {
	path := JoinPath(segments)
	if encoded := query.Encode(); encoded != "" {
		return path + "?" + encoded
	}
	return path
}

// SplitPathAndQuery splits a location into path and query components.
// The query is returned without the leading "?"; a fragment is discarded.
func SplitPathAndQuery(location string) (path, query string) {
	location, _, _ = strings.Cut(location, "#")
	path, query, _ = strings.Cut(location, "?")
	return path, query
}
