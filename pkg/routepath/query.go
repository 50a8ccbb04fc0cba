package routepath

import (
	"net/url"
	"strings"
)

// Pair is a single key/value entry of a query string.
type Pair struct {
	Key   string
	Value string
}

// Query is an ordered sequence of query pairs.
// Keys may repeat; the order of values sharing a key is significant.
type Query []Pair

// Add appends a pair.
func (q *Query) Add(key, value string) {
	*q = append(*q, Pair{Key: key, Value: value})
}

// Values returns every value stored under key, in query order.
func (q Query) Values(key string) []string {
	var values []string
	for _, p := range q {
		if p.Key == key {
			values = append(values, p.Value)
		}
	}
	return values
}

// Get returns the first value stored under key.
func (q Query) Get(key string) (string, bool) {
	for _, p := range q {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

// Encode serializes the pairs in order, form-escaping keys and values.
// An empty query encodes to "".
func (q Query) Encode() string {
	if len(q) == 0 {
		return ""
	}
	var b strings.Builder
	for i, p := range q {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.Value))
	}
	return b.String()
}

// ParseQuery decodes a raw query string (without the leading "?") into
// ordered pairs. A piece without "=" becomes a pair with an empty value.
// Pieces that fail to decode are skipped: query parameters never fail a parse.
func ParseQuery(raw string) Query {
	var query Query
	for raw != "" {
		var piece string
		piece, raw, _ = strings.Cut(raw, "&")
		if piece == "" {
			continue
		}
		rawKey, rawValue, _ := strings.Cut(piece, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			continue
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			continue
		}
		query = append(query, Pair{Key: key, Value: value})
	}
	return query
}
