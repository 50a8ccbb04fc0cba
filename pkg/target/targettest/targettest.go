// Package targettest provides assertions for testing routable types.
package targettest

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/vango-dev/nestroute/pkg/routepath"
	"github.com/vango-dev/nestroute/pkg/target"
)

// AssertRoundTrip checks that v renders to a path and query that parse back
// into v, also after the query pairs are shuffled by key.
func AssertRoundTrip[T target.Target](t testing.TB, parse target.ParseFunc[T], v T) {
	t.Helper()

	path, query := target.RenderPath(v)
	got, ok := parse(path, query)
	if !ok {
		t.Errorf("parse(%q, %q) failed for %#v", path, query.Encode(), v)
		return
	}
	if !reflect.DeepEqual(got, v) {
		t.Errorf("parse(render(v)) = %#v, want %#v", got, v)
		return
	}

	shuffled := ShuffleKeys(query, rand.New(rand.NewSource(1)))
	got, ok = parse(path, shuffled)
	if !ok || !reflect.DeepEqual(got, v) {
		t.Errorf("parse with shuffled query %q = %#v, %v, want %#v", shuffled.Encode(), got, ok, v)
	}

	location := target.Location(v)
	got, ok = target.ParseLocation(location, parse)
	if !ok || !reflect.DeepEqual(got, v) {
		t.Errorf("ParseLocation(%q) = %#v, %v, want %#v", location, got, ok, v)
	}
}

// AssertParse checks that location parses into want.
func AssertParse[T any](t testing.TB, parse target.ParseFunc[T], location string, want T) {
	t.Helper()

	got, ok := target.ParseLocation(location, parse)
	if !ok {
		t.Errorf("ParseLocation(%q) failed, want %#v", location, want)
		return
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseLocation(%q) = %#v, want %#v", location, got, want)
	}
}

// AssertNoMatch checks that location does not parse.
func AssertNoMatch[T any](t testing.TB, parse target.ParseFunc[T], location string) {
	t.Helper()

	if got, ok := target.ParseLocation(location, parse); ok {
		t.Errorf("ParseLocation(%q) = %#v, want no match", location, got)
	}
}

// AssertMapperIdempotent checks that re-entering the child hierarchy through
// Up and Down is stable for every parent that routes through it.
func AssertMapperIdempotent[P, C any](t testing.TB, m target.Mapper[P, C], parents ...P) {
	t.Helper()

	for _, p := range parents {
		c, ok := m.Down(p)
		if !ok {
			continue
		}
		again, ok := m.Down(m.Up(c))
		if !ok {
			t.Errorf("Down(Up(%#v)) did not route through the child", c)
			continue
		}
		if !reflect.DeepEqual(again, c) {
			t.Errorf("Down(Up(%#v)) = %#v", c, again)
		}
	}
}

// ShuffleKeys reorders the groups of distinct keys in query while keeping the
// relative order of pairs that share a key.
func ShuffleKeys(query routepath.Query, rng *rand.Rand) routepath.Query {
	var keys []string
	groups := make(map[string][]routepath.Pair)
	for _, p := range query {
		if _, seen := groups[p.Key]; !seen {
			keys = append(keys, p.Key)
		}
		groups[p.Key] = append(groups[p.Key], p)
	}
	rng.Shuffle(len(keys), func(i, j int) { keys[i], keys[j] = keys[j], keys[i] })

	shuffled := make(routepath.Query, 0, len(query))
	for _, k := range keys {
		shuffled = append(shuffled, groups[k]...)
	}
	return shuffled
}
