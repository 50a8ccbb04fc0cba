// Package target defines the contract implemented by routable types and the
// helpers that render targets to locations and parse them back.
//
// A target is usually a variant set: an interface type whose implementations
// are the individual route shapes of one routing level. Implementations are
// generated by nestroute from annotated type declarations; see package
// targetgen for the grammar.
//
// Rendering never fails. Parsing reports absence with a false boolean: there
// are no partial results and no distinguished error kinds.
package target

import (
	"reflect"

	"github.com/vango-dev/nestroute/pkg/routepath"
)

// Target is the capability every routable type implements.
type Target interface {
	// RenderSelfInto appends this level's own contribution: its literal
	// segment, its positional fields and its query fields. Nested children
	// are not visited.
	RenderSelfInto(path *[]string, query *routepath.Query)

	// RenderPathInto appends this level's contribution followed by the
	// depth-first rendering of any nested child.
	RenderPathInto(path *[]string, query *routepath.Query)
}

// ParseFunc reconstructs a T from the remaining path segments and the whole
// query. Generated ParseX functions have this signature.
type ParseFunc[T any] func(path []string, query routepath.Query) (T, bool)

// QuerySet is a query-only record whose fields are merged into the query of
// the level that hosts it.
type QuerySet interface {
	AppendQuery(query *routepath.Query)
}

// RenderSelf returns the segments and query pairs contributed by t alone.
func RenderSelf(t Target) ([]string, routepath.Query) {
	var path []string
	var query routepath.Query
	t.RenderSelfInto(&path, &query)
	return path, query
}

// RenderPath returns the full rendering of t, including nested children.
func RenderPath(t Target) ([]string, routepath.Query) {
	var path []string
	var query routepath.Query
	t.RenderPathInto(&path, &query)
	return path, query
}

// Location renders t as a location string such as "/bar/42?tag=a".
func Location(t Target) string {
	path, query := RenderPath(t)
	return routepath.JoinLocation(path, query)
}

// ParseLocation parses a location string relative to the root.
func ParseLocation[T any](location string, parse ParseFunc[T]) (T, bool) {
	path, query, err := routepath.SplitLocation(location)
	if err != nil {
		var zero T
		return zero, false
	}
	return parse(path, query)
}

// Equal reports whether a and b are routing-equivalent.
func Equal[T any](a, b T) bool {
	return reflect.DeepEqual(a, b)
}
