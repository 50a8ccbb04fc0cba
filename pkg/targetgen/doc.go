// Package targetgen generates target implementations from annotated Go types.
//
// A target is an interface marked with a directive. Its variants are structs
// naming the target they belong to:
//
//	//nestroute:target
//	type Page interface{ target.Target; isPage() }
//
//	//nestroute:variant Page index
//	type Index struct{}
//
//	//nestroute:variant Page
//	type Bar struct {
//		ID      string
//		Global  GlobalParams `route:"params"`
//		Details Details      `route:"nested,default"`
//	}
//
//	//nestroute:params
//	type GlobalParams struct {
//		Lang *string `route:"query"`
//	}
//
// Variant options are "index" (owns the empty path), "default" (returned by
// DefaultPage) and "segment=<literal>" (overrides the segment derived from
// the struct name).
//
// Field roles come from the route tag:
//
//	(none)            positional, one path segment; exported fields only
//	query[=key]       one query key; V, *V or []V
//	nested            owns the remaining segments; fails when they do not parse
//	nested,default    as nested, falling back to the target's DefaultX
//	default=fn        as nested, falling back to fn()
//	params            a params record merged into the query
//	-                 not routed
//
// A trailing slash means "no further segment", so a value whose last
// rendered segment is empty (a positional string "" with no nested value
// after it) renders a location that does not parse back. Such values, and
// values with a nil nested field, are outside the render/parse round trip.
//
// For each target the generator emits the marker methods, the
// target.Target implementation of every variant, ParseX, and DefaultX when a
// default variant exists. For each params record it emits AppendQuery and
// DecodeX.
//
// Usage:
//
//	res, err := targetgen.GenerateDir("./internal/pages", targetgen.Options{})
//	if err != nil {
//		return err
//	}
//	return res.Write()
package targetgen
