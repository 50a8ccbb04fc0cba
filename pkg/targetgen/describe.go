package targetgen

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// RouteInfo describes the route shape of one variant.
type RouteInfo struct {
	Target  string
	Variant string

	// Pattern is the path of the variant relative to its level, with
	// positional fields as {Name} and the nested remainder as {Type...}.
	Pattern string

	// Query lists the query keys the variant reads.
	Query []string

	Index   bool
	Default bool

	// Nested is the type of the nested field, or "".
	Nested string
}

// Describe lists the routes of a scanned package in declaration order.
func Describe(pkg *Package) []RouteInfo {
	paramKeys := make(map[string][]string, len(pkg.ParamSets))
	for _, ps := range pkg.ParamSets {
		paramKeys[ps.Name] = queryKeys(ps.Fields, nil)
	}

	var routes []RouteInfo
	for _, t := range pkg.Targets {
		for _, v := range t.Variants {
			info := RouteInfo{
				Target:  t.Name,
				Variant: v.Name,
				Index:   v.Index,
				Default: v.Default,
				Query:   queryKeys(v.Fields, paramKeys),
			}

			var parts []string
			if !v.Index {
				parts = append(parts, v.Segment)
			}
			for _, f := range v.Positional() {
				parts = append(parts, "{"+f.Name+"}")
			}
			if n := v.Nested(); n != nil {
				info.Nested = n.Type
				parts = append(parts, "{"+n.Type+"...}")
			}
			info.Pattern = "/" + strings.Join(parts, "/")
			routes = append(routes, info)
		}
	}
	return routes
}

// queryKeys returns the keys read by fields, expanding local params records.
func queryKeys(fields []*Field, paramKeys map[string][]string) []string {
	var keys []string
	for _, f := range fields {
		switch f.Role {
		case RoleQuery:
			key := f.Key
			if f.Multiplicity == Many {
				key += "*"
			} else if f.Multiplicity == Optional {
				key += "?"
			}
			keys = append(keys, key)
		case RoleParams:
			if f.Qualifier == "" {
				if nested, ok := paramKeys[f.TypeName]; ok {
					keys = append(keys, nested...)
					continue
				}
			}
			keys = append(keys, "{"+f.Type+"}")
		}
	}
	return keys
}

// WriteRoutes prints routes as an aligned table.
func WriteRoutes(w io.Writer, routes []RouteInfo) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TARGET\tVARIANT\tPATTERN\tQUERY\tFLAGS")
	for _, r := range routes {
		var flags []string
		if r.Index {
			flags = append(flags, "index")
		}
		if r.Default {
			flags = append(flags, "default")
		}
		query := strings.Join(r.Query, ",")
		if query == "" {
			query = "-"
		}
		flagText := strings.Join(flags, ",")
		if flagText == "" {
			flagText = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.Target, r.Variant, r.Pattern, query, flagText)
	}
	return tw.Flush()
}
