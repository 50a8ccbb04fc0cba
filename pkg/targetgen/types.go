package targetgen

import (
	"go/token"
)

// Package is the routing description of one Go package.
type Package struct {
	// Name is the Go package name.
	Name string

	// Dir is the package directory.
	Dir string

	// Files are the scanned source files, sorted by name.
	Files []string

	// Targets are the //nestroute:target interfaces in declaration order.
	Targets []*Target

	// ParamSets are the //nestroute:params records in declaration order.
	ParamSets []*ParamSet

	// Imports maps a package qualifier used in a field type or default
	// function to its import.
	Imports map[string]Import

	// problems are grammar violations found while scanning.
	problems []problem
}

// Import is an import carried from a source file into the generated file.
type Import struct {
	// Name is the explicit import name, or "" when the path's last element is used.
	Name string

	// Path is the import path.
	Path string
}

// Target is a variant set: an interface type implemented by one struct per
// route shape of a routing level.
type Target struct {
	Name     string
	Variants []*Variant
	Pos      token.Position
}

// Index returns the variant owning the empty path, or nil.
func (t *Target) Index() *Variant {
	for _, v := range t.Variants {
		if v.Index {
			return v
		}
	}
	return nil
}

// Default returns the variant used as the target's default value, or nil.
func (t *Target) Default() *Variant {
	for _, v := range t.Variants {
		if v.Default {
			return v
		}
	}
	return nil
}

// Variant is one route shape of a target.
type Variant struct {
	// Name is the struct type name.
	Name string

	// Target is the name of the target the variant belongs to.
	Target string

	// Index marks the variant owning the empty path of its level.
	Index bool

	// Default marks the variant returned by the target's DefaultX function.
	Default bool

	// Segment is the literal path segment. Empty for index variants.
	Segment string

	// Fields are the routed fields in declaration order.
	Fields []*Field

	Pos token.Position
}

// Positional returns the plain fields, each consuming one path segment.
func (v *Variant) Positional() []*Field {
	var fields []*Field
	for _, f := range v.Fields {
		if f.Role == RolePlain {
			fields = append(fields, f)
		}
	}
	return fields
}

// Nested returns the field owning the remaining path segments, or nil.
func (v *Variant) Nested() *Field {
	for _, f := range v.Fields {
		if f.Role == RoleNested {
			return f
		}
	}
	return nil
}

// ParamSet is a query-only record merged into the query of the level that
// hosts it.
type ParamSet struct {
	Name   string
	Fields []*Field
	Pos    token.Position
}

// Role is the routing role of a field.
type Role int

const (
	// RolePlain fields consume exactly one path segment.
	RolePlain Role = iota
	// RoleQuery fields are read from and written to one query key.
	RoleQuery
	// RoleNested fields own all remaining path segments.
	RoleNested
	// RoleParams fields merge a params record into the query.
	RoleParams
)

func (r Role) String() string {
	switch r {
	case RolePlain:
		return "plain"
	case RoleQuery:
		return "query"
	case RoleNested:
		return "nested"
	case RoleParams:
		return "params"
	default:
		return "unknown"
	}
}

// Multiplicity is how many query values a query field holds.
type Multiplicity int

const (
	// One is a plain V: the first parsable value, else the zero value.
	One Multiplicity = iota
	// Optional is a *V: zero or one value.
	Optional
	// Many is a []V: zero or more values in query order.
	Many
)

// DefaultKind is how a nested field falls back when its remainder does not parse.
type DefaultKind int

const (
	// NoDefault fails the parse.
	NoDefault DefaultKind = iota
	// OwnDefault uses the nested target's DefaultX function.
	OwnDefault
	// FuncDefault calls the function named in the tag.
	FuncDefault
)

// Field is a routed struct field.
type Field struct {
	// Name is the Go field name.
	Name string

	// Type is the field type as written in source.
	Type string

	// Elem is the value type: Type without the pointer or slice of query
	// fields.
	Elem string

	// Qualifier is the package qualifier of a nested or params field type
	// ("" for the local package).
	Qualifier string

	// TypeName is the unqualified type name of a nested or params field.
	TypeName string

	Role Role

	// Key is the query key of a query field.
	Key string

	Multiplicity Multiplicity

	Default DefaultKind

	// DefaultFunc is the function called for FuncDefault.
	DefaultFunc string

	Pos token.Position
}

// problem is a grammar violation with its registered error code.
type problem struct {
	code    string
	message string
	pos     token.Position
}

// qualified joins a package qualifier and a name.
func qualified(qualifier, name string) string {
	if qualifier == "" {
		return name
	}
	return qualifier + "." + name
}
