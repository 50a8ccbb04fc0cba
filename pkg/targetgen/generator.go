package targetgen

import (
	"fmt"
	"go/format"
	"sort"
	"strings"

	"github.com/vango-dev/nestroute/internal/errors"
)

// Runtime packages referenced by generated code.
const (
	paramImport     = "github.com/vango-dev/nestroute/pkg/param"
	routepathImport = "github.com/vango-dev/nestroute/pkg/routepath"
	targetImport    = "github.com/vango-dev/nestroute/pkg/target"
)

// Header is the first line of every generated file.
const Header = "// Code generated by nestroute. DO NOT EDIT."

// Generator emits the target implementations of a validated package.
type Generator struct {
	pkg  *Package
	body strings.Builder

	usesParam bool
	used      map[string]bool
}

// NewGenerator creates a generator for pkg. The package must have passed
// validation.
func NewGenerator(pkg *Package) *Generator {
	return &Generator{pkg: pkg, used: make(map[string]bool)}
}

// Generate returns the gofmt'ed source of the generated file.
func (g *Generator) Generate() ([]byte, error) {
	g.body.Reset()
	g.usesParam = false
	g.used = make(map[string]bool)

	for _, t := range g.pkg.Targets {
		g.genTarget(t)
	}
	for _, ps := range g.pkg.ParamSets {
		g.genParamSet(ps)
	}

	var code strings.Builder
	code.WriteString(Header + "\n\n")
	code.WriteString(fmt.Sprintf("package %s\n\n", g.pkg.Name))
	code.WriteString(g.imports())
	code.WriteString(g.body.String())

	src, err := format.Source([]byte(code.String()))
	if err != nil {
		return nil, errors.New("E160").
			WithDetail("Generated code for package " + g.pkg.Name + " is not valid Go: " + err.Error()).
			Wrap(err)
	}
	return src, nil
}

func (g *Generator) printf(format string, args ...any) {
	fmt.Fprintf(&g.body, format, args...)
}

// imports renders the import block: carried imports first, then the
// nestroute runtime packages.
func (g *Generator) imports() string {
	var carried []string
	for qualifier := range g.used {
		imp, ok := g.pkg.Imports[qualifier]
		if !ok {
			continue
		}
		if imp.Name != "" {
			carried = append(carried, fmt.Sprintf("%s %q", imp.Name, imp.Path))
		} else {
			carried = append(carried, fmt.Sprintf("%q", imp.Path))
		}
	}
	sort.Strings(carried)

	runtime := []string{fmt.Sprintf("%q", routepathImport), fmt.Sprintf("%q", targetImport)}
	if g.usesParam {
		runtime = append([]string{fmt.Sprintf("%q", paramImport)}, runtime...)
	}

	var b strings.Builder
	b.WriteString("import (\n")
	for _, line := range carried {
		b.WriteString("\t" + line + "\n")
	}
	if len(carried) > 0 {
		b.WriteString("\n")
	}
	for _, line := range runtime {
		b.WriteString("\t" + line + "\n")
	}
	b.WriteString(")\n\n")
	return b.String()
}

// use records that generated code refers to a package qualifier.
func (g *Generator) use(refs ...string) {
	for _, r := range refs {
		if r != "" {
			g.used[r] = true
		}
	}
}

// typeRefs returns the package qualifiers mentioned in a type expression
// such as "time.Time" or "map[string]ids.ID".
func typeRefs(expr string) []string {
	var refs []string
	for _, word := range strings.FieldsFunc(expr, func(r rune) bool {
		return !(r == '.' || r == '_' || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || ('0' <= r && r <= '9'))
	}) {
		if q, _, ok := strings.Cut(word, "."); ok {
			refs = append(refs, q)
		}
	}
	return refs
}

// =============================================================================
// Targets
// =============================================================================

func (g *Generator) genTarget(t *Target) {
	g.printf("// =============================================================================\n")
	g.printf("// %s\n", t.Name)
	g.printf("// =============================================================================\n\n")

	for _, v := range t.Variants {
		g.printf("func (%s) is%s() {}\n\n", v.Name, t.Name)
		g.genRenderSelf(v)
		g.genRenderPath(v)
	}

	g.genParse(t)
	for _, v := range t.Variants {
		g.genParseVariant(t, v)
	}

	if def := t.Default(); def != nil {
		g.printf("// Default%s returns the default %s.\n", t.Name, t.Name)
		g.printf("func Default%s() %s {\n", t.Name, t.Name)
		g.genConstruct(def)
		g.printf("}\n\n")
	}

	g.printf("var (\n")
	for _, v := range t.Variants {
		g.printf("\t_ %s = %s{}\n", t.Name, v.Name)
	}
	g.printf("\t_ target.ParseFunc[%s] = Parse%s\n", t.Name, t.Name)
	g.printf(")\n\n")
}

func (g *Generator) genRenderSelf(v *Variant) {
	var lines []string

	segments := make([]string, 0, 1+len(v.Fields))
	if !v.Index {
		segments = append(segments, fmt.Sprintf("%q", v.Segment))
	}
	for _, f := range v.Positional() {
		g.usesParam = true
		segments = append(segments, fmt.Sprintf("param.Format(v.%s)", f.Name))
	}
	if len(segments) > 0 {
		lines = append(lines, fmt.Sprintf("*path = append(*path, %s)", strings.Join(segments, ", ")))
	}
	lines = append(lines, g.queryLines(v.Fields)...)

	g.printf("// RenderSelfInto implements target.Target.\n")
	if len(lines) == 0 {
		g.printf("func (%s) RenderSelfInto(path *[]string, query *routepath.Query) {}\n\n", v.Name)
		return
	}
	g.printf("func (v %s) RenderSelfInto(path *[]string, query *routepath.Query) {\n", v.Name)
	for _, line := range lines {
		g.printf("\t%s\n", line)
	}
	g.printf("}\n\n")
}

// queryLines renders the query and params fields of a variant or record.
func (g *Generator) queryLines(fields []*Field) []string {
	var lines []string
	for _, f := range fields {
		switch f.Role {
		case RoleQuery:
			g.usesParam = true
			fn := "Append"
			switch f.Multiplicity {
			case Optional:
				fn = "AppendOptional"
			case Many:
				fn = "AppendAll"
			}
			lines = append(lines, fmt.Sprintf("param.%s(query, %q, v.%s)", fn, f.Key, f.Name))
		case RoleParams:
			lines = append(lines, fmt.Sprintf("v.%s.AppendQuery(query)", f.Name))
		}
	}
	return lines
}

func (g *Generator) genRenderPath(v *Variant) {
	g.printf("// RenderPathInto implements target.Target.\n")
	g.printf("func (v %s) RenderPathInto(path *[]string, query *routepath.Query) {\n", v.Name)
	g.printf("\tv.RenderSelfInto(path, query)\n")
	if n := v.Nested(); n != nil {
		g.printf("\tif v.%s != nil {\n", n.Name)
		g.printf("\t\tv.%s.RenderPathInto(path, query)\n", n.Name)
		g.printf("\t}\n")
	}
	g.printf("}\n\n")
}

func (g *Generator) genParse(t *Target) {
	g.printf("// Parse%s parses a %s from the remaining path segments and the query.\n", t.Name, t.Name)
	g.printf("func Parse%s(path []string, query routepath.Query) (%s, bool) {\n", t.Name, t.Name)
	g.printf("\tif len(path) == 0 {\n")
	if index := t.Index(); index != nil {
		g.printf("\t\treturn %s(path, query)\n", parseFuncName(t, index))
	} else {
		g.printf("\t\treturn nil, false\n")
	}
	g.printf("\t}\n")

	var literal []*Variant
	for _, v := range t.Variants {
		if !v.Index {
			literal = append(literal, v)
		}
	}
	if len(literal) > 0 {
		g.printf("\tswitch path[0] {\n")
		for _, v := range literal {
			g.printf("\tcase %q:\n", v.Segment)
			g.printf("\t\treturn %s(path[1:], query)\n", parseFuncName(t, v))
		}
		g.printf("\t}\n")
	}
	g.printf("\treturn nil, false\n")
	g.printf("}\n\n")
}

func parseFuncName(t *Target, v *Variant) string {
	return "parse" + t.Name + v.Name
}

func (g *Generator) genParseVariant(t *Target, v *Variant) {
	g.printf("func %s(path []string, query routepath.Query) (%s, bool) {\n", parseFuncName(t, v), t.Name)
	if len(v.Fields) == 0 {
		g.printf("\treturn %s{}, true\n", v.Name)
		g.printf("}\n\n")
		return
	}

	positional := v.Positional()
	nested := v.Nested()
	if len(positional) > 0 {
		g.printf("\tif len(path) < %d {\n", len(positional))
		g.printf("\t\treturn nil, false\n")
		g.printf("\t}\n")
	}
	g.printf("\tvar v %s\n", v.Name)
	if len(positional) > 0 || nested != nil {
		g.printf("\tvar ok bool\n")
	}

	for i, f := range positional {
		g.usesParam = true
		g.use(typeRefs(f.Elem)...)
		g.printf("\tif v.%s, ok = param.Parse[%s](path[%d]); !ok {\n", f.Name, f.Elem, i)
		g.printf("\t\treturn nil, false\n")
		g.printf("\t}\n")
	}

	if nested != nil {
		rest := "path"
		if len(positional) > 0 {
			rest = fmt.Sprintf("path[%d:]", len(positional))
		}
		g.use(nested.Qualifier)
		g.printf("\tif v.%s, ok = %s(%s, query); !ok {\n", nested.Name, qualified(nested.Qualifier, "Parse"+nested.TypeName), rest)
		if fallback := g.fallback(nested); fallback != "" {
			g.printf("\t\tv.%s = %s\n", nested.Name, fallback)
		} else {
			g.printf("\t\treturn nil, false\n")
		}
		g.printf("\t}\n")
	}

	for _, line := range g.decodeLines(v.Fields) {
		g.printf("\t%s\n", line)
	}
	g.printf("\treturn v, true\n")
	g.printf("}\n\n")
}

// fallback returns the expression substituted when a nested field does not
// parse, or "" when the parse must fail.
func (g *Generator) fallback(f *Field) string {
	switch f.Default {
	case OwnDefault:
		g.use(f.Qualifier)
		return qualified(f.Qualifier, "Default"+f.TypeName) + "()"
	case FuncDefault:
		g.use(typeRefs(f.DefaultFunc)...)
		return f.DefaultFunc + "()"
	}
	return ""
}

// decodeLines renders the query and params field assignments.
func (g *Generator) decodeLines(fields []*Field) []string {
	var lines []string
	for _, f := range fields {
		switch f.Role {
		case RoleQuery:
			g.usesParam = true
			g.use(typeRefs(f.Elem)...)
			fn := "Extract"
			switch f.Multiplicity {
			case Optional:
				fn = "ExtractOptional"
			case Many:
				fn = "ExtractAll"
			}
			lines = append(lines, fmt.Sprintf("v.%s = param.%s[%s](query, %q)", f.Name, fn, f.Elem, f.Key))
		case RoleParams:
			g.use(f.Qualifier)
			lines = append(lines, fmt.Sprintf("v.%s = %s(query)", f.Name, qualified(f.Qualifier, "Decode"+f.TypeName)))
		}
	}
	return lines
}

// genConstruct renders the body of a DefaultX function: the variant with
// its defaultable nested field filled in.
func (g *Generator) genConstruct(v *Variant) {
	nested := v.Nested()
	if nested == nil || nested.Default == NoDefault {
		g.printf("\treturn %s{}\n", v.Name)
		return
	}
	g.printf("\tvar v %s\n", v.Name)
	g.printf("\tv.%s = %s\n", nested.Name, g.fallback(nested))
	g.printf("\treturn v\n")
}

// =============================================================================
// Params records
// =============================================================================

func (g *Generator) genParamSet(ps *ParamSet) {
	g.printf("// =============================================================================\n")
	g.printf("// %s\n", ps.Name)
	g.printf("// =============================================================================\n\n")

	lines := g.queryLines(ps.Fields)
	g.printf("// AppendQuery implements target.QuerySet.\n")
	if len(lines) == 0 {
		g.printf("func (%s) AppendQuery(query *routepath.Query) {}\n\n", ps.Name)
	} else {
		g.printf("func (v %s) AppendQuery(query *routepath.Query) {\n", ps.Name)
		for _, line := range lines {
			g.printf("\t%s\n", line)
		}
		g.printf("}\n\n")
	}

	lines = g.decodeLines(ps.Fields)
	g.printf("// Decode%s reads a %s from the query.\n", ps.Name, ps.Name)
	g.printf("func Decode%s(query routepath.Query) %s {\n", ps.Name, ps.Name)
	if len(lines) == 0 {
		g.printf("\treturn %s{}\n", ps.Name)
	} else {
		g.printf("\tvar v %s\n", ps.Name)
		for _, line := range lines {
			g.printf("\t%s\n", line)
		}
		g.printf("\treturn v\n")
	}
	g.printf("}\n\n")

	g.printf("var _ target.QuerySet = %s{}\n\n", ps.Name)
}
