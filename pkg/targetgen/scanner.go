package targetgen

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/viant/structology/tags"

	"github.com/vango-dev/nestroute/internal/errors"
)

const (
	directivePrefix = "//nestroute:"

	// TagName is the struct tag key read from routed fields.
	TagName = "route"
)

// Scanner reads the routing declarations of one package directory.
type Scanner struct {
	dir string

	// Skip reports whether a file (by path) is ignored. Test files and
	// generated files are always ignored.
	Skip func(filename string) bool

	fset *token.FileSet
}

// NewScanner creates a scanner for the package in dir.
func NewScanner(dir string) *Scanner {
	return &Scanner{dir: dir, fset: token.NewFileSet()}
}

// pendingVariant is a variant waiting for its target to be declared.
type pendingVariant struct {
	variant  *Variant
	explicit bool
}

// fileScope is the per-file state of a scan.
type fileScope struct {
	imports map[string]Import
}

// Scan parses the package and returns its routing description.
//
// Grammar violations do not fail the scan; they are kept on the package and
// reported by the Validator. Only unreadable or unparsable files return an
// error.
func (s *Scanner) Scan() (*Package, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	pkg := &Package{Dir: s.dir, Imports: make(map[string]Import)}
	var pending []pendingVariant

	// os.ReadDir returns entries sorted by name, which fixes declaration order.
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}
		path := filepath.Join(s.dir, name)
		if s.Skip != nil && s.Skip(path) {
			continue
		}

		f, err := parser.ParseFile(s.fset, path, nil, parser.ParseComments)
		if err != nil {
			return nil, errors.New("E161").AtParseError(err)
		}
		if ast.IsGenerated(f) {
			continue
		}
		if pkg.Name == "" {
			pkg.Name = f.Name.Name
		}
		pkg.Files = append(pkg.Files, path)

		scope := &fileScope{imports: fileImports(f)}
		for _, decl := range f.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}
			for _, spec := range gd.Specs {
				ts := spec.(*ast.TypeSpec)
				doc := ts.Doc
				if doc == nil && len(gd.Specs) == 1 {
					doc = gd.Doc
				}
				pending = append(pending, s.scanType(pkg, scope, ts, doc)...)
			}
		}
	}

	targets := make(map[string]*Target, len(pkg.Targets))
	for _, t := range pkg.Targets {
		targets[t.Name] = t
	}
	for _, p := range pending {
		t, ok := targets[p.variant.Target]
		if !ok {
			pkg.problems = append(pkg.problems, problem{
				code:    "E208",
				message: fmt.Sprintf("Unknown target %s for variant %s", p.variant.Target, p.variant.Name),
				pos:     p.variant.Pos,
			})
			continue
		}
		if !p.explicit && !p.variant.Index {
			p.variant.Segment = SegmentName(t.Name, p.variant.Name)
		}
		t.Variants = append(t.Variants, p.variant)
	}

	return pkg, nil
}

// scanType handles the directives attached to one type declaration.
func (s *Scanner) scanType(pkg *Package, scope *fileScope, ts *ast.TypeSpec, doc *ast.CommentGroup) []pendingVariant {
	directives := directivesOf(doc)
	if len(directives) == 0 {
		return nil
	}
	pos := s.fset.Position(ts.Name.Pos())
	if len(directives) > 1 {
		pkg.problems = append(pkg.problems, problem{
			code:    "E211",
			message: fmt.Sprintf("Type %s carries more than one nestroute directive", ts.Name.Name),
			pos:     pos,
		})
		return nil
	}
	if ts.TypeParams != nil {
		pkg.problems = append(pkg.problems, problem{
			code:    "E210",
			message: fmt.Sprintf("Generic type %s cannot be routed", ts.Name.Name),
			pos:     pos,
		})
		return nil
	}

	kind, args, _ := strings.Cut(directives[0], " ")
	args = strings.TrimSpace(args)

	switch kind {
	case "target":
		if _, ok := ts.Type.(*ast.InterfaceType); !ok {
			pkg.problems = append(pkg.problems, misplaced("target", ts.Name.Name, pos))
			return nil
		}
		if args != "" {
			pkg.problems = append(pkg.problems, problem{
				code:    "E211",
				message: fmt.Sprintf("Unexpected arguments %q on //nestroute:target %s", args, ts.Name.Name),
				pos:     pos,
			})
		}
		pkg.Targets = append(pkg.Targets, &Target{Name: ts.Name.Name, Pos: pos})

	case "variant":
		st, ok := ts.Type.(*ast.StructType)
		if !ok {
			pkg.problems = append(pkg.problems, misplaced("variant", ts.Name.Name, pos))
			return nil
		}
		v, explicit, ok := parseVariantDirective(pkg, ts.Name.Name, args, pos)
		if !ok {
			return nil
		}
		v.Fields = s.scanFields(pkg, scope, st)
		return []pendingVariant{{variant: v, explicit: explicit}}

	case "params":
		st, ok := ts.Type.(*ast.StructType)
		if !ok {
			pkg.problems = append(pkg.problems, misplaced("params", ts.Name.Name, pos))
			return nil
		}
		pkg.ParamSets = append(pkg.ParamSets, &ParamSet{
			Name:   ts.Name.Name,
			Fields: s.scanFields(pkg, scope, st),
			Pos:    pos,
		})

	default:
		pkg.problems = append(pkg.problems, problem{
			code:    "E211",
			message: fmt.Sprintf("Unknown directive //nestroute:%s", kind),
			pos:     pos,
		})
	}
	return nil
}

// directivesOf returns the nestroute directives of a comment group, without
// their prefix.
func directivesOf(doc *ast.CommentGroup) []string {
	if doc == nil {
		return nil
	}
	var directives []string
	for _, c := range doc.List {
		if rest, ok := strings.CutPrefix(c.Text, directivePrefix); ok {
			directives = append(directives, strings.TrimSpace(rest))
		}
	}
	return directives
}

func misplaced(directive, typeName string, pos token.Position) problem {
	return problem{
		code:    "E210",
		message: fmt.Sprintf("//nestroute:%s cannot be used on %s", directive, typeName),
		pos:     pos,
	}
}

// parseVariantDirective parses "<Target> [index] [default] [segment=<literal>]".
func parseVariantDirective(pkg *Package, name, args string, pos token.Position) (*Variant, bool, bool) {
	fields := strings.Fields(args)
	if len(fields) == 0 || !token.IsIdentifier(fields[0]) {
		pkg.problems = append(pkg.problems, problem{
			code:    "E211",
			message: fmt.Sprintf("//nestroute:variant on %s must name its target", name),
			pos:     pos,
		})
		return nil, false, false
	}

	v := &Variant{Name: name, Target: fields[0], Pos: pos}
	explicit := false
	valid := true
	for _, opt := range fields[1:] {
		switch {
		case opt == "index":
			v.Index = true
		case opt == "default":
			v.Default = true
		case strings.HasPrefix(opt, "segment="):
			explicit = true
			v.Segment = strings.TrimPrefix(opt, "segment=")
			if v.Segment == "" || strings.Contains(v.Segment, "/") {
				pkg.problems = append(pkg.problems, problem{
					code:    "E214",
					message: fmt.Sprintf("Invalid segment %q on variant %s", v.Segment, name),
					pos:     pos,
				})
				valid = false
			}
		default:
			pkg.problems = append(pkg.problems, problem{
				code:    "E211",
				message: fmt.Sprintf("Unknown option %q on variant %s", opt, name),
				pos:     pos,
			})
			valid = false
		}
	}
	if v.Index && explicit {
		pkg.problems = append(pkg.problems, problem{
			code:    "E211",
			message: fmt.Sprintf("Index variant %s cannot have a segment", name),
			pos:     pos,
		})
		valid = false
	}
	return v, explicit, valid
}

// scanFields returns the routed fields of a struct.
//
// Exported fields without a route tag are plain positional fields.
// Unexported fields without a tag and fields tagged route:"-" are not routed.
func (s *Scanner) scanFields(pkg *Package, scope *fileScope, st *ast.StructType) []*Field {
	var fields []*Field
	for _, f := range st.Fields.List {
		tagValue, tagged := routeTag(f)
		if tagValue == "-" {
			continue
		}
		if len(f.Names) == 0 {
			if tagged {
				pkg.problems = append(pkg.problems, problem{
					code:    "E205",
					message: fmt.Sprintf("Embedded field %s cannot be routed", types.ExprString(f.Type)),
					pos:     s.fset.Position(f.Pos()),
				})
			}
			continue
		}
		for _, ident := range f.Names {
			if !tagged && !ident.IsExported() {
				continue
			}
			field := &Field{
				Name: ident.Name,
				Type: types.ExprString(f.Type),
				Pos:  s.fset.Position(ident.Pos()),
			}
			if !s.applyTag(pkg, field, tagValue) {
				continue
			}
			if !s.applyType(pkg, field, f.Type) {
				continue
			}
			s.collectImports(pkg, scope, field, f.Type)
			fields = append(fields, field)
		}
	}
	return fields
}

func routeTag(f *ast.Field) (string, bool) {
	if f.Tag == nil {
		return "", false
	}
	raw, err := strconv.Unquote(f.Tag.Value)
	if err != nil {
		return "", false
	}
	return reflect.StructTag(raw).Lookup(TagName)
}

// applyTag sets the role of a field from its route tag.
func (s *Scanner) applyTag(pkg *Package, field *Field, tagValue string) bool {
	field.Role = RolePlain
	if tagValue == "" {
		return true
	}

	var (
		query, nested, params, hasDefault bool
		key, defaultFunc                  string
	)
	err := tags.Values(tagValue).MatchPairs(func(k, v string) error {
		k, v = strings.TrimSpace(k), strings.TrimSpace(v)
		switch k {
		case "query":
			query, key = true, v
		case "nested":
			if v != "" {
				return fmt.Errorf("nested takes no value, got %q", v)
			}
			nested = true
		case "default":
			hasDefault, defaultFunc = true, v
		case "params":
			if v != "" {
				return fmt.Errorf("params takes no value, got %q", v)
			}
			params = true
		default:
			return fmt.Errorf("unknown key %q", k)
		}
		return nil
	})
	if err == nil {
		roles := 0
		for _, set := range []bool{query, nested || hasDefault, params} {
			if set {
				roles++
			}
		}
		if roles > 1 {
			err = fmt.Errorf("%q mixes routing roles", tagValue)
		}
	}
	if err != nil {
		pkg.problems = append(pkg.problems, problem{
			code:    "E205",
			message: fmt.Sprintf("Invalid route tag on field %s: %v", field.Name, err),
			pos:     field.Pos,
		})
		return false
	}

	switch {
	case query:
		field.Role = RoleQuery
		field.Key = key
		if field.Key == "" {
			field.Key = QueryKey(field.Name)
		}
	case nested || hasDefault:
		field.Role = RoleNested
		if hasDefault {
			field.Default = OwnDefault
			if defaultFunc != "" {
				if _, perr := parser.ParseExpr(defaultFunc); perr != nil {
					pkg.problems = append(pkg.problems, problem{
						code:    "E205",
						message: fmt.Sprintf("Invalid default function %q on field %s", defaultFunc, field.Name),
						pos:     field.Pos,
					})
					return false
				}
				field.Default = FuncDefault
				field.DefaultFunc = defaultFunc
			}
		}
	case params:
		field.Role = RoleParams
	}
	return true
}

// applyType checks the field type against its role.
func (s *Scanner) applyType(pkg *Package, field *Field, expr ast.Expr) bool {
	switch field.Role {
	case RolePlain:
		if !scalarExpr(expr) {
			pkg.problems = append(pkg.problems, problem{
				code:    "E206",
				message: fmt.Sprintf("Positional field %s has type %s", field.Name, field.Type),
				pos:     field.Pos,
			})
			return false
		}
		field.Elem = field.Type

	case RoleQuery:
		switch t := expr.(type) {
		case *ast.StarExpr:
			field.Multiplicity = Optional
			expr = t.X
		case *ast.ArrayType:
			if t.Len == nil {
				field.Multiplicity = Many
				expr = t.Elt
			}
		}
		if !scalarExpr(expr) {
			pkg.problems = append(pkg.problems, problem{
				code:    "E213",
				message: fmt.Sprintf("Query field %s has type %s", field.Name, field.Type),
				pos:     field.Pos,
			})
			return false
		}
		field.Elem = types.ExprString(expr)

	case RoleNested, RoleParams:
		switch t := expr.(type) {
		case *ast.Ident:
			field.TypeName = t.Name
			return true
		case *ast.SelectorExpr:
			if x, ok := t.X.(*ast.Ident); ok {
				field.Qualifier = x.Name
				field.TypeName = t.Sel.Name
				return true
			}
		}
		pkg.problems = append(pkg.problems, problem{
			code:    "E206",
			message: fmt.Sprintf("%s field %s must name a type directly, got %s", field.Role, field.Name, field.Type),
			pos:     field.Pos,
		})
		return false
	}
	return true
}

// scalarExpr reports whether expr names a type that can hold a single
// segment or query value: a named type, possibly package-qualified.
func scalarExpr(expr ast.Expr) bool {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name != "any" && t.Name != "error"
	case *ast.SelectorExpr:
		_, ok := t.X.(*ast.Ident)
		return ok
	}
	return false
}

// collectImports records the imports a field's generated code refers to.
func (s *Scanner) collectImports(pkg *Package, scope *fileScope, field *Field, expr ast.Expr) {
	exprs := []ast.Expr{expr}
	if field.DefaultFunc != "" {
		if e, err := parser.ParseExpr(field.DefaultFunc); err == nil {
			exprs = append(exprs, e)
		}
	}
	for _, e := range exprs {
		ast.Inspect(e, func(n ast.Node) bool {
			sel, ok := n.(*ast.SelectorExpr)
			if !ok {
				return true
			}
			if x, ok := sel.X.(*ast.Ident); ok {
				if imp, ok := scope.imports[x.Name]; ok {
					if _, seen := pkg.Imports[x.Name]; !seen {
						pkg.Imports[x.Name] = imp
					}
				}
			}
			return false
		})
	}
}

// fileImports maps the qualifiers of a file to its imports.
func fileImports(f *ast.File) map[string]Import {
	imports := make(map[string]Import, len(f.Imports))
	for _, spec := range f.Imports {
		path, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}
		imp := Import{Path: path}
		if spec.Name != nil {
			if spec.Name.Name == "_" || spec.Name.Name == "." {
				continue
			}
			imp.Name = spec.Name.Name
		}
		imports[importName(imp)] = imp
	}
	return imports
}
