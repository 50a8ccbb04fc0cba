package targetgen

import (
	stderrors "errors"
	"go/token"

	"github.com/vango-dev/nestroute/internal/errors"
)

// Validator checks a scanned package against the routing grammar.
type Validator struct {
	pkg    *Package
	errors []error
}

// NewValidator creates a validator for pkg.
func NewValidator(pkg *Package) *Validator {
	return &Validator{pkg: pkg}
}

// Validate returns nil if the package can be generated, or every violation
// joined with errors.Join. Each violation is an *errors.Error carrying its
// code and source location.
func (v *Validator) Validate() error {
	v.errors = nil

	for _, p := range v.pkg.problems {
		v.report(p.code, p.pos, "%s", p.message)
	}
	if len(v.pkg.Targets) == 0 && len(v.pkg.ParamSets) == 0 && len(v.pkg.problems) == 0 {
		v.errors = append(v.errors, errors.New("E162").
			WithDetail("No //nestroute:target or //nestroute:params declarations in "+v.pkg.Dir))
	}

	for _, t := range v.pkg.Targets {
		v.validateTarget(t)
	}
	for _, ps := range v.pkg.ParamSets {
		v.validateParamSet(ps)
	}

	return stderrors.Join(v.errors...)
}

func (v *Validator) report(code string, pos token.Position, format string, args ...any) {
	v.errors = append(v.errors, errors.New(code).WithMessagef(format, args...).At(pos))
}

func (v *Validator) validateTarget(t *Target) {
	if len(t.Variants) == 0 {
		v.report("E212", t.Pos, "Target %s has no variants", t.Name)
		return
	}

	var index, def *Variant
	segments := make(map[string]*Variant)
	for _, variant := range t.Variants {
		if variant.Index {
			if index != nil {
				v.report("E201", variant.Pos, "Target %s has index variants %s and %s", t.Name, index.Name, variant.Name)
			} else {
				index = variant
			}
		} else if prev, ok := segments[variant.Segment]; ok {
			v.report("E200", variant.Pos, "Variants %s and %s of %s both use segment %q", prev.Name, variant.Name, t.Name, variant.Segment)
		} else {
			segments[variant.Segment] = variant
		}

		if variant.Default {
			if def != nil {
				v.report("E202", variant.Pos, "Target %s has default variants %s and %s", t.Name, def.Name, variant.Name)
			} else {
				def = variant
			}
		}

		v.validateVariant(variant)
	}
}

func (v *Validator) validateVariant(variant *Variant) {
	if variant.Index {
		for _, f := range variant.Positional() {
			v.report("E203", f.Pos, "Index variant %s has positional field %s", variant.Name, f.Name)
		}
	}

	var nested *Field
	for _, f := range variant.Fields {
		switch f.Role {
		case RolePlain:
			if nested != nil {
				v.report("E204", f.Pos, "Field %s of %s follows nested field %s", f.Name, variant.Name, nested.Name)
			}
		case RoleNested:
			if nested != nil {
				v.report("E204", f.Pos, "Variant %s has nested fields %s and %s", variant.Name, nested.Name, f.Name)
				continue
			}
			nested = f
			v.validateNestedDefault(f)
		}
	}
}

// validateNestedDefault checks that a local nested target asked for its own
// default declares one. Targets of other packages are checked by the compiler.
func (v *Validator) validateNestedDefault(f *Field) {
	if f.Default != OwnDefault || f.Qualifier != "" {
		return
	}
	for _, t := range v.pkg.Targets {
		if t.Name == f.TypeName {
			if t.Default() == nil {
				v.report("E209", f.Pos, "Field %s asks for the default of %s, which has no default variant", f.Name, t.Name)
			}
			return
		}
	}
}

func (v *Validator) validateParamSet(ps *ParamSet) {
	for _, f := range ps.Fields {
		if f.Role == RolePlain || f.Role == RoleNested {
			v.report("E207", f.Pos, "Field %s of params record %s is %s", f.Name, ps.Name, describeRole(f))
		}
	}
}

func describeRole(f *Field) string {
	if f.Role == RolePlain {
		return "positional"
	}
	return f.Role.String()
}
