// Package param converts typed values to and from the text stored in path
// segments and query pairs.
//
// Single values use a canonical text round-trip: decimal integers, shortest
// exact floats, "true"/"false" and verbatim strings. Types implementing
// encoding.TextMarshaler and encoding.TextUnmarshaler (time.Time, net/netip
// addresses, application IDs) use their own text form.
//
// Multi-value conversion reads every query pair under one key, in order.
// Absent or unparsable values are skipped; extraction never fails.
package param

import (
	"encoding"
	"fmt"
	"reflect"
	"strconv"

	"github.com/vango-dev/nestroute/pkg/routepath"
)

// Parse converts text into a V. The boolean is false when text is not a
// valid V or V is not a supported scalar type.
func Parse[V any](text string) (V, bool) {
	var v V
	if u, ok := any(&v).(encoding.TextUnmarshaler); ok {
		if err := u.UnmarshalText([]byte(text)); err != nil {
			var zero V
			return zero, false
		}
		return v, true
	}
	if err := setValue(reflect.ValueOf(&v).Elem(), text); err != nil {
		var zero V
		return zero, false
	}
	return v, true
}

// Format converts v into its canonical text form, the inverse of Parse.
func Format[V any](v V) string {
	if m, ok := any(&v).(encoding.TextMarshaler); ok {
		text, err := m.MarshalText()
		if err != nil {
			return ""
		}
		return string(text)
	}
	return formatValue(reflect.ValueOf(&v).Elem())
}

// Supported reports whether V has a text round-trip.
func Supported[V any]() bool {
	var v V
	if _, ok := any(&v).(encoding.TextUnmarshaler); ok {
		return true
	}
	return scalarKind(reflect.TypeOf(&v).Elem().Kind())
}

// Extract returns the first parsable value stored under name, or the zero
// value of V when there is none.
func Extract[V any](query routepath.Query, name string) V {
	for _, p := range query {
		if p.Key != name {
			continue
		}
		if v, ok := Parse[V](p.Value); ok {
			return v
		}
	}
	var zero V
	return zero
}

// ExtractOptional returns the first parsable value stored under name, or nil.
func ExtractOptional[V any](query routepath.Query, name string) *V {
	for _, p := range query {
		if p.Key != name {
			continue
		}
		if v, ok := Parse[V](p.Value); ok {
			return &v
		}
	}
	return nil
}

// ExtractAll returns every parsable value stored under name, in query order.
// It returns nil when no value matches.
func ExtractAll[V any](query routepath.Query, name string) []V {
	var values []V
	for _, p := range query {
		if p.Key != name {
			continue
		}
		if v, ok := Parse[V](p.Value); ok {
			values = append(values, v)
		}
	}
	return values
}

// Append adds exactly one pair for v.
func Append[V any](query *routepath.Query, name string, v V) {
	query.Add(name, Format(v))
}

// AppendOptional adds one pair when v is non-nil.
func AppendOptional[V any](query *routepath.Query, name string, v *V) {
	if v != nil {
		query.Add(name, Format(*v))
	}
}

// AppendAll adds one pair per element of values, in order.
func AppendAll[V any](query *routepath.Query, name string, values []V) {
	for _, v := range values {
		query.Add(name, Format(v))
	}
}

func scalarKind(k reflect.Kind) bool {
	switch k {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func formatValue(v reflect.Value) string {
	switch v.Kind() {
	case reflect.String:
		return v.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'g', -1, v.Type().Bits())
	case reflect.Bool:
		return strconv.FormatBool(v.Bool())
	default:
		return fmt.Sprintf("%v", v.Interface())
	}
}

func setValue(v reflect.Value, s string) error {
	switch v.Kind() {
	case reflect.String:
		v.SetString(s)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := strconv.ParseInt(s, 10, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		i, err := strconv.ParseUint(s, 10, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetUint(i)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(s, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetFloat(f)
	case reflect.Bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return err
		}
		v.SetBool(b)
	default:
		return fmt.Errorf("unsupported type: %v", v.Type())
	}
	return nil
}
