package targetgen

import (
	"path"
	"strings"
	"unicode"

	"github.com/viant/structology/format/text"
)

// SegmentName derives the literal path segment of a variant.
//
// The target name is stripped when it leads the variant name at a word
// boundary (PageUsers of target Page becomes Users), then the name is
// lower-cased with a dash between words:
//
//	Foo         → foo
//	UserProfile → user-profile
//	D2          → d2
//	HTTPServer  → http-server
//	V2Users     → v2-users
func SegmentName(targetName, variantName string) string {
	name := variantName
	if rest, ok := strings.CutPrefix(name, targetName); ok && rest != "" {
		first := []rune(rest)[0]
		if unicode.IsUpper(first) || unicode.IsDigit(first) {
			name = rest
		}
	}
	return toKebabCase(name)
}

// toKebabCase converts a Go identifier to lower kebab case.
func toKebabCase(s string) string {
	runes := []rune(s)
	var b strings.Builder
	for i, r := range runes {
		if r == '_' {
			if b.Len() > 0 && i+1 < len(runes) && runes[i+1] != '_' {
				b.WriteByte('-')
			}
			continue
		}
		if unicode.IsUpper(r) && i > 0 {
			prev := runes[i-1]
			switch {
			case unicode.IsLower(prev), unicode.IsDigit(prev):
				b.WriteByte('-')
			case unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1]):
				b.WriteByte('-')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// QueryKey derives the default query key of a field: its name in lower
// camel case (SelectedSystems → selectedSystems).
func QueryKey(fieldName string) string {
	format := text.DetectCaseFormat(fieldName)
	if !format.IsDefined() {
		return fieldName
	}
	return format.Format(fieldName, text.CaseFormatLowerCamel)
}

// importName returns the name an import is referred to by.
func importName(imp Import) string {
	if imp.Name != "" {
		return imp.Name
	}
	return defaultImportName(imp.Path)
}

// defaultImportName guesses a package name from its import path: the last
// element, skipping a major version suffix and trimming gopkg.in style
// versions and a "go-" prefix.
func defaultImportName(importPath string) string {
	base := path.Base(importPath)
	if isMajorVersion(base) {
		base = path.Base(path.Dir(importPath))
	}
	if i := strings.Index(base, ".v"); i > 0 {
		base = base[:i]
	}
	base = strings.TrimPrefix(base, "go-")
	return strings.ReplaceAll(base, "-", "")
}

func isMajorVersion(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}
	for _, r := range s[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
