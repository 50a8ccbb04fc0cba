package targetgen

import (
	"bytes"
	"os"
	"path/filepath"
)

// DefaultSuffix is appended to the package name to form the output file.
const DefaultSuffix = "_target.go"

// Options configure GenerateDir.
type Options struct {
	// Suffix of the output file. Defaults to DefaultSuffix.
	Suffix string

	// Skip reports whether a source file is ignored.
	Skip func(filename string) bool

	// Output names the generated file of a package. Defaults to the package
	// name followed by Suffix, in dir.
	Output func(dir, pkgName string) string
}

// Result is the outcome of generating one package.
type Result struct {
	Package *Package

	// Path is the output file.
	Path string

	// Source is the generated code.
	Source []byte

	// Changed reports whether Source differs from the file on disk.
	Changed bool
}

// GenerateDir scans, validates, and generates the package in dir. The
// output is not written; call Result.Write.
func GenerateDir(dir string, opts Options) (*Result, error) {
	suffix := opts.Suffix
	if suffix == "" {
		suffix = DefaultSuffix
	}

	scanner := NewScanner(dir)
	scanner.Skip = opts.Skip
	pkg, err := scanner.Scan()
	if err != nil {
		return nil, err
	}
	if err := NewValidator(pkg).Validate(); err != nil {
		return &Result{Package: pkg}, err
	}

	src, err := NewGenerator(pkg).Generate()
	if err != nil {
		return &Result{Package: pkg}, err
	}

	output := opts.Output
	if output == nil {
		output = func(dir, pkgName string) string {
			return filepath.Join(dir, pkgName+suffix)
		}
	}
	res := &Result{
		Package: pkg,
		Path:    output(dir, pkg.Name),
		Source:  src,
	}
	existing, err := os.ReadFile(res.Path)
	res.Changed = err != nil || !bytes.Equal(existing, src)
	return res, nil
}

// Write writes the generated file if it changed.
func (r *Result) Write() error {
	if !r.Changed {
		return nil
	}
	if err := os.WriteFile(r.Path, r.Source, 0644); err != nil {
		return err
	}
	r.Changed = false
	return nil
}
