package main

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/vango-dev/nestroute/internal/config"
	"github.com/vango-dev/nestroute/internal/errors"
)

const pageSource = `package site

import "github.com/vango-dev/nestroute/pkg/target"

//nestroute:target
type Page interface{ target.Target }

//nestroute:variant Page index
type Home struct{}

//nestroute:variant Page
type Post struct{ Slug string }
`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := rootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeSite(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "site")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "site.go"), []byte(pageSource), 0644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestGen_WriteAndCheck(t *testing.T) {
	dir := writeSite(t)

	_, err := execute(t, "gen", "--check", dir)
	if codes := errors.Codes(err); !reflect.DeepEqual(codes, []string{"E142"}) {
		t.Fatalf("gen --check before generating: codes = %v, err = %v", codes, err)
	}

	if _, err := execute(t, "gen", dir); err != nil {
		t.Fatalf("gen error = %v", err)
	}
	src, err := os.ReadFile(filepath.Join(dir, "site_target.go"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(src), "func ParsePage(") {
		t.Errorf("generated file has no ParsePage:\n%s", src)
	}

	if _, err := execute(t, "gen", "--check", dir); err != nil {
		t.Errorf("gen --check after generating: %v", err)
	}
}

func TestGen_Suffix(t *testing.T) {
	dir := writeSite(t)

	if _, err := execute(t, "gen", "--suffix", "_routes.go", dir); err != nil {
		t.Fatalf("gen error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "site_routes.go")); err != nil {
		t.Errorf("site_routes.go not written: %v", err)
	}

	_, err := execute(t, "gen", "--suffix", "_test.go", dir)
	if codes := errors.Codes(err); !reflect.DeepEqual(codes, []string{"E121"}) {
		t.Errorf("gen --suffix _test.go: codes = %v", codes)
	}
}

func TestGen_Recursive(t *testing.T) {
	dir := writeSite(t)
	root := filepath.Dir(dir)
	if err := os.MkdirAll(filepath.Join(root, "plain"), 0755); err != nil {
		t.Fatal(err)
	}
	os.WriteFile(filepath.Join(root, "plain", "plain.go"), []byte("package plain\n"), 0644)
	os.MkdirAll(filepath.Join(root, "testdata"), 0755)
	os.WriteFile(filepath.Join(root, "testdata", "x.go"), []byte("package x\n\n//nestroute:target\ntype X struct{}\n"), 0644)

	dirs, err := annotatedDirs(root)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(dirs, []string{dir}) {
		t.Errorf("annotatedDirs() = %v, want [%s]", dirs, dir)
	}

	if _, err := execute(t, "gen", root+"/..."); err != nil {
		t.Fatalf("gen ./... error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "site_target.go")); err != nil {
		t.Errorf("site_target.go not written: %v", err)
	}
}

func TestGen_InvalidPackage(t *testing.T) {
	dir := writeSite(t)
	os.WriteFile(filepath.Join(dir, "bad.go"), []byte("package site\n\n//nestroute:variant Page\ntype Post2 struct{ IDs []int }\n"), 0644)

	_, err := execute(t, "gen", dir)
	if codes := errors.Codes(err); !reflect.DeepEqual(codes, []string{"E206"}) {
		t.Errorf("codes = %v, want [E206]", codes)
	}
}

func TestCompactErrors(t *testing.T) {
	saved := printer
	t.Cleanup(func() { printer = saved })

	dir := writeSite(t)
	os.WriteFile(filepath.Join(dir, "bad.go"), []byte("package site\n\n//nestroute:variant Page\ntype Post2 struct{ IDs []int }\n"), 0644)

	_, err := execute(t, "--compact", "--no-color", "gen", dir)
	if err == nil {
		t.Fatal("gen should fail")
	}
	if !printer.Compact || printer.Color {
		t.Fatalf("printer = %+v, want compact without color", printer)
	}

	var out bytes.Buffer
	printer.Fprint(&out, err)
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("compact output has %d lines:\n%s", len(lines), out.String())
	}
	if !strings.Contains(lines[0], "bad.go:4:") || !strings.Contains(lines[0], ": E206: ") {
		t.Errorf("compact output = %q, want bad.go:4:...: E206: ...", lines[0])
	}
}

func TestGen_DemoIsUpToDate(t *testing.T) {
	if _, err := execute(t, "gen", "--check", "../../internal/demo/pages"); err != nil {
		t.Errorf("demo generated code is stale: %v", err)
	}
}

func TestInit(t *testing.T) {
	site := writeSite(t)
	root := filepath.Dir(site)

	if _, err := execute(t, "init", "--package", "site", "--suffix", "_routes.go", root); err != nil {
		t.Fatalf("init error = %v", err)
	}
	cfg, err := config.Load(root)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(cfg.Packages, []string{"site"}) || cfg.Suffix != "_routes.go" {
		t.Errorf("config = %+v", cfg)
	}
	if got := cfg.PackageDirs(); !reflect.DeepEqual(got, []string{site}) {
		t.Errorf("PackageDirs() = %v, want [%s]", got, site)
	}

	_, err = execute(t, "init", root)
	if codes := errors.Codes(err); !reflect.DeepEqual(codes, []string{"E143"}) {
		t.Errorf("second init: codes = %v", codes)
	}
	if _, err := execute(t, "init", "--force", root); err != nil {
		t.Errorf("init --force error = %v", err)
	}
	if cfg, _ := config.Load(root); len(cfg.Packages) != 0 || cfg.Suffix != config.DefaultSuffix {
		t.Errorf("config after --force = %+v", cfg)
	}
}

func TestRoutes(t *testing.T) {
	out, err := execute(t, "routes", "../../internal/demo/pages")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"TARGET", "/bar/{ID}/{Details...}", "q*,page?,since?", "index,default"} {
		if !strings.Contains(out, want) {
			t.Errorf("routes output missing %q:\n%s", want, out)
		}
	}
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version", "--short")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != version {
		t.Errorf("version --short = %q, want %q", out, version)
	}
}
