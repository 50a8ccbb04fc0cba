package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/nestroute/internal/config"
	"github.com/vango-dev/nestroute/internal/errors"
	"github.com/vango-dev/nestroute/pkg/targetgen"
)

func genCmd() *cobra.Command {
	var (
		check  bool
		suffix string
	)

	cmd := &cobra.Command{
		Use:   "gen [dir...]",
		Short: "Generate target code",
		Long: `Scan package directories for //nestroute directives and write the
generated <package>_target.go file of each.

Without arguments the packages listed in nestroute.json are generated.
The output is deterministic: running it again produces identical files
unless the annotated types change.

Examples:
  nestroute gen                       # packages from nestroute.json
  nestroute gen ./internal/pages      # one package
  nestroute gen --check ./...         # fail if generated code is stale`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGen(args, suffix, check)
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "Report stale generated files without writing them")
	cmd.Flags().StringVar(&suffix, "suffix", "", "Generated file suffix (default from nestroute.json, else _target.go)")

	return cmd
}

func runGen(args []string, suffix string, check bool) error {
	cfg, dirs, err := resolvePackages(args)
	if err != nil {
		return err
	}
	if suffix != "" {
		cfg.Suffix = suffix
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	var stale []string
	for _, dir := range dirs {
		res, err := targetgen.GenerateDir(dir, targetgen.Options{
			Suffix: cfg.Suffix,
			Skip:   cfg.Excluded,
			Output: cfg.OutputFile,
		})
		if err != nil {
			return err
		}

		rel := relPath(res.Path)
		switch {
		case !res.Changed:
			info("%s is up to date", rel)
		case check:
			warn("%s is out of date", rel)
			stale = append(stale, rel)
		default:
			if err := res.Write(); err != nil {
				return err
			}
			success("Generated %s (%d targets, %d params records)", rel, len(res.Package.Targets), len(res.Package.ParamSets))
		}
	}

	if len(stale) > 0 {
		return errors.New("E142").
			WithDetail("Stale: " + strings.Join(stale, ", ")).
			WithSuggestion("Run nestroute gen")
	}
	return nil
}

// resolvePackages returns the configuration and the package directories to
// generate: the arguments, expanding a trailing "/..." to every
// subdirectory, or the packages of nestroute.json.
func resolvePackages(args []string) (*config.Config, []string, error) {
	cfg, err := config.LoadFromWorkingDir()
	if err != nil {
		return nil, nil, err
	}

	if len(args) == 0 {
		dirs := cfg.PackageDirs()
		if len(dirs) == 0 {
			return nil, nil, errors.New("E141").
				WithSuggestion(`Pass a directory, or add "packages" to ` + config.ConfigFileName)
		}
		return cfg, dirs, nil
	}

	var dirs []string
	for _, arg := range args {
		root, recursive := strings.CutSuffix(filepath.ToSlash(arg), "/...")
		if !recursive {
			dirs = append(dirs, arg)
			continue
		}
		found, err := annotatedDirs(filepath.FromSlash(root))
		if err != nil {
			return nil, nil, err
		}
		dirs = append(dirs, found...)
	}
	if len(dirs) == 0 {
		return nil, nil, errors.New("E141").WithDetail("No directory under " + strings.Join(args, ", ") + " uses //nestroute directives.")
	}
	return cfg, dirs, nil
}

// annotatedDirs walks root for directories with a Go file containing a
// nestroute directive. Hidden, testdata and underscore directories are
// skipped, as the go tool does.
func annotatedDirs(root string) ([]string, error) {
	var dirs []string
	seen := make(map[string]bool)
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") || name == "testdata") {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		dir := filepath.Dir(path)
		if seen[dir] {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if strings.Contains(string(data), "\n//nestroute:") {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
		return nil
	})
	return dirs, err
}

func relPath(path string) string {
	wd, err := os.Getwd()
	if err != nil {
		return path
	}
	if rel, err := filepath.Rel(wd, path); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return path
}
