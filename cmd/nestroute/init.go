package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vango-dev/nestroute/internal/config"
	"github.com/vango-dev/nestroute/internal/errors"
)

func initCmd() *cobra.Command {
	var (
		packages []string
		suffix   string
		force    bool
	)

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Create nestroute.json",
		Long: `Write a nestroute.json in dir (default: the current directory) listing
the packages that nestroute gen generates when run without arguments.

Examples:
  nestroute init --package internal/pages
  nestroute init --package internal/pages --package internal/admin --suffix _routes.go`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return runInit(dir, packages, suffix, force)
		},
	}

	cmd.Flags().StringArrayVarP(&packages, "package", "p", nil, "Package directory relative to dir (repeatable)")
	cmd.Flags().StringVar(&suffix, "suffix", "", "Generated file suffix (default _target.go)")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing nestroute.json")

	return cmd
}

func runInit(dir string, packages []string, suffix string, force bool) error {
	if config.Exists(dir) && !force {
		return errors.New("E143").
			WithDetail("Found " + filepath.Join(dir, config.ConfigFileName)).
			WithSuggestion("Pass --force to overwrite it")
	}

	cfg := config.New()
	cfg.Packages = packages
	if suffix != "" {
		cfg.Suffix = suffix
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	path := filepath.Join(dir, config.ConfigFileName)
	if err := cfg.SaveTo(path); err != nil {
		return err
	}
	success("Created %s", relPath(path))
	if len(packages) == 0 {
		warn("No packages listed; add them to %s or pass --package", config.ConfigFileName)
	}
	return nil
}
