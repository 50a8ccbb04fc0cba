package main

import (
	"github.com/spf13/cobra"

	"github.com/vango-dev/nestroute/internal/config"
	"github.com/vango-dev/nestroute/pkg/targetgen"
)

func routesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "routes [dir]",
		Short: "Print the route table of a package",
		Long: `Print every variant of every target in a package with its path
pattern, query keys and flags.

Examples:
  nestroute routes ./internal/pages`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return runRoutes(cmd, dir)
		},
	}
}

func runRoutes(cmd *cobra.Command, dir string) error {
	cfg, err := config.LoadFromWorkingDir()
	if err != nil {
		return err
	}

	scanner := targetgen.NewScanner(dir)
	scanner.Skip = cfg.Excluded
	pkg, err := scanner.Scan()
	if err != nil {
		return err
	}
	if err := targetgen.NewValidator(pkg).Validate(); err != nil {
		return err
	}

	return targetgen.WriteRoutes(cmd.OutOrStdout(), targetgen.Describe(pkg))
}
