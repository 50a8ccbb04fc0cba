package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/nestroute/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// printer reports command errors; the persistent flags configure it.
var printer = errors.Printer{Color: true}

func main() {
	if err := rootCmd().Execute(); err != nil {
		printer.Fprint(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nestroute",
		Short: "Typed nested routing for Go",
		Long: `nestroute generates the routing code of annotated Go types.

A target is an interface whose implementations are the route shapes of
one routing level. nestroute derives, for each target, the code that
renders a value to a path and query and parses it back.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
	cmd.PersistentFlags().Bool("compact", false, "Report errors one per line as file:line:col: CODE: message")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if noColor, _ := cmd.Flags().GetBool("no-color"); noColor || os.Getenv("NO_COLOR") != "" {
			printer.Color = false
		}
		printer.Compact, _ = cmd.Flags().GetBool("compact")
	}

	cmd.AddCommand(
		initCmd(),
		genCmd(),
		routesCmd(),
		versionCmd(),
	)
	return cmd
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(format string, args ...any) {
	fmt.Printf("\033[33m⚠\033[0m %s\n", fmt.Sprintf(format, args...))
}
