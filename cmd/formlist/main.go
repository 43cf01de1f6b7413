// Formlist fills, inspects and compares declarative forms from the terminal.
//
// Forms come either from a wire document (JSON or YAML) or from an OpenAPI
// operation's request body.
//
// Usage:
//
//	formlist [command] [flags]
//
// See 'formlist --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formlist/internal/logging"
)

// Set with -ldflags "-X main.version=... -X main.commit=...".
var (
	version = "dev"
	commit  = "none"
)

var logLevel string

func main() {
	defer logging.Sync()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "formlist",
	Short: "Declarative form toolkit",
	Long: `Fill, inspect and compare declarative forms.

Forms are read from wire documents (JSON or YAML) or built from the request
body of an OpenAPI operation.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logging.Initialize(logLevel)
	},
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error); defaults to $FORMLIST_LOG_LEVEL")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(fillCmd)
	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(openapiCmd)
	rootCmd.AddCommand(lintCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "formlist %s (commit: %s)\n", version, commit)
	},
}
