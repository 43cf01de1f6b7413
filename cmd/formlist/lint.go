package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formlist"
	"github.com/goliatone/go-formlist/internal/builder"
	pkgopenapi "github.com/goliatone/go-formlist/pkg/openapi"
)

var lintCmd = &cobra.Command{
	Use:   "lint <file>...",
	Short: "Report unsupported x-formlist hints in OpenAPI documents",
	Long: `Parse OpenAPI documents without resolving references and report every
x-formlist hint the form builder would ignore or reject. Exits non-zero when
any violation is found.`,
	Example: `  formlist lint petstore.yaml accounts.json`,
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		count, err := runLint(cmd.Context(), cmd.OutOrStdout(), args)
		if err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%d violation(s)", count)
		}
		return nil
	},
}

// runLint prints one line per violation and returns how many it found.
func runLint(ctx context.Context, w io.Writer, paths []string) (int, error) {
	parser := formlist.NewParser(
		pkgopenapi.WithPartialDocuments(true),
		pkgopenapi.WithReferenceResolution(false),
	)

	count := 0
	for _, path := range paths {
		raw, err := os.ReadFile(path)
		if err != nil {
			return count, fmt.Errorf("lint %s: %w", path, err)
		}
		doc, err := pkgopenapi.NewDocument(pkgopenapi.SourceFromFile(path), raw)
		if err != nil {
			return count, fmt.Errorf("lint %s: %w", path, err)
		}
		operations, err := parser.Operations(ctx, doc)
		if err != nil {
			return count, fmt.Errorf("lint %s: %w", path, err)
		}

		ids := make([]string, 0, len(operations))
		for id := range operations {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			for _, v := range builder.Lint(operations[id]) {
				fmt.Fprintf(w, "%s: %s\n", path, v)
				count++
			}
		}
	}
	return count, nil
}
