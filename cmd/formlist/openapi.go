package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formlist"
	"github.com/goliatone/go-formlist/pkg/form"
	pkgopenapi "github.com/goliatone/go-formlist/pkg/openapi"
	"github.com/goliatone/go-formlist/pkg/orchestrator"
	"github.com/goliatone/go-formlist/pkg/value"
	"github.com/goliatone/go-formlist/pkg/wire"
)

var (
	openapiOperation string
	openapiList      bool
	openapiFill      bool
	openapiOutput    string
	openapiPreset    string
	openapiEndpoint  string
	openapiMethod    string
	openapiFillFlags fillFlags
)

var openapiCmd = &cobra.Command{
	Use:   "openapi <file-or-url>",
	Short: "Build a form from an OpenAPI operation",
	Long: `Build a form from the request body of an OpenAPI operation. The form is
printed as a wire document, or filled interactively with --fill.`,
	Example: `  formlist openapi petstore.yaml --list
  formlist openapi petstore.yaml -o createPet --output yaml
  formlist openapi https://api.example.com/openapi.json -o createPet --fill --submit
  formlist openapi petstore.yaml -o createPet --preset preset.yaml --keys name,species`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		src, err := pkgopenapi.ParseSource(args[0])
		if err != nil {
			return err
		}
		opts, err := orchestratorOptions()
		if err != nil {
			return err
		}
		orch := formlist.NewOrchestrator(opts...)
		req := orchestrator.Request{
			Source:      src,
			OperationID: openapiOperation,
			Subset:      openapiFillFlags.subset(),
		}

		if openapiList || openapiOperation == "" {
			ids, err := orch.OperationIDs(ctx, req)
			if err != nil {
				return err
			}
			for _, id := range ids {
				fmt.Fprintln(out, id)
			}
			return nil
		}

		ds, err := orch.Generate(ctx, req)
		if err != nil {
			return err
		}
		if openapiFill {
			return runFill(ctx, out, ds, openapiFillFlags)
		}
		return writeForm(out, ds, openapiOutput)
	},
}

func init() {
	flags := openapiCmd.Flags()
	flags.StringVarP(&openapiOperation, "operation", "o", "", "operation ID to build; lists operations when empty")
	flags.BoolVar(&openapiList, "list", false, "list operation IDs and exit")
	flags.BoolVar(&openapiFill, "fill", false, "fill the form interactively instead of printing it")
	flags.StringVar(&openapiOutput, "output", "json", "wire format when printing the form (json, yaml)")
	flags.StringVar(&openapiPreset, "preset", "", "YAML preset adjusting titles, labels and required flags")
	flags.StringVar(&openapiEndpoint, "endpoint", "", "override the submit endpoint URL")
	flags.StringVar(&openapiMethod, "method", "", "override the submit endpoint method")
	openapiFillFlags.bind(openapiCmd)
}

func orchestratorOptions() ([]orchestrator.Option, error) {
	opts := []orchestrator.Option{
		orchestrator.WithLoader(formlist.NewLoader(pkgopenapi.WithHTTPFallback(openapiFillFlags.timeout))),
	}
	if openapiPreset != "" {
		dir, name := filepath.Split(openapiPreset)
		if dir == "" {
			dir = "."
		}
		preset, err := orchestrator.NewPresetTransformerFromFS(os.DirFS(dir), name)
		if err != nil {
			return nil, err
		}
		opts = append(opts, orchestrator.WithTransformer(preset))
	}
	if openapiEndpoint != "" {
		if openapiOperation == "" {
			return nil, fmt.Errorf("--endpoint requires --operation")
		}
		opts = append(opts, orchestrator.WithEndpointOverride(openapiOperation, value.Endpoint{
			URL:    openapiEndpoint,
			Method: strings.ToUpper(openapiMethod),
		}))
	}
	return opts, nil
}

func writeForm(w io.Writer, ds *form.DataSource, format string) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "json":
		return wire.EncodeJSON(w, ds)
	case "yaml", "yml":
		return wire.EncodeYAML(w, ds)
	default:
		return fmt.Errorf("unknown output %q", format)
	}
}
