package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formlist/pkg/form"
	"github.com/goliatone/go-formlist/pkg/present"
	"github.com/goliatone/go-formlist/pkg/render"
	"github.com/goliatone/go-formlist/pkg/renderers/tui"
	"github.com/goliatone/go-formlist/pkg/wire"
)

// maxSubmitAttempts bounds how often a form rejected by the endpoint is
// filled again.
const maxSubmitAttempts = 3

// promptDriver is nil outside tests; the session then uses survey.
var promptDriver tui.PromptDriver

type fillFlags struct {
	format       string
	policy       string
	submit       bool
	yes          bool
	maxPasses    int
	hidden       []string
	headers      []string
	timeout      time.Duration
	sections     string
	keys         string
	translations string
	locale       string
}

func (f *fillFlags) bind(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.format, "format", "json", "output format for submitted params (json, form, pretty)")
	flags.StringVar(&f.policy, "policy", "drop", "overlapping replacement policy (drop, coalesce, reject)")
	flags.BoolVar(&f.submit, "submit", false, "send the params to the submit action's endpoint")
	flags.BoolVarP(&f.yes, "yes", "y", false, "submit without asking for confirmation")
	flags.IntVar(&f.maxPasses, "max-passes", 3, "times invalid rows are prompted before giving up")
	flags.StringArrayVar(&f.hidden, "hidden", nil, "extra hidden param as name=value (repeatable)")
	flags.StringArrayVar(&f.headers, "header", nil, "extra HTTP header as Name: value when submitting (repeatable)")
	flags.DurationVar(&f.timeout, "timeout", 30*time.Second, "HTTP timeout when submitting")
	flags.StringVar(&f.sections, "sections", "", "comma separated section titles to keep")
	flags.StringVar(&f.keys, "keys", "", "comma separated field keys to keep")
	flags.StringVar(&f.translations, "translations", "", "YAML file of translations keyed by locale")
	flags.StringVar(&f.locale, "locale", "en", "locale picked from --translations")
}

func (f *fillFlags) subset() render.FieldSubset {
	return render.FieldSubset{
		Sections: render.ParseTokens(f.sections),
		Keys:     render.ParseTokens(f.keys),
	}
}

var fill fillFlags

var fillCmd = &cobra.Command{
	Use:   "fill <form-file>",
	Short: "Fill a wire form interactively",
	Long: `Render a wire form (JSON or YAML) in the terminal and prompt for every
editable row until the form is valid. The submitted params are printed, or
sent to the submit action's endpoint with --submit.`,
	Example: `  formlist fill profile.yaml
  formlist fill profile.json --format pretty
  formlist fill profile.yaml --submit --hidden _csrf=abc123`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadForm(args[0])
		if err != nil {
			return err
		}
		if subset := fill.subset(); len(subset.Sections) > 0 || len(subset.Keys) > 0 {
			ds.SetSections(render.ApplySubset(ds.Sections(), subset))
		}
		return runFill(cmd.Context(), cmd.OutOrStdout(), ds, fill)
	},
}

func init() {
	fill.bind(fillCmd)
}

func loadForm(path string) (*form.DataSource, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read form: %w", err)
	}
	ds, err := wire.Unmarshal(raw)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return ds, nil
}

// runFill drives a tui session over ds and prints or submits the result.
func runFill(ctx context.Context, out io.Writer, ds *form.DataSource, flags fillFlags) error {
	if ctx == nil {
		ctx = context.Background()
	}
	policy, err := present.ParsePolicy(flags.policy)
	if err != nil {
		return err
	}
	format, err := tui.ParseOutputFormat(flags.format)
	if err != nil {
		return err
	}
	hidden, err := parsePairs(flags.hidden, "=")
	if err != nil {
		return fmt.Errorf("--hidden: %w", err)
	}
	headers, err := parsePairs(flags.headers, ":")
	if err != nil {
		return fmt.Errorf("--header: %w", err)
	}
	if err := localize(ds, flags.translations, flags.locale); err != nil {
		return err
	}
	for _, pair := range hidden {
		render.ApplyHiddenFields(ds, render.Hidden(pair[0], pair[1]))
	}

	session, err := tui.NewSession(ds,
		tui.WithOutput(out),
		tui.WithPromptDriver(promptDriver),
		tui.WithMaxPasses(flags.maxPasses),
		tui.WithSubmitConfirmation(!flags.yes),
		tui.WithPresenterOptions(present.WithPolicy(policy)),
	)
	if err != nil {
		return err
	}

	var submitter *wire.Submitter
	if flags.submit {
		opts := []wire.Option{wire.WithTimeout(flags.timeout)}
		for _, pair := range headers {
			opts = append(opts, wire.WithHeader(pair[0], pair[1]))
		}
		submitter = wire.NewSubmitter(opts...)
	}

	for attempt := 1; ; attempt++ {
		params, err := session.Fill(ctx)
		if err != nil {
			return err
		}
		if submitter == nil {
			encoded, err := tui.Serialize(params, format)
			if err != nil {
				return err
			}
			_, err = out.Write(encoded)
			return err
		}

		action, ok := session.Action()
		if !ok {
			return tui.ErrNoSubmit
		}
		result, err := submitter.Invoke(ctx, session.Presenter().DataSource(), action)
		if err != nil {
			return err
		}
		if result.Accepted {
			fmt.Fprintf(out, "submitted: %d\n", result.Status)
			return nil
		}
		for _, msg := range result.Errors.Form {
			fmt.Fprintf(out, "error: %s\n", msg)
		}
		for _, key := range sortedKeys(result.Errors.Fields) {
			fmt.Fprintf(out, "error: %s: %s\n", key, strings.Join(result.Errors.Fields[key], "; "))
		}
		if attempt >= maxSubmitAttempts {
			return errors.New("endpoint rejected the form")
		}
	}
}

// parsePairs splits every entry on the first sep. Names are trimmed and
// must not be empty.
func parsePairs(entries []string, sep string) ([][2]string, error) {
	out := make([][2]string, 0, len(entries))
	for _, entry := range entries {
		name, val, ok := strings.Cut(entry, sep)
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("expected name%svalue, got %q", sep, entry)
		}
		out = append(out, [2]string{name, strings.TrimSpace(val)})
	}
	return out, nil
}
