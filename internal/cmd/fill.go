package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-xmlform/pkg/orchestrator"
	"github.com/goliatone/go-xmlform/pkg/render"
	"github.com/goliatone/go-xmlform/pkg/renderers/tui"
)

func newFillCommand(a *app) *cobra.Command {
	var (
		format     string
		title      string
		presetPath string
		only       string
		values     map[string]string
	)

	cmd := &cobra.Command{
		Use:   "fill <source>",
		Short: "Fill a document's fields interactively in the terminal",
		Long: `Fill prompts for every field in document order: one character per box for
iso and date fields ("<" steps back a box), a choice for radio lists and a
typed, confirmed signature. Collected values are printed when done.

Output Formats:
  json    JSON object keyed by field id (default)
  yaml    YAML document
  form    application/x-www-form-urlencoded
  pretty  one "Label (key)=value" line per field

Examples:
  xmlform fill form.svg
  xmlform fill form.svg --format=pretty --value name=ADA`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[0] == stdinRef {
				return errors.New("fill reads answers from the terminal; pass a file or URL instead of -")
			}
			preset, err := presetOption(presetPath)
			if err != nil {
				return err
			}

			renderer, err := tui.New(
				tui.WithOutputFormat(tui.OutputFormat(format)),
				tui.WithPromptDriver(a.promptDriver),
			)
			if err != nil {
				return err
			}
			registry := render.NewRegistry()
			if err := registry.Register(renderer); err != nil {
				return err
			}

			req, err := a.request(cmd.Context(), args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			req.Renderer = renderer.Name()
			req.Subset = render.ParseSubset(only)
			req.RenderOptions = render.RenderOptions{Title: title, Values: values}

			output, err := a.orchestrator(orchestrator.WithRegistry(registry), preset).Generate(cmd.Context(), req)
			if err != nil {
				if errors.Is(err, tui.ErrAborted) {
					return errors.New("fill cancelled")
				}
				return err
			}
			_, err = cmd.OutOrStdout().Write(output)
			return err
		},
	}

	cmd.Flags().StringVar(&format, "format", string(tui.OutputFormatJSON), "Answer format (json, yaml, form, pretty)")
	cmd.Flags().StringVar(&title, "title", "", "Heading shown before the first prompt")
	cmd.Flags().StringVar(&presetPath, "preset", "", "YAML/JSON file overriding labels, options or excluding fields")
	cmd.Flags().StringVar(&only, "only", "", "Comma separated field keys or types to keep")
	cmd.Flags().StringToStringVar(&values, "value", nil, "Prefill value as key=value (repeatable)")
	return cmd
}
