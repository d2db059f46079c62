package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-xmlform/pkg/render"
)

func newRenderCommand(a *app) *cobra.Command {
	var (
		outputPath string
		title      string
		presetPath string
		only       string
		values     map[string]string
		hidden     map[string]string
	)

	cmd := &cobra.Command{
		Use:   "render <source>",
		Short: "Render a document's fields with a registered renderer",
		Long: `Render extracts the fields of a document and hands them to the renderer
selected by --renderer (html by default). The HTML renderer emits a
standalone <form> with one input per character box.

Examples:
  xmlform render form.svg > form.html
  xmlform render form.svg -o form.html --title "Intake"
  xmlform render form.svg --value name=ADA --value consent=Yes
  xmlform render form.svg --only name,radioList --hidden _csrf=abc`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			preset, err := presetOption(presetPath)
			if err != nil {
				return err
			}
			req, err := a.request(cmd.Context(), args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			req.Renderer = a.cfg.Renderer
			req.Subset = render.ParseSubset(only)
			req.RenderOptions = render.RenderOptions{Title: title, Values: values, Hidden: hidden}

			output, err := a.orchestrator(preset).Generate(cmd.Context(), req)
			if err != nil {
				return err
			}

			if outputPath == "" {
				_, err = cmd.OutOrStdout().Write(output)
				return err
			}
			if err := os.WriteFile(outputPath, output, 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			a.logger.Info("form written", zap.String("path", outputPath), zap.Int("bytes", len(output)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the rendered form to a file instead of stdout")
	cmd.Flags().StringVar(&title, "title", "", "Form heading")
	cmd.Flags().StringVar(&presetPath, "preset", "", "YAML/JSON file overriding labels, options or excluding fields")
	cmd.Flags().StringVar(&only, "only", "", "Comma separated field keys or types to keep")
	cmd.Flags().StringToStringVar(&values, "value", nil, "Prefill value as key=value (repeatable)")
	cmd.Flags().StringToStringVar(&hidden, "hidden", nil, "Extra hidden input as name=value (repeatable, html only)")
	return cmd
}
