package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-xmlform/pkg/form"
	"github.com/goliatone/go-xmlform/pkg/render"
)

func newExtractCommand(a *app) *cobra.Command {
	var presetPath, only string

	cmd := &cobra.Command{
		Use:   "extract <source>",
		Short: "Print the fields declared by a document",
		Long: `Extract walks the document in order and prints every recognised field
with its rects. Radio list options carry the label associated with each
marker. Output is JSON unless --output-format=yaml.

Examples:
  xmlform extract form.svg
  xmlform extract form.svg --preset labels.yaml
  xmlform extract tree.json --input-format=json
  xmlform extract form.svg --only radioList,sig`,
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
			req.Subset = render.ParseSubset(only)
			fields, err := a.orchestrator(preset).Extract(cmd.Context(), req)
			if err != nil {
				return err
			}
			return writeFields(cmd.OutOrStdout(), fields, a.cfg.OutputFormat)
		},
	}

	cmd.Flags().StringVar(&presetPath, "preset", "", "YAML/JSON file overriding labels, options or excluding fields")
	cmd.Flags().StringVar(&only, "only", "", "Comma separated field keys or types to keep")
	return cmd
}

func writeFields(w io.Writer, fields []form.Field, format string) error {
	if fields == nil {
		fields = []form.Field{}
	}
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(fields); err != nil {
			return fmt.Errorf("encode fields: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(fields); err != nil {
			return fmt.Errorf("encode fields: %w", err)
		}
		return nil
	}
}
