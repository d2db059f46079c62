// Package cmd contains the xmlform command line commands.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-xmlform/internal/config"
	"github.com/goliatone/go-xmlform/internal/logging"
	"github.com/goliatone/go-xmlform/pkg/document"
	"github.com/goliatone/go-xmlform/pkg/orchestrator"
	"github.com/goliatone/go-xmlform/pkg/renderers/tui"
)

// stdinRef selects standard input as the document source.
const stdinRef = "-"

// app carries the state resolved before a subcommand runs.
type app struct {
	cfg    *config.Config
	logger *zap.Logger

	// promptDriver replaces the terminal driver for fill; nil keeps survey.
	promptDriver tui.PromptDriver
}

// Execute builds the command tree and runs it against os.Args.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// NewRootCommand returns the xmlform command with every subcommand attached.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&app{})
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "xmlform",
		Short: "Turn annotated vector documents into fillable forms",
		Long: `xmlform reads SVG/XML documents whose groups carry fdtType and
fdtFieldName attributes and turns them into an ordered list of form fields:
character boxes (iso), dates, radio lists and signatures.

Sources:
  A file path, an http(s) URL (with --allow-http) or "-" for standard input.
  JSON or YAML trees in the xml2js shape are accepted as well.

Examples:
  xmlform extract form.svg                 # Print fields as JSON
  xmlform extract form.svg --output-format=yaml
  cat form.svg | xmlform extract -         # Read the document from stdin
  xmlform render form.svg -o form.html     # Write an HTML form
  xmlform fill form.svg --format=pretty    # Fill the form in the terminal
  xmlform mcp                              # Serve tools over stdio`,
		Version:       config.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(
		newExtractCommand(a),
		newRenderCommand(a),
		newFillCommand(a),
		newMCPCommand(a),
	)
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	logger.Debug("configuration loaded", zap.Stringer("config", cfg))
	return nil
}

// orchestrator builds a pipeline from the resolved configuration.
func (a *app) orchestrator(extra ...orchestrator.Option) *orchestrator.Orchestrator {
	options := a.cfg.Pipeline(a.logger, "")
	return orchestrator.New(append(options, extra...)...)
}

// request resolves a source argument. Standard input is read eagerly and
// wrapped as an inline document.
func (a *app) request(ctx context.Context, ref string, stdin io.Reader) (orchestrator.Request, error) {
	if ref != stdinRef {
		src, err := document.ParseSource(ref)
		if err != nil {
			return orchestrator.Request{}, err
		}
		return orchestrator.Request{Source: src}, nil
	}

	if err := ctx.Err(); err != nil {
		return orchestrator.Request{}, err
	}
	raw, err := io.ReadAll(stdin)
	if err != nil {
		return orchestrator.Request{}, fmt.Errorf("read stdin: %w", err)
	}
	if len(raw) == 0 {
		return orchestrator.Request{}, errors.New("no document content on stdin")
	}
	return orchestrator.Request{Source: document.SourceFromBytes("stdin", raw)}, nil
}

// presetOption loads a preset file into a transformer option. An empty path
// yields nil, which orchestrator.New skips.
func presetOption(path string) (orchestrator.Option, error) {
	if path == "" {
		return nil, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read preset: %w", err)
	}
	preset, err := orchestrator.NewPresetTransformer(raw)
	if err != nil {
		return nil, err
	}
	return orchestrator.WithTransformer(preset), nil
}
