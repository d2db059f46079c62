package cmd

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-xmlform/internal/mcp"
)

func newMCPCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve extraction and rendering as MCP tools over stdio",
		Long: `Start a Model Context Protocol server on standard input/output.

Tools:
  xmlform_extract_fields  fields of a document as JSON
  xmlform_render_html     fields of a document as an HTML form

Both accept "path" (file or http(s) URL) or "xml" (inline content) and an
optional "format" (auto, xml, json, yaml).`,
		Args: cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			server, err := mcp.NewServer(a.cfg, a.logger)
			if err != nil {
				return err
			}
			return server.ServeStdio()
		},
	}
}
