package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/scribe/internal/cli"
	"github.com/aretw0/scribe/internal/presentation/graph"
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Print the include graph of the vault",
	Long: `Scans every document for include calls with a literal target and prints
the result as a Mermaid flowchart, or as JSON with --format json.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := engineOptions(cmd)
		if err != nil {
			return err
		}
		format, _ := cmd.Flags().GetString("format")
		focus, _ := cmd.Flags().GetString("focus")

		rt, err := cli.CreateEngine(opts)
		if err != nil {
			return err
		}
		defer rt.Close()

		notes, links, err := rt.Engine.IncludeGraph(context.Background())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		switch format {
		case "mermaid":
			var overlay *graph.GraphOverlay
			if focus != "" {
				doc, err := rt.Engine.Locate(context.Background(), focus)
				if err != nil {
					return err
				}
				overlay = &graph.GraphOverlay{Focus: doc.Path}
			}
			fmt.Fprint(out, graph.GenerateMermaid(notes, links, overlay))
			return nil
		case "json":
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(map[string]any{"documents": notes, "links": links})
		default:
			return fmt.Errorf("unknown format: %s. Supported: mermaid, json", format)
		}
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)

	graphCmd.Flags().String("format", "mermaid", "Output format: 'mermaid' or 'json'")
	graphCmd.Flags().String("focus", "", "Highlight this document in the Mermaid output")
}
