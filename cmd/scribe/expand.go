package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/scribe/internal/cli"
)

var expandCmd = &cobra.Command{
	Use:   "expand <path>",
	Short: "Expand a document and print the result",
	Long: `Expands the directives of one document. The path is vault-relative or a
link name resolved like an include target ("daily" finds "journal/daily.md").`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := engineOptions(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("selection") {
			selection, _ := cmd.Flags().GetString("selection")
			opts.Selection = &selection
		}

		mode, _ := cmd.Flags().GetString("mode")
		render, _ := cmd.Flags().GetString("render")
		watch, _ := cmd.Flags().GetBool("watch")

		return cli.Expand(opts, cli.ExpandRequest{
			Path:   args[0],
			Mode:   mode,
			Render: render,
			Watch:  watch,
			Out:    cmd.OutOrStdout(),
		})
	},
}

func init() {
	rootCmd.AddCommand(expandCmd)

	expandCmd.Flags().String("mode", "top_level", "Context mode: top_level, user_internal or internal")
	expandCmd.Flags().String("render", "auto", "Render output as styled markdown: auto, always or never")
	expandCmd.Flags().String("selection", "", "Text exposed as the active selection")
	expandCmd.Flags().BoolP("watch", "w", false, "Re-expand whenever the vault changes")
}
