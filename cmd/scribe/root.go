package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/scribe/internal/cli"
	"github.com/aretw0/scribe/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "scribe",
	Short: "Scribe expands template directives in a markdown vault",
	Long: `Scribe expands <% %> template directives in Markdown documents.
Directives read document metadata (title, dates, tags, path) and can include
other documents, up to a nesting depth of 10.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("dir", "", "Vault directory (overrides the config file)")
	rootCmd.PersistentFlags().String("config", config.DefaultPath, "Path to the config file")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging to stderr")
}

// engineOptions loads the configuration and applies the persistent flags.
func engineOptions(cmd *cobra.Command) (cli.EngineOptions, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cli.EngineOptions{}, err
	}
	if dir, _ := cmd.Flags().GetString("dir"); dir != "" {
		cfg.Vault = dir
	}
	debug, _ := cmd.Flags().GetBool("debug")
	return cli.EngineOptions{Config: cfg, Debug: debug}, nil
}
