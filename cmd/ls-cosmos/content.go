package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/litescript/ls-cosmos/internal/config"
	"github.com/litescript/ls-cosmos/internal/content"
)

var contentCmd = &cobra.Command{
	Use:   "content",
	Short: "Inspect holocard content files",
}

var contentValidateCmd = &cobra.Command{
	Use:          "validate FILE",
	Short:        "Check that a content file parses and covers every default body",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := content.Load(args[0])
		if err != nil {
			return err
		}
		if err := c.Require(content.Default().IDs()); err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ %s: %d bodies\n", args[0], c.Len())
		return nil
	},
}

var contentDumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Write the active content catalog as TOML",
	Long:  "Write the active content catalog (--content, or the built-in one) as TOML, a starting point for a custom file.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		c, err := content.Load(cfg.ContentFile)
		if err != nil {
			return err
		}
		return content.Encode(cmd.OutOrStdout(), c)
	},
}

func init() {
	contentCmd.AddCommand(contentValidateCmd)
	contentCmd.AddCommand(contentDumpCmd)
	rootCmd.AddCommand(contentCmd)
}
