package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "qrtag",
		Short: "QR identification label generator for tabular item records",
		Long: `qrtag turns tabular item records (Excel, CSV, JSONL or Parquet) into a
printable batch of A6 identification labels.

Each label carries the record's attributes and a QR code encoding a chosen
subset of its fields, so printed items can be scanned back against the
source data.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	// Add subcommands
	cmd.AddCommand(newGenerateCmd())
	cmd.AddCommand(newPreviewCmd())
	cmd.AddCommand(newServeCmd())

	return cmd
}
