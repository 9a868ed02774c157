package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/industrial-labels/qrtag/internal/label"
	"github.com/industrial-labels/qrtag/internal/profile"
	"github.com/industrial-labels/qrtag/internal/source"
	"github.com/spf13/cobra"
)

func newGenerateCmd() *cobra.Command {
	var (
		inputPath   string
		outputPath  string
		fields      []string
		profilePath string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a label PDF from a tabular source file",
		Long: `Reads a tabular source file, builds one A6 label page per record, and
writes the assembled PDF.

The QR code on each label encodes the selected fields in order, separated
by the profile's separator character. Records whose payload cannot be
encoded are skipped with a warning; the rest of the batch still renders.`,
		Example: `  # Generate labels using the default field selection
  qrtag generate -i items.xlsx -o labels.pdf

  # Choose the encoded fields explicitly
  qrtag generate -i items.csv -o labels.pdf -f ID -f LOTE -f "PESO Kg"

  # Use a site-specific profile
  qrtag generate -i items.parquet -o labels.pdf --profile plant.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			prof, err := loadProfile(profilePath)
			if err != nil {
				return err
			}

			selection := fields
			if len(selection) == 0 {
				selection = prof.Fields
			}

			slog.Info("Loading source", "path", inputPath)
			records, err := source.NewLoader(inputPath, prof.MarkerColumn).Load()
			if err != nil {
				return err
			}
			slog.Info("Source loaded", "records", len(records))

			result, err := label.New(prof).Generate(label.Request{
				Records: records,
				Fields:  selection,
			})
			if err != nil {
				return err
			}

			for _, d := range result.Skipped {
				slog.Warn("Record skipped", "index", d.Index, "reason", d.Reason)
			}

			if err := os.WriteFile(outputPath, result.PDF, 0644); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}

			slog.Info("Labels generated", "output", outputPath, "pages", result.Pages, "skipped", len(result.Skipped))
			fmt.Printf("Wrote %d label(s) to %s", result.Pages, outputPath)
			if len(result.Skipped) > 0 {
				fmt.Printf(" (%d record(s) skipped)", len(result.Skipped))
			}
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "Source file (.xlsx, .csv, .jsonl, .parquet)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "labels.pdf", "Output PDF path")
	cmd.Flags().StringArrayVarP(&fields, "field", "f", nil, "Field to encode in the QR code (repeatable, ordered)")
	cmd.Flags().StringVar(&profilePath, "profile", "", "YAML generation profile")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func loadProfile(path string) (profile.Profile, error) {
	if path == "" {
		return profile.Default(), nil
	}
	return profile.Load(path)
}
