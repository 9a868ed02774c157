package cmd

import (
	"fmt"

	"github.com/industrial-labels/qrtag/internal/payload"
	"github.com/industrial-labels/qrtag/internal/source"
	"github.com/spf13/cobra"
)

func newPreviewCmd() *cobra.Command {
	var (
		inputPath   string
		limit       int
		fields      []string
		profilePath string
	)

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Preview the normalized records of a source file",
		Long: `Loads a source file, validates it, and prints the normalized records as
a table. With a field selection it also prints the QR payload each record
would encode, which is handy for checking separators and field order
before printing a batch.`,
		Example: `  # Show the first 10 records
  qrtag preview -i items.xlsx

  # Show payloads for a field selection
  qrtag preview -i items.xlsx -f ID -f LOTE`,
		RunE: func(cmd *cobra.Command, args []string) error {
			prof, err := loadProfile(profilePath)
			if err != nil {
				return err
			}

			records, err := source.NewLoader(inputPath, prof.MarkerColumn).LoadSample(limit)
			if err != nil {
				return err
			}

			columns := records[0].Fields()
			headers := append([]string{"#"}, columns...)

			var builder *payload.Builder
			if len(fields) > 0 {
				builder = payload.New(prof.Prefix, prof.Separator, prof.ModuleSize)
				headers = append(headers, "PAYLOAD")
			}

			rows := make([][]string, 0, len(records))
			for i, rec := range records {
				row := make([]string, 0, len(headers))
				row = append(row, fmt.Sprintf("%d", i+1))
				for _, col := range columns {
					row = append(row, rec.Get(col))
				}
				if builder != nil {
					row = append(row, builder.Build(rec, fields))
				}
				rows = append(rows, row)
			}

			fmt.Println(renderTable(headers, rows))
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "Source file (.xlsx, .csv, .jsonl, .parquet)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Maximum records to show (0 = all)")
	cmd.Flags().StringArrayVarP(&fields, "field", "f", nil, "Field selection to preview payloads for (repeatable)")
	cmd.Flags().StringVar(&profilePath, "profile", "", "YAML generation profile")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}
