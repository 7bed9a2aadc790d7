package cli

import (
	"bytes"
	"fmt"
	"os"

	"go_5_wobushizi/internal/hanzi"

	"github.com/spf13/cobra"
)

func addConvert(topLevel *cobra.Command) {
	co := &ConvertOptions{}

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert a hanzidb CSV into the dataset JSON and enhanced CSV.",
		Example: `
wobushizi convert --input hanzidb.csv --output-json data/hanzidb.json --output-csv data/hanzidb_enhanced.csv
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(co.Input)
			if err != nil {
				return err
			}
			defer f.Close()

			conv, err := hanzi.ConvertCSV(f)
			if err != nil {
				return err
			}

			var jsonBuf bytes.Buffer
			if err := hanzi.WriteJSON(&jsonBuf, conv.Entries); err != nil {
				return err
			}
			if err := os.WriteFile(co.OutputJSON, jsonBuf.Bytes(), 0o644); err != nil {
				return err
			}

			if co.OutputCSV != "" {
				var csvBuf bytes.Buffer
				if err := hanzi.WriteEnhancedCSV(&csvBuf, conv.Rows); err != nil {
					return err
				}
				if err := os.WriteFile(co.OutputCSV, csvBuf.Bytes(), 0o644); err != nil {
					return err
				}
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Converted %d characters\n", len(conv.Entries))
			return nil
		},
	}

	AddConvertArgs(cmd, co)
	topLevel.AddCommand(cmd)
}
