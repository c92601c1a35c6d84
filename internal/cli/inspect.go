package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/frherrer/docx2testlink/internal/converter"
	"github.com/frherrer/docx2testlink/internal/document"
	"github.com/frherrer/docx2testlink/internal/parser"
	"github.com/frherrer/docx2testlink/internal/ui"
)

var inspectMode string

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "List the blocks of a document and how they are classified",
	Long: `Prints every paragraph and table of the document body in reading order with
its style and the structural role the converter gives it. Use it to find out
why a heading or table is not picked up.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := converter.ParseMode(inspectMode)
		if err != nil {
			return err
		}
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		path := args[0]
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		loader, err := parser.NewDefaultRegistry().LoaderForPath(path)
		if err != nil {
			return err
		}
		doc, err := loader.Load(path, content)
		if err != nil {
			return err
		}

		rows, err := classifyBlocks(doc, converter.ClassifyOptions{Mode: mode, ReqID: cfg.Requirements.ReqID})
		if err != nil {
			return err
		}
		ui.BlockTable(cmd.OutOrStdout(), rows)
		return nil
	},
}

func init() {
	inspectCmd.Flags().StringVarP(&inspectMode, "mode", "m", string(converter.ModeTestCases), "document kind: requirements or testcases")
	rootCmd.AddCommand(inspectCmd)
}

func classifyBlocks(doc *document.Document, opts converter.ClassifyOptions) ([]ui.BlockRow, error) {
	s, err := document.NewScanner(doc)
	if err != nil {
		return nil, err
	}

	var rows []ui.BlockRow
	for i := 1; ; i++ {
		b, err := s.Next()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return nil, err
		}

		row := ui.BlockRow{Index: i, Kind: converter.Classify(b, opts).String()}
		switch v := b.(type) {
		case *document.Paragraph:
			row.Style = v.Style
			row.Text = v.Text
		case *document.Table:
			row.Text = fmt.Sprintf("%d rows x %d columns", len(v.Rows), v.ColumnCount())
			if first := v.Cell(0, 0); first != nil {
				row.Text += ": " + first.Text()
			}
		}
		rows = append(rows, row)
	}
}
