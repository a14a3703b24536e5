// csvcheck validates CSV files against the ingestion rules without running
// the server, and can emit the sample templates users should start from.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bizsight/bizsight/internal/ingest"
	"github.com/bizsight/bizsight/internal/report"
	"github.com/spf13/cobra"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:          "csvcheck",
	Short:        "Validate CSV files against the analytics ingestion rules",
	SilenceUsage: true,
}

var validateKind string

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Parse a CSV file and report validation errors",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		var (
			table ingest.Table
			kind  ingest.Kind
			errs  []ingest.ValidationError
		)
		if validateKind != "" {
			kind, err = ingest.ParseKind(validateKind)
			if err != nil {
				return err
			}
			table = ingest.Parse(string(content))
			errs = ingest.Validate(table, kind.RequiredColumns())
		} else {
			table, kind, errs = ingest.ValidateFile(filepath.Base(path), string(content))
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "file:    %s\n", path)
		fmt.Fprintf(out, "kind:    %s\n", kind)
		fmt.Fprintf(out, "columns: %s\n", strings.Join(table.Headers, ", "))
		fmt.Fprintf(out, "rows:    %d\n", len(table.Rows))

		if suggested := ingest.SuggestKind(table.Headers); suggested != "" && suggested != kind {
			fmt.Fprintf(out, "note:    headers look like %s data\n", suggested)
		}

		if len(errs) == 0 {
			fmt.Fprintln(out, "ok")
			return nil
		}

		fmt.Fprintf(out, "\n%d validation errors:\n", len(errs))
		for _, e := range errs {
			fmt.Fprintf(out, "  %s\n", e.Error())
		}
		os.Exit(1)
		return nil
	},
}

var (
	templateFormat string
	templateOut    string
)

var templateCmd = &cobra.Command{
	Use:       "template <kind>",
	Short:     "Write a sample CSV or XLSX template for a data kind",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"sales", "inventory", "customers"},
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := ingest.ParseKind(args[0])
		if err != nil {
			return err
		}

		name := templateOut
		if name == "" {
			name = report.TemplateFileName(kind, templateFormat)
		}

		f, err := os.Create(name)
		if err != nil {
			return err
		}
		defer f.Close()

		switch templateFormat {
		case "csv":
			if _, err := f.WriteString(report.TemplateCSV(kind)); err != nil {
				return err
			}
		case "xlsx":
			if err := report.TemplateXLSX(kind, f); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unknown format %q (want csv or xlsx)", templateFormat)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", name)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the csvcheck version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "csvcheck %s\n", version)
	},
}

func init() {
	validateCmd.Flags().StringVarP(&validateKind, "kind", "k", "", "data kind to validate against (sales, inventory, customers); inferred from the file name when unset")
	templateCmd.Flags().StringVarP(&templateFormat, "format", "f", "csv", "template format (csv or xlsx)")
	templateCmd.Flags().StringVarP(&templateOut, "out", "o", "", "output file (defaults to the standard sample name)")

	rootCmd.AddCommand(validateCmd, templateCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
