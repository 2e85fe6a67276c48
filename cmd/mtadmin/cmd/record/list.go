// cmd/mtadmin/cmd/record/list.go
package record

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"mtadmin/internal/app/client"
	"mtadmin/internal/domain/record"
)

var (
	listType   string
	listFormat string
)

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved records",
	Long: `List saved records in submission order, optionally filtered by type.

Formats: simple (default), table, json.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := client.Require(cmd.Context())
		if err != nil {
			return err
		}

		filter := record.Filter{}
		if listType != "" {
			if filter.Type, err = record.ParseRecType(listType); err != nil {
				return err
			}
		}
		records := app.ListRecords(filter)

		out := cmd.OutOrStdout()
		switch listFormat {
		case "json":
			return printRecordsJSON(out, records)
		case "table":
			return printRecordsTable(out, records)
		case "", "simple":
			printRecordsSimple(out, records)
			return nil
		default:
			return fmt.Errorf("unknown format %q", listFormat)
		}
	},
}

func printRecordsSimple(w io.Writer, records []*record.Record) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No records found")
		return
	}
	for _, rec := range records {
		fmt.Fprintf(w, "%s – %s\n", rec.Type.DisplayName(), rec.ID)
	}
}

func printRecordsTable(w io.Writer, records []*record.Record) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTYPE\tTIMESTAMP")
	for _, rec := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", rec.ID, rec.Type.DisplayName(), rec.Timestamp)
	}
	return tw.Flush()
}

func printRecordsJSON(w io.Writer, records []*record.Record) error {
	if records == nil {
		records = []*record.Record{}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

func typeCompletion(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	names := make([]string, len(record.Types))
	for i, t := range record.Types {
		names[i] = t.String()
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

func init() {
	ListCmd.Flags().StringVarP(&listType, "type", "t", "", "only records of this type (warning, technical, create_warn, create_ban)")
	ListCmd.Flags().StringVarP(&listFormat, "format", "f", "simple", "output format: simple, table, json")
	_ = ListCmd.RegisterFlagCompletionFunc("type", typeCompletion)
	_ = ListCmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions([]string{"simple", "table", "json"}, cobra.ShellCompDirectiveNoFileComp))
}
