// cmd/mtadmin/cmd/record/export.go
package record

import (
	"github.com/spf13/cobra"

	"mtadmin/internal/app/client"
	"mtadmin/internal/utils/console"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export saved records as CSV",
	Long: `Write every saved record to a CSV file, one row per record. Without
--output the file is complaints_export_<timestamp>.csv in the export directory.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := client.Require(cmd.Context())
		if err != nil {
			return err
		}

		path, err := app.ExportRecords(exportOutput)
		if err != nil {
			return err
		}
		console.Success(cmd.ErrOrStderr(), "exported to %s", path)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "CSV file to write")
}
