// cmd/mtadmin/cmd/record/records.go
package record

import (
	"github.com/spf13/cobra"
)

// RecordCmd is the parent of the commands working on saved records.
var RecordCmd = &cobra.Command{
	Use:   "record",
	Short: "Manage saved records",
	Long:  `List, show, edit, delete and export the records saved by submit.`,
}

func init() {
	RecordCmd.AddCommand(ListCmd)
	RecordCmd.AddCommand(getCmd)
	RecordCmd.AddCommand(editCmd)
	RecordCmd.AddCommand(deleteCmd)
	RecordCmd.AddCommand(exportCmd)
}
