// cmd/mtadmin/cmd/record/delete.go
package record

import (
	"errors"

	"github.com/spf13/cobra"

	"mtadmin/internal/app/client"
	"mtadmin/internal/utils/console"
)

var deleteYes bool

var deleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a saved record",
	Long: `Delete a saved record from the local log. Asks for confirmation on a
terminal; use --yes in scripts.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := client.Require(cmd.Context())
		if err != nil {
			return err
		}

		rec, err := app.GetRecord(args[0])
		if err != nil {
			return err
		}

		if !deleteYes {
			if !console.IsTerminal(cmd.InOrStdin()) {
				return errors.New("refusing to delete without confirmation, pass --yes")
			}
			p := console.NewPrompter(cmd.InOrStdin(), cmd.ErrOrStderr())
			ok, err := p.Confirm("Delete " + rec.Type.DisplayName() + " " + rec.ID + "?")
			if err != nil {
				return err
			}
			if !ok {
				console.Warn(cmd.ErrOrStderr(), "cancelled")
				return nil
			}
		}

		if err := app.DeleteRecord(rec.ID); err != nil {
			return err
		}
		console.Success(cmd.ErrOrStderr(), "record %s deleted", rec.ID)
		return nil
	},
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "delete without asking")
}
