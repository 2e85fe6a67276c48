// cmd/mtadmin/cmd/record/edit.go
package record

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"mtadmin/internal/app/client"
	"mtadmin/internal/domain/record"
	"mtadmin/internal/utils/console"
)

var editSets []string

var editCmd = &cobra.Command{
	Use:   "edit ID --set field=value ...",
	Short: "Edit the fields of a saved record",
	Long: `Replace fields of a saved record. The record type never changes and the
edited fields are validated like a new submission. Edits are not posted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := client.Require(cmd.Context())
		if err != nil {
			return err
		}

		changes, err := parseSets(editSets)
		if err != nil {
			return err
		}
		if len(changes) == 0 {
			return errors.New("nothing to change, use --set field=value")
		}

		rec, err := app.GetRecord(args[0])
		if err != nil {
			return err
		}
		updated, err := app.EditRecord(cmd.Context(), rec.ID, editedFields(rec, changes))
		if err != nil {
			return err
		}

		console.Success(cmd.ErrOrStderr(), "record %s updated", updated.ID)
		return nil
	},
}

// editedFields applies changes to the fields of rec. Keys that do not
// belong to the record type are dropped first, so records carrying the
// fields of other forms can still be edited. Unknown keys in changes are
// kept and rejected by validation.
func editedFields(rec *record.Record, changes map[string]string) record.Fields {
	fields := record.Complete(rec.Type, rec.Fields)
	for k, v := range changes {
		fields[k] = v
	}
	return fields
}

// parseSets turns field=value pairs into a map. Dashes in field names are
// accepted for underscores.
func parseSets(sets []string) (map[string]string, error) {
	out := make(map[string]string, len(sets))
	for _, s := range sets {
		key, value, ok := strings.Cut(s, "=")
		key = strings.ReplaceAll(strings.TrimSpace(key), "-", "_")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --set %q, expected field=value", s)
		}
		out[key] = value
	}
	return out, nil
}

func init() {
	editCmd.Flags().StringArrayVar(&editSets, "set", nil, "field=value to change, repeatable")
}
