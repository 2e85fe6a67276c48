// cmd/mtadmin/cmd/record/get.go
package record

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"mtadmin/internal/app/client"
)

var (
	getOutput  string
	getMessage bool
)

var getCmd = &cobra.Command{
	Use:   "get ID",
	Short: "Show a saved record",
	Long: `Show the fields of a saved record, or with --message the channel message
it renders to.`,
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

		out := cmd.OutOrStdout()
		if getMessage {
			fmt.Fprintln(out, app.Message(rec))
			return nil
		}

		switch getOutput {
		case "json":
			data, err := json.MarshalIndent(rec, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(data))
		case "", "text":
			fmt.Fprintf(out, "%s\n\n", rec.Type.DisplayName())
			for _, key := range rec.Keys() {
				fmt.Fprintf(out, "%-20s %s\n", key+":", rec.Value(key))
			}
		default:
			return fmt.Errorf("unknown output %q", getOutput)
		}
		return nil
	},
}

func init() {
	getCmd.Flags().StringVarP(&getOutput, "output", "o", "text", "output format: text, json")
	getCmd.Flags().BoolVarP(&getMessage, "message", "m", false, "print the rendered channel message")
}
