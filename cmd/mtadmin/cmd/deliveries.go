// cmd/mtadmin/cmd/deliveries.go
package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"mtadmin/internal/app/client"
	"mtadmin/internal/domain/delivery"
)

var (
	deliveriesRecord string
	deliveriesLimit  int
)

var deliveriesCmd = &cobra.Command{
	Use:   "deliveries",
	Short: "Show recent webhook delivery attempts",
	Long: `Show the webhook delivery attempts kept in the local journal, most
recent first. The journal is informational; failed deliveries are not retried.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := client.Require(cmd.Context())
		if err != nil {
			return err
		}

		attempts, err := app.Deliveries(cmd.Context(), delivery.Query{
			RecordID: deliveriesRecord,
			Limit:    deliveriesLimit,
		})
		if err != nil {
			return err
		}
		if len(attempts) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No delivery attempts")
			return nil
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "STARTED\tRECORD\tTYPE\tATTEMPT\tSTATUS\tRESULT")
		for _, a := range attempts {
			result := "delivered"
			if !a.Delivered {
				result = a.Error
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%s\n",
				a.StartedAt.Local().Format("2006-01-02 15:04:05"),
				a.RecordID, a.RecordType, a.Attempt, a.StatusCode, result)
		}
		return tw.Flush()
	},
}

func init() {
	deliveriesCmd.Flags().StringVar(&deliveriesRecord, "record", "", "only attempts of this record id")
	deliveriesCmd.Flags().IntVar(&deliveriesLimit, "limit", 20, "maximum number of attempts, 0 for all")

	rootCmd.AddCommand(deliveriesCmd)
}
