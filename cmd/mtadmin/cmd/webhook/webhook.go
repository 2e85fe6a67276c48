// cmd/mtadmin/cmd/webhook/webhook.go
package webhook

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"mtadmin/internal/app/client"
	"mtadmin/internal/domain/record"
	"mtadmin/internal/utils/console"
)

// WebhookCmd groups the webhook configuration commands.
var WebhookCmd = &cobra.Command{
	Use:   "webhook",
	Short: "Configure the webhook of each record type",
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the configured webhooks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := client.Require(cmd.Context())
		if err != nil {
			return err
		}

		cfg := app.Webhooks()
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "TYPE\tURL")
		for _, t := range record.Types {
			url := cfg.URLFor(t)
			if url == "" {
				url = "(not configured)"
			}
			fmt.Fprintf(tw, "%s\t%s\n", t, url)
		}
		return tw.Flush()
	},
}

var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Set webhook URLs",
	Long: `Set the webhook URL of one or more record types. Only the given flags
change; pass an empty value to clear a webhook.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := client.Require(cmd.Context())
		if err != nil {
			return err
		}

		cfg := app.Webhooks()
		changed := 0
		for _, t := range record.Types {
			name := flagName(t)
			if !cmd.Flags().Changed(name) {
				continue
			}
			url, err := cmd.Flags().GetString(name)
			if err != nil {
				return err
			}
			if cfg, err = cfg.Set(t, url); err != nil {
				return err
			}
			changed++
		}
		if changed == 0 {
			return errors.New("no webhook given, use --warning, --technical, --create-warn or --create-ban")
		}

		if err := app.SetWebhooks(cfg); err != nil {
			return err
		}
		console.Success(cmd.ErrOrStderr(), "%d webhook(s) saved", changed)
		return nil
	},
}

func flagName(t record.RecType) string {
	switch t {
	case record.RecTypeCreateWarn:
		return "create-warn"
	case record.RecTypeCreateBan:
		return "create-ban"
	default:
		return t.String()
	}
}

func init() {
	for _, t := range record.Types {
		setCmd.Flags().String(flagName(t), "", "webhook URL for "+t.DisplayName()+" records")
	}

	WebhookCmd.AddCommand(showCmd)
	WebhookCmd.AddCommand(setCmd)
}
