// cmd/mtadmin/cmd/init.go
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"mtadmin/internal/app/client"
	"mtadmin/internal/domain/record"
	"mtadmin/internal/utils/console"
	"mtadmin/internal/utils/validate"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Set up the data directory and webhooks",
	Long: `The init command prepares MTAdmin for use:
	1. Creates the data directory holding records and webhook config
	2. Asks for the webhook URL of every record type (on a terminal)
	3. Writes the webhook configuration

Webhooks can be changed later with "mtadmin webhook set".`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := client.Require(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.ErrOrStderr()
		cfg := app.Config()
		fmt.Fprintln(out, "=== MTAdmin setup ===")
		fmt.Fprintf(out, "Records:  %s\n", cfg.RecordsPath)
		fmt.Fprintf(out, "Webhooks: %s\n", cfg.WebhooksPath)
		if cfg.JournalEnabled {
			fmt.Fprintf(out, "Journal:  %s\n", cfg.JournalPath)
		}
		fmt.Fprintln(out)

		hooks := app.Webhooks()
		if console.IsTerminal(cmd.InOrStdin()) {
			p := console.NewPrompter(cmd.InOrStdin(), out)
			for _, t := range record.Types {
				url, err := p.Ask("Webhook for "+t.DisplayName(), hooks.URLFor(t))
				if err != nil {
					return err
				}
				if url != "" && !validate.IsURL(url) {
					console.Warn(out, "%q is not a valid URL, keeping the previous value", url)
					continue
				}
				if hooks, err = hooks.Set(t, url); err != nil {
					return err
				}
			}
		} else if app.Initialized() {
			console.Success(out, "already initialized")
			return nil
		}

		if err := app.SetWebhooks(hooks); err != nil {
			return err
		}
		for _, t := range record.Types {
			if !hooks.Configured(t) {
				console.Warn(out, "no webhook for %s, its submissions are only saved locally", t.DisplayName())
			}
		}
		console.Success(out, "MTAdmin is ready")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
