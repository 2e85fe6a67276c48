// cmd/mtadmin/cmd/root.go
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mtadmin/cmd/mtadmin/cmd/record"
	"mtadmin/cmd/mtadmin/cmd/submit"
	"mtadmin/cmd/mtadmin/cmd/webhook"
	"mtadmin/internal/app/client"
	"mtadmin/internal/app/client/config"
	"mtadmin/internal/utils/console"
	"mtadmin/internal/utils/logger"
)

const skipAppAnnotation = "mtadmin/skip-app"

var (
	cfgFile string
	debug   bool
	dataDir string
)

var rootCmd = &cobra.Command{
	Use:   "mtadmin",
	Short: "MTAdmin - moderation reports for Discord channels",
	Long: `MTAdmin renders moderation reports (support warnings, technical records,
warn and ban requests), posts them to the configured Discord webhooks and keeps
a local log of every submitted record.

The rendered message is printed on stdout so it can be piped to a clipboard
tool; outcomes and diagnostics go to stderr.`,
	PersistentPreRunE: setupApp,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func Execute() {
	if _, err := execute(context.Background()); err != nil {
		console.Error(os.Stderr, "%v", err)
		os.Exit(1)
	}
}

// execute runs the command tree and closes the application of the executed
// command, also when it failed.
func execute(ctx context.Context) (*cobra.Command, error) {
	cmd, err := rootCmd.ExecuteContextC(ctx)
	if cmd != nil {
		closeApp(cmd)
	}
	return cmd, err
}

func setupApp(cmd *cobra.Command, _ []string) error {
	if cmd.Annotations[skipAppAnnotation] == "true" {
		return nil
	}

	if dataDir != "" {
		if err := os.Setenv("MTADMIN_DATA_DIR", dataDir); err != nil {
			return fmt.Errorf("set data dir: %w", err)
		}
	}

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	level := cfg.LogLevel
	if debug {
		level = "debug"
	}
	log := logger.NewWithLevel(cfg.Env, level)

	app, err := client.New(cfg, log)
	if err != nil {
		return fmt.Errorf("initialize application: %w", err)
	}
	for _, diag := range app.Diagnostics() {
		console.Warn(cmd.ErrOrStderr(), "%v", diag)
	}

	cmd.SetContext(client.WithApp(cmd.Context(), app))
	return nil
}

func closeApp(cmd *cobra.Command) {
	if cmd.Annotations[skipAppAnnotation] == "true" {
		return
	}
	app := client.FromContext(cmd.Context())
	if app == nil {
		return
	}
	if err := app.Close(); err != nil {
		console.Warn(cmd.ErrOrStderr(), "close application: %v", err)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "settings file (default <data dir>/mtadmin.yaml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "directory holding records and webhook config")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(submit.SubmitCmd)
	rootCmd.AddCommand(record.RecordCmd)
	rootCmd.AddCommand(webhook.WebhookCmd)
}
