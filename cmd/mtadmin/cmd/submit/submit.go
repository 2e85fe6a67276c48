// cmd/mtadmin/cmd/submit/submit.go
package submit

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"mtadmin/internal/app/client"
	"mtadmin/internal/domain/record"
	"mtadmin/internal/domain/submission"
	"mtadmin/internal/utils/console"
)

// SubmitCmd is the parent of the four form commands.
var SubmitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit a moderation form",
	Long: `Render a form as a channel message, save it to the local log and post it
to the webhook configured for its type.

Missing fields are asked for interactively when stdin is a terminal.`,
}

// field describes one form input.
type field struct {
	name    string
	prompt  string
	help    string
	def     string
	options []string
}

// flagName turns a stored field name into its flag spelling.
func flagName(name string) string {
	return strings.ReplaceAll(name, "_", "-")
}

// newFormCmd builds the command submitting a form of type typ.
func newFormCmd(typ record.RecType, use, short string, fields []field) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := client.Require(cmd.Context())
			if err != nil {
				return err
			}

			values, err := collect(cmd, fields)
			if err != nil {
				return err
			}

			res := app.Submit(cmd.Context(), typ, values)
			return report(cmd, res)
		},
	}

	for _, f := range fields {
		cmd.Flags().String(flagName(f.name), f.def, f.help)
		if len(f.options) > 0 {
			options := f.options
			_ = cmd.RegisterFlagCompletionFunc(flagName(f.name), func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
				return options, cobra.ShellCompDirectiveNoFileComp
			})
		}
	}
	return cmd
}

// collect reads every field from its flag, prompting for empty values when
// attached to a terminal.
func collect(cmd *cobra.Command, fields []field) (record.Fields, error) {
	interactive := console.IsTerminal(cmd.InOrStdin())
	var prompter *console.Prompter
	if interactive {
		prompter = console.NewPrompter(cmd.InOrStdin(), cmd.ErrOrStderr())
	}

	values := make(record.Fields, len(fields))
	for _, f := range fields {
		v, err := cmd.Flags().GetString(flagName(f.name))
		if err != nil {
			return nil, err
		}
		if v == "" && interactive && !cmd.Flags().Changed(flagName(f.name)) {
			prompt := f.prompt
			if len(f.options) > 0 {
				prompt += " (" + strings.Join(f.options, ", ") + ")"
			}
			if v, err = prompter.Ask(prompt, f.def); err != nil {
				return nil, fmt.Errorf("read %s: %w", f.name, err)
			}
		}
		values[f.name] = v
	}
	return values, nil
}

// report prints the message on stdout and the outcome on stderr. Only a
// validation failure is a command error.
func report(cmd *cobra.Command, res submission.Result) error {
	errOut := cmd.ErrOrStderr()

	if res.Status == submission.StatusValidationFailed {
		return fmt.Errorf("invalid input: %w", res.Err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), res.Message)

	if res.Succeeded() {
		console.Success(errOut, "%s", submission.Describe(res))
	} else {
		console.Warn(errOut, "%s", submission.Describe(res))
	}
	return nil
}

func init() {
	SubmitCmd.AddCommand(warningCmd)
	SubmitCmd.AddCommand(technicalCmd)
	SubmitCmd.AddCommand(createWarnCmd)
	SubmitCmd.AddCommand(createBanCmd)
}

