package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"clipedit/internal/application/commands"
)

var (
	scriptLoginShell bool
	scriptNoCompat   bool
)

var scriptCmd = &cobra.Command{
	Use:   "script [file]",
	Short: "Print the terminal launch script without running it",
	Long: `Print the AppleScript that edit would hand to osascript for the detected
terminal application. Nothing is launched.

Examples:
  clipedit-cli script
  clipedit-cli script "/tmp/my notes.txt" --login-shell`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		d := GetDeps()

		scriptCommand := commands.NewLocateEditorCommand(d.Locator, d.Launcher)
		scriptCommand.Options = d.LaunchOptions()
		scriptCommand.Options.UseLoginShell = scriptCommand.Options.UseLoginShell || scriptLoginShell
		scriptCommand.Options.PassExtraFlag = scriptCommand.Options.PassExtraFlag && !scriptNoCompat
		if len(args) == 1 {
			scriptCommand.File = args[0]
		}

		result, err := scriptCommand.Execute(ctx)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.ErrOrStderr(), "-- %s via %s\n", result.Editor.Path, d.Launcher.Backend())
		fmt.Fprintln(cmd.OutOrStdout(), result.Script)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scriptCmd)
	scriptCmd.Flags().BoolVar(&scriptLoginShell, "login-shell", false, "run the editor through $SHELL")
	scriptCmd.Flags().BoolVar(&scriptNoCompat, "no-compat", false, "omit the editor compatibility flags")
}
