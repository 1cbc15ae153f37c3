package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"clipedit/internal/application/commands"
)

var locateCmd = &cobra.Command{
	Use:   "locate",
	Short: "Show which editor would be opened",
	Long: `Resolve the editor the same way edit does: a PATH lookup first, then
the configured fallback locations. Prints the path and how it was found.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		locateCommand := commands.NewLocateEditorCommand(GetDeps().Locator, nil)
		result, err := locateCommand.Execute(ctx)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", result.Editor.Path, result.Editor.Source)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(locateCmd)
}
