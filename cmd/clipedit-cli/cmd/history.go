package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"clipedit/internal/adapters/tui/styles"
	"clipedit/internal/application/commands"
	"clipedit/internal/domain"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent edit sessions",
	Long: `List the most recent edit sessions, newest first. Only sizes, timings
and outcomes are kept; clipboard text is never stored.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		d := GetDeps()
		if d.Journal == nil {
			return fmt.Errorf("session journal is disabled or unavailable")
		}

		historyCommand := commands.NewListSessionsCommand(d.Journal, historyLimit)
		result, err := historyCommand.Execute(ctx)
		if err != nil {
			return err
		}

		if len(result.Sessions) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), styles.MutedText.Render("No sessions yet."))
			return nil
		}

		fmt.Fprintln(cmd.OutOrStdout(), renderHistory(result.Sessions))
		fmt.Fprintln(cmd.OutOrStdout(), styles.MutedText.Render(
			fmt.Sprintf("%d of %d updated the clipboard", result.Updated(), len(result.Sessions))))
		return nil
	},
}

var historyColumns = []string{"STARTED", "OUTCOME", "BYTES", "DURATION", "BACKEND", "ERROR"}

func renderHistory(sessions []domain.EditSession) string {
	rows := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		rows = append(rows, []string{
			s.StartedAt.Local().Format("2006-01-02 15:04:05"),
			string(s.Outcome),
			fmt.Sprintf("%d→%d", s.BytesBefore(), s.BytesAfter),
			s.Duration().Round(time.Second).String(),
			s.Backend,
			s.Error,
		})
	}

	widths := make([]int, len(historyColumns))
	for i, h := range historyColumns {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	var b strings.Builder
	header := make([]string, len(historyColumns))
	for i, h := range historyColumns {
		header[i] = styles.TableHeader.Width(widths[i] + 2).Render(h)
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, header...))

	for r, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			style := styles.TableCell
			if i == 1 {
				style = styles.OutcomeStyle(string(sessions[r].Outcome)).PaddingRight(2)
			}
			cells[i] = style.Width(widths[i] + 2).Render(cell)
		}
		b.WriteString("\n")
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return b.String()
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", commands.DefaultHistoryLimit, "number of sessions to show")
}
