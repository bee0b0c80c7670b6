package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/todoforai/todoai-cli/internal/history"
	"github.com/todoforai/todoai-cli/internal/ui"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recently created TODOs",
	Long: `History lists TODOs created from this machine, newest first. The record
is kept locally; no network call is made.`,
	Example: `  todoai history
  todoai history --limit 5
  todoai history --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		hs, err := history.Open(historyDBPath)
		if err != nil {
			return fmt.Errorf("open history: %w", err)
		}
		defer hs.Close()

		entries, err := hs.List(cmd.Context(), historyLimit)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		if flagJSON {
			if entries == nil {
				entries = []history.Entry{}
			}
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(entries)
		}

		if len(entries) == 0 {
			fmt.Fprintln(w, "No TODOs created yet.")
			return nil
		}

		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "CREATED\tAGENT\tCONTENT\tURL")
		for _, e := range entries {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
				humanize.Time(e.CreatedAt),
				orUnset(e.AgentName),
				ui.Truncate(e.Content, 50),
				e.URL,
			)
		}
		return tw.Flush()
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the local TODO history",
	RunE: func(cmd *cobra.Command, args []string) error {
		hs, err := history.Open(historyDBPath)
		if err != nil {
			return fmt.Errorf("open history: %w", err)
		}
		defer hs.Close()

		if err := hs.Clear(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum number of entries")
	historyCmd.Flags().BoolVar(&flagJSON, "json", false, "output in JSON format")
	historyCmd.AddCommand(historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}
