package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/patchview/internal/config"
	"github.com/zjrosen/patchview/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recently viewed diffs",
	RunE:  runHistoryList,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all history entries",
	RunE:  runHistoryClear,
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "maximum entries to list")
	historyCmd.AddCommand(historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}

// openHistory opens the configured history store.
func openHistory() (*history.Store, error) {
	path := cfg.History.Path
	if path == "" {
		path = config.DefaultHistoryPath()
	}
	if path == "" {
		return nil, fmt.Errorf("no history path configured")
	}
	return history.Open(path, cfg.History.MaxEntries)
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	store, err := openHistory()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	limit, _ := cmd.Flags().GetInt("limit")
	entries, err := store.Recent(limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		_, err := fmt.Fprintln(out, "no history")
		return err
	}

	for _, e := range entries {
		if _, err := fmt.Fprintf(out, "%s  %s  %d files  +%d -%d\n",
			e.ViewedAt.Local().Format("2006-01-02 15:04"),
			e.Path, e.Files, e.Additions, e.Deletions); err != nil {
			return err
		}
	}
	return nil
}

func runHistoryClear(cmd *cobra.Command, args []string) error {
	store, err := openHistory()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.Clear(); err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), "history cleared")
	return err
}
