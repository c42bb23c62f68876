package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/rcliao/wellness/internal/present"
	"github.com/rcliao/wellness/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:     "entries",
		Aliases: []string{"ls"},
		Short:   "List tracker entries",
		Long:    "List tracker entries newest first, optionally filtered by emotion, thought text or age.",
		Run:     runEntries,
	}

	cmd.Flags().StringP("emotion", "e", "", "Only entries with this emotion")
	cmd.Flags().StringP("query", "q", "", "Case-insensitive text to find in the thought")
	cmd.Flags().Duration("since", 0, "Only entries newer than this (e.g. 72h)")
	cmd.Flags().IntP("limit", "l", 20, "Max results (-1 for all)")

	RootCmd.AddCommand(cmd)
}

func runEntries(cmd *cobra.Command, args []string) {
	emotion, _ := cmd.Flags().GetString("emotion")
	query, _ := cmd.Flags().GetString("query")
	since, _ := cmd.Flags().GetDuration("since")
	limit, _ := cmd.Flags().GetInt("limit")

	f := store.Filter{Emotion: emotion, Query: query, Limit: limit}
	if since > 0 {
		f.Since = time.Now().Add(-since)
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	entries, err := s.Tracker.Search(cmd.Context(), f)
	if err != nil {
		exitErr("entries", err)
	}

	if textOutput() {
		if len(entries) == 0 {
			printText(cmd, "No entries.")
		}
		for _, e := range entries {
			printText(cmd, present.EntryLine(e, time.Local))
		}
		return
	}
	printJSON(cmd, entries)
}
