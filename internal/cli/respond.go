package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/rcliao/wellness/internal/present"
	"github.com/rcliao/wellness/internal/response"
)

func init() {
	cmd := &cobra.Command{
		Use:   "respond",
		Short: "Walk the follow-up for the last entry",
		Long: "Show the follow-up for the most recent tracker entry. Progress is not saved: " +
			"--step N replays N steps from the first question.",
		Run: runRespond,
	}

	cmd.Flags().Int("step", 0, "Steps to advance from the first question")

	RootCmd.AddCommand(cmd)
}

func runRespond(cmd *cobra.Command, args []string) {
	step, _ := cmd.Flags().GetInt("step")
	if step < 0 {
		exitErr("respond", errors.New("--step must not be negative"))
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	entry, err := s.Tracker.Last(cmd.Context())
	if err != nil {
		exitErr("respond", err)
	}
	if entry == nil {
		exitErr("respond", errors.New("no tracker entries yet"))
	}

	flow := response.NewFlow(response.Select(*entry))
	flow.Advance(step)

	if textOutput() {
		printText(cmd, present.Track(flow))
		return
	}
	printJSON(cmd, map[string]any{
		"entry_id": entry.ID,
		"track":    flow.Track(),
		"phase":    flow.Phase(),
		"index":    flow.Index(),
		"question": flow.Question(),
	})
}
