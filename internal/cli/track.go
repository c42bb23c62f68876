package cli

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rcliao/wellness/internal/present"
	"github.com/rcliao/wellness/internal/response"
	"github.com/rcliao/wellness/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "track [thought]",
		Short: "Log how you feel",
		Long: "Log a tracker entry: emotions, anxiety level (1-10), body sensations and an optional thought. " +
			"Prints the entry and the follow-up it leads to.",
		Run: runTrack,
	}

	cmd.Flags().StringP("emotions", "e", "", "Comma-separated emotions: calm, joy, sadness, anxiety, anger, fear, emptiness, hope (required)")
	cmd.Flags().IntP("anxiety", "a", 0, "Anxiety level 1-10 (required)")
	cmd.Flags().StringP("sensations", "s", "", "Comma-separated body sensations")
	cmd.Flags().StringP("thought", "t", "", "What is on your mind")

	cmd.MarkFlagRequired("emotions")
	cmd.MarkFlagRequired("anxiety")

	RootCmd.AddCommand(cmd)
}

func runTrack(cmd *cobra.Command, args []string) {
	emotions, _ := cmd.Flags().GetString("emotions")
	anxiety, _ := cmd.Flags().GetInt("anxiety")
	sensations, _ := cmd.Flags().GetString("sensations")
	thought, _ := cmd.Flags().GetString("thought")
	if thought == "" && len(args) > 0 {
		thought = strings.Join(args, " ")
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	// User-intentional: a failed save is an error the user can retry.
	entry, err := s.Tracker.Add(cmd.Context(), store.EntryParams{
		Emotions:       splitList(emotions),
		AnxietyLevel:   anxiety,
		BodySensations: splitList(sensations),
		Thought:        thought,
	})
	if err != nil {
		exitErr("track", err)
	}

	track := response.Select(entry)
	if textOutput() {
		printText(cmd, present.EntryLine(entry, time.Local))
		printText(cmd, present.Track(response.NewFlow(track)))
		return
	}
	printJSON(cmd, map[string]any{"entry": entry, "response": track})
}
