package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/rcliao/wellness/internal/analytics"
	"github.com/rcliao/wellness/internal/present"
)

func init() {
	cmd := &cobra.Command{
		Use:   "analytics",
		Short: "Show mood statistics for a period",
		Long: "Show average anxiety, the mood chart, emotion frequency, weekday pattern, emotions that " +
			"come together, the anxiety trend and the current streak. week is the last 7x24h, " +
			"month the last 30x24h.",
		Run: runAnalytics,
	}

	cmd.Flags().StringP("period", "p", "week", "Period: week, month, all")

	RootCmd.AddCommand(cmd)
}

func runAnalytics(cmd *cobra.Command, args []string) {
	periodStr, _ := cmd.Flags().GetString("period")
	period, err := analytics.ParsePeriod(periodStr)
	if err != nil {
		exitErr("analytics", err)
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	all, err := s.Tracker.ReadAll(cmd.Context())
	if err != nil {
		exitErr("analytics", err)
	}

	now := time.Now()
	report := analytics.Compute(analytics.FilterByPeriod(all, period, now), all, now)

	if textOutput() {
		printText(cmd, present.Report(report, period, time.Local))
		return
	}
	printJSON(cmd, map[string]any{"period": period, "report": report})
}
