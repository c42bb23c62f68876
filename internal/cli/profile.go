package cli

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/rcliao/wellness/internal/analytics"
	"github.com/rcliao/wellness/internal/auth"
	"github.com/rcliao/wellness/internal/catalog"
	"github.com/rcliao/wellness/internal/model"
	"github.com/rcliao/wellness/internal/present"
)

func init() {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show totals across everything logged",
		Run:   runProfile,
	}

	RootCmd.AddCommand(cmd)
}

func runProfile(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	ctx := cmd.Context()
	entries, err := s.Tracker.ReadAll(ctx)
	if err != nil {
		exitErr("profile", err)
	}
	sessions, err := s.Antianxiety.ReadAll(ctx)
	if err != nil {
		exitErr("profile", err)
	}
	meditations, err := s.Meditations.ReadAll(ctx)
	if err != nil {
		exitErr("profile", err)
	}
	program, err := s.Program.Progress(ctx)
	if err != nil {
		exitErr("profile", err)
	}

	var user *model.User
	u, err := auth.New(s).Current(ctx)
	switch {
	case err == nil:
		user = &u
	case !errors.Is(err, auth.ErrNotLoggedIn):
		exitErr("profile", err)
	}

	stats := analytics.Profile(entries, sessions, program)
	med := analytics.Meditation(meditations, catalog.LookupMeditation)

	if textOutput() {
		printText(cmd, present.Profile(stats, med, user, time.Local))
		return
	}
	printJSON(cmd, map[string]any{"user": user, "stats": stats, "meditation": med})
}
