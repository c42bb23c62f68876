package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/wellness/internal/catalog"
	"github.com/rcliao/wellness/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "meditate",
		Short: "Browse meditations and record finished ones",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the meditation library",
		Args:  cobra.NoArgs,
		Run:   runMeditateList,
	}
	listCmd.Flags().StringP("category", "c", "", "Filter by category: sleep, relax, focus, morning")

	doneCmd := &cobra.Command{
		Use:   "done <meditation-id>",
		Short: "Record a meditation played to the end",
		Args:  cobra.ExactArgs(1),
		Run:   runMeditateDone,
	}

	cmd.AddCommand(listCmd, doneCmd)
	RootCmd.AddCommand(cmd)
}

func runMeditateList(cmd *cobra.Command, args []string) {
	category, _ := cmd.Flags().GetString("category")

	meds := catalog.Meditations()
	if category != "" {
		meds = catalog.MeditationsByCategory(catalog.Category(category))
		if len(meds) == 0 {
			exitErr("meditate list", fmt.Errorf("unknown category %q", category))
		}
	}

	if textOutput() {
		var b strings.Builder
		for _, m := range meds {
			fmt.Fprintf(&b, "%-10s %-8s %3d min  %s\n", m.ID, m.Category, m.Duration, m.Title)
		}
		printText(cmd, strings.TrimRight(b.String(), "\n"))
		return
	}
	printJSON(cmd, meds)
}

func runMeditateDone(cmd *cobra.Command, args []string) {
	med, err := catalog.LookupMeditation(args[0])
	if err != nil {
		exitErr("meditate done", err)
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	session, err := s.CompleteMeditation(cmd.Context(), med.ID, med.Duration)
	if errors.Is(err, store.ErrInvalidRecord) {
		exitErr("meditate done", err)
	}
	bestEffort(cmd, "session", session, err)
}
