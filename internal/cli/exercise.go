package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/wellness/internal/model"
	"github.com/rcliao/wellness/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:       "exercise <breathing|grounding|cbt|body>",
		Short:     "Record a finished anti-anxiety exercise",
		Long:      "Record a finished anti-anxiety exercise. Answers given with --answer are kept for cbt only.",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"breathing", "grounding", "cbt", "body"},
		Run:       runExercise,
	}

	cmd.Flags().StringToString("answer", nil, "CBT answer as question=answer (repeatable)")

	RootCmd.AddCommand(cmd)
}

func runExercise(cmd *cobra.Command, args []string) {
	answers, _ := cmd.Flags().GetStringToString("answer")
	typ := model.ExerciseType(args[0])
	if !model.ValidExerciseTypes[typ] {
		exitErr("exercise", fmt.Errorf("unknown exercise type %q", typ))
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	session, err := s.CompleteExercise(cmd.Context(), typ, answers)
	if errors.Is(err, store.ErrInvalidRecord) {
		exitErr("exercise", err)
	}
	bestEffort(cmd, "session", session, err)
}
