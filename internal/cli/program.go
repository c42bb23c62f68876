package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/wellness/internal/catalog"
	"github.com/rcliao/wellness/internal/model"
	"github.com/rcliao/wellness/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "program",
		Short: "Work through the 7-day program",
	}

	showCmd := &cobra.Command{
		Use:   "show [day]",
		Short: "Show the program outline and saved answers",
		Args:  cobra.MaximumNArgs(1),
		Run:   runProgramShow,
	}

	setCmd := &cobra.Command{
		Use:   "set <day> <field> <value...>",
		Short: "Save an answer",
		Long: "Save an answer for one field of a program day. For list fields every value argument " +
			"is one item; for other fields the arguments are joined into one text answer.",
		Args: cobra.MinimumNArgs(3),
		Run:  runProgramSet,
	}

	completeCmd := &cobra.Command{
		Use:   "complete <day>",
		Short: "Mark a day as completed",
		Args:  cobra.ExactArgs(1),
		Run:   runProgramComplete,
	}

	cmd.AddCommand(showCmd, setCmd, completeCmd)
	RootCmd.AddCommand(cmd)
}

type programDayView struct {
	catalog.ProgramDay
	Progress model.ProgramDayProgress `json:"progress"`
}

func parseDay(s string) (catalog.ProgramDay, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return catalog.ProgramDay{}, fmt.Errorf("%w: %q", store.ErrInvalidDay, s)
	}
	d, err := catalog.LookupProgramDay(n)
	if err != nil {
		return catalog.ProgramDay{}, fmt.Errorf("%w: %d", store.ErrInvalidDay, n)
	}
	return d, nil
}

func runProgramShow(cmd *cobra.Command, args []string) {
	days := catalog.ProgramDays()
	if len(args) == 1 {
		d, err := parseDay(args[0])
		if err != nil {
			exitErr("program show", err)
		}
		days = []catalog.ProgramDay{d}
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	views := make([]programDayView, 0, len(days))
	for _, d := range days {
		p, err := s.Program.Day(cmd.Context(), d.ID)
		if err != nil {
			exitErr("program show", err)
		}
		views = append(views, programDayView{ProgramDay: d, Progress: p})
	}

	if textOutput() {
		printText(cmd, programText(views))
		return
	}
	if len(args) == 1 {
		printJSON(cmd, views[0])
		return
	}
	printJSON(cmd, views)
}

func runProgramSet(cmd *cobra.Command, args []string) {
	d, err := parseDay(args[0])
	if err != nil {
		exitErr("program set", err)
	}
	field, err := d.Field(args[1])
	if err != nil {
		exitErr("program set", err)
	}

	var v model.ResponseValue
	if field.Kind == catalog.FieldList {
		v = model.List(args[2:]...)
	} else {
		v = model.Text(strings.Join(args[2:], " "))
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	// User-intentional: surface failures.
	saved, err := s.Program.SaveField(cmd.Context(), d.ID, field.Key, v)
	if err != nil {
		exitErr("program set", err)
	}

	out := map[string]any{"ok": true, "day": saved}
	if field.Kind == catalog.FieldList && len(v.Items) < field.MinItems {
		out["items_missing"] = field.MinItems - len(v.Items)
	}
	printJSON(cmd, out)
}

func runProgramComplete(cmd *cobra.Command, args []string) {
	d, err := parseDay(args[0])
	if err != nil {
		exitErr("program complete", err)
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	saved, err := s.Program.MarkComplete(cmd.Context(), d.ID)
	if err != nil {
		exitErr("program complete", err)
	}
	printJSON(cmd, map[string]any{"ok": true, "day": saved})
}

func programText(views []programDayView) string {
	var b strings.Builder
	for _, v := range views {
		mark := " "
		if v.Progress.CompletedAt != nil {
			mark = "x"
		}
		fmt.Fprintf(&b, "[%s] Day %d: %s\n", mark, v.ID, v.Title)
		for _, f := range v.Fields {
			answer := "-"
			if r, ok := v.Progress.Responses[f.Key]; ok {
				if r.IsList {
					answer = fmt.Sprintf("%d item(s): %s", len(r.Items), strings.Join(r.Items, "; "))
				} else {
					answer = r.Text
				}
			}
			fmt.Fprintf(&b, "    %-24s %s\n", f.Key, answer)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
