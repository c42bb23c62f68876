package cli

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"github.com/rcliao/wellness/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a journal export",
		Long:  "Import a journal from JSON on stdin, in the format produced by export. Records already present are skipped.",
		Run:   runImport,
	}

	RootCmd.AddCommand(cmd)
}

func runImport(cmd *cobra.Command, args []string) {
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		exitErr("read stdin", err)
	}

	var snap store.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		exitErr("parse json", err)
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	res, err := s.Import(cmd.Context(), snap)
	if err != nil {
		exitErr("import", err)
	}
	printJSON(cmd, map[string]any{"ok": true, "imported": res})
}
