// Package cli implements the wellness CLI commands.
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rcliao/wellness/internal/config"
	"github.com/rcliao/wellness/internal/kv"
	"github.com/rcliao/wellness/internal/logging"
	"github.com/rcliao/wellness/internal/store"
)

var (
	dbPath     string
	formatFlag string
	configPath string

	cfg    *config.Config
	logger = logging.Nop()
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "wellness",
	Short: "Local wellness journal",
	Long: "A local-only wellness journal: track emotions and anxiety, log exercises and meditations, " +
		"work through a 7-day program and see how it all adds up. SQLite-backed, single binary.",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Database path (default: $WELLNESS_DB, config file, or ~/.wellness/wellness.db)")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "json", "Output format: json or text")
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: ~/.config/wellness/config.yaml)")
}

func setup(cmd *cobra.Command, args []string) error {
	if formatFlag != "json" && formatFlag != "text" {
		return fmt.Errorf("invalid format %q (valid: json, text)", formatFlag)
	}

	c, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if dbPath != "" {
		c.DB = dbPath
	}
	cfg = c

	l, err := logging.New(c.Log)
	if err != nil {
		return err
	}
	logger = l
	return nil
}

func getDBPath() string {
	if dbPath != "" {
		return dbPath
	}
	if cfg != nil {
		return cfg.DB
	}
	return config.DefaultDBPath()
}

func openBackend() (*kv.SQLite, error) {
	return kv.NewSQLite(getDBPath())
}

func openStore() (*store.Store, error) {
	b, err := openBackend()
	if err != nil {
		return nil, err
	}
	return store.New(b, store.WithLogger(logger)), nil
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}

func textOutput() bool {
	return formatFlag == "text"
}

func printJSON(cmd *cobra.Command, v any) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
}

func printText(cmd *cobra.Command, s string) {
	fmt.Fprintln(cmd.OutOrStdout(), s)
}

// bestEffort reports the outcome of a write that must never block the user.
// A failure is logged and reported as {"ok":false}, and the command exits 0.
func bestEffort(cmd *cobra.Command, what string, v any, err error) {
	if err != nil {
		logger.Warn("best-effort write failed", zap.String("write", what), zap.Error(err))
		printJSON(cmd, map[string]any{"ok": false})
		return
	}
	printJSON(cmd, map[string]any{"ok": true, what: v})
}

// splitList splits a comma-separated flag value, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, t := range strings.Split(s, ",") {
		t = strings.TrimSpace(t)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
