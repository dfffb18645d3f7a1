// Package cli implements the episodic-memory CLI commands.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rcliao/episodic-memory/internal/journal"
	"github.com/rcliao/episodic-memory/internal/retriever"
	"github.com/rcliao/episodic-memory/internal/store"
	"github.com/rcliao/episodic-memory/internal/writer"
)

var (
	dbPath  string
	verbose bool
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "episodic-memory",
	Short: "Episodic memory store and retrieval engine",
	Long:  "An append-mostly log of typed, timestamped memory entries with keyword, regex, metadata, and hashed-similarity search plus time-window and pattern analytics. SQLite-journaled, single binary.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Journal path (default: $EPISODIC_MEMORY_DB or ~/.episodic-memory/journal.db)")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func getDBPath() string {
	if dbPath != "" {
		return dbPath
	}
	if env := os.Getenv("EPISODIC_MEMORY_DB"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".episodic-memory", "journal.db")
}

// session wires the per-invocation store, rebuilt from the journal, with
// the writer and retriever layers that commands call.
type session struct {
	Store     *store.Store
	Journal   *journal.Journal
	Writer    *writer.Writer
	Retriever *retriever.Retriever
}

func openSession(ctx context.Context) (*session, error) {
	j, err := journal.Open(getDBPath(), slog.Default())
	if err != nil {
		return nil, err
	}
	st := store.New()
	if _, err := j.Replay(ctx, st); err != nil {
		j.Close()
		return nil, err
	}
	return &session{
		Store:     st,
		Journal:   j,
		Writer:    writer.New(st),
		Retriever: retriever.New(st),
	}, nil
}

func (s *session) Close() {
	s.Journal.Close()
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}

func printJSON(v any) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
}
