package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rcliao/episodic-memory/internal/model"
)

func init() {
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export all entries as JSON",
		Run:   runExport,
	}
	importCmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import entries from a JSON export",
		Long:  "Import entries from a JSON export file (or stdin). Ids and timestamps are preserved; entries whose ids already exist are rejected.",
		Args:  cobra.MaximumNArgs(1),
		Run:   runImport,
	}

	RootCmd.AddCommand(exportCmd)
	RootCmd.AddCommand(importCmd)
}

func runExport(cmd *cobra.Command, args []string) {
	s, err := openSession(cmd.Context())
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	printJSON(s.Store.All())
}

func runImport(cmd *cobra.Command, args []string) {
	var r io.Reader = os.Stdin
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			exitErr("open file", err)
		}
		defer f.Close()
		r = f
	}

	var entries []*model.Entry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		exitErr("decode export", err)
	}

	s, err := openSession(cmd.Context())
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	imported := 0
	for _, e := range entries {
		stored, err := s.Store.Add(e)
		if err != nil {
			exitErr(fmt.Sprintf("import entry %s", e.ID), err)
		}
		if err := s.Journal.Append(cmd.Context(), stored); err != nil {
			exitErr("journal", err)
		}
		imported++
	}

	fmt.Fprintf(cmd.OutOrStdout(), `{"imported":%d}`+"\n", imported)
}
