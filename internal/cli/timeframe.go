package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "timeframe",
		Short: "List entries within a time window",
		Long:  "List entries with start <= timestamp <= end, oldest first. Bounds are RFC 3339 timestamps; end defaults to now.",
		Run:   runTimeframe,
	}

	cmd.Flags().String("start", "", "Window start, RFC 3339 (required)")
	cmd.Flags().String("end", "", "Window end, RFC 3339 (default: now)")
	cmd.Flags().StringP("type", "t", "", "Filter by entry type")

	cmd.MarkFlagRequired("start")

	RootCmd.AddCommand(cmd)
}

func runTimeframe(cmd *cobra.Command, args []string) {
	startStr, _ := cmd.Flags().GetString("start")
	endStr, _ := cmd.Flags().GetString("end")
	entryType, _ := cmd.Flags().GetString("type")

	start, err := time.Parse(time.RFC3339, startStr)
	if err != nil {
		exitErr("parse start", fmt.Errorf("%q: %w", startStr, err))
	}
	var end time.Time
	if endStr != "" {
		end, err = time.Parse(time.RFC3339, endStr)
		if err != nil {
			exitErr("parse end", fmt.Errorf("%q: %w", endStr, err))
		}
	}

	s, err := openSession(cmd.Context())
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	printJSON(s.Retriever.EntriesInTimeframe(start, end, entryType))
}
