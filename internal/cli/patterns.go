package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "patterns",
		Short: "Mine recurring patterns in recent events",
		Long:  "Group events from the lookback window by category, activity_type, and project_name metadata and report the groups ordered by frequency.",
		Run:   runPatterns,
	}

	cmd.Flags().Int("days", 7, "Look back this many days")

	RootCmd.AddCommand(cmd)
}

func runPatterns(cmd *cobra.Command, args []string) {
	days, _ := cmd.Flags().GetInt("days")

	s, err := openSession(cmd.Context())
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	printJSON(s.Retriever.FindPatternsInEvents(days))
}
