package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "history [project]",
		Short: "Show the decision history for a project",
		Long:  "Show every decision tied to a project, oldest first: direct project_name matches plus decisions whose related_to references one of the project's entries.",
		Args:  cobra.MinimumNArgs(1),
		Run:   runHistory,
	}

	RootCmd.AddCommand(cmd)
}

func runHistory(cmd *cobra.Command, args []string) {
	s, err := openSession(cmd.Context())
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	printJSON(s.Retriever.DecisionHistoryForProject(strings.Join(args, " ")))
}
