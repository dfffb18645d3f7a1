package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "errors",
		Short: "List recent error entries",
		Run:   runErrors,
	}

	cmd.Flags().Int("days", 7, "Look back this many days")

	RootCmd.AddCommand(cmd)
}

func runErrors(cmd *cobra.Command, args []string) {
	days, _ := cmd.Flags().GetInt("days")

	s, err := openSession(cmd.Context())
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	printJSON(s.Retriever.RecentErrors(days))
}
