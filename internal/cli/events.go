package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Summarize recent events",
		Run:   runEvents,
	}

	cmd.Flags().IntP("limit", "n", 3, "Number of events to include")

	RootCmd.AddCommand(cmd)
}

func runEvents(cmd *cobra.Command, args []string) {
	n, _ := cmd.Flags().GetInt("limit")

	s, err := openSession(cmd.Context())
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	fmt.Println(strings.TrimRight(s.Retriever.SummarizeRecentEvents(n), "\n"))
}
