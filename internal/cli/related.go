package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "related [value]",
		Short: "Find entries by exact metadata match",
		Long:  "Find entries whose metadata key equals the value exactly, e.g. all entries whose related_to references a given id.",
		Args:  cobra.ExactArgs(1),
		Run:   runRelated,
	}

	cmd.Flags().StringP("key", "k", "related_to", "Metadata key to match")

	RootCmd.AddCommand(cmd)
}

func runRelated(cmd *cobra.Command, args []string) {
	key, _ := cmd.Flags().GetString("key")

	s, err := openSession(cmd.Context())
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	printJSON(s.Retriever.RelatedEntries(key, args[0]))
}
