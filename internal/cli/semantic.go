package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "semantic [query]",
		Short: "Rank entries by similarity to a query",
		Long:  "Rank entries by hashed bag-of-words/bigram signature similarity, most similar first.",
		Args:  cobra.MinimumNArgs(1),
		Run:   runSemantic,
	}

	cmd.Flags().IntP("top", "n", 5, "Number of entries to return")
	cmd.Flags().StringP("type", "t", "", "Filter by entry type")

	RootCmd.AddCommand(cmd)
}

func runSemantic(cmd *cobra.Command, args []string) {
	topN, _ := cmd.Flags().GetInt("top")
	entryType, _ := cmd.Flags().GetString("type")

	s, err := openSession(cmd.Context())
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	printJSON(s.Retriever.SemanticSearch(strings.Join(args, " "), topN, entryType))
}
