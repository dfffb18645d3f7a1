package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/episodic-memory/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search entries",
		Long:  "Search entry content by keyword, regex, metadata substring, or hashed-signature similarity.",
		Args:  cobra.MinimumNArgs(1),
		Run:   runSearch,
	}

	cmd.Flags().StringP("mode", "m", "keyword", "Search mode: keyword, regex, metadata, semantic")
	cmd.Flags().StringP("type", "t", "", "Filter by entry type")
	cmd.Flags().StringP("key", "k", "", "Metadata key (metadata mode; empty scans all keys)")
	cmd.Flags().IntP("limit", "l", 0, "Max results (0 = unlimited; semantic defaults to 5)")

	RootCmd.AddCommand(cmd)
}

func runSearch(cmd *cobra.Command, args []string) {
	mode, _ := cmd.Flags().GetString("mode")
	entryType, _ := cmd.Flags().GetString("type")
	key, _ := cmd.Flags().GetString("key")
	limit, _ := cmd.Flags().GetInt("limit")
	query := strings.Join(args, " ")

	s, err := openSession(cmd.Context())
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	strategy, err := store.StrategyFor(mode, s.Store)
	if err != nil {
		exitErr("search", err)
	}
	results, err := strategy.Search(store.Query{
		Text:       query,
		TypeFilter: entryType,
		Key:        key,
		TopN:       limit,
	})
	if err != nil {
		exitErr("search", err)
	}
	printJSON(results)
}
