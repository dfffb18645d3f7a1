package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove entries",
		Long:  "Remove every entry, or every entry of one type.",
		Run:   runClear,
	}

	cmd.Flags().StringP("type", "t", "", "Only clear entries of this type")

	RootCmd.AddCommand(cmd)
}

func runClear(cmd *cobra.Command, args []string) {
	entryType, _ := cmd.Flags().GetString("type")

	s, err := openSession(cmd.Context())
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	removed := s.Store.Clear(entryType)
	if err := s.Journal.RemoveType(cmd.Context(), entryType); err != nil {
		exitErr("journal", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), `{"removed":%d}`+"\n", removed)
}
