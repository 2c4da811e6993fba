package cmd

import (
	"item-store/internal/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Delete every row from the derived table",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := prepareStore(cmd.Context())
		if err != nil {
			return err
		}
		return cleanTable(cmd, st)
	},
}

func init() {
	RootCmd.AddCommand(cleanCmd)
}

// cleanTable empties the table. The next serve or seed run loads the seed
// file again.
func cleanTable(cmd *cobra.Command, st *store.Store) error {
	ctx := cmd.Context()

	before, err := st.Count(ctx)
	if err != nil {
		return err
	}
	if err := st.Truncate(ctx); err != nil {
		return err
	}

	zap.S().Infof("Cleaned %s: %d rows removed", st.Table().Name, before)
	return nil
}
