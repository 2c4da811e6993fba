package cmd

import (
	"fmt"
	"time"

	"item-store/internal/engine"

	"github.com/gosuri/uiprogress"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the table and load the seed file if the table is empty",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		start := time.Now()

		st, src, err := prepareStore(ctx)
		if err != nil {
			return err
		}

		locker, closeLocker := newLocker(st.Table().Name)
		defer closeLocker()

		uiprogress.Start()
		bar := uiprogress.AddBar(max(len(src.Lines), 1)).AppendCompleted().PrependElapsed()
		bar.PrependFunc(func(b *uiprogress.Bar) string {
			return "Seeding: "
		})

		res, err := engine.Bootstrap(ctx, st, src, engine.LoadOptions{
			Strict:     viper.GetBool("seed.strict"),
			Locker:     locker,
			OnProgress: func() { bar.Incr() },
		})
		uiprogress.Stop()

		verified := engine.Verify(ctx, st, res)

		fmt.Println("\n📊 Seed Report:")
		icon := "✓"
		if err != nil || (verified.Status != "VERIFIED_OK" && verified.Status != "SKIPPED") {
			icon = "!"
		}
		fmt.Printf("[%s] %-20s : %d/%d lines inserted, %d rows in table - %s\n",
			icon, verified.TableName, verified.Inserted, verified.Total, verified.Actual, verified.Status)
		if verified.ErrorMsg != "" {
			fmt.Printf("    └ Error: %s\n", verified.ErrorMsg)
		}
		zap.S().Infof("Seed done in %s", time.Since(start))

		return err
	},
}

func init() {
	RootCmd.AddCommand(seedCmd)

	seedCmd.Flags().Bool("strict", false, "reject data lines whose value count differs from the header")
	viper.BindPFlag("seed.strict", seedCmd.Flags().Lookup("strict"))
}
