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

var (
	clean    bool
	fakeSeed int64
)

var fillCmd = &cobra.Command{
	Use:   "fill",
	Short: "Fill the derived table with random data",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		// Fetch count from Viper (Flag > Config > Default)
		targetCount := viper.GetInt("fill.count")
		if targetCount <= 0 {
			return fmt.Errorf("fill.count must be positive, got %d", targetCount)
		}

		gen, err := engine.NewGenerator(viper.GetString("fill.locale"), fakeSeed)
		if err != nil {
			return err
		}

		st, _, err := prepareStore(ctx)
		if err != nil {
			return err
		}

		if clean {
			if err := cleanTable(cmd, st); err != nil {
				return err
			}
		}

		zap.S().Infof("Starting fill with count=%d...", targetCount)
		start := time.Now()

		uiprogress.Start()
		bar := uiprogress.AddBar(targetCount).AppendCompleted().PrependElapsed()
		bar.PrependFunc(func(b *uiprogress.Bar) string {
			return "Processing: "
		})

		inserted, err := engine.Fill(ctx, st, gen, targetCount, func() {
			bar.Incr()
		})
		uiprogress.Stop()

		actual, countErr := st.Count(ctx)

		fmt.Println("\n📊 Summary Report:")
		icon := "✓"
		if err != nil || countErr != nil {
			icon = "!"
		}
		fmt.Printf("[%s] %-20s : %d rows inserted (Target: %d), %d rows in table\n",
			icon, st.Table().Name, inserted, targetCount, actual)
		if err != nil {
			fmt.Printf("    └ Error: %s\n", err)
		}
		zap.S().Infof("Fill done! Time Elapsed: %s", time.Since(start))

		return err
	},
}

func init() {
	RootCmd.AddCommand(fillCmd)

	// CLI Flags
	fillCmd.Flags().Int("count", 0, "Number of records to generate (overrides config)")
	fillCmd.Flags().String("locale", "", "Fake data locale: en or ko")
	fillCmd.Flags().BoolVar(&clean, "clean", false, "Clean the table before filling")
	fillCmd.Flags().Int64Var(&fakeSeed, "random-seed", 0, "Random seed for repeatable data (0 = random)")

	viper.BindPFlag("fill.count", fillCmd.Flags().Lookup("count"))
	viper.BindPFlag("fill.locale", fillCmd.Flags().Lookup("locale"))
	viper.SetDefault("fill.count", 100)
	viper.SetDefault("fill.locale", engine.LocaleEnglish)
}
