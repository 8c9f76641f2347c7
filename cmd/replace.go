package cmd

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"taxtool/internal/config"
	"taxtool/internal/logger"
	"taxtool/internal/replacement"
)

var replaceCmd = &cobra.Command{
	Use:   "replace",
	Short: "Replace 5 random invoices with beverage invoices at the same totals",
	Long: `Replace 5 randomly chosen invoice files in the tax files directory with
synthesized beverage invoices (Sapporo, Tiger Draught, Coke).

The beverage total after 10% VAT equals the replaced invoice's original
total exactly; only the last line item's price is adjusted to close the
match. At most one replacement run is allowed per calendar day; running
again the same day is refused.`,
	Example: `  taxtool replace`,
	Args:    cobra.NoArgs,
	RunE:    runReplace,
}

func init() {
	rootCmd.AddCommand(replaceCmd)
}

func runReplace(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("replace")

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	store, err := replacement.NewDirStore(cfg.TaxFilesDir)
	if err != nil {
		return err
	}
	quota := replacement.NewQuotaTracker(cfg.StateFile)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	report, err := replacement.NewOrchestrator(store, quota, cfg.LogDir, rng).Run()
	if err != nil {
		log.Error().Err(err).Msg("Replacement run failed")
		return err
	}

	for _, line := range report.LogLines {
		fmt.Println(line)
	}
	fmt.Printf("\nLog written: %s\n", report.LogFile)
	return nil
}
