package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"taxtool/internal/beverage"
	"taxtool/internal/config"
	"taxtool/internal/invoice"
	"taxtool/internal/logger"
)

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Delete ordinary invoices, keeping only beverage-replaced ones",
	Long: `Delete every invoice file in the tax files directory that is NOT a
beverage-only invoice. Externally generated files are deleted as well;
only the files a replacement run has rewritten survive.`,
	Example: `  # See what would be deleted
  taxtool cleanup --dry-run

  # Actually delete
  taxtool cleanup`,
	Args: cobra.NoArgs,
	RunE: runCleanup,
}

func init() {
	rootCmd.AddCommand(cleanupCmd)

	cleanupCmd.Flags().Bool("dry-run", false, "Only report what would be deleted")
}

func runCleanup(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("cleanup")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	dirEntries, err := os.ReadDir(cfg.TaxFilesDir)
	if err != nil {
		return fmt.Errorf("cannot read invoice directory %s: %w", cfg.TaxFilesDir, err)
	}

	var toKeep, toDelete []string
	for _, e := range dirEntries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), invoice.FileExt) {
			continue
		}
		isBeverage, _ := beverage.Classify(invoice.ReadProductNames, filepath.Join(cfg.TaxFilesDir, e.Name()))
		if isBeverage {
			toKeep = append(toKeep, e.Name())
		} else {
			toDelete = append(toDelete, e.Name())
		}
	}

	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("DELETE ORDINARY INVOICES - KEEP BEVERAGE-ONLY ONES")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Keeping (beverage):  %d files\n", len(toKeep))
	fmt.Printf("Deleting (ordinary): %d files\n\n", len(toDelete))

	if len(toDelete) == 0 {
		fmt.Println("Nothing to delete.")
		return nil
	}

	for _, name := range toDelete {
		if dryRun {
			fmt.Printf("  would delete: %s\n", name)
			continue
		}
		if err := os.Remove(filepath.Join(cfg.TaxFilesDir, name)); err != nil {
			log.Error().Err(err).Str("file", name).Msg("Delete failed")
			return fmt.Errorf("deleting %s: %w", name, err)
		}
		fmt.Printf("  deleted: %s\n", name)
	}

	if !dryRun {
		fmt.Printf("\nDeleted %d files. %d beverage-only files remain.\n", len(toDelete), len(toKeep))
	}
	return nil
}
