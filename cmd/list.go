package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"taxtool/internal/beverage"
	"taxtool/internal/config"
	"taxtool/internal/currency"
	"taxtool/internal/invoice"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all invoices that were replaced with beverage invoices",
	Long: `Scan the tax files directory and report every invoice file whose line
items consist solely of the beverage catalog (Sapporo, Tiger Draught,
Coke), i.e. the files a replacement run has rewritten.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

type beverageEntry struct {
	file    string
	id      string
	payment string
	total   string
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	files, err := scanInvoiceFiles(cfg.TaxFilesDir)
	if err != nil {
		return err
	}

	var entries []beverageEntry
	for _, name := range files {
		isBeverage, _ := beverage.Classify(invoice.ReadProductNames, filepath.Join(cfg.TaxFilesDir, name))
		if !isBeverage {
			continue
		}
		entry := beverageEntry{file: name}
		if id, method, total, perr := invoice.ParseFilename(name); perr == nil {
			entry.id = id
			entry.payment = string(method)
			entry.total = currency.FormatAmount(total) + "đ"
		}
		entries = append(entries, entry)
	}

	fmt.Println(strings.Repeat("=", 70))
	fmt.Println("BEVERAGE-REPLACED INVOICES (Sapporo, Tiger Draught, Coke)")
	fmt.Println(strings.Repeat("=", 70))
	fmt.Printf("Invoice files scanned (excluding %q): %d\n", strings.TrimSuffix(invoice.ExternalPrefix, " - "), len(files))
	fmt.Printf("Beverage-only (replaced):             %d\n\n", len(entries))

	if len(entries) == 0 {
		fmt.Println("No beverage-only invoices found.")
		return nil
	}

	fmt.Printf("%-4s %-10s %-10s %-15s %s\n", "#", "Invoice", "Payment", "Total", "File")
	fmt.Println(strings.Repeat("-", 70))
	for i, e := range entries {
		fmt.Printf("%-4d %-10s %-10s %-15s %s\n", i+1, e.id, e.payment, e.total, e.file)
	}
	fmt.Println(strings.Repeat("=", 70))
	return nil
}

// scanInvoiceFiles lists invoice files in dir, skipping externally
// generated ones, sorted by name.
func scanInvoiceFiles(dir string) ([]string, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot read invoice directory %s: %w", dir, err)
	}
	var files []string
	for _, e := range dirEntries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(name, invoice.FileExt) || strings.HasPrefix(name, invoice.ExternalPrefix) {
			continue
		}
		files = append(files, name)
	}
	sort.Strings(files)
	return files, nil
}
