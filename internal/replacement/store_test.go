package replacement

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taxtool/internal/beverage"
	"taxtool/internal/invoice"
)

func seedInvoiceFile(t *testing.T, dir, name string) {
	t.Helper()
	id, method, total, err := invoice.ParseFilename(name)
	require.NoError(t, err)
	inv := &invoice.Invoice{
		ID:            id,
		Date:          "01/08/2026",
		PaymentMethod: method,
		Items:         []invoice.Item{{Name: "Phở bò", Unit: "Tô", Quantity: 1, Price: total}},
	}
	require.NoError(t, invoice.WriteInvoice(inv, filepath.Join(dir, name)))
}

func TestDirStoreListCandidatesFilters(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDirStore(dir)
	require.NoError(t, err)

	seedInvoiceFile(t, dir, "100 - atm - 500.000đ.xlsx")
	seedInvoiceFile(t, dir, "Grab - 55 - atm - 200.000đ.xlsx")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	names, err := store.ListCandidates()
	require.NoError(t, err)
	assert.Equal(t, []string{"100 - atm - 500.000đ.xlsx"}, names)
}

func TestDirStoreReplaceOverwritesInPlaceForOffByOneTotals(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDirStore(dir)
	require.NoError(t, err)

	// 499,999đ has no exact integer pre-tax decomposition under 10% VAT,
	// so the synthesized spreadsheet total lands 1đ off. The file name
	// must still be built from the original total so the write lands on
	// the same path.
	const name = "100 - atm - 499.999đ.xlsx"
	seedInvoiceFile(t, dir, name)

	rng := rand.New(rand.NewSource(7))
	inv := beverage.BuildInvoice(rng, "100", invoice.PaymentATM, 499_999, "29/08/2026")
	assert.NotEqual(t, int64(499_999), inv.ComputeTotal())

	newName, err := store.Replace(name, 499_999, inv)
	require.NoError(t, err)
	assert.Equal(t, name, newName)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "the original file is overwritten, not renamed away")
	assert.Equal(t, name, entries[0].Name())
}

// End-to-end: a real directory of five invoice files, rewritten in place
// with beverage invoices at the same post-tax totals.
func TestRunAgainstRealDirectory(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDirStore(dir)
	require.NoError(t, err)

	seeded := []string{
		"100 - atm - 500.000đ.xlsx",
		"101 - atm - 650.000đ.xlsx",
		"102 - transfer - 820.000đ.xlsx",
		"103 - atm - 990.000đ.xlsx",
		"104 - transfer - 1.200.000đ.xlsx",
	}
	for _, name := range seeded {
		seedInvoiceFile(t, dir, name)
	}

	quota := NewQuotaTracker(filepath.Join(dir, "state.json"))
	o := NewOrchestrator(store, quota, dir, rand.New(rand.NewSource(2)))
	o.now = func() time.Time { return time.Date(2026, 8, 29, 9, 30, 0, 0, time.UTC) }

	report, err := o.Run()
	require.NoError(t, err)
	require.Len(t, report.Replaced, 5)

	// Same file names, now beverage-only content.
	for _, name := range seeded {
		path := filepath.Join(dir, name)
		_, statErr := os.Stat(path)
		require.NoError(t, statErr, "file %s must still exist", name)

		isBeverage, names := beverage.Classify(invoice.ReadProductNames, path)
		assert.True(t, isBeverage, "file %s should now be beverage-only, names: %v", name, names)
	}

	// Quota file records the consumed day.
	data, err := os.ReadFile(filepath.Join(dir, "state.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2026-08-29","count":5}`, string(data))

	// A second run the same day is refused and leaves the directory alone.
	_, err = o.Run()
	assert.ErrorIs(t, err, ErrQuotaExceeded)
}
