package invoice

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteInvoiceComputesPostTaxTotal(t *testing.T) {
	inv := &Invoice{
		ID:            "123456",
		Date:          "29/08/2026",
		PaymentMethod: PaymentATM,
		Items: []Item{
			{Name: "Sapporo / Sapporo", Unit: "Ly", Quantity: 2, Price: 55_000},
			{Name: "Coke / Coke", Unit: "Ly", Quantity: 1, Price: 25_000},
		},
		VATRate: decimal.NewFromFloat(0.10),
	}

	path := filepath.Join(t.TempDir(), "123456 - atm - 148.500đ.xlsx")
	require.NoError(t, WriteInvoice(inv, path))

	// 135.000 * 1.10 = 148.500
	assert.Equal(t, int64(148_500), inv.FinalTotal)

	names, err := ReadProductNames(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Sapporo / Sapporo", "Coke / Coke"}, names)
}

func TestReadProductNamesUnreadableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.xlsx")
	require.NoError(t, writeGarbage(path))

	_, err := ReadProductNames(path)
	assert.ErrorIs(t, err, ErrUnreadableFile)
}

func TestPostTaxTotalRounding(t *testing.T) {
	vat := decimal.NewFromFloat(0.10)
	assert.Equal(t, int64(110), PostTaxTotal(100, vat))
	assert.Equal(t, int64(38_951), PostTaxTotal(35_410, vat)) // 38.951,0
	assert.Equal(t, int64(112), PostTaxTotal(102, vat))       // 112,2 rounds down
	assert.Equal(t, int64(116), PostTaxTotal(105, vat))       // 115,5 rounds half away
}
