package invoice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFilename(t *testing.T) {
	tests := []struct {
		name       string
		wantID     string
		wantMethod PaymentMethod
		wantTotal  int64
	}{
		{"123456 - atm - 500.000đ.xlsx", "123456", PaymentATM, 500_000},
		{"070092 - transfer - 1.234.567đ.xlsx", "070092", PaymentTransfer, 1_234_567},
		{"A-17 - TRANSFER - 65.400đ.xlsx", "A-17", PaymentTransfer, 65_400},
		{"99 - cash - 10.000đ.xlsx", "99", PaymentATM, 10_000}, // unknown method falls back to atm
	}

	for _, tt := range tests {
		id, method, total, err := ParseFilename(tt.name)
		require.NoError(t, err, "name %q", tt.name)
		assert.Equal(t, tt.wantID, id)
		assert.Equal(t, tt.wantMethod, method)
		assert.Equal(t, tt.wantTotal, total)
	}
}

func TestParseFilenameRejectsMalformed(t *testing.T) {
	malformed := []string{
		"just-a-name.xlsx",
		"123456 - atm.xlsx",                          // two segments
		"1 - atm - 500.000đ - extra.xlsx",            // four segments
		"123456 - atm - không phải tiền.xlsx",        // bad total
		"",
	}
	for _, name := range malformed {
		_, _, _, err := ParseFilename(name)
		assert.ErrorIs(t, err, ErrBadFilename, "name %q", name)
	}
}

func TestFilenameRoundTrip(t *testing.T) {
	tests := []struct {
		id     string
		method PaymentMethod
		total  int64
	}{
		{"100", PaymentATM, 500_000},
		{"070092", PaymentTransfer, 612_800},
		{"104", PaymentTransfer, 1_200_000},
		{"7", PaymentATM, 999},
	}

	for _, tt := range tests {
		name := BuildFilename(tt.id, tt.method, tt.total)
		id, method, total, err := ParseFilename(name)
		require.NoError(t, err, "name %q", name)
		assert.Equal(t, tt.id, id)
		assert.Equal(t, tt.method, method)
		assert.Equal(t, tt.total, total)
	}
}

func TestBuildFilenameFormatsTotal(t *testing.T) {
	assert.Equal(t, "123456 - atm - 500.000đ.xlsx", BuildFilename("123456", PaymentATM, 500_000))
	assert.Equal(t, "1 - transfer - 1.234.567đ.xlsx", BuildFilename("1", PaymentTransfer, 1_234_567))
}
