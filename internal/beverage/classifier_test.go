package beverage

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func fakeReader(names []string, err error) NamesReader {
	return func(string) ([]string, error) {
		return names, err
	}
}

func TestClassifyBeverageOnly(t *testing.T) {
	ok, names := Classify(fakeReader([]string{"Sapporo / Sapporo"}, nil), "x.xlsx")
	assert.True(t, ok)
	assert.Equal(t, []string{"sapporo / sapporo"}, names)

	ok, names = Classify(fakeReader([]string{
		"Tiger Draught / Tiger Draught",
		"Coke / Coke",
		"Sapporo / Sapporo",
	}, nil), "x.xlsx")
	assert.True(t, ok)
	assert.Len(t, names, 3)
}

func TestClassifyServiceFeeLineIgnored(t *testing.T) {
	ok, _ := Classify(fakeReader([]string{
		"Sapporo / Sapporo",
		"Phí dịch vụ 5%",
	}, nil), "x.xlsx")
	assert.True(t, ok)

	ok, _ = Classify(fakeReader([]string{
		"Coke / Coke",
		"Service charge",
	}, nil), "x.xlsx")
	assert.True(t, ok)
}

func TestClassifyMixedInvoiceShortCircuits(t *testing.T) {
	ok, names := Classify(fakeReader([]string{
		"Coke / Coke",
		"Phở bò",
		"Sapporo / Sapporo",
	}, nil), "x.xlsx")
	assert.False(t, ok)
	// Stops at the disqualifying line.
	assert.Equal(t, []string{"coke / coke", "phở bò"}, names)
}

func TestClassifyEmptySheet(t *testing.T) {
	ok, names := Classify(fakeReader(nil, nil), "x.xlsx")
	assert.False(t, ok)
	assert.Empty(t, names)
}

func TestClassifyReadFailureSwallowed(t *testing.T) {
	ok, names := Classify(fakeReader(nil, errors.New("corrupt archive")), "x.xlsx")
	assert.False(t, ok)
	assert.Nil(t, names)
}
