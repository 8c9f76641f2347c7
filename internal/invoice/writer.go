package invoice

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Invoice spreadsheets are flat tables: a header row, then one row per line
// item. The product name sits in the third column; downstream tooling
// (the beverage classifier) depends on that position.
var headerRow = []interface{}{
	"Ma_hoa_don",
	"Ngay",
	"Ten_san_pham",
	"Don_vi_tinh",
	"So_luong",
	"Don_gia",
	"Thanh_tien",
	"Hinh_thuc_TT",
	"Giam_gia",
	"Tong_cong",
}

// WriteInvoice renders an invoice record to an xlsx file at path.
// The post-tax total is computed from the items and VAT rate and recorded
// both on the first data row and in inv.FinalTotal.
func WriteInvoice(inv *Invoice, path string) error {
	const op = "WriteInvoice"

	inv.FinalTotal = inv.ComputeTotal()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := f.SetSheetRow(sheet, "A1", &headerRow); err != nil {
		return NewFileError(op, path, err)
	}

	for i, item := range inv.Items {
		row := []interface{}{
			inv.ID,
			inv.Date,
			item.Name,
			item.Unit,
			item.Quantity,
			item.Price,
			item.Amount(),
			string(inv.PaymentMethod),
			inv.Discount,
			nil,
		}
		if i == 0 {
			row[len(row)-1] = inv.FinalTotal
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return NewFileError(op, path, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return NewFileError(op, path, err)
	}
	return nil
}
