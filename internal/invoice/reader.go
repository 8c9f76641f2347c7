package invoice

import (
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReadProductNames reads all non-empty product names from an invoice
// spreadsheet: column 3 of the first worksheet, from row 2 onward.
func ReadProductNames(path string) ([]string, error) {
	const op = "ReadProductNames"

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, NewFileError(op, path, ErrUnreadableFile)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, NewFileError(op, path, err)
	}

	var names []string
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		if len(row) < 3 {
			continue
		}
		if name := strings.TrimSpace(row[2]); name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}
