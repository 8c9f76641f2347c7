package invoice

import "os"

// writeGarbage drops a file that is not a valid xlsx archive.
func writeGarbage(path string) error {
	return os.WriteFile(path, []byte("this is not a spreadsheet"), 0o644)
}
