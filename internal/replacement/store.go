package replacement

import (
	"os"
	"path/filepath"
	"strings"

	"taxtool/internal/invoice"
)

// Store abstracts the invoice directory so the orchestrator never touches
// the filesystem directly and tests can substitute an in-memory double.
type Store interface {
	// ListCandidates returns the names of invoice files eligible for
	// replacement, excluding externally generated ones.
	ListCandidates() ([]string, error)

	// Replace writes inv under a name encoded from its id, payment method
	// and the given post-tax total, removing the superseded file when its
	// name differs. It returns the written file's name.
	Replace(oldName string, total int64, inv *invoice.Invoice) (string, error)
}

// DirStore is the production Store over a directory of xlsx invoice files.
type DirStore struct {
	dir string
}

// NewDirStore creates a Store over dir, creating the directory if needed.
func NewDirStore(dir string) (*DirStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &RunError{Op: "NewDirStore", Err: err}
	}
	return &DirStore{dir: dir}, nil
}

// Dir returns the directory backing the store.
func (s *DirStore) Dir() string {
	return s.dir
}

func (s *DirStore) ListCandidates() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, &RunError{Op: "ListCandidates", Err: err}
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(name, invoice.FileExt) {
			continue
		}
		if strings.HasPrefix(name, invoice.ExternalPrefix) {
			continue
		}
		names = append(names, name)
	}
	return names, nil
}

func (s *DirStore) Replace(oldName string, total int64, inv *invoice.Invoice) (string, error) {
	// The name carries the replaced invoice's decoded total, never the
	// spreadsheet's computed one: the two may differ by a rounding đồng,
	// and the file must keep its identity regardless.
	newName := invoice.BuildFilename(inv.ID, inv.PaymentMethod, total)
	if err := invoice.WriteInvoice(inv, filepath.Join(s.dir, newName)); err != nil {
		return "", &RunError{Op: "Replace", Err: err}
	}

	// The encoded name normally matches the replaced file exactly, so the
	// write overwrites in place; remove the original only when it differs.
	if newName != oldName {
		if err := os.Remove(filepath.Join(s.dir, oldName)); err != nil && !os.IsNotExist(err) {
			return "", &RunError{Op: "Replace", Err: err}
		}
	}
	return newName, nil
}
