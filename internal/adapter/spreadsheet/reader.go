package spreadsheet

import (
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/couchcryptid/waste-data-etl/internal/domain"
)

// Source spreadsheets put a title block in the first two rows, the
// category header in row 3, the sub-category header in row 4, and data
// from row 5 on (zero-based indexes 2, 3, 4).
const (
	categoryHeaderIndex = 2
	subHeaderIndex      = 3
	dataStartIndex      = 4
)

// Reader discovers and reads .xlsx workbooks under a root directory.
type Reader struct {
	logger *slog.Logger
}

// NewReader creates a spreadsheet reader.
func NewReader(logger *slog.Logger) *Reader {
	return &Reader{logger: logger}
}

// Discover walks root recursively and returns the paths of every .xlsx
// workbook found, in walk order. Excel lock files ("~$" prefix) are
// skipped.
func (r *Reader) Discover(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		name := d.Name()
		if strings.HasPrefix(name, "~$") {
			return nil
		}
		if strings.EqualFold(filepath.Ext(name), ".xlsx") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	r.logger.Info("discovered source workbooks", "root", root, "count", len(paths))
	return paths, nil
}

// Read loads one workbook's first sheet and slices it into header rows
// and data rows. A sheet too short to hold the two-row header is an
// error; the caller decides whether that skips the document.
func (r *Reader) Read(path string) (domain.SourceDocument, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return domain.SourceDocument{}, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			r.logger.Warn("closing workbook", "path", path, "error", cerr)
		}
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return domain.SourceDocument{}, fmt.Errorf("workbook %s has no sheets", path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return domain.SourceDocument{}, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	if len(rows) <= subHeaderIndex {
		return domain.SourceDocument{}, fmt.Errorf("workbook %s: sheet too short for header rows", path)
	}

	doc := domain.SourceDocument{
		Path:        path,
		CategoryRow: rows[categoryHeaderIndex],
		SubRow:      rows[subHeaderIndex],
	}
	if len(rows) > dataStartIndex {
		doc.Rows = rows[dataStartIndex:]
	}
	return doc, nil
}
