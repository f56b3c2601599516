package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/xuri/excelize/v2"
)

// ErrRowOutOfRange is returned when an update targets a row index the
// collection does not have.
var ErrRowOutOfRange = errors.New("row index out of range")

// ExcelStore is a TabularStore backed by a single .xlsx workbook on disk.
// Each collection is a worksheet whose first row is the header row. The
// workbook is held in memory and flushed to disk after every mutation.
//
// All access is serialized behind one mutex: the workbook format has no
// notion of concurrent writers, and the system's execution model is
// request-per-call anyway. Multi-process deployments need an external lock
// around the file.
type ExcelStore struct {
	mu   sync.Mutex
	file *excelize.File
	path string
}

// OpenWorkbook opens the workbook at path, creating an empty one (and its
// parent directory) if it does not exist.
func OpenWorkbook(path string) (*ExcelStore, error) {
	if _, err := os.Stat(path); err == nil {
		f, err := excelize.OpenFile(path)
		if err != nil {
			return nil, fmt.Errorf("open workbook: %w", err)
		}
		return &ExcelStore{file: f, path: path}, nil
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create workbook dir: %w", err)
		}
	}

	f := excelize.NewFile()
	s := &ExcelStore{file: f, path: path}
	if err := s.save(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close releases the underlying workbook handle.
func (s *ExcelStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.file.Close()
}

// ListRows implements TabularStore.
func (s *ExcelStore) ListRows(collection string) ([]Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	headers, data, err := s.readSheet(collection)
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(data))
	for _, cells := range data {
		row := make(Row, len(headers))
		for i, h := range headers {
			if h == "" {
				continue
			}
			if i < len(cells) {
				row[h] = cells[i]
			} else {
				row[h] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// AppendRow implements TabularStore.
func (s *ExcelStore) AppendRow(collection string, row Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	headers, data, err := s.readSheet(collection)
	if err != nil {
		return err
	}
	if len(headers) == 0 {
		return fmt.Errorf("collection %q has no header row", collection)
	}

	cells := make([]interface{}, len(headers))
	for i, h := range headers {
		cells[i] = row[h] // Missing column -> empty cell
	}

	cell, err := excelize.CoordinatesToCellName(1, len(data)+2)
	if err != nil {
		return err
	}
	if err := s.file.SetSheetRow(collection, cell, &cells); err != nil {
		return fmt.Errorf("append row: %w", err)
	}
	return s.save()
}

// UpdateRow implements TabularStore. rowIndex is 0-based over data rows.
func (s *ExcelStore) UpdateRow(collection string, rowIndex int, row Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	headers, data, err := s.readSheet(collection)
	if err != nil {
		return err
	}
	if rowIndex < 0 || rowIndex >= len(data) {
		return ErrRowOutOfRange
	}

	for i, h := range headers {
		v, ok := row[h]
		if !ok {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(i+1, rowIndex+2)
		if err != nil {
			return err
		}
		if err := s.file.SetCellStr(collection, cell, v); err != nil {
			return fmt.Errorf("update row: %w", err)
		}
	}
	return s.save()
}

// EnsureSheet implements TabularStore.
func (s *ExcelStore) EnsureSheet(name string, headers []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if idx, err := s.file.GetSheetIndex(name); err != nil {
		return err
	} else if idx >= 0 {
		return nil
	}

	// Reuse the workbook's default empty sheet for the first collection so
	// new workbooks do not keep a stray "Sheet1" around.
	if s.isEmptyDefaultOnly() {
		if err := s.file.SetSheetName("Sheet1", name); err != nil {
			return err
		}
	} else {
		if _, err := s.file.NewSheet(name); err != nil {
			return err
		}
	}

	cells := make([]interface{}, len(headers))
	for i, h := range headers {
		cells[i] = h
	}
	if err := s.file.SetSheetRow(name, "A1", &cells); err != nil {
		return fmt.Errorf("write header row: %w", err)
	}
	return s.save()
}

// readSheet returns the header row and the data rows of a sheet. A missing
// sheet reads as empty, matching the auto-create tolerance of the original.
func (s *ExcelStore) readSheet(name string) ([]string, [][]string, error) {
	idx, err := s.file.GetSheetIndex(name)
	if err != nil {
		return nil, nil, err
	}
	if idx < 0 {
		return nil, nil, nil
	}

	all, err := s.file.GetRows(name)
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet %q: %w", name, err)
	}
	if len(all) == 0 {
		return nil, nil, nil
	}
	return all[0], all[1:], nil
}

func (s *ExcelStore) isEmptyDefaultOnly() bool {
	sheets := s.file.GetSheetList()
	if len(sheets) != 1 || sheets[0] != "Sheet1" {
		return false
	}
	rows, err := s.file.GetRows("Sheet1")
	return err == nil && len(rows) == 0
}

func (s *ExcelStore) save() error {
	if err := s.file.SaveAs(s.path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}
