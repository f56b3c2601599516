package store

import (
	"fmt"
	"sync"
)

// MemoryStore is an in-memory TabularStore with the same header-keyed
// semantics as the workbook store. It backs unit tests and any deployment
// that wants a throwaway data plane.
type MemoryStore struct {
	mu     sync.RWMutex
	sheets map[string]*memSheet
}

type memSheet struct {
	headers []string
	rows    []Row
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sheets: make(map[string]*memSheet)}
}

// ListRows implements TabularStore.
func (s *MemoryStore) ListRows(collection string) ([]Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sheet, ok := s.sheets[collection]
	if !ok {
		return nil, nil
	}

	out := make([]Row, len(sheet.rows))
	for i, r := range sheet.rows {
		cp := make(Row, len(sheet.headers))
		for _, h := range sheet.headers {
			cp[h] = r[h]
		}
		out[i] = cp
	}
	return out, nil
}

// AppendRow implements TabularStore.
func (s *MemoryStore) AppendRow(collection string, row Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sheet, ok := s.sheets[collection]
	if !ok {
		return fmt.Errorf("collection %q has no header row", collection)
	}

	stored := make(Row, len(sheet.headers))
	for _, h := range sheet.headers {
		stored[h] = row[h] // Missing column -> empty value
	}
	sheet.rows = append(sheet.rows, stored)
	return nil
}

// UpdateRow implements TabularStore.
func (s *MemoryStore) UpdateRow(collection string, rowIndex int, row Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sheet, ok := s.sheets[collection]
	if !ok || rowIndex < 0 || rowIndex >= len(sheet.rows) {
		return ErrRowOutOfRange
	}

	for _, h := range sheet.headers {
		if v, ok := row[h]; ok {
			sheet.rows[rowIndex][h] = v
		}
	}
	return nil
}

// EnsureSheet implements TabularStore.
func (s *MemoryStore) EnsureSheet(name string, headers []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sheets[name]; ok {
		return nil
	}
	hs := make([]string, len(headers))
	copy(hs, headers)
	s.sheets[name] = &memSheet{headers: hs}
	return nil
}
