package store

import (
	"path/filepath"
	"testing"
)

func newWorkbook(t *testing.T) *ExcelStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.xlsx")
	s, err := OpenWorkbook(path)
	if err != nil {
		t.Fatalf("OpenWorkbook: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestExcelStoreRoundTrip(t *testing.T) {
	s := newWorkbook(t)

	if err := s.EnsureSheet("Reflections", []string{"reflection_id", "student_id", "class_date"}); err != nil {
		t.Fatalf("EnsureSheet: %v", err)
	}
	// Idempotent.
	if err := s.EnsureSheet("Reflections", []string{"reflection_id", "student_id", "class_date"}); err != nil {
		t.Fatalf("EnsureSheet twice: %v", err)
	}

	err := s.AppendRow("Reflections", Row{"reflection_id": "r1", "student_id": "S1", "class_date": "2024-01-02"})
	if err != nil {
		t.Fatalf("AppendRow: %v", err)
	}
	err = s.AppendRow("Reflections", Row{"reflection_id": "r2", "student_id": "S2"})
	if err != nil {
		t.Fatalf("AppendRow: %v", err)
	}

	rows, err := s.ListRows("Reflections")
	if err != nil {
		t.Fatalf("ListRows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0]["reflection_id"] != "r1" || rows[0]["class_date"] != "2024-01-02" {
		t.Fatalf("unexpected row 0: %v", rows[0])
	}
	if rows[1]["class_date"] != "" {
		t.Fatalf("missing column should read empty, got %q", rows[1]["class_date"])
	}
}

func TestExcelStoreUpdateRow(t *testing.T) {
	s := newWorkbook(t)
	_ = s.EnsureSheet("Meta", []string{"key", "value"})
	_ = s.AppendRow("Meta", Row{"key": "next_questions", "value": "old"})

	if err := s.UpdateRow("Meta", 0, Row{"value": "new"}); err != nil {
		t.Fatalf("UpdateRow: %v", err)
	}
	rows, _ := s.ListRows("Meta")
	if rows[0]["key"] != "next_questions" || rows[0]["value"] != "new" {
		t.Fatalf("partial update broke row: %v", rows[0])
	}

	if err := s.UpdateRow("Meta", 3, Row{"value": "x"}); err != ErrRowOutOfRange {
		t.Fatalf("expected ErrRowOutOfRange, got %v", err)
	}
}

func TestExcelStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "persist.xlsx")

	s, err := OpenWorkbook(path)
	if err != nil {
		t.Fatalf("OpenWorkbook: %v", err)
	}
	_ = s.EnsureSheet("Codes", []string{"code_id", "label"})
	_ = s.AppendRow("Codes", Row{"code_id": "PLAN_01", "label": "Goal setting"})
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := OpenWorkbook(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	rows, err := reopened.ListRows("Codes")
	if err != nil {
		t.Fatalf("ListRows after reopen: %v", err)
	}
	if len(rows) != 1 || rows[0]["label"] != "Goal setting" {
		t.Fatalf("data did not survive reopen: %v", rows)
	}
}

func TestExcelStoreMissingSheetReadsEmpty(t *testing.T) {
	s := newWorkbook(t)
	rows, err := s.ListRows("Nope")
	if err != nil {
		t.Fatalf("ListRows: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected no rows, got %d", len(rows))
	}
}
