package store

import "testing"

func TestMemoryStoreAppendAndList(t *testing.T) {
	s := NewMemoryStore()
	if err := s.EnsureSheet("Students", []string{"student_id", "name", "active"}); err != nil {
		t.Fatalf("EnsureSheet: %v", err)
	}

	err := s.AppendRow("Students", Row{"student_id": "S1", "name": "Alice", "active": "true"})
	if err != nil {
		t.Fatalf("AppendRow: %v", err)
	}
	// Missing column should read back as empty, extra keys are dropped.
	err = s.AppendRow("Students", Row{"student_id": "S2", "ghost": "x"})
	if err != nil {
		t.Fatalf("AppendRow: %v", err)
	}

	rows, err := s.ListRows("Students")
	if err != nil {
		t.Fatalf("ListRows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0]["name"] != "Alice" {
		t.Fatalf("unexpected row 0: %v", rows[0])
	}
	if rows[1]["name"] != "" {
		t.Fatalf("missing column should be empty, got %q", rows[1]["name"])
	}
	if _, ok := rows[1]["ghost"]; ok {
		t.Fatalf("non-header key should not be stored")
	}
}

func TestMemoryStoreUpdateRowPartial(t *testing.T) {
	s := NewMemoryStore()
	if err := s.EnsureSheet("Meta", []string{"key", "value"}); err != nil {
		t.Fatalf("EnsureSheet: %v", err)
	}
	if err := s.AppendRow("Meta", Row{"key": "secret", "value": "old"}); err != nil {
		t.Fatalf("AppendRow: %v", err)
	}

	if err := s.UpdateRow("Meta", 0, Row{"value": "new"}); err != nil {
		t.Fatalf("UpdateRow: %v", err)
	}

	rows, _ := s.ListRows("Meta")
	if rows[0]["key"] != "secret" || rows[0]["value"] != "new" {
		t.Fatalf("partial update broke row: %v", rows[0])
	}

	if err := s.UpdateRow("Meta", 5, Row{"value": "x"}); err == nil {
		t.Fatalf("expected out-of-range error")
	}
}

func TestMemoryStoreUnknownCollection(t *testing.T) {
	s := NewMemoryStore()

	rows, err := s.ListRows("Nope")
	if err != nil {
		t.Fatalf("ListRows on missing collection: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected empty result, got %d rows", len(rows))
	}

	if err := s.AppendRow("Nope", Row{"a": "b"}); err == nil {
		t.Fatalf("append to missing collection should fail")
	}
}

func TestMemoryStoreListReturnsCopies(t *testing.T) {
	s := NewMemoryStore()
	_ = s.EnsureSheet("Codes", []string{"code_id"})
	_ = s.AppendRow("Codes", Row{"code_id": "C1"})

	rows, _ := s.ListRows("Codes")
	rows[0]["code_id"] = "mutated"

	again, _ := s.ListRows("Codes")
	if again[0]["code_id"] != "C1" {
		t.Fatalf("ListRows must not expose internal rows")
	}
}
