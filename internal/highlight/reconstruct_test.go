package highlight

import (
	"testing"

	"github.com/hanseilab/hansei-backend/internal/model"
)

func TestReconstructDuplicateTextClaimsInOrder(t *testing.T) {
	rendered := "I like cats and cats"
	highlights := []model.Highlight{
		{ID: 1, Text: "cats", CodeID: "PLAN_01", CodeLabel: "Goal setting", Color: "#FFCDD2"},
		{ID: 2, Text: "cats", CodeID: "MON_01", CodeLabel: "Comprehension check", Color: "#C8E6C9"},
	}

	spans := Reconstruct(rendered, highlights)
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	if spans[0].Start != 7 || spans[0].CodeID != "PLAN_01" {
		t.Fatalf("first occurrence should belong to h1: %+v", spans[0])
	}
	if spans[1].Start != 16 || spans[1].CodeID != "MON_01" {
		t.Fatalf("second occurrence should belong to h2: %+v", spans[1])
	}
	for _, s := range spans {
		if rendered[s.Start:s.End] != "cats" {
			t.Fatalf("span does not cover its text: %+v", s)
		}
	}
}

func TestReconstructEditedTextDropsAllMarks(t *testing.T) {
	highlights := []model.Highlight{
		{ID: 1, Text: "cats", CodeID: "PLAN_01"},
		{ID: 2, Text: "cats", CodeID: "MON_01"},
	}

	spans := Reconstruct("I like dogs", highlights)
	if len(spans) != 0 {
		t.Fatalf("expected no spans, got %d", len(spans))
	}
	// The input highlights are untouched by a failed reconstruction.
	if highlights[0].Text != "cats" || highlights[1].Text != "cats" {
		t.Fatalf("reconstruction must not mutate highlights")
	}
}

func TestReconstructProcessesByAscendingID(t *testing.T) {
	// h2 was created first (lower id) even though it appears later in the
	// slice; it must claim the first occurrence.
	highlights := []model.Highlight{
		{ID: 200, Text: "go", CodeID: "LATER"},
		{ID: 100, Text: "go", CodeID: "EARLIER"},
	}

	spans := Reconstruct("go go", highlights)
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	if spans[0].CodeID != "EARLIER" || spans[1].CodeID != "LATER" {
		t.Fatalf("creation order not respected: %+v", spans)
	}
}

func TestReconstructSkipsClaimedRegions(t *testing.T) {
	// "cat" occurs inside the span claimed by "cats and"; the second
	// highlight must move past it.
	rendered := "cats and cats"
	highlights := []model.Highlight{
		{ID: 1, Text: "cats and", CodeID: "A"},
		{ID: 2, Text: "cats", CodeID: "B"},
	}

	spans := Reconstruct(rendered, highlights)
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	if spans[1].Start != 9 || spans[1].CodeID != "B" {
		t.Fatalf("second highlight should claim the trailing occurrence: %+v", spans[1])
	}
}

func TestReconstructPartialLoss(t *testing.T) {
	highlights := []model.Highlight{
		{ID: 1, Text: "kept", CodeID: "A"},
		{ID: 2, Text: "gone", CodeID: "B"},
	}

	spans := Reconstruct("only kept remains", highlights)
	if len(spans) != 1 || spans[0].CodeID != "A" {
		t.Fatalf("expected only the surviving highlight: %+v", spans)
	}
}

func TestReconstructIgnoresEmptyText(t *testing.T) {
	spans := Reconstruct("anything", []model.Highlight{{ID: 1, Text: ""}})
	if len(spans) != 0 {
		t.Fatalf("empty text must not claim a span")
	}
}

func TestFrequency(t *testing.T) {
	counts := Frequency(
		[]model.Highlight{{CodeLabel: "Goal setting"}, {CodeLabel: "Goal setting"}},
		[]model.Highlight{{CodeLabel: "Comprehension check"}, {CodeLabel: ""}},
	)
	if counts["Goal setting"] != 2 || counts["Comprehension check"] != 1 {
		t.Fatalf("unexpected counts: %v", counts)
	}
	if _, ok := counts[""]; ok {
		t.Fatalf("empty labels must not be counted")
	}
}
