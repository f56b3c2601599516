// Package highlight rebuilds saved text annotations against re-rendered
// reflection content. A highlight carries no offsets, only the verbatim
// substring it covered, so placement is a search problem: greedy, leftmost,
// skipping regions already claimed by earlier highlights.
package highlight

import (
	"sort"
	"strings"

	"github.com/hanseilab/hansei-backend/internal/model"
)

// Span is one successfully placed highlight: a half-open [Start, End) byte
// range of the rendered text plus the code metadata to draw it with.
type Span struct {
	Start     int    `json:"start"`
	End       int    `json:"end"`
	Text      string `json:"text"`
	ID        int64  `json:"id"`
	CodeID    string `json:"code_id"`
	CodeLabel string `json:"code_label"`
	Color     string `json:"color"`
}

// Reconstruct places highlights onto rendered text. Rules:
//
//  1. Highlights are processed in creation order (ascending ID).
//  2. Each highlight claims the first occurrence of its text that does not
//     overlap a span claimed by an earlier highlight. With duplicate text
//     this can attribute a highlight to the wrong occurrence; that is the
//     accepted approximation of text-only anchors.
//  3. A highlight whose text no longer occurs (the answer was edited) is
//     dropped from the result. The persisted highlight is untouched —
//     reconstruction failure never loses state.
//
// The returned spans are ordered by position.
func Reconstruct(rendered string, highlights []model.Highlight) []Span {
	ordered := make([]model.Highlight, len(highlights))
	copy(ordered, highlights)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	spans := make([]Span, 0, len(ordered))
	for _, h := range ordered {
		if h.Text == "" {
			continue
		}
		start, ok := findUnclaimed(rendered, h.Text, spans)
		if !ok {
			continue
		}
		spans = append(spans, Span{
			Start:     start,
			End:       start + len(h.Text),
			Text:      h.Text,
			ID:        h.ID,
			CodeID:    h.CodeID,
			CodeLabel: h.CodeLabel,
			Color:     h.Color,
		})
	}

	sort.Slice(spans, func(i, j int) bool { return spans[i].Start < spans[j].Start })
	return spans
}

// findUnclaimed returns the byte offset of the leftmost occurrence of text
// in rendered that does not overlap any claimed span.
func findUnclaimed(rendered, text string, claimed []Span) (int, bool) {
	from := 0
	for {
		rel := strings.Index(rendered[from:], text)
		if rel < 0 {
			return 0, false
		}
		start := from + rel
		end := start + len(text)
		if !overlapsAny(start, end, claimed) {
			return start, true
		}
		from = start + 1
	}
}

func overlapsAny(start, end int, claimed []Span) bool {
	for _, s := range claimed {
		if start < s.End && end > s.Start {
			return true
		}
	}
	return false
}

// Frequency counts highlight code labels across feedback sets. The teacher
// UI renders this as the per-student strategy chart.
func Frequency(sets ...[]model.Highlight) map[string]int {
	counts := make(map[string]int)
	for _, hs := range sets {
		for _, h := range hs {
			if h.CodeLabel != "" {
				counts[h.CodeLabel]++
			}
		}
	}
	return counts
}
