package store

// Row is a single record of a collection, keyed by header name. Cell values
// travel as strings; typed interpretation is the repository layer's job.
type Row map[string]string

// TabularStore is the contract every data-plane implementation must satisfy.
// It deliberately mirrors a spreadsheet: named collections ("sheets") whose
// schema is fixed by a header row, with no index, no transactions, and no
// uniqueness constraints. All invariants (unique keys, one-feedback-per-
// reflection) are enforced above this interface.
type TabularStore interface {
	// ListRows returns every data row of a collection as header-keyed rows,
	// in insertion order. A missing collection yields an empty slice.
	ListRows(collection string) ([]Row, error)

	// AppendRow adds a row at the end of a collection. Columns absent from
	// the row are written as empty cells; keys that are not headers are
	// ignored.
	AppendRow(collection string, row Row) error

	// UpdateRow overwrites the columns present in row on the data row at
	// rowIndex (0-based, excluding the header row). Absent columns keep
	// their current value.
	UpdateRow(collection string, rowIndex int, row Row) error

	// EnsureSheet creates the collection with the given header row if it
	// does not exist yet. Existing collections are left untouched.
	EnsureSheet(name string, headers []string) error
}
