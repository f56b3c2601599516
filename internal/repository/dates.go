package repository

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

const canonicalLayout = "2006-01-02"

var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// dateLayouts are the renderings a date cell can come back in, depending on
// whether the store kept the value as a string or coerced it to a native
// date with some display style.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01-02-06",
	"01/02/2006",
	"1/2/2006",
	"1/2/06 15:04",
}

// CanonicalDate normalizes a raw date cell to the YYYY-MM-DD form used for
// every comparison and output. Values that cannot be interpreted as a date
// pass through unchanged so bad data stays visible instead of vanishing
// from filters.
func CanonicalDate(raw string, loc *time.Location) string {
	v := strings.TrimSpace(raw)
	if v == "" || isoDatePattern.MatchString(v) {
		return v
	}

	// Serial number: the workbook coerced the cell to a native date and the
	// reader returned the underlying serial.
	if serial, err := strconv.ParseFloat(v, 64); err == nil {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return t.Format(canonicalLayout)
		}
		return v
	}

	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, v, loc); err == nil {
			return t.In(loc).Format(canonicalLayout)
		}
	}
	return v
}
