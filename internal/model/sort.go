package model

import "sort"

// SortBy specifies the field and order for sorting check records
type SortBy string

const (
	SortByTitle     SortBy = "title"
	SortByCheckTime SortBy = "check-time"
	SortByVerdict   SortBy = "verdict"
	SortByDefault   SortBy = "" // Default sort: title, then ID
)

// SortRecords sorts a slice of check records in place based on the specified field.
// The sortBy parameter should be one of: "title", "check-time", "verdict".
// If sortBy is empty or unrecognized, records are sorted by title, then by ID.
func SortRecords(records []*CheckRecord, sortBy string) {
	switch SortBy(sortBy) {
	case SortByTitle:
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].Title < records[j].Title
		})
	case SortByCheckTime:
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].CheckTime.After(records[j].CheckTime)
		})
	case SortByVerdict:
		// Symmetrical first, then by title
		sort.SliceStable(records, func(i, j int) bool {
			if records[i].Symmetrical != records[j].Symmetrical {
				return records[i].Symmetrical
			}
			return records[i].Title < records[j].Title
		})
	default:
		sort.SliceStable(records, func(i, j int) bool {
			if records[i].Title != records[j].Title {
				return records[i].Title < records[j].Title
			}
			return records[i].ID < records[j].ID
		})
	}
}
