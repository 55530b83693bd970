package model

import "strings"

// RecordFilter contains criteria for filtering check records.
// All criteria are optional; only set fields are applied.
// Titles are combined with OR logic; fields are combined with AND logic.
type RecordFilter struct {
	// Titles filters by title (case-insensitive, OR within list)
	Titles []string

	// Symmetrical filters by verdict when non-nil
	Symmetrical *bool
}

// FilterRecords filters a slice of check records based on the provided criteria.
// Returns a new slice containing only records that match the filter.
func FilterRecords(records []*CheckRecord, filter RecordFilter) []*CheckRecord {
	if len(filter.Titles) == 0 && filter.Symmetrical == nil {
		return records
	}

	titleMap := make(map[string]bool)
	for _, title := range filter.Titles {
		titleMap[strings.ToLower(title)] = true
	}

	var filtered []*CheckRecord

	for _, record := range records {
		if len(filter.Titles) > 0 && !titleMap[strings.ToLower(record.Title)] {
			continue
		}

		if filter.Symmetrical != nil && record.Symmetrical != *filter.Symmetrical {
			continue
		}

		filtered = append(filtered, record)
	}

	return filtered
}
