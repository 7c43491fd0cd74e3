package catalog

import (
	"catalog-gateway/internal/model"
)

// PlanWindows partitions one global page over the conceptual ordered
// concatenation columns ++ outgoing_fks ++ incoming_fks into per-category
// (offset, limit) windows. Executing the resulting windows and concatenating
// their rows in category order reproduces exactly the slice a single global
// LIMIT/OFFSET over the virtual concatenation would have produced.
//
// Pure input→output logic: no I/O, no state. A page past the end yields an
// empty plan, which is a valid zero-item outcome rather than an error.
func PlanWindows(page, limit int, counts model.CategoryCounts) []model.PageWindow {
	if page < 1 || limit < 1 {
		return nil
	}

	globalOffset := (page - 1) * limit
	if globalOffset >= counts.Total() {
		return nil
	}

	var windows []model.PageWindow
	skip := globalOffset
	remaining := limit

	for _, cat := range model.Categories {
		c := counts.Count(cat)
		if skip >= c {
			skip -= c
			continue
		}

		localLimit := c - skip
		if remaining < localLimit {
			localLimit = remaining
		}
		windows = append(windows, model.PageWindow{
			Category: cat,
			Offset:   skip,
			Limit:    localLimit,
		})
		remaining -= localLimit
		skip = 0

		if remaining == 0 {
			break
		}
	}

	return windows
}

// TotalPages computes ceil(totalCount/limit); zero items means zero pages.
func TotalPages(totalCount, limit int) int {
	if totalCount <= 0 || limit < 1 {
		return 0
	}
	return (totalCount + limit - 1) / limit
}

// ClampLimit silently reduces a requested limit to the configured maximum.
func ClampLimit(requested, max int) int {
	if max > 0 && requested > max {
		return max
	}
	return requested
}
