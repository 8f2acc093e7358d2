package view

import "slices"

// Paginate returns the rows on the 1-based page. Pages outside of the available
// range are empty, callers reset to page 1 when the rows change.
func Paginate[T any](rows []T, page, size int) []T {
	if size <= 0 || page < 1 || page-1 > len(rows)/size {
		return []T{}
	}
	start := (page - 1) * size
	if start >= len(rows) {
		return []T{}
	}
	end := min(start+size, len(rows))
	return slices.Clone(rows[start:end])
}

// PageCount is the number of pages needed to show total rows.
func PageCount(total, size int) int {
	if size <= 0 || total <= 0 {
		return 0
	}
	return (total + size - 1) / size
}
