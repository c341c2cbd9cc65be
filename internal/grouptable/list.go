package grouptable

import "strings"

// Filter keeps rows where any of fields contains query, ignoring case. With
// no fields every field of the row is searched.
func Filter(rows []Row, query string, fields ...string) []Row {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return rows
	}
	result := make([]Row, 0, len(rows))
	for _, row := range rows {
		if matches(row, query, fields) {
			result = append(result, row)
		}
	}
	return result
}

func matches(row Row, query string, fields []string) bool {
	if len(fields) == 0 {
		for _, value := range row.Fields {
			if strings.Contains(strings.ToLower(value), query) {
				return true
			}
		}
		return false
	}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(row.Value(field)), query) {
			return true
		}
	}
	return false
}

// Paginate returns the 1-based page of items. A non-positive size returns
// everything.
func Paginate[T any](items []T, page, size int) []T {
	if size <= 0 {
		return items
	}
	if page < 1 {
		page = 1
	}
	if page-1 > len(items)/size {
		return []T{}
	}
	start := (page - 1) * size
	if start >= len(items) {
		return []T{}
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
