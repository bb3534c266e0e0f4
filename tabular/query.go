package tabular

import (
	"sort"
	"strings"
)

// ApplyOptions runs the filter, sort and paginate pipeline over an
// in-memory row sequence and builds the result envelope. Total is
// fixed after filtering, before the page slice is taken.
func ApplyOptions(columns []Column, rows []Row, opts QueryOptions) *QueryResult {
	filtered := filterRows(rows, opts.Filters)

	if opts.Sort != nil && opts.Sort.Column != "" {
		sortRows(filtered, *opts.Sort)
	}

	result := &QueryResult{
		Columns: columns,
		Total:   len(filtered),
	}
	result.Rows = pageRows(filtered, opts.Page, opts.PageSize)

	return result
}

// filterRows keeps rows whose stringified cell contains the filter
// value as a case-insensitive substring. Multiple filters are ANDed;
// an empty filter value matches everything. A missing cell stringifies
// to the empty string.
func filterRows(rows []Row, filters map[string]string) []Row {
	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		if matchesFilters(row, filters) {
			out = append(out, row)
		}
	}
	return out
}

func matchesFilters(row Row, filters map[string]string) bool {
	for column, want := range filters {
		if want == "" {
			continue
		}
		cell := row[column].String()
		if !strings.Contains(strings.ToLower(cell), strings.ToLower(want)) {
			return false
		}
	}
	return true
}

// sortRows orders rows in place by a single column. The sort is
// stable, so rows comparing equal keep their relative order.
func sortRows(rows []Row, spec SortSpec) {
	sort.SliceStable(rows, func(i, j int) bool {
		cmp := rows[i][spec.Column].Compare(rows[j][spec.Column])
		if spec.Direction == Descending {
			return cmp > 0
		}
		return cmp < 0
	})
}

// pageRows slices out the requested page, clamped to the available
// length. An out-of-range page yields an empty slice, never an error.
// A pageSize of zero or less disables pagination.
func pageRows(rows []Row, page, pageSize int) []Row {
	if pageSize <= 0 {
		return rows
	}
	if page < 0 {
		page = 0
	}

	start := page * pageSize
	if start >= len(rows) {
		return []Row{}
	}
	end := start + pageSize
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}
