package table

// SlicePage returns the rows of 1-based page pageNo, pageSize rows per page.
// Out-of-range pages yield a partial or empty slice. The result shares the
// backing array of rows.
func SlicePage(rows []Row, pageNo, pageSize int) []Row {
	start := 0
	if pageNo > 1 {
		start = (pageNo - 1) * pageSize
	}
	end := pageNo * pageSize

	if start > len(rows) {
		start = len(rows)
	}
	if end > len(rows) {
		end = len(rows)
	}
	if end < start {
		end = start
	}
	return rows[start:end]
}
