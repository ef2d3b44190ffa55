// Package pagination provides the page navigation controller and page-related helpers.
//
// This package contains the pagination logic shared by the table, the static
// renderer and the interactive browser, including:
//   - Controller: pure navigation state over (page, page size, total) with
//     first/prev/next/last transitions and page-size options
//   - Meta: response metadata for paginated output
//   - Params: CLI flag values and sort expression parsing
//
// The controller owns no data. Accepted transitions are reported upward through
// callbacks and the parent decides what to render next.
package pagination
