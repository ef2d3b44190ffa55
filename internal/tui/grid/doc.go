// Package grid is the interactive terminal browser for a table.
//
// The model moves a column focus across the header to sort, pages with the
// pagination controller and, for remote tables, fetches each page from a
// source.Service as a tea.Cmd. Only the reply to the latest request is applied.
package grid
