// Package listview provides a windowed cursor for Bubble Tea views.
//
// A Window renders only the rows that fit the terminal height and scrolls so
// that the cursor stays centered where possible.
package listview
