// Package table implements the sort and pagination state machine of a data table.
//
// A Table owns its rows, its resolved column configuration, the active sort and
// the pagination state. In local mode it sorts (stably, into a new slice) and
// slices rows itself. In remote mode it only records the requested state and
// notifies the host through the optional callbacks in Options; the host answers
// by calling SetData with the rows it fetched.
//
// All methods run synchronously on the caller's goroutine.
package table
