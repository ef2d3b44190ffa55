package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rshade/datagrid/internal/column"
	"github.com/rshade/datagrid/internal/pagination"
	"github.com/rshade/datagrid/internal/table"
)

// Output formats.
const (
	OutputTable  = "table"
	OutputJSON   = "json"
	OutputNDJSON = "ndjson"
)

// ErrUnknownOutput is returned for unsupported output formats.
var ErrUnknownOutput = errors.New("unknown output format")

// ColumnInfo describes a visible column in data output.
type ColumnInfo struct {
	Field    string      `json:"field"`
	Header   string      `json:"header"`
	Sortable bool        `json:"sortable,omitempty"`
	Type     column.Type `json:"type,omitempty"`
}

// Summary is the table-level part of data output.
type Summary struct {
	Columns    []ColumnInfo     `json:"columns"`
	Sort       *table.SortState `json:"sort,omitempty"`
	Remote     bool             `json:"remote,omitempty"`
	Pagination *pagination.Meta `json:"pagination,omitempty"`
}

// Document is the JSON output shape.
type Document struct {
	Summary

	Rows []table.Row `json:"rows"`
}

// Write renders t in the named output format.
func Write(w io.Writer, t *table.Table, format string, opts TextOptions) error {
	switch strings.ToLower(format) {
	case "", OutputTable:
		return Text(w, t, opts)
	case OutputJSON:
		return JSON(w, t)
	case OutputNDJSON:
		return NDJSON(w, t)
	default:
		return fmt.Errorf("%w: %q (must be table, json, or ndjson)", ErrUnknownOutput, format)
	}
}

// NewSummary describes t for data output.
func NewSummary(t *table.Table) Summary {
	cols := t.Columns()
	s := Summary{
		Columns: make([]ColumnInfo, len(cols)),
		Remote:  t.Remote(),
	}
	for i, c := range cols {
		s.Columns[i] = ColumnInfo{Field: c.Field, Header: c.Header, Sortable: c.Sortable, Type: c.Type}
	}
	if st := t.SortState(); st.Active() {
		s.Sort = &st
	}
	if ctrl, ok := t.Pagination(); ok {
		meta := ctrl.Meta()
		s.Pagination = &meta
	}
	return s
}

// JSON writes a single indented document with the visible rows.
func JSON(w io.Writer, t *table.Table) error {
	rows := t.VisibleRows()
	if rows == nil {
		rows = []table.Row{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Document{Summary: NewSummary(t), Rows: rows})
}

// NDJSON writes the summary on the first line followed by one visible row per line.
func NDJSON(w io.Writer, t *table.Table) error {
	enc := json.NewEncoder(w)
	if err := enc.Encode(NewSummary(t)); err != nil {
		return err
	}
	for _, row := range t.VisibleRows() {
		if err := enc.Encode(row); err != nil {
			return err
		}
	}
	return nil
}
