package source

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/datagrid/internal/column"
	"github.com/rshade/datagrid/internal/table"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"rows.json", FormatJSON, false},
		{"rows.NDJSON", FormatNDJSON, false},
		{"rows.jsonl", FormatNDJSON, false},
		{"rows.yml", FormatYAML, false},
		{"rows.yaml", FormatYAML, false},
		{"rows.csv", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFromPath(tt.path)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadRows(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		path := writeFile(t, "rows.json", `[{"id": 1, "name": "a"}, {"id": 2, "name": "b"}]`)
		rows, err := LoadRows(path)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.InDelta(t, 2.0, rows[1]["id"], 1e-9)
	})

	t.Run("ndjson skips blank lines", func(t *testing.T) {
		path := writeFile(t, "rows.ndjson", "{\"id\":1}\n\n{\"id\":2}\n")
		rows, err := LoadRows(path)
		require.NoError(t, err)
		assert.Len(t, rows, 2)
	})

	t.Run("ndjson reports line", func(t *testing.T) {
		path := writeFile(t, "rows.jsonl", "{\"id\":1}\n{broken\n")
		_, err := LoadRows(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "line 2")
	})

	t.Run("yaml", func(t *testing.T) {
		path := writeFile(t, "rows.yaml", "- id: 1\n  name: a\n- id: 2\n  name: b\n")
		rows, err := LoadRows(path)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, 1, rows[0]["id"])
		assert.Equal(t, "b", rows[1]["name"])
	})

	t.Run("empty yaml", func(t *testing.T) {
		rows, err := LoadRows(writeFile(t, "rows.yaml", ""))
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadRows(filepath.Join(t.TempDir(), "nope.json"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		_, err := LoadRows("rows.xml")
		require.ErrorIs(t, err, ErrUnsupportedFormat)
	})
}

func TestDecodeColumns(t *testing.T) {
	decls, err := DecodeColumns(strings.NewReader(`
- field: name
  header: Name
  sortable: true
  type: string
- field: price
  type: number
  format: currency
  sortable: true
- field: internal
  hidden: true
`))
	require.NoError(t, err)
	require.Len(t, decls, 3)

	assert.Equal(t, column.TypeString, decls[0].Type)
	assert.True(t, decls[0].Sortable)
	assert.Equal(t, "price", decls[1].Header, "header defaults to field")
	require.NotNil(t, decls[1].Render)
	assert.Equal(t, "$9.50", decls[1].Render(9.5))
	assert.True(t, decls[2].Hidden)
}

func TestDecodeColumns_JSON(t *testing.T) {
	decls, err := DecodeColumns(strings.NewReader(`[{"field": "a", "header": "A", "sortable": true}]`))
	require.NoError(t, err)
	require.Len(t, decls, 1)
	assert.Equal(t, "A", decls[0].Header)
}

func TestDecodeColumns_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
		msg     string
	}{
		{name: "missing field", input: "- header: X\n", msg: "field is required"},
		{name: "bad type", input: "- field: a\n  type: date\n", wantErr: column.ErrUnknownType},
		{name: "bad format", input: "- field: a\n  format: sparkline\n", wantErr: column.ErrUnknownFormat},
		{name: "not a list", input: "field: a\n", msg: "decoding columns"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeColumns(strings.NewReader(tt.input))
			require.Error(t, err)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			}
			if tt.msg != "" {
				assert.Contains(t, err.Error(), tt.msg)
			}
		})
	}
}

func TestLoadColumns(t *testing.T) {
	path := writeFile(t, "cols.yaml", "- field: a\n  header: A\n")
	decls, err := LoadColumns(path)
	require.NoError(t, err)
	assert.Len(t, decls, 1)

	_, err = LoadColumns(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func serviceRows(n int) []table.Row {
	rows := make([]table.Row, n)
	for i := range rows {
		rows[i] = table.Row{"id": i, "score": n - i}
	}
	return rows
}

func TestMemoryService_Fetch(t *testing.T) {
	decls := []column.Decl{
		{Field: "id", Header: "ID", Sortable: true, Type: column.TypeNumber},
		{Field: "score", Header: "Score", Sortable: true, Type: column.TypeNumber},
	}
	svc := NewMemoryService(serviceRows(25), decls)

	q := NewQuery(table.SortState{Field: "score", Direction: table.Ascending}, 2, 10)
	res, err := svc.Fetch(context.Background(), q)
	require.NoError(t, err)

	assert.Equal(t, q.ID, res.QueryID)
	assert.Equal(t, 25, res.Total)
	require.Len(t, res.Rows, 10)
	assert.Equal(t, 11, res.Rows[0]["score"])

	all, err := svc.Fetch(context.Background(), NewQuery(table.SortState{}, 0, 0))
	require.NoError(t, err)
	assert.Len(t, all.Rows, 25)
	assert.Equal(t, 0, all.Rows[0]["id"])

	_, err = svc.Fetch(context.Background(), NewQuery(table.SortState{Field: "nope", Direction: table.Ascending}, 1, 10))
	require.ErrorIs(t, err, table.ErrUnknownColumn)
}

func TestMemoryService_QueryIDsAreUnique(t *testing.T) {
	a := NewQuery(table.SortState{}, 1, 10)
	b := NewQuery(table.SortState{}, 1, 10)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestMemoryService_ReplaceAndLen(t *testing.T) {
	svc := NewMemoryService(serviceRows(3), nil)
	assert.Equal(t, 3, svc.Len())

	svc.Replace(serviceRows(7))
	res, err := svc.Fetch(context.Background(), NewQuery(table.SortState{}, 1, 5))
	require.NoError(t, err)
	assert.Equal(t, 7, res.Total)
	assert.Len(t, res.Rows, 5)
}

func TestMemoryService_DelayHonoursCancellation(t *testing.T) {
	svc := NewMemoryService(serviceRows(3), nil, WithDelay(time.Minute))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Fetch(ctx, NewQuery(table.SortState{}, 1, 10))
	require.ErrorIs(t, err, context.Canceled)
}
