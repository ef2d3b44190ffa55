package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/datagrid/internal/config"
	"github.com/rshade/datagrid/internal/pagination"
	"github.com/rshade/datagrid/internal/render"
	"github.com/rshade/datagrid/internal/source"
	"github.com/rshade/datagrid/internal/table"
)

const testColumns = `
- field: name
  header: Name
  sortable: true
  type: string
- field: age
  header: Age
  sortable: true
  type: number
- field: city
  header: City
`

// fixtures writes n rows and the column file into a temp dir.
func fixtures(t *testing.T, n int) (string, string) {
	t.Helper()
	dir := t.TempDir()

	rows := make([]map[string]any, n)
	for i := range rows {
		rows[i] = map[string]any{"name": fmt.Sprintf("user%02d", i+1), "age": 20 + i, "city": "Braga"}
	}
	data, err := json.Marshal(rows)
	require.NoError(t, err)

	dataPath := filepath.Join(dir, "rows.json")
	columnsPath := filepath.Join(dir, "columns.yaml")
	require.NoError(t, os.WriteFile(dataPath, data, 0o600))
	require.NoError(t, os.WriteFile(columnsPath, []byte(testColumns), 0o600))
	return dataPath, columnsPath
}

// execute runs the root command with isolated config and environment.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv(config.EnvHome, t.TempDir())
	for _, k := range []string{config.EnvConfig, config.EnvLogLevel, config.EnvLogFormat, config.EnvPageSize} {
		t.Setenv(k, "")
	}
	config.ResetGlobalConfigForTest()
	t.Cleanup(config.ResetGlobalConfigForTest)

	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd("test")
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func decode(t *testing.T, out string) render.Document {
	t.Helper()
	var doc render.Document
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	return doc
}

func TestRender_AllRowsWithoutPagination(t *testing.T) {
	data, cols := fixtures(t, 5)

	out, _, err := execute(t, "render", "--data", data, "--columns", cols, "--no-color")
	require.NoError(t, err)
	for i := 1; i <= 5; i++ {
		assert.Contains(t, out, fmt.Sprintf("user%02d", i))
	}
	assert.NotContains(t, out, " of 5")
}

func TestRender_JSONPageAndSort(t *testing.T) {
	data, cols := fixtures(t, 25)

	out, _, err := execute(t, "render", "--data", data, "--columns", cols,
		"--page", "2", "--page-size", "10", "--sort", "age:desc", "-o", "json")
	require.NoError(t, err)

	doc := decode(t, out)
	require.Len(t, doc.Rows, 10)
	assert.Equal(t, "user15", doc.Rows[0]["name"])
	require.NotNil(t, doc.Sort)
	assert.Equal(t, table.SortState{Field: "age", Direction: table.Descending}, *doc.Sort)
	require.NotNil(t, doc.Pagination)
	assert.Equal(t, pagination.Meta{
		CurrentPage: 2, PageSize: 10, TotalPages: 3, TotalItems: 25, HasPrevious: true, HasNext: true,
	}, *doc.Pagination)
}

func TestRender_PageSizeDefaultsFromConfig(t *testing.T) {
	data, cols := fixtures(t, 25)
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("table:\n  page_size: 20\noutput:\n  format: json\n"), 0o600))

	out, _, err := execute(t, "--config", cfgPath, "render", "--data", data, "--columns", cols, "--page", "2")
	require.NoError(t, err)

	doc := decode(t, out)
	assert.Len(t, doc.Rows, 5)
	require.NotNil(t, doc.Pagination)
	assert.Equal(t, 20, doc.Pagination.PageSize)
}

func TestRender_TotalOverride(t *testing.T) {
	data, cols := fixtures(t, 10)

	out, _, err := execute(t, "render", "--data", data, "--columns", cols,
		"--page", "1", "--page-size", "10", "--total", "95", "--no-color")
	require.NoError(t, err)
	assert.Contains(t, out, "1 to 10 of 95")
}

func TestRender_Remote(t *testing.T) {
	data, cols := fixtures(t, 25)

	out, _, err := execute(t, "render", "--data", data, "--columns", cols,
		"--page", "3", "--page-size", "10", "--sort", "name:desc", "--remote", "-o", "json")
	require.NoError(t, err)

	doc := decode(t, out)
	assert.True(t, doc.Remote)
	require.Len(t, doc.Rows, 5)
	assert.Equal(t, "user05", doc.Rows[0]["name"])
	require.NotNil(t, doc.Pagination)
	assert.Equal(t, 25, doc.Pagination.TotalItems)
}

func TestRender_RemoteCacheTTL(t *testing.T) {
	data, cols := fixtures(t, 25)
	base := []string{"render", "--data", data, "--columns", cols, "--page", "1", "--page-size", "10", "--remote", "-o", "json"}

	out, _, err := execute(t, append(base, "--cache-ttl", "30s")...)
	require.NoError(t, err)
	assert.Len(t, decode(t, out).Rows, 10)

	_, _, err = execute(t, append(base, "--cache-ttl", "72h")...)
	require.ErrorIs(t, err, source.ErrInvalidTTL)
}

func TestRender_NDJSON(t *testing.T) {
	data, cols := fixtures(t, 3)

	out, _, err := execute(t, "render", "--data", data, "--columns", cols, "--output", "ndjson")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 4)
	assert.Contains(t, lines[0], `"columns"`)
}

func TestRender_Errors(t *testing.T) {
	data, cols := fixtures(t, 5)

	tests := []struct {
		name    string
		args    []string
		wantErr error
		msg     string
	}{
		{
			name:    "page size without page",
			args:    []string{"--page-size", "10"},
			wantErr: pagination.ErrPageSizeWithoutPage,
		},
		{
			name:    "bad sort order",
			args:    []string{"--sort", "age:sideways"},
			wantErr: pagination.ErrInvalidSortOrder,
		},
		{
			name:    "unknown sort column",
			args:    []string{"--sort", "salary"},
			wantErr: table.ErrUnknownColumn,
		},
		{
			name:    "unsortable column",
			args:    []string{"--sort", "city"},
			wantErr: table.ErrNotSortable,
		},
		{
			name:    "unknown output",
			args:    []string{"--output", "xml"},
			wantErr: render.ErrUnknownOutput,
		},
		{
			name:    "cache ttl without remote",
			args:    []string{"--cache-ttl", "30s"},
			wantErr: ErrCacheTTLWithoutRemote,
		},
		{
			name:    "total with remote",
			args:    []string{"--remote", "--page", "1", "--total", "90"},
			wantErr: ErrTotalWithRemote,
		},
		{
			name: "negative page",
			args: []string{"--page", "-1"},
			msg:  "page must be >= 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"render", "--data", data, "--columns", cols}, tt.args...)
			_, _, err := execute(t, args...)
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

func TestRender_MissingInputs(t *testing.T) {
	_, cols := fixtures(t, 1)

	_, _, err := execute(t, "render", "--data", filepath.Join(t.TempDir(), "none.json"), "--columns", cols)
	require.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "loading rows")

	_, _, err = execute(t, "render", "--columns", cols)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag")
}

func TestRender_InvalidConfig(t *testing.T) {
	data, cols := fixtures(t, 1)
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("version: 3.0.0\n"), 0o600))

	_, _, err := execute(t, "--config", cfgPath, "render", "--data", data, "--columns", cols)
	require.ErrorIs(t, err, config.ErrUnsupportedVersion)
}

func TestRender_DebugLogging(t *testing.T) {
	data, cols := fixtures(t, 2)

	_, stderr, err := execute(t, "--debug", "render", "--data", data, "--columns", cols)
	require.NoError(t, err)
	assert.Contains(t, stderr, "inputs loaded")
	assert.Contains(t, stderr, "rendering table")
}

func TestBrowse_RequiresTerminal(t *testing.T) {
	data, cols := fixtures(t, 2)
	orig := stdoutIsTerminal
	stdoutIsTerminal = func() bool { return false }
	t.Cleanup(func() { stdoutIsTerminal = orig })

	_, _, err := execute(t, "browse", "--data", data, "--columns", cols)
	require.ErrorIs(t, err, ErrNotTerminal)
}

func TestRootCmd(t *testing.T) {
	cmd := NewRootCmd("1.2.3")
	assert.Equal(t, "datagrid", cmd.Use)
	assert.Equal(t, "1.2.3", cmd.Version)

	names := make([]string, 0, len(cmd.Commands()))
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Contains(t, names, "render")
	assert.Contains(t, names, "browse")

	for _, flag := range []string{"config", "debug", "log-level"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), flag)
	}
}
