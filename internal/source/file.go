package source

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rshade/datagrid/internal/column"
	"github.com/rshade/datagrid/internal/table"
)

// Format is a row file encoding.
type Format string

// Supported row file formats.
const (
	FormatJSON   Format = "json"
	FormatNDJSON Format = "ndjson"
	FormatYAML   Format = "yaml"
)

// ErrUnsupportedFormat is returned for file extensions with no decoder.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// maxLineSize bounds a single NDJSON record.
const maxLineSize = 4 * 1024 * 1024

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".ndjson", ".jsonl":
		return FormatNDJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q (use .json, .ndjson, .jsonl, .yaml or .yml)", ErrUnsupportedFormat, path)
	}
}

// LoadRows reads rows from a JSON, NDJSON or YAML file.
func LoadRows(path string) ([]table.Row, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening rows file: %w", err)
	}
	defer f.Close()

	rows, err := DecodeRows(f, format)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return rows, nil
}

// DecodeRows decodes rows in the given format.
func DecodeRows(r io.Reader, format Format) ([]table.Row, error) {
	switch format {
	case FormatJSON:
		var rows []table.Row
		if err := json.NewDecoder(r).Decode(&rows); err != nil {
			return nil, fmt.Errorf("decoding JSON rows: %w", err)
		}
		return rows, nil
	case FormatNDJSON:
		return decodeNDJSON(r)
	case FormatYAML:
		var rows []table.Row
		if err := yaml.NewDecoder(r).Decode(&rows); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decoding YAML rows: %w", err)
		}
		return rows, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func decodeNDJSON(r io.Reader) ([]table.Row, error) {
	var rows []table.Row
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineSize)
	line := 0
	for scanner.Scan() {
		line++
		text := bytes.TrimSpace(scanner.Bytes())
		if len(text) == 0 {
			continue
		}
		var row table.Row
		if err := json.Unmarshal(text, &row); err != nil {
			return nil, fmt.Errorf("decoding NDJSON line %d: %w", line, err)
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading NDJSON: %w", err)
	}
	return rows, nil
}

// columnFile is the on-disk shape of a column declaration.
type columnFile struct {
	Field    string `yaml:"field"`
	Header   string `yaml:"header"`
	Sortable bool   `yaml:"sortable"`
	Type     string `yaml:"type"`
	Format   string `yaml:"format"`
	Hidden   bool   `yaml:"hidden"`
}

// LoadColumns reads column declarations from a YAML or JSON file.
func LoadColumns(path string) ([]column.Decl, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening columns file: %w", err)
	}
	defer f.Close()

	decls, err := DecodeColumns(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return decls, nil
}

// DecodeColumns decodes a YAML (or JSON) sequence of column declarations,
// validating types and binding named formats. A missing header defaults to the
// field name.
func DecodeColumns(r io.Reader) ([]column.Decl, error) {
	var raw []columnFile
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding columns: %w", err)
	}

	decls := make([]column.Decl, 0, len(raw))
	for i, c := range raw {
		if c.Field == "" {
			return nil, fmt.Errorf("column %d: field is required", i)
		}
		typ, err := column.ParseType(c.Type)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", c.Field, err)
		}
		header := c.Header
		if header == "" {
			header = c.Field
		}
		decls = append(decls, column.Decl{
			Field:    c.Field,
			Header:   header,
			Sortable: c.Sortable,
			Type:     typ,
			Format:   c.Format,
			Hidden:   c.Hidden,
		})
	}
	return column.BindFormats(decls)
}
