package column

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Type is the declared value type of a column. It drives comparison during
// local sorting.
type Type string

// Supported column types.
const (
	TypeUnset  Type = ""
	TypeString Type = "string"
	TypeNumber Type = "number"
)

// ErrUnknownType is returned when a declared column type is not supported.
var ErrUnknownType = errors.New("unknown column type")

// ParseType converts a declared type name to a Type.
// The empty string maps to TypeUnset.
func ParseType(s string) (Type, error) {
	switch Type(strings.ToLower(strings.TrimSpace(s))) {
	case TypeUnset:
		return TypeUnset, nil
	case TypeString:
		return TypeString, nil
	case TypeNumber:
		return TypeNumber, nil
	default:
		return TypeUnset, fmt.Errorf("%w: %q (must be string or number)", ErrUnknownType, s)
	}
}

// RenderFunc converts a cell value to its display representation.
type RenderFunc func(value any) string

// Decl declares a single column.
type Decl struct {
	// Field is the row key the column reads. It must be unique.
	Field string `json:"field" yaml:"field"`

	// Header is the label shown in the header row.
	Header string `json:"header" yaml:"header"`

	// Sortable marks the column as sortable from the header.
	Sortable bool `json:"sortable,omitempty" yaml:"sortable,omitempty"`

	// Type is the declared value type used for comparison.
	Type Type `json:"type,omitempty" yaml:"type,omitempty"`

	// Format names a built-in renderer (see RendererFor). Ignored when Render is set.
	Format string `json:"format,omitempty" yaml:"format,omitempty"`

	// Hidden removes the column from the header and body.
	Hidden bool `json:"hidden,omitempty" yaml:"hidden,omitempty"`

	// Render overrides value formatting for the column.
	Render RenderFunc `json:"-" yaml:"-"`
}

// Config is a resolved column: its declaration plus its ordinal position.
type Config struct {
	Decl

	// Index is the declaration order of the column.
	Index int
}

// RenderValue formats v for display using the column renderer, if any.
func (c Config) RenderValue(v any) string {
	if c.Render != nil {
		return c.Render(v)
	}
	return FormatValue(v)
}

// FormatValue is the default cell formatting.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	default:
		return fmt.Sprint(val)
	}
}

// Lookup maps a field name to its resolved column.
type Lookup map[string]Config

// Resolve builds a Lookup from ordered declarations.
// Declarations with an empty field are skipped. When a field is declared more
// than once the last declaration wins, carrying its own index.
func Resolve(decls []Decl) Lookup {
	lookup := make(Lookup, len(decls))
	for i, d := range decls {
		if d.Field == "" {
			continue
		}
		lookup[d.Field] = Config{Decl: d, Index: i}
	}
	return lookup
}

// Get returns the column for field.
func (l Lookup) Get(field string) (Config, bool) {
	c, ok := l[field]
	return c, ok
}

// Ordered returns all columns in ordinal order.
func (l Lookup) Ordered() []Config {
	cols := make([]Config, 0, len(l))
	for _, c := range l {
		cols = append(cols, c)
	}
	sort.Slice(cols, func(i, j int) bool {
		return cols[i].Index < cols[j].Index
	})
	return cols
}

// Visible returns the non-hidden columns in ordinal order.
func (l Lookup) Visible() []Config {
	ordered := l.Ordered()
	visible := ordered[:0]
	for _, c := range ordered {
		if !c.Hidden {
			visible = append(visible, c)
		}
	}
	return visible
}
