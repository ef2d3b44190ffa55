package table

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"github.com/rshade/datagrid/internal/column"
	"github.com/rshade/datagrid/internal/pagination"
)

// Direction is a sort direction.
type Direction string

// Sort directions. DirectionNone means the table is unsorted.
const (
	DirectionNone Direction = ""
	Ascending     Direction = pagination.SortOrderAsc
	Descending    Direction = pagination.SortOrderDesc
)

// ErrInvalidDirection is returned for unknown direction names.
var ErrInvalidDirection = errors.New("sort direction must be 'asc' or 'desc'")

// ParseDirection converts "asc" or "desc" (any case) to a Direction.
func ParseDirection(s string) (Direction, error) {
	switch Direction(strings.ToLower(strings.TrimSpace(s))) {
	case Ascending:
		return Ascending, nil
	case Descending:
		return Descending, nil
	default:
		return DirectionNone, fmt.Errorf("%w: got %q", ErrInvalidDirection, s)
	}
}

// Opposite returns the reverse direction. DirectionNone has no opposite.
func (d Direction) Opposite() Direction {
	switch d {
	case Ascending:
		return Descending
	case Descending:
		return Ascending
	default:
		return DirectionNone
	}
}

// SortState is the active sort of a table.
type SortState struct {
	Field     string    `json:"field,omitempty"     yaml:"field,omitempty"`
	Direction Direction `json:"direction,omitempty" yaml:"direction,omitempty"`
}

// Active reports whether a sort is applied.
func (s SortState) Active() bool {
	return s.Field != "" && s.Direction != DirectionNone
}

// Toggle returns the state after activating field. Re-activating the active
// field flips its direction; any other field starts at first.
func (s SortState) Toggle(field string, first Direction) SortState {
	if first == DirectionNone {
		first = Ascending
	}
	if s.Field == field && s.Direction != DirectionNone {
		return SortState{Field: field, Direction: s.Direction.Opposite()}
	}
	return SortState{Field: field, Direction: first}
}

// Compare orders two cell values of a column with the given declared type.
// String columns compare case-insensitively. Everything else uses native
// ordering: numbers numerically, strings lexically, false before true, nil
// first, and mixed kinds by their formatted text.
func Compare(a, b any, typ column.Type) int {
	if typ == column.TypeString {
		fold := cases.Fold()
		return strings.Compare(fold.String(column.FormatValue(a)), fold.String(column.FormatValue(b)))
	}
	return compareNative(a, b, typ == column.TypeNumber)
}

func compareNative(a, b any, numericStrings bool) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}

	if ai, aok := asInt(a); aok {
		if bi, bok := asInt(b); bok {
			return cmp.Compare(ai, bi)
		}
	}
	if af, bf, ok := numbers(a, b, numericStrings); ok {
		return cmp.Compare(af, bf)
	}

	as, aok := a.(string)
	bs, bok := b.(string)
	if aok && bok {
		return strings.Compare(as, bs)
	}

	ab, aok := a.(bool)
	bb, bok := b.(bool)
	if aok && bok {
		switch {
		case ab == bb:
			return 0
		case !ab:
			return -1
		default:
			return 1
		}
	}

	return strings.Compare(column.FormatValue(a), column.FormatValue(b))
}

// asInt reports v as an int64 when it is an integer kind that fits. Integers
// compare exactly so ids above 2^53 keep their order.
func asInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return int64(n), uint64(n) <= math.MaxInt64
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return int64(n), n <= math.MaxInt64
	}
	return 0, false
}

// numbers converts both values to float64 when both are numeric. Strings only
// count as numeric when numericStrings is set.
func numbers(a, b any, numericStrings bool) (float64, float64, bool) {
	if !numericStrings {
		if _, ok := a.(string); ok {
			return 0, 0, false
		}
		if _, ok := b.(string); ok {
			return 0, 0, false
		}
	}
	af, aok := column.AsNumber(a)
	bf, bok := column.AsNumber(b)
	if !aok || !bok {
		return 0, 0, false
	}
	return af, bf, true
}

// SortRows returns a stably sorted copy of rows ordered by the column's field.
// The input slice is left untouched.
func SortRows(rows []Row, col column.Config, dir Direction) []Row {
	sorted := slices.Clone(rows)
	if dir == DirectionNone {
		return sorted
	}
	slices.SortStableFunc(sorted, func(a, b Row) int {
		c := Compare(a[col.Field], b[col.Field], col.Type)
		if dir == Descending {
			return -c
		}
		return c
	})
	return sorted
}
