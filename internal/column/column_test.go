package column

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_OrdinalIndex(t *testing.T) {
	lookup := Resolve([]Decl{
		{Field: "name", Header: "Name", Sortable: true, Type: TypeString},
		{Field: "age", Header: "Age", Sortable: true, Type: TypeNumber},
		{Field: "city", Header: "City"},
	})

	require.Len(t, lookup, 3)
	assert.Equal(t, 0, lookup["name"].Index)
	assert.Equal(t, 1, lookup["age"].Index)
	assert.Equal(t, 2, lookup["city"].Index)
	assert.True(t, lookup["age"].Sortable)
	assert.Equal(t, TypeNumber, lookup["age"].Type)

	ordered := lookup.Ordered()
	fields := make([]string, len(ordered))
	for i, c := range ordered {
		fields[i] = c.Field
	}
	assert.Equal(t, []string{"name", "age", "city"}, fields)
}

func TestResolve_DuplicateAndEmptyFields(t *testing.T) {
	lookup := Resolve([]Decl{
		{Field: "id", Header: "First"},
		{Field: "", Header: "Ignored"},
		{Field: "id", Header: "Second"},
	})

	require.Len(t, lookup, 1)
	c, ok := lookup.Get("id")
	require.True(t, ok)
	assert.Equal(t, "Second", c.Header, "last declaration wins")
	assert.Equal(t, 2, c.Index)

	_, ok = lookup.Get("missing")
	assert.False(t, ok)
}

func TestLookup_Visible(t *testing.T) {
	lookup := Resolve([]Decl{
		{Field: "a", Header: "A"},
		{Field: "b", Header: "B", Hidden: true},
		{Field: "c", Header: "C"},
	})

	visible := lookup.Visible()
	require.Len(t, visible, 2)
	assert.Equal(t, "a", visible[0].Field)
	assert.Equal(t, "c", visible[1].Field)
}

func TestParseType(t *testing.T) {
	tests := []struct {
		in      string
		want    Type
		wantErr bool
	}{
		{"", TypeUnset, false},
		{"string", TypeString, false},
		{"NUMBER", TypeNumber, false},
		{" number ", TypeNumber, false},
		{"date", TypeUnset, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseType(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnknownType)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfig_RenderValue(t *testing.T) {
	plain := Config{Decl: Decl{Field: "x"}}
	assert.Empty(t, plain.RenderValue(nil))
	assert.Equal(t, "abc", plain.RenderValue("abc"))
	assert.Equal(t, "42", plain.RenderValue(42))
	assert.Equal(t, "2.5", plain.RenderValue(2.5))
	assert.Equal(t, "true", plain.RenderValue(true))

	custom := Config{Decl: Decl{Field: "x", Render: func(v any) string { return "<" + FormatValue(v) + ">" }}}
	assert.Equal(t, "<7>", custom.RenderValue(7))
}

func TestRendererFor(t *testing.T) {
	tests := []struct {
		format string
		in     any
		want   string
	}{
		{"", "As Is", "As Is"},
		{"raw", 3.0, "3"},
		{"upper", "abc", "ABC"},
		{"lower", "ABC", "abc"},
		{"number", 1234567, "1,234,567"},
		{"number", 1234.5, "1,234.50"},
		{"number", "n/a", "n/a"},
		{"currency", 1234.5, "$1,234.50"},
		{"currency", -3, "-$3.00"},
		{"percent", 0.1, "10%"},
		{"percent", 0.125, "12.5%"},
		{"bool", true, "yes"},
		{"bool", false, "no"},
		{"bool", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.format+"/"+FormatValue(tt.in), func(t *testing.T) {
			r, err := RendererFor(tt.format)
			require.NoError(t, err)
			assert.Equal(t, tt.want, r(tt.in))
		})
	}

	_, err := RendererFor("sparkline")
	require.ErrorIs(t, err, ErrUnknownFormat)
	assert.Contains(t, err.Error(), "currency")
}

func TestBindFormats(t *testing.T) {
	decls, err := BindFormats([]Decl{
		{Field: "price", Format: "currency"},
		{Field: "name"},
	})
	require.NoError(t, err)
	require.NotNil(t, decls[0].Render)
	assert.Equal(t, "$2.00", decls[0].Render(2))
	assert.Nil(t, decls[1].Render)

	_, err = BindFormats([]Decl{{Field: "bad", Format: "nope"}})
	require.ErrorIs(t, err, ErrUnknownFormat)
	assert.Contains(t, err.Error(), `column "bad"`)
}

func TestAsNumber(t *testing.T) {
	for _, v := range []any{1, int8(1), int16(1), int32(1), int64(1), uint(1), uint8(1), uint16(1),
		uint32(1), uint64(1), float32(1), 1.0, "1", " 1 "} {
		f, ok := AsNumber(v)
		assert.True(t, ok, "%T should be numeric", v)
		assert.InDelta(t, 1.0, f, 1e-9)
	}

	_, ok := AsNumber("one")
	assert.False(t, ok)
	_, ok = AsNumber(nil)
	assert.False(t, ok)
	_, ok = AsNumber(true)
	assert.False(t, ok)
}
