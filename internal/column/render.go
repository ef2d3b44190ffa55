package column

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ErrUnknownFormat is returned when a named renderer does not exist.
var ErrUnknownFormat = errors.New("unknown column format")

// Built-in renderer names.
const (
	FormatRaw      = "raw"
	FormatUpper    = "upper"
	FormatLower    = "lower"
	FormatNumber   = "number"
	FormatCurrency = "currency"
	FormatPercent  = "percent"
	FormatBool     = "bool"
)

// percentScale converts a ratio into a percentage; percentPrecision keeps two decimals.
const (
	percentScale     = 100
	percentPrecision = 100
)

//nolint:gochecknoglobals // Static registry of built-in renderers.
var renderers = map[string]RenderFunc{
	FormatRaw:      FormatValue,
	FormatUpper:    func(v any) string { return strings.ToUpper(FormatValue(v)) },
	FormatLower:    func(v any) string { return strings.ToLower(FormatValue(v)) },
	FormatNumber:   renderNumber,
	FormatCurrency: renderCurrency,
	FormatPercent:  renderPercent,
	FormatBool:     renderBool,
}

// RendererFor returns the built-in renderer registered under format.
// The empty format resolves to the default formatting.
func RendererFor(format string) (RenderFunc, error) {
	name := strings.ToLower(strings.TrimSpace(format))
	if name == "" {
		return FormatValue, nil
	}
	r, ok := renderers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (valid formats: %s)", ErrUnknownFormat, format,
			strings.Join(Formats(), ", "))
	}
	return r, nil
}

// Formats lists the built-in renderer names in sorted order.
func Formats() []string {
	names := make([]string, 0, len(renderers))
	for name := range renderers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BindFormats resolves the Format of every declaration without an explicit
// Render function. It returns the first unknown format.
func BindFormats(decls []Decl) ([]Decl, error) {
	bound := make([]Decl, len(decls))
	for i, d := range decls {
		if d.Render == nil && d.Format != "" {
			r, err := RendererFor(d.Format)
			if err != nil {
				return nil, fmt.Errorf("column %q: %w", d.Field, err)
			}
			d.Render = r
		}
		bound[i] = d
	}
	return bound, nil
}

// AsNumber reports the numeric value of v. Numeric strings are parsed.
func AsNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func renderNumber(v any) string {
	f, ok := AsNumber(v)
	if !ok {
		return FormatValue(v)
	}
	p := message.NewPrinter(language.English)
	if f == float64(int64(f)) {
		return p.Sprintf("%d", int64(f))
	}
	return p.Sprintf("%.2f", f)
}

func renderCurrency(v any) string {
	f, ok := AsNumber(v)
	if !ok {
		return FormatValue(v)
	}
	p := message.NewPrinter(language.English)
	if f < 0 {
		return p.Sprintf("-$%.2f", -f)
	}
	return p.Sprintf("$%.2f", f)
}

func renderPercent(v any) string {
	f, ok := AsNumber(v)
	if !ok {
		return FormatValue(v)
	}
	pct := math.Round(f*percentScale*percentPrecision) / percentPrecision
	return strconv.FormatFloat(pct, 'f', -1, 64) + "%"
}

func renderBool(v any) string {
	switch b := v.(type) {
	case bool:
		if b {
			return "yes"
		}
		return "no"
	case nil:
		return ""
	default:
		return FormatValue(v)
	}
}
