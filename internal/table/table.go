package table

import (
	"errors"
	"fmt"
	"slices"

	"github.com/rs/zerolog"

	"github.com/rshade/datagrid/internal/column"
	"github.com/rshade/datagrid/internal/logging"
	"github.com/rshade/datagrid/internal/pagination"
)

// Row maps a field name to its value.
type Row map[string]any

// Header sort indicators.
const (
	IndicatorUnsorted = "↕"
	IndicatorAsc      = "↓"
	IndicatorDesc     = "↑"
)

// NoDataText is shown in place of the body when there are no rows to display.
const NoDataText = "No Data available"

// Sort errors.
var (
	ErrUnknownColumn = errors.New("unknown column")
	ErrNotSortable   = errors.New("column is not sortable")
)

// PageChange is reported to the host when the current page changes.
type PageChange struct {
	PageNo   int `json:"page_no"   yaml:"page_no"`
	PageSize int `json:"page_size" yaml:"page_size"`
}

// Options configures a Table.
type Options struct {
	// Columns are the ordered column declarations.
	Columns []column.Decl

	// Data is the initial row collection. The table keeps its own copy of the slice.
	Data []Row

	// IDField names the row field holding a unique id. Uniqueness is not checked.
	IDField string

	// PageNo, PageSize and Total enable pagination when all three are non-zero.
	PageNo   int
	PageSize int
	Total    int

	// Remote hands sorting and paging to the host. The table then only tracks
	// state and notifies; rows change only through SetData.
	Remote bool

	// FirstDirection is the direction applied when a column is first sorted.
	// Defaults to Ascending.
	FirstDirection Direction

	// Bounds selects the last-page policy of the pagination controller.
	Bounds pagination.BoundPolicy

	// PageSizeStep is the increment between page-size options. Defaults to pagination.DefaultStep.
	PageSizeStep int

	// OnSort is called after every successful sort, in local and remote mode.
	OnSort func(SortState)

	// OnPageChange is called after the current page changes.
	OnPageChange func(PageChange)

	// OnPageSizeChange is called after the page size changes.
	OnPageSizeChange func(pageSize int)

	// Logger receives debug events. Nil disables logging.
	Logger *zerolog.Logger
}

// HeaderCell is a rendered header column.
type HeaderCell struct {
	Field     string
	Label     string
	Sortable  bool
	Indicator string
}

// Table owns rows, column configuration, sort state and pagination state.
// It is not safe for concurrent use.
type Table struct {
	decls  []column.Decl
	lookup column.Lookup
	data   []Row

	idField  string
	sort     SortState
	pageNo   int
	pageSize int
	total    int
	remote   bool
	first    Direction
	bounds   pagination.BoundPolicy
	step     int

	onSort           func(SortState)
	onPageChange     func(PageChange)
	onPageSizeChange func(int)

	log zerolog.Logger
}

// New creates a table from opts.
func New(opts Options) *Table {
	first := opts.FirstDirection
	if first == DirectionNone {
		first = Ascending
	}
	step := opts.PageSizeStep
	if step <= 0 {
		step = pagination.DefaultStep
	}
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = logging.ComponentLogger(*opts.Logger, "table")
	}

	t := &Table{
		idField:          opts.IDField,
		pageNo:           opts.PageNo,
		pageSize:         opts.PageSize,
		total:            opts.Total,
		remote:           opts.Remote,
		first:            first,
		bounds:           opts.Bounds,
		step:             step,
		onSort:           opts.OnSort,
		onPageChange:     opts.OnPageChange,
		onPageSizeChange: opts.OnPageSizeChange,
		log:              log,
	}
	t.SetColumns(opts.Columns)
	t.data = slices.Clone(opts.Data)
	return t
}

// SetColumns replaces the column declarations and rebuilds the lookup.
func (t *Table) SetColumns(decls []column.Decl) {
	t.decls = slices.Clone(decls)
	t.lookup = column.Resolve(t.decls)
}

// SetData replaces the rows and the total record count. In local mode an
// active sort is re-applied to the new rows.
func (t *Table) SetData(rows []Row, total int) {
	t.data = slices.Clone(rows)
	t.total = total
	if t.remote || !t.sort.Active() {
		return
	}
	if col, ok := t.lookup.Get(t.sort.Field); ok {
		t.data = SortRows(t.data, col, t.sort.Direction)
	}
}

// Sort activates sorting on field, toggling the direction when field is
// already active. The field must be a sortable column.
func (t *Table) Sort(field string) (SortState, error) {
	col, err := t.sortable(field)
	if err != nil {
		return t.sort, err
	}
	next := t.sort.Toggle(field, t.first)
	t.applySort(next, col)
	return next, nil
}

// SortBy sets an explicit sort on field.
func (t *Table) SortBy(field string, dir Direction) error {
	if dir != Ascending && dir != Descending {
		return fmt.Errorf("%w: got %q", ErrInvalidDirection, dir)
	}
	col, err := t.sortable(field)
	if err != nil {
		return err
	}
	t.applySort(SortState{Field: field, Direction: dir}, col)
	return nil
}

func (t *Table) sortable(field string) (column.Config, error) {
	col, ok := t.lookup.Get(field)
	if !ok {
		return column.Config{}, fmt.Errorf("%w: %q", ErrUnknownColumn, field)
	}
	if !col.Sortable {
		return column.Config{}, fmt.Errorf("%w: %q", ErrNotSortable, field)
	}
	return col, nil
}

func (t *Table) applySort(next SortState, col column.Config) {
	t.sort = next
	if !t.remote {
		t.data = SortRows(t.data, col, next.Direction)
	}
	t.log.Debug().
		Str("field", next.Field).
		Str("direction", string(next.Direction)).
		Bool("remote", t.remote).
		Int("rows", len(t.data)).
		Msg("sort applied")
	if t.onSort != nil {
		t.onSort(next)
	}
}

// ChangePage moves to page n and notifies the host. Pages below 1 are ignored.
func (t *Table) ChangePage(n int) {
	if n < 1 {
		return
	}
	t.pageNo = n
	t.log.Debug().Int("page_no", n).Int("page_size", t.pageSize).Msg("page changed")
	if t.onPageChange != nil {
		t.onPageChange(PageChange{PageNo: t.pageNo, PageSize: t.pageSize})
	}
}

// ChangePageSize sets the page size and notifies the host. The current page is
// clamped to the new last page.
func (t *Table) ChangePageSize(n int) {
	if n <= 0 || n == t.pageSize {
		return
	}
	t.pageSize = n
	if last := pagination.LastPage(t.total, n, t.bounds); last > 0 && t.pageNo > last {
		t.pageNo = last
	}
	t.log.Debug().Int("page_no", t.pageNo).Int("page_size", n).Msg("page size changed")
	if t.onPageSizeChange != nil {
		t.onPageSizeChange(n)
	}
}

// Pagination returns a controller over the current page state. It reports
// false when page, page size or total is unset, in which case no pagination
// controls should be shown.
func (t *Table) Pagination() (*pagination.Controller, bool) {
	if t.pageNo == 0 || t.pageSize == 0 || t.total == 0 {
		return nil, false
	}
	c := pagination.NewController(
		pagination.State{PageNo: t.pageNo, PageSize: t.pageSize, Total: t.total},
		pagination.WithStep(t.step),
		pagination.WithBoundPolicy(t.bounds),
		pagination.WithOnPageChange(t.ChangePage),
		pagination.WithOnPageSizeChange(t.ChangePageSize),
	)
	return c, true
}

// VisibleRows returns the rows of the current page. The full collection is
// returned in remote mode or when page or page size is unset. Callers must not
// modify the returned slice.
func (t *Table) VisibleRows() []Row {
	if t.remote || t.pageNo == 0 || t.pageSize == 0 {
		return t.data
	}
	return SlicePage(t.data, t.pageNo, t.pageSize)
}

// Empty reports whether there are no rows to display.
func (t *Table) Empty() bool {
	return len(t.VisibleRows()) == 0
}

// Columns returns the visible columns in ordinal order.
func (t *Table) Columns() []column.Config {
	return t.lookup.Visible()
}

// Header returns the visible header cells with sort indicators.
func (t *Table) Header() []HeaderCell {
	cols := t.Columns()
	cells := make([]HeaderCell, len(cols))
	for i, c := range cols {
		cells[i] = HeaderCell{
			Field:     c.Field,
			Label:     c.Header,
			Sortable:  c.Sortable,
			Indicator: t.indicator(c),
		}
	}
	return cells
}

func (t *Table) indicator(c column.Config) string {
	if !c.Sortable {
		return ""
	}
	if c.Field != t.sort.Field {
		return IndicatorUnsorted
	}
	switch t.sort.Direction {
	case Ascending:
		return IndicatorAsc
	case Descending:
		return IndicatorDesc
	default:
		return IndicatorUnsorted
	}
}

// Body renders the visible rows. Cells follow column order; fields missing
// from a row render through the column renderer as nil.
func (t *Table) Body() [][]string {
	cols := t.Columns()
	rows := t.VisibleRows()
	body := make([][]string, len(rows))
	for i, row := range rows {
		cells := make([]string, len(cols))
		for j, c := range cols {
			cells[j] = c.RenderValue(row[c.Field])
		}
		body[i] = cells
	}
	return body
}

// RowID returns the formatted id of row, or "" when no id field is configured.
func (t *Table) RowID(row Row) string {
	if t.idField == "" {
		return ""
	}
	return column.FormatValue(row[t.idField])
}

// SortState returns the active sort.
func (t *Table) SortState() SortState { return t.sort }

// PageNo returns the current page (0 when unset).
func (t *Table) PageNo() int { return t.pageNo }

// PageSize returns the current page size (0 when unset).
func (t *Table) PageSize() int { return t.pageSize }

// Total returns the authoritative record count.
func (t *Table) Total() int { return t.total }

// Remote reports whether sorting and paging are delegated to the host.
func (t *Table) Remote() bool { return t.remote }

// IDField returns the configured id field.
func (t *Table) IDField() string { return t.idField }

// Rows returns every row held by the table in current order.
func (t *Table) Rows() []Row { return t.data }

// Lookup returns the resolved column lookup.
func (t *Table) Lookup() column.Lookup { return t.lookup }
