package grid

import (
	"context"
	"slices"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/rshade/datagrid/internal/logging"
	"github.com/rshade/datagrid/internal/pagination"
	"github.com/rshade/datagrid/internal/source"
	"github.com/rshade/datagrid/internal/table"
	"github.com/rshade/datagrid/internal/tui"
	listview "github.com/rshade/datagrid/internal/tui/list"
)

// ViewState is the browser state.
type ViewState int

const (
	// ViewStateReady shows the table.
	ViewStateReady ViewState = iota
	// ViewStateLoading waits for a remote page.
	ViewStateLoading
	// ViewStateError shows the last fetch error.
	ViewStateError
	// ViewStateQuitting is set once the user quits.
	ViewStateQuitting
)

// chromeLines is the number of lines used around the body: borders, header,
// pagination bar and help.
const chromeLines = 7

// fetchedMsg carries the reply to a remote query.
type fetchedMsg struct {
	queryID ulid.ULID
	result  source.Result
	err     error
}

// Option configures a Model.
type Option func(*Model)

// WithService fetches pages from svc. Only used when the table is remote.
func WithService(svc source.Service) Option {
	return func(m *Model) {
		m.service = svc
	}
}

// WithKeyMap replaces the default key bindings.
func WithKeyMap(keys KeyMap) Option {
	return func(m *Model) {
		m.keys = keys
	}
}

// Model is the Bubble Tea model of the table browser.
type Model struct {
	ctx     context.Context
	table   *table.Table
	service source.Service

	keys   KeyMap
	help   help.Model
	pager  paginator.Model
	rows   *listview.Window[[]string]
	widths []int
	focus  int

	state   ViewState
	loading *tui.LoadingState
	pending ulid.ULID
	err     error

	width  int
	height int

	log zerolog.Logger
}

// New creates a browser over tbl. The logger is taken from ctx.
func New(ctx context.Context, tbl *table.Table, opts ...Option) *Model {
	pager := paginator.New()
	pager.Type = paginator.Arabic
	pager.PerPage = 1

	logger := logging.FromContext(ctx)
	m := &Model{
		ctx:     ctx,
		table:   tbl,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		pager:   pager,
		loading: tui.NewLoadingState("Loading..."),
		log:     logging.ComponentLogger(*logger, "grid"),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.rows = listview.NewWindow(tbl.Body(), 0, m.renderRow)
	m.focusFirstSortable()
	m.sync()
	return m
}

// Init starts the first remote fetch for remote tables.
func (m *Model) Init() tea.Cmd {
	if !m.remote() {
		return nil
	}
	return m.fetchWithSpinner()
}

// Update handles key, resize and fetch messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.rows.SetHeight(m.bodyHeight())
		return m, nil

	case fetchedMsg:
		return m.handleFetched(msg)

	case spinner.TickMsg:
		if m.state != ViewStateLoading {
			return m, nil
		}
		return m, m.loading.Update(msg)

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}
	return m, nil
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.state = ViewStateQuitting
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.rows.SetHeight(m.bodyHeight())
		return m, nil
	}

	if m.state == ViewStateLoading {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Left):
		m.moveFocus(-1)
	case key.Matches(msg, m.keys.Right):
		m.moveFocus(1)
	case key.Matches(msg, m.keys.Up):
		m.rows.Move(-1)
	case key.Matches(msg, m.keys.Down):
		m.rows.Move(1)
	case key.Matches(msg, m.keys.Sort):
		return m, m.sortFocused()
	case key.Matches(msg, m.keys.NextPage):
		return m, m.page((*pagination.Controller).Next)
	case key.Matches(msg, m.keys.PrevPage):
		return m, m.page((*pagination.Controller).Prev)
	case key.Matches(msg, m.keys.FirstPage):
		return m, m.page((*pagination.Controller).First)
	case key.Matches(msg, m.keys.LastPage):
		return m, m.page((*pagination.Controller).Last)
	case key.Matches(msg, m.keys.Grow):
		return m, m.resize(1)
	case key.Matches(msg, m.keys.Shrink):
		return m, m.resize(-1)
	}
	return m, nil
}

func (m *Model) moveFocus(delta int) {
	n := len(m.table.Columns())
	if n == 0 {
		return
	}
	m.focus = (m.focus + delta + n) % n
}

func (m *Model) focusFirstSortable() {
	for i, c := range m.table.Header() {
		if c.Sortable {
			m.focus = i
			return
		}
	}
}

func (m *Model) sortFocused() tea.Cmd {
	header := m.table.Header()
	if m.focus >= len(header) || !header[m.focus].Sortable {
		return nil
	}
	if _, err := m.table.Sort(header[m.focus].Field); err != nil {
		m.log.Debug().Err(err).Str("field", header[m.focus].Field).Msg("sort rejected")
		return nil
	}
	return m.changed()
}

func (m *Model) page(move func(*pagination.Controller) bool) tea.Cmd {
	ctrl, ok := m.table.Pagination()
	if !ok || !move(ctrl) {
		return nil
	}
	return m.changed()
}

// resize steps through the page-size options.
func (m *Model) resize(delta int) tea.Cmd {
	ctrl, ok := m.table.Pagination()
	if !ok {
		return nil
	}
	options := ctrl.PageSizeOptions()
	i := slices.Index(options, ctrl.State().PageSize) + delta
	if i < 0 || i >= len(options) || !ctrl.ChangePageSize(options[i]) {
		return nil
	}
	return m.changed()
}

// changed refreshes local state or requests the new page from the service.
func (m *Model) changed() tea.Cmd {
	if m.remote() {
		return m.fetchWithSpinner()
	}
	m.sync()
	return nil
}

func (m *Model) remote() bool {
	return m.table.Remote() && m.service != nil
}

func (m *Model) fetch() tea.Cmd {
	q := source.NewQuery(m.table.SortState(), m.table.PageNo(), m.table.PageSize())
	m.pending = q.ID
	m.state = ViewStateLoading
	m.log.Debug().
		Str("query_id", q.ID.String()).
		Str("field", q.Sort.Field).
		Str("direction", string(q.Sort.Direction)).
		Int("page_no", q.PageNo).
		Int("page_size", q.PageSize).
		Msg("remote request forwarded")

	ctx, svc := m.ctx, m.service
	return func() tea.Msg {
		res, err := svc.Fetch(ctx, q)
		return fetchedMsg{queryID: q.ID, result: res, err: err}
	}
}

func (m *Model) fetchWithSpinner() tea.Cmd {
	return tea.Batch(m.fetch(), m.loading.Tick())
}

func (m *Model) handleFetched(msg fetchedMsg) (tea.Model, tea.Cmd) {
	if msg.queryID != m.pending {
		m.log.Debug().Str("query_id", msg.queryID.String()).Msg("stale reply dropped")
		return m, nil
	}
	if msg.err != nil {
		m.err = msg.err
		m.state = ViewStateError
		return m, nil
	}
	m.err = nil
	m.state = ViewStateReady
	m.table.SetData(msg.result.Rows, msg.result.Total)
	m.sync()
	return m, nil
}

// sync copies table state into the row window and the page indicator.
func (m *Model) sync() {
	m.rows.SetItems(m.table.Body())
	if ctrl, ok := m.table.Pagination(); ok {
		m.pager.SetTotalPages(ctrl.LastPage())
		m.pager.Page = ctrl.State().PageNo - 1
	}
}

func (m *Model) bodyHeight() int {
	if m.height == 0 {
		return 0
	}
	h := m.height - chromeLines
	if m.help.ShowAll {
		h -= len(m.keys.FullHelp())
	}
	if h < 1 {
		h = 1
	}
	return h
}

// State returns the view state.
func (m *Model) State() ViewState { return m.state }

// Focus returns the index of the focused visible column.
func (m *Model) Focus() int { return m.focus }

// Err returns the last fetch error.
func (m *Model) Err() error { return m.err }

// Table returns the underlying table.
func (m *Model) Table() *table.Table { return m.table }
