package pagination

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultStep is the increment between generated page-size options.
const DefaultStep = 10

// BoundPolicy decides how the last page is derived from total and page size.
type BoundPolicy int

const (
	// BoundCeil treats a partial trailing page as a page: last = ceil(total/pageSize).
	BoundCeil BoundPolicy = iota
	// BoundRatio accepts a page only while page <= total/pageSize using real
	// division, so a partial trailing page is unreachable.
	BoundRatio
)

// ErrUnknownBoundPolicy is returned by ParseBoundPolicy for unknown names.
var ErrUnknownBoundPolicy = errors.New("unknown bound policy")

// String returns the configuration name of the policy.
func (p BoundPolicy) String() string {
	switch p {
	case BoundCeil:
		return "ceil"
	case BoundRatio:
		return "ratio"
	default:
		return fmt.Sprintf("BoundPolicy(%d)", int(p))
	}
}

// ParseBoundPolicy converts a configuration name ("ceil" or "ratio") to a BoundPolicy.
// The empty string maps to BoundCeil.
func ParseBoundPolicy(s string) (BoundPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "ceil":
		return BoundCeil, nil
	case "ratio":
		return BoundRatio, nil
	default:
		return BoundCeil, fmt.Errorf("%w: %q (must be ceil or ratio)", ErrUnknownBoundPolicy, s)
	}
}

// State is the navigation state driven by the parent.
type State struct {
	// PageNo is the 1-based current page.
	PageNo int

	// PageSize is the number of rows per page.
	PageSize int

	// Total is the authoritative record count. It may exceed the rows held in memory.
	Total int
}

// Range is the 1-based span of records shown on the current page.
type Range struct {
	From  int
	To    int
	Total int
}

// Affordances reports which navigation controls are enabled.
type Affordances struct {
	First bool
	Prev  bool
	Next  bool
	Last  bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithStep sets the page-size option increment. Non-positive values are ignored.
func WithStep(step int) Option {
	return func(c *Controller) {
		if step > 0 {
			c.step = step
		}
	}
}

// WithBoundPolicy sets the last-page policy.
func WithBoundPolicy(policy BoundPolicy) Option {
	return func(c *Controller) {
		c.policy = policy
	}
}

// WithOnPageChange registers the callback for accepted page changes.
func WithOnPageChange(fn func(pageNo int)) Option {
	return func(c *Controller) {
		c.onPageChange = fn
	}
}

// WithOnPageSizeChange registers the callback for accepted page-size changes.
func WithOnPageSizeChange(fn func(pageSize int)) Option {
	return func(c *Controller) {
		c.onPageSizeChange = fn
	}
}

// Controller derives navigation affordances from a State and forwards accepted
// transitions to its parent. It is not safe for concurrent use.
type Controller struct {
	state  State
	step   int
	policy BoundPolicy

	onPageChange     func(pageNo int)
	onPageSizeChange func(pageSize int)
}

// NewController creates a controller over the given state.
func NewController(state State, opts ...Option) *Controller {
	c := &Controller{
		state:  state,
		step:   DefaultStep,
		policy: BoundCeil,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the controller's current snapshot.
func (c *Controller) State() State {
	return c.state
}

// Policy returns the active bound policy.
func (c *Controller) Policy() BoundPolicy {
	return c.policy
}

// LastPage returns the highest page ChangePage accepts, or 0 when there is nothing to page.
func (c *Controller) LastPage() int {
	return LastPage(c.state.Total, c.state.PageSize, c.policy)
}

// LastPage computes the last reachable page for total records split into pageSize pages.
func LastPage(total, pageSize int, policy BoundPolicy) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	pages := total / pageSize
	if policy == BoundCeil && total%pageSize > 0 {
		pages++
	}
	return pages
}

// ChangePage requests page n. It returns false, without notifying, when n is
// outside [1, LastPage()].
func (c *Controller) ChangePage(n int) bool {
	if n < 1 || n > c.LastPage() {
		return false
	}
	c.state.PageNo = n
	if c.onPageChange != nil {
		c.onPageChange(n)
	}
	return true
}

// First requests page 1.
func (c *Controller) First() bool {
	return c.ChangePage(1)
}

// Last requests the last page.
func (c *Controller) Last() bool {
	return c.ChangePage(c.LastPage())
}

// Next requests the page after the current one.
func (c *Controller) Next() bool {
	return c.ChangePage(c.state.PageNo + 1)
}

// Prev requests the page before the current one.
func (c *Controller) Prev() bool {
	return c.ChangePage(c.state.PageNo - 1)
}

// ChangePageSize requests a new page size. It only notifies when size is
// positive and differs from the current size.
func (c *Controller) ChangePageSize(size int) bool {
	if size <= 0 || size == c.state.PageSize {
		return false
	}
	c.state.PageSize = size
	if c.onPageSizeChange != nil {
		c.onPageSizeChange(size)
	}
	return true
}

// PageSizeOptions returns the selectable page sizes: multiples of the step up
// to total, with the current page size prepended when it is not among them.
func (c *Controller) PageSizeOptions() []int {
	var options []int
	found := false
	for size := c.step; size <= c.state.Total; size += c.step {
		if size == c.state.PageSize {
			found = true
		}
		options = append(options, size)
	}
	if !found && c.state.PageSize > 0 {
		options = append([]int{c.state.PageSize}, options...)
	}
	return options
}

// Range returns the 1-based record span of the current page. To is clamped to Total.
func (c *Controller) Range() Range {
	from := 1
	if c.state.PageNo > 1 {
		from = (c.state.PageNo-1)*c.state.PageSize + 1
	}
	to := c.state.PageNo * c.state.PageSize
	if to > c.state.Total {
		to = c.state.Total
	}
	return Range{From: from, To: to, Total: c.state.Total}
}

// Affordances reports which controls are enabled for the current range.
func (c *Controller) Affordances() Affordances {
	r := c.Range()
	atStart := r.From == 1
	atEnd := r.To == r.Total
	return Affordances{
		First: !atStart,
		Prev:  !atStart,
		Next:  !atEnd,
		Last:  !atEnd,
	}
}

// Meta returns metadata describing the current page.
func (c *Controller) Meta() Meta {
	last := c.LastPage()
	return Meta{
		CurrentPage: c.state.PageNo,
		PageSize:    c.state.PageSize,
		TotalPages:  last,
		TotalItems:  c.state.Total,
		HasPrevious: c.state.PageNo > 1,
		HasNext:     c.state.PageNo < last,
	}
}
