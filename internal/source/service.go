package source

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/rshade/datagrid/internal/column"
	"github.com/rshade/datagrid/internal/logging"
	"github.com/rshade/datagrid/internal/table"
)

// Query is a remote request for one sorted page.
type Query struct {
	// ID correlates a reply with its request.
	ID ulid.ULID

	Sort     table.SortState
	PageNo   int
	PageSize int
}

// NewQuery creates a query with a fresh id.
func NewQuery(sort table.SortState, pageNo, pageSize int) Query {
	return Query{
		ID:       ulid.Make(),
		Sort:     sort,
		PageNo:   pageNo,
		PageSize: pageSize,
	}
}

// Result is the reply to a Query.
type Result struct {
	QueryID ulid.ULID
	Rows    []table.Row
	Total   int
}

// Service supplies sorted, paged rows for remote-mode tables.
type Service interface {
	Fetch(ctx context.Context, q Query) (Result, error)
}

// MemoryService answers queries from an in-memory dataset, the way a
// server-side endpoint would. It is safe for concurrent use.
type MemoryService struct {
	mu     sync.RWMutex
	rows   []table.Row
	lookup column.Lookup
	delay  time.Duration
	log    zerolog.Logger
}

// MemoryOption configures a MemoryService.
type MemoryOption func(*MemoryService)

// WithDelay makes every Fetch wait d before answering. The wait honours
// context cancellation.
func WithDelay(d time.Duration) MemoryOption {
	return func(s *MemoryService) {
		s.delay = d
	}
}

// WithLogger sets the service logger.
func WithLogger(l zerolog.Logger) MemoryOption {
	return func(s *MemoryService) {
		s.log = logging.ComponentLogger(l, "source")
	}
}

// NewMemoryService serves rows using the given column declarations for sorting.
func NewMemoryService(rows []table.Row, decls []column.Decl, opts ...MemoryOption) *MemoryService {
	s := &MemoryService{
		rows:   slices.Clone(rows),
		lookup: column.Resolve(decls),
		log:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Replace swaps the served dataset.
func (s *MemoryService) Replace(rows []table.Row) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = slices.Clone(rows)
}

// Len returns the number of served rows.
func (s *MemoryService) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows)
}

// Fetch sorts and pages the dataset according to q. A query without page or
// page size returns every row.
func (s *MemoryService) Fetch(ctx context.Context, q Query) (Result, error) {
	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return Result{}, ctx.Err()
		case <-timer.C:
		}
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	s.mu.RLock()
	rows := s.rows
	lookup := s.lookup
	s.mu.RUnlock()

	if q.Sort.Active() {
		col, ok := lookup.Get(q.Sort.Field)
		if !ok {
			return Result{}, fmt.Errorf("%w: %q", table.ErrUnknownColumn, q.Sort.Field)
		}
		rows = table.SortRows(rows, col, q.Sort.Direction)
	}

	page := rows
	if q.PageNo > 0 && q.PageSize > 0 {
		page = table.SlicePage(rows, q.PageNo, q.PageSize)
	}

	s.log.Debug().
		Str("query_id", q.ID.String()).
		Str("sort_field", q.Sort.Field).
		Str("sort_direction", string(q.Sort.Direction)).
		Int("page_no", q.PageNo).
		Int("page_size", q.PageSize).
		Int("returned", len(page)).
		Msg("query served")

	return Result{
		QueryID: q.ID,
		Rows:    slices.Clone(page),
		Total:   len(rows),
	}, nil
}
