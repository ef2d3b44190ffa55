package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/rshade/datagrid/internal/column"
	"github.com/rshade/datagrid/internal/config"
	"github.com/rshade/datagrid/internal/logging"
	"github.com/rshade/datagrid/internal/pagination"
	"github.com/rshade/datagrid/internal/source"
	"github.com/rshade/datagrid/internal/table"
)

var (
	// ErrCacheTTLWithoutRemote is returned when --cache-ttl is set without --remote.
	ErrCacheTTLWithoutRemote = errors.New("--cache-ttl requires --remote")
	// ErrTotalWithRemote is returned when --total is combined with --remote; the service reports the total.
	ErrTotalWithRemote       = errors.New("--total cannot be used with --remote")
)

// tableParams holds the input, paging and sort flags shared by render and browse.
type tableParams struct {
	dataPath    string
	columnsPath string
	idField     string
	remote      bool
	cacheTTL    string
	pagination.Params
}

// addTableFlags registers the shared flags on cmd.
func addTableFlags(cmd *cobra.Command, p *tableParams) {
	cmd.Flags().StringVar(&p.dataPath, "data", "", "rows file (.json, .ndjson, .jsonl, .yaml)")
	cmd.Flags().StringVar(&p.columnsPath, "columns", "", "column declarations file (.yaml, .json)")
	cmd.Flags().StringVar(&p.idField, "id-field", "", "row field holding the unique id (default from config)")
	cmd.Flags().IntVar(&p.Page, "page", 0, "1-based page number (enables pagination)")
	cmd.Flags().IntVar(&p.PageSize, "page-size", 0, "rows per page (default from config when --page is set)")
	cmd.Flags().IntVar(&p.Total, "total", 0, "total record count (default: number of loaded rows)")
	cmd.Flags().StringVar(&p.Sort, "sort", "", "sort expression: field or field:asc|desc")
	cmd.Flags().BoolVar(&p.remote, "remote", false, "delegate sorting and paging to the data service")
	cmd.Flags().StringVar(&p.cacheTTL, "cache-ttl", "", "cache remote replies for this long, as seconds or a duration (e.g. 30s)")
	_ = cmd.MarkFlagRequired("data")
	_ = cmd.MarkFlagRequired("columns")
}

// resolve applies config defaults for unset flags and validates the result.
func (p *tableParams) resolve(cmd *cobra.Command, cfg *config.Config) error {
	if p.Page > 0 && !cmd.Flags().Changed("page-size") {
		p.PageSize = cfg.Table.PageSize
	}
	if p.idField == "" {
		p.idField = cfg.Table.IDField
	}
	if p.cacheTTL != "" && !p.remote {
		return ErrCacheTTLWithoutRemote
	}
	if p.Total > 0 && p.remote {
		return ErrTotalWithRemote
	}
	return p.Validate()
}

// inputs are the loaded rows and column declarations.
type inputs struct {
	rows  []table.Row
	decls []column.Decl
}

// loadInputs reads the rows and column files concurrently.
func loadInputs(ctx context.Context, p *tableParams) (inputs, error) {
	var in inputs
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := source.LoadRows(p.dataPath)
		if err != nil {
			return fmt.Errorf("loading rows: %w", err)
		}
		in.rows = rows
		return nil
	})
	g.Go(func() error {
		decls, err := source.LoadColumns(p.columnsPath)
		if err != nil {
			return fmt.Errorf("loading columns: %w", err)
		}
		in.decls = decls
		return nil
	})
	if err := g.Wait(); err != nil {
		return inputs{}, err
	}

	logging.FromContext(ctx).Debug().
		Str("component", "cli").
		Int("rows", len(in.rows)).
		Int("columns", len(in.decls)).
		Msg("inputs loaded")
	return in, nil
}

// buildTable creates the table for p. In remote mode the rows go to the
// returned service and the table starts empty.
func buildTable(ctx context.Context, p *tableParams, cfg *config.Config, in inputs) (*table.Table, source.Service, error) {
	bounds, err := cfg.Table.Bounds()
	if err != nil {
		return nil, nil, err
	}
	first, err := cfg.Table.Direction()
	if err != nil {
		return nil, nil, err
	}

	log := logging.FromContext(ctx)
	opts := table.Options{
		Columns:        in.decls,
		IDField:        p.idField,
		PageNo:         p.Page,
		PageSize:       p.PageSize,
		Remote:         p.remote,
		FirstDirection: first,
		Bounds:         bounds,
		PageSizeStep:   cfg.Table.PageSizeStep,
		Logger:         log,
	}

	var svc source.Service
	if p.remote {
		ttl, ttlErr := source.ParseTTL(p.cacheTTL)
		if ttlErr != nil {
			return nil, nil, ttlErr
		}
		svc = source.NewMemoryService(in.rows, in.decls, source.WithLogger(*log))
		if ttl > 0 {
			svc = source.NewCachedService(svc, ttl, source.WithCacheLogger(*log))
		}
	} else {
		opts.Data = in.rows
		opts.Total = p.EffectiveTotal(len(in.rows))
	}

	tbl := table.New(opts)
	if p.Sort != "" {
		field, order, sortErr := pagination.ParseSort(p.Sort)
		if sortErr != nil {
			return nil, nil, sortErr
		}
		if sortErr = tbl.SortBy(field, table.Direction(order)); sortErr != nil {
			return nil, nil, sortErr
		}
	}
	return tbl, svc, nil
}
