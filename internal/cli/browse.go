package cli

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/datagrid/internal/config"
	"github.com/rshade/datagrid/internal/tui/grid"
)

// ErrNotTerminal is returned when browse is run without a terminal on stdout.
var ErrNotTerminal = errors.New("browse requires an interactive terminal; use render instead")

// newBrowseCmd creates the "browse" command that opens the interactive table.
func newBrowseCmd() *cobra.Command {
	var params tableParams

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse rows interactively",
		Long: `Open an interactive table. Move between columns with h/l and press s to
sort, page with n/p/g/G and change the page size with +/-.

With --remote every sort and page change is fetched from the data service.`,
		Example: `  datagrid browse --data rows.json --columns columns.yaml --page 1 --page-size 20`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeBrowse(cmd, &params)
		},
	}

	addTableFlags(cmd, &params)
	return cmd
}

func executeBrowse(cmd *cobra.Command, params *tableParams) error {
	if !stdoutIsTerminal() {
		return ErrNotTerminal
	}

	ctx := cmd.Context()
	cfg := config.GetGlobalConfig()
	if err := params.resolve(cmd, cfg); err != nil {
		return err
	}

	in, err := loadInputs(ctx, params)
	if err != nil {
		return err
	}
	tbl, svc, err := buildTable(ctx, params, cfg, in)
	if err != nil {
		return err
	}

	var opts []grid.Option
	if svc != nil {
		opts = append(opts, grid.WithService(svc))
	}

	p := tea.NewProgram(grid.New(ctx, tbl, opts...), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err = p.Run(); err != nil {
		return fmt.Errorf("running interactive browser: %w", err)
	}
	return nil
}
