package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/datagrid/internal/config"
	"github.com/rshade/datagrid/internal/render"
	"github.com/rshade/datagrid/internal/source"
)

// renderParams holds the flags of the render command.
type renderParams struct {
	tableParams

	output  string
	noColor bool
}

// newRenderCmd creates the "render" command that prints one page of a table.
func newRenderCmd() *cobra.Command {
	var params renderParams

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print a sorted page of rows",
		Long: `Load rows and column declarations, apply the requested sort and page, and
print the result as a text table, JSON or NDJSON.

Pagination controls are shown only when --page is set. With --remote the
sort and page are sent to the data service and its reply is printed as is.`,
		Example: `  datagrid render --data rows.json --columns columns.yaml --sort name
  datagrid render --data rows.json --columns columns.yaml --page 3 --page-size 10 --output ndjson`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeRender(cmd, &params)
		},
	}

	addTableFlags(cmd, &params.tableParams)
	cmd.Flags().StringVarP(&params.output, "output", "o", "", "output format: table, json, ndjson (default from config)")
	cmd.Flags().BoolVar(&params.noColor, "no-color", false, "disable colors in table output")

	return cmd
}

func executeRender(cmd *cobra.Command, params *renderParams) error {
	ctx := cmd.Context()
	cfg := config.GetGlobalConfig()
	if err := params.resolve(cmd, cfg); err != nil {
		return err
	}

	in, err := loadInputs(ctx, &params.tableParams)
	if err != nil {
		return err
	}
	tbl, svc, err := buildTable(ctx, &params.tableParams, cfg, in)
	if err != nil {
		return err
	}

	if svc != nil {
		res, fetchErr := svc.Fetch(ctx, source.NewQuery(tbl.SortState(), tbl.PageNo(), tbl.PageSize()))
		if fetchErr != nil {
			return fmt.Errorf("fetching page: %w", fetchErr)
		}
		tbl.SetData(res.Rows, res.Total)
	}

	output := params.output
	if output == "" {
		output = cfg.Output.Format
	}
	opts := render.TextOptions{NoColor: params.noColor || cfg.Output.NoColor}

	logger.Debug().Ctx(ctx).
		Str("output", output).
		Int("visible_rows", len(tbl.VisibleRows())).
		Int("total", tbl.Total()).
		Msg("rendering table")
	return render.Write(cmd.OutOrStdout(), tbl, output, opts)
}
