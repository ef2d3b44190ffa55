package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/datagrid/internal/config"
	"github.com/rshade/datagrid/internal/logging"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// stdoutIsTerminal reports whether stdout is attached to a terminal. Tests replace it.
var stdoutIsTerminal = func() bool { return isTerminal(os.Stdout) } //nolint:gochecknoglobals // Swapped in tests

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root Cobra command for the datagrid CLI.
// It loads configuration, wires up logging and adds the render and browse subcommands.
func NewRootCmd(ver string) *cobra.Command {
	var logResult *logging.Result

	cmd := &cobra.Command{
		Use:           "datagrid",
		Short:         "Sort and page tabular data",
		Long:          "datagrid: render or browse rows with sortable columns and pagination",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			if _, err := config.LoadGlobal(configPath); err != nil {
				return err
			}
			logResult = setupLogging(cmd)
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			if logResult != nil {
				return logResult.Close()
			}
			return nil
		},
	}

	cmd.PersistentFlags().String("config", "", "config file (default: $DATAGRID_CONFIG or ~/.datagrid/config.yaml)")
	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("log-level", "", "log level (trace, debug, info, warn, error)")
	cmd.AddCommand(newRenderCmd(), newBrowseCmd())

	return cmd
}

const rootCmdExample = `  # Print a table of rows
  datagrid render --data rows.json --columns columns.yaml

  # Second page of ten rows sorted by age, newest first
  datagrid render --data rows.json --columns columns.yaml --page 2 --page-size 10 --sort age:desc

  # Emit the visible page as JSON with pagination metadata
  datagrid render --data rows.ndjson --columns columns.yaml --page 1 --page-size 25 --output json

  # Browse interactively, fetching each page from the data service
  datagrid browse --data rows.yaml --columns columns.yaml --page 1 --page-size 20 --remote`
