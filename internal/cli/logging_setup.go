package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/datagrid/internal/config"
	"github.com/rshade/datagrid/internal/logging"
)

// setupLogging configures logging from the config file, environment and CLI flags
// and stores the logger in the command context.
func setupLogging(cmd *cobra.Command) *logging.Result {
	debug, _ := cmd.Flags().GetBool("debug")
	loggingCfg := config.GetLoggingConfig().ToLoggingConfig(debug)
	if level, _ := cmd.Flags().GetString("log-level"); level != "" && !debug {
		loggingCfg.Level = level
	}
	if debug {
		loggingCfg.Format = logging.FormatConsole
		loggingCfg.File = ""
	}

	result := logging.NewLogger(loggingCfg, cmd.ErrOrStderr())
	logger = logging.ComponentLogger(result.Logger, "cli")

	if result.UsingFile() {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Logging to: %s\n", result.FilePath)
	} else if result.FallbackReason != "" {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s; logging to stderr\n", result.FallbackReason)
	}

	ctx := result.Logger.WithContext(cmd.Context())
	cmd.SetContext(ctx)

	logger.Debug().Ctx(ctx).Str("command", cmd.Name()).Msg("command started")
	return result
}
