package main

import (
	"context"
	"os"
	"path/filepath"

	"log/slog"

	_ "github.com/mlopsworks/azmlops/adapters/drivers/provider/azure"
	"github.com/mlopsworks/azmlops/internal/logging"
	"github.com/mlopsworks/azmlops/internal/naming"
	"github.com/mlopsworks/azmlops/models/cfgaml"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "azmlops",
		Short:   "AzMLOps CLI",
		Long:    "AzMLOps CLI",
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Show help by default when no subcommand is provided.
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add global db-url flag
	defaultDB := os.Getenv("AZMLOPS_DB_URL")
	if defaultDB == "" {
		defaultDB = "file:azmlops.yml"
	}
	cmd.PersistentFlags().String("db-url", defaultDB, "Database URL (env AZMLOPS_DB_URL) (file:/path/to/azmlops.yml | sqlite:/path/to.db)")

	// global flags (db-url already exists)
	cmd.PersistentFlags().String("log-format", "human", "Log format (human|text|json) (env AZMLOPS_LOG_FORMAT)")
	cmd.PersistentFlags().String("log-output", "-", "Log output ('-' stderr | 'none' | path | empty for auto file) (env AZMLOPS_LOG_OUTPUT)")

	cmd.PersistentPreRunE = func(c *cobra.Command, _ []string) error {
		format, _ := c.Flags().GetString("log-format")
		if env := os.Getenv("AZMLOPS_LOG_FORMAT"); env != "" { // env overrides flag
			format = env
		}
		output, _ := c.Flags().GetString("log-output")
		if env := os.Getenv("AZMLOPS_LOG_OUTPUT"); env != "" {
			output = env
		}
		l, err := newCmdLogger(format, output)
		if err != nil {
			return err
		}
		runID, err := naming.NewCompactID()
		if err != nil {
			return err
		}
		ctx := logging.WithLogger(c.Context(), l.With("runId", runID))
		c.SetContext(ctx)
		return nil
	}

	// Add subcommands
	cmd.AddCommand(newCmdVersion())
	cmd.AddCommand(newCmdConfig())
	cmd.AddCommand(newCmdWorkspace())
	cmd.AddCommand(newCmdCompute())
	cmd.AddCommand(newCmdModel())
	cmd.AddCommand(newCmdImage())
	cmd.AddCommand(newCmdService())
	cmd.AddCommand(newCmdUp())
	cmd.AddCommand(newCmdDown())
	return cmd
}

// newCmdLogger builds the process logger. "-" logs to stderr; any other
// output goes through a managed log file under the state dir.
func newCmdLogger(format, output string) (logging.Logger, error) {
	if output == "-" {
		return logging.New(format, slog.LevelInfo)
	}
	logDir := filepath.Join(cfgaml.DefaultStateDir, "logs")
	lf, err := logging.NewLogFile(&logging.LogConfig{Output: output, Dir: logDir})
	if err != nil {
		return nil, err
	}
	_ = logging.CleanupOldLogFiles(logDir, 7)
	return logging.NewWithWriter(format, slog.LevelInfo, lf.Writer())
}

func main() {
	root := newRootCmd()
	root.SetContext(context.Background())
	executed, err := root.ExecuteC()
	if err != nil {
		ctx := root.Context()
		if executed != nil {
			ctx = executed.Context()
		}
		logging.FromContext(ctx).Errorf(ctx, "Failed: %s", err)
		os.Exit(1)
	}
}
