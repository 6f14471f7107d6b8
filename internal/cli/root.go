package cli

import (
	"context"

	"groweasy/internal/config"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type configKeyType struct{}
type loggerKeyType struct{}

var (
	configKey = configKeyType{}
	loggerKey = loggerKeyType{}
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "groweasy",
		Short:         "GrowEasy career guidance API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd(), newMigrateCmd(), newSeedCmd())
	return root
}

// Execute runs the command line with cfg and log available to every
// subcommand. With no subcommand it serves HTTP.
func Execute(ctx context.Context, cfg config.Config, log *zap.Logger, args []string) error {
	ctx = context.WithValue(ctx, configKey, cfg)
	ctx = context.WithValue(ctx, loggerKey, log)

	root := newRootCmd()
	if len(args) == 0 {
		args = []string{"serve"}
	}
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func configFrom(ctx context.Context) config.Config {
	cfg, _ := ctx.Value(configKey).(config.Config)
	return cfg
}

func loggerFrom(ctx context.Context) *zap.Logger {
	if log, ok := ctx.Value(loggerKey).(*zap.Logger); ok && log != nil {
		return log
	}
	return zap.NewNop()
}
