package main

import (
	"fmt"
	"strings"

	"github.com/linskybing/accel-platform/internal/config"
	"github.com/linskybing/accel-platform/internal/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "accel-api",
		Short:         "Accelerator request control plane",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			bindFlagsToViper(cmd.Flags())
			config.LoadConfig()

			if err := logger.Configure(config.LogLevel, config.LogFormat); err != nil {
				return fmt.Errorf("configuring logging: %w", err)
			}
			return nil
		},
		RunE: func(c *cobra.Command, _ []string) error {
			return c.Help()
		},
	}

	cmd.PersistentFlags().String("log-level", "info", "Log level (trace, debug, info, warn, error)")
	cmd.PersistentFlags().String("log-format", "text", "Log format (text or json)")
	cmd.PersistentFlags().String("db-host", "localhost", "Postgres host")
	cmd.PersistentFlags().String("db-port", "5432", "Postgres port")
	cmd.PersistentFlags().String("db-name", "accel", "Postgres database")

	cmd.AddCommand(newServeCommand())
	cmd.AddCommand(newMigrateCommand())
	cmd.AddCommand(newSweepCommand())
	return cmd
}

// bindFlagsToViper maps --log-level to the LOG_LEVEL key so flags and
// environment share one namespace.
func bindFlagsToViper(fs *pflag.FlagSet) {
	fs.VisitAll(func(flag *pflag.Flag) {
		key := strings.ToUpper(strings.ReplaceAll(flag.Name, "-", "_"))
		_ = viper.BindPFlag(key, flag)
	})
}
