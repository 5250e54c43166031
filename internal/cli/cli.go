// Package cli wires the mazzehabi commands.
package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ehsanpg/mazzehabi/internal/config"
	"github.com/ehsanpg/mazzehabi/middlewares"
	"github.com/ehsanpg/mazzehabi/pkg/logger"
)

// DefaultConfigFile is read when present; environment variables still
// override it.
const DefaultConfigFile = "mazzehabi.yaml"

type options struct {
	configFile string
}

// NewRootCommand builds the command tree. version is printed by the
// version command.
func NewRootCommand(version string) *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "mazzehabi",
		Short: "Portfolio and order site for Mazzehabi",
		Long: `mazzehabi serves the studio's bilingual portfolio page with its
work gallery, theme and language switches and the order form that
forwards requests to the shop's Google form.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&opts.configFile, "config", "c", DefaultConfigFile, "config file path")

	root.AddCommand(
		newServeCommand(opts),
		newWorksCommand(opts),
		newConfigCommand(opts),
		newVersionCommand(version),
	)
	return root
}

func (o *options) load() (*config.Config, error) {
	cfg, err := config.Load(o.configFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	return logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Sentry: logger.SentryConfig{
			DSN:         cfg.Sentry.DSN,
			Environment: cfg.Sentry.Environment,
		},
	}, middlewares.RequestIDExtractor(), middlewares.LocaleExtractor())
}
