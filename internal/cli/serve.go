package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ehsanpg/mazzehabi/internal/server"
)

func newServeCommand(opts *options) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			log := newLogger(cfg)

			srv, err := server.New(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			log.Info("starting",
				slog.String("addr", cfg.Server.Addr),
				slog.String("works_source", cfg.Works.Source),
				slog.String("cache", cfg.Cache.Driver),
				slog.Bool("mail", cfg.MailEnabled()),
			)
			return srv.Run(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides server.addr")
	return cmd
}
