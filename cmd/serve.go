package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathsheet/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the worksheet HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		svc, err := newService(ctx, st, settings.GeneratorOptions())
		if err != nil {
			return err
		}

		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = settings.Server.Addr
		}

		handler := server.New(server.Deps{
			Service: svc,
			Logger:  logger,
			Locale:  settings.SessionLocale(),
		})
		return server.ListenAndServe(ctx, addr, handler, logger)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (default from settings, 127.0.0.1:8080)")
}
