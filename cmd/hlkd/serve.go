package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hashlink/hlkd/pkg/rpc"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the chain over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, engine, err := setup()
		if err != nil {
			return err
		}

		chain, store, err := openChain(cfg, engine)
		if err != nil {
			return err
		}
		defer store.Close()

		if chain.Len() == 0 {
			log.Warn("store holds no chain; run 'hlkd init' first")
		}

		server := rpc.NewServer(chain, log)
		errCh := make(chan error, 1)
		go func() {
			errCh <- server.Start(cfg.RPCListenAddr())
		}()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-errCh:
			return err
		case sig := <-sigCh:
			log.WithField("signal", sig.String()).Info("shutting down")
			return nil
		}
	},
}
