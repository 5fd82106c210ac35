package server

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/iov-one/dex/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	abciserver "github.com/tendermint/tendermint/abci/server"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	flagBind    = "bind"
	flagDebug   = "debug"
	flagMetrics = "metrics"
)

// Options are passed to the AppGenerator when the daemon starts
type Options struct {
	Home   string
	Logger log.Logger
	// Debug returns the full error with stack in abci responses
	Debug bool
	// Registry collects the application metrics
	Registry prometheus.Registerer
}

// AppGenerator lets us lazily initialize app, using home dir
// and logger potentially initialized with other flags
type AppGenerator func(*Options) (abci.Application, error)

// StartCmd runs the abci socket server until interrupted.
func StartCmd(gen AppGenerator, logger log.Logger, home *string) *cobra.Command {
	var (
		addr        string
		debug       bool
		metricsAddr string
	)
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Run the abci server",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := prometheus.NewRegistry()
			app, err := gen(&Options{
				Home:     *home,
				Logger:   logger,
				Debug:    debug,
				Registry: reg,
			})
			if err != nil {
				return err
			}
			return run(logger, app, addr, metricsAddr, reg)
		},
	}
	cmd.Flags().StringVar(&addr, flagBind, "tcp://localhost:26658", "address server listens on")
	cmd.Flags().BoolVar(&debug, flagDebug, false, "call stack returned on error")
	cmd.Flags().StringVar(&metricsAddr, flagMetrics, "", "address serving prometheus metrics, disabled if empty")
	return cmd
}

func run(logger log.Logger, app abci.Application, addr, metricsAddr string, reg *prometheus.Registry) error {
	logger.Info("Starting ABCI app", "bind", addr)
	svr, err := abciserver.NewServer(addr, "socket", app)
	if err != nil {
		return errors.Wrap(errors.ErrInput, "cannot create listener: "+err.Error())
	}
	svr.SetLogger(logger.With("module", "abci-server"))
	if err := svr.Start(); err != nil {
		return errors.Wrap(errors.ErrState, "cannot start abci server: "+err.Error())
	}

	var metrics *http.Server
	if metricsAddr != "" {
		metrics = &http.Server{
			Addr:    metricsAddr,
			Handler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		}
		go func() {
			logger.Info("Serving metrics", "addr", metricsAddr)
			if err := metrics.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("Metrics server failed", "err", err)
			}
		}()
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	s := <-sig
	logger.Info("Shutting down", "signal", s.String())

	if metrics != nil {
		_ = metrics.Close()
	}
	return svr.Stop()
}
