// querymon subscribes to server notifications and streams them to the log,
// optionally exposing Prometheus metrics over HTTP.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	osignal "os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/voxnet/queryctl/internal/config"
	"github.com/voxnet/queryctl/internal/observability"
	"github.com/voxnet/queryctl/internal/protocol"
	"github.com/voxnet/queryctl/internal/query"
	"github.com/voxnet/queryctl/internal/signal"
	"github.com/voxnet/queryctl/internal/transport"
)

func main() {
	logger := observability.InitLogger("querymon")
	if err := run(logger); err != nil {
		fmt.Fprintf(os.Stderr, "querymon: %v\n", err)
		os.Exit(1)
	}
}

func run(logger zerolog.Logger) error {
	configPath := flag.String("config", "querymon.toml", "path to querymon config.toml")
	flag.Parse()

	cfg, err := config.LoadMonitorConfig(*configPath)
	if err != nil {
		return err
	}

	ctx, stop := osignal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tr, err := transport.DialTCP(ctx, config.TCPConfig(cfg.Client))
	if err != nil {
		return err
	}

	bus := signal.NewEmitter()
	bus.Subscribe(signal.Connected, func(args ...any) {
		logger.Info().Str("addr", cfg.Client.Address).Msg("connected")
	})

	adapter := query.New(tr, query.Options{
		Address:   cfg.Client.Address,
		Greetings: cfg.Client.Greetings,
		Bus:       bus,
	})
	defer func() { _ = adapter.Close() }()

	if err := adapter.Handshake(); err != nil {
		return err
	}
	if err := bootstrap(adapter, cfg); err != nil {
		return err
	}

	if cfg.MetricsAddr != "" {
		go serveMetrics(cfg.MetricsAddr, logger)
	}

	// Close only the transport when the context is cancelled: the adapter
	// stays owned by this goroutine, and the wait loop unblocks with a
	// transport error. The deferred adapter.Close then skips the quit
	// because the transport is already disconnected.
	go func() {
		<-ctx.Done()
		_ = tr.Close()
	}()

	for {
		ev, err := adapter.Wait()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, transport.ErrClosed) {
				logger.Info().Msg("shutting down")
				return nil
			}
			return err
		}
		logger.Info().
			Str("event", ev.Kind()).
			Any("data", ev.Data()).
			Msg("notification")
	}
}

// bootstrap logs in, selects the virtual server, and registers for the
// configured notification sources.
func bootstrap(adapter *query.Adapter, cfg config.MonitorConfig) error {
	client := cfg.Client
	if client.Login != "" {
		cmd := protocol.EncodeCommand("login",
			protocol.Param{Key: "client_login_name", Value: protocol.String(client.Login)},
			protocol.Param{Key: "client_login_password", Value: protocol.String(client.Password)},
		)
		if _, err := adapter.Request(cmd); err != nil {
			return fmt.Errorf("login failed: %w", err)
		}
	}
	if client.ServerPort > 0 {
		cmd := protocol.EncodeCommand("use",
			protocol.Param{Key: "port", Value: protocol.Int(int64(client.ServerPort))},
		)
		if _, err := adapter.Request(cmd); err != nil {
			return fmt.Errorf("server selection failed: %w", err)
		}
	}
	for _, event := range cfg.Events {
		cmd := protocol.EncodeCommand("servernotifyregister",
			protocol.Param{Key: "event", Value: protocol.String(event)},
		)
		if _, err := adapter.Request(cmd); err != nil {
			return fmt.Errorf("notify register %q failed: %w", event, err)
		}
	}
	return nil
}

func serveMetrics(addr string, logger zerolog.Logger) {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(observability.RequestLogger(logger))

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if err := router.Run(addr); err != nil {
		logger.Error().Err(err).Str("addr", addr).Msg("metrics server stopped")
	}
}
