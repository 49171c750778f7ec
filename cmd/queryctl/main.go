// queryctl runs one command against a query server and prints the reply.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/voxnet/queryctl/internal/config"
	"github.com/voxnet/queryctl/internal/logging"
	"github.com/voxnet/queryctl/internal/protocol"
	"github.com/voxnet/queryctl/internal/query"
	"github.com/voxnet/queryctl/internal/transport"
)

func main() {
	logging.ConfigureRuntime()
	if err := run(); err != nil {
		var serverErr *query.ServerError
		if errors.As(err, &serverErr) {
			fmt.Fprintf(os.Stderr, "queryctl: %v\n", serverErr)
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "queryctl: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to queryctl config.toml")
	addr := flag.String("addr", "", "server address (overrides config)")
	lenient := flag.Bool("lenient", false, "print failed replies instead of exiting non-zero")
	flag.Parse()

	if flag.NArg() == 0 {
		return errors.New("no command given; usage: queryctl [flags] <command line>")
	}
	line := protocol.Command(strings.Join(flag.Args(), protocol.SeparatorCell))

	cfg := config.ClientConfig{Blocking: true}.WithDefaults()
	if *configPath != "" {
		loaded, err := loadClientConfig(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if *addr != "" {
		cfg.Address = *addr
	}
	if err := config.ValidateClientConfig(cfg); err != nil {
		return err
	}

	ctx := context.Background()
	tr, err := dial(ctx, cfg)
	if err != nil {
		return err
	}

	adapter := query.New(tr, query.Options{
		Address:   cfg.Address,
		Greetings: cfg.Greetings,
	})
	defer func() { _ = adapter.Close() }()

	if err := adapter.Handshake(); err != nil {
		return err
	}
	if err := login(adapter, cfg); err != nil {
		return err
	}

	var reply *query.Reply
	if *lenient {
		reply, err = adapter.RequestUnchecked(line)
	} else {
		reply, err = adapter.Request(line)
	}
	if err != nil {
		return err
	}

	for _, payload := range reply.Lines() {
		fmt.Println(payload)
	}
	status := reply.Status()
	fmt.Printf("error id=%d msg=%s\n", status.ID, protocol.Escape(status.Msg))
	return nil
}

func dial(ctx context.Context, cfg config.ClientConfig) (transport.Transport, error) {
	switch cfg.Mode {
	case config.ModeSSH:
		return transport.DialSSH(ctx, config.SSHConfig(cfg))
	default:
		return transport.DialTCP(ctx, config.TCPConfig(cfg))
	}
}

// login performs the optional session bootstrap: credentials, virtual
// server selection, nickname.
func login(adapter *query.Adapter, cfg config.ClientConfig) error {
	if cfg.Login != "" {
		cmd := protocol.EncodeCommand("login",
			protocol.Param{Key: "client_login_name", Value: protocol.String(cfg.Login)},
			protocol.Param{Key: "client_login_password", Value: protocol.String(cfg.Password)},
		)
		if _, err := adapter.Request(cmd); err != nil {
			return fmt.Errorf("login failed: %w", err)
		}
	}
	if cfg.ServerPort > 0 {
		cmd := protocol.EncodeCommand("use",
			protocol.Param{Key: "port", Value: protocol.Int(int64(cfg.ServerPort))},
		)
		if _, err := adapter.Request(cmd); err != nil {
			return fmt.Errorf("server selection failed: %w", err)
		}
	}
	if cfg.Nickname != "" {
		cmd := protocol.EncodeCommand("clientupdate",
			protocol.Param{Key: "client_nickname", Value: protocol.String(cfg.Nickname)},
		)
		if _, err := adapter.Request(cmd); err != nil {
			return fmt.Errorf("nickname update failed: %w", err)
		}
	}
	return nil
}
