package config

import (
	"time"

	"github.com/voxnet/queryctl/internal/transport"
)

// TCPConfig maps the client settings onto the raw TCP transport.
func TCPConfig(cfg ClientConfig) transport.TCPConfig {
	return transport.TCPConfig{
		Address:     cfg.Address,
		DialTimeout: time.Duration(cfg.DialTimeoutSeconds) * time.Second,
		Blocking:    cfg.Blocking,
	}
}

// SSHConfig maps the client settings onto the query-over-SSH transport.
func SSHConfig(cfg ClientConfig) transport.SSHConfig {
	return transport.SSHConfig{
		Address:        cfg.Address,
		User:           cfg.SSH.User,
		Password:       cfg.SSH.Password,
		PrivateKeyFile: cfg.SSH.PrivateKeyFile,
		DialTimeout:    time.Duration(cfg.DialTimeoutSeconds) * time.Second,
	}
}
