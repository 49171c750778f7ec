// Package config loads and validates queryctl TOML configuration.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

const (
	ModeTCP = "tcp"
	ModeSSH = "ssh"
)

// ClientConfig is the connection configuration shared by every tool that
// opens a query session.
type ClientConfig struct {
	Address            string   `toml:"address"`
	Mode               string   `toml:"mode"`
	Blocking           bool     `toml:"blocking"`
	DialTimeoutSeconds int      `toml:"dial_timeout_seconds"`
	Greetings          []string `toml:"greetings"`
	Login              string   `toml:"login"`
	Password           string   `toml:"password"`
	ServerPort         int      `toml:"server_port"`
	Nickname           string   `toml:"nickname"`
	SSH                SSHAuth  `toml:"ssh"`
}

// SSHAuth carries credentials for query-over-SSH.
type SSHAuth struct {
	User           string `toml:"user"`
	Password       string `toml:"password"`
	PrivateKeyFile string `toml:"private_key_file"`
}

// MonitorConfig extends the client settings with the event-monitor surface.
type MonitorConfig struct {
	Client      ClientConfig `toml:"client"`
	MetricsAddr string       `toml:"metrics_addr"`
	Events      []string     `toml:"events"`
}

func LoadClientConfig(path string) (ClientConfig, error) {
	var cfg ClientConfig
	if err := loadToml(path, &cfg); err != nil {
		return ClientConfig{}, err
	}
	cfg = cfg.WithDefaults()
	if err := ValidateClientConfig(cfg); err != nil {
		return ClientConfig{}, err
	}
	return cfg, nil
}

func LoadMonitorConfig(path string) (MonitorConfig, error) {
	var cfg MonitorConfig
	if err := loadToml(path, &cfg); err != nil {
		return MonitorConfig{}, err
	}
	cfg.Client = cfg.Client.WithDefaults()
	// The monitor waits for pushed notifications, which requires
	// non-blocking reads on the wire.
	cfg.Client.Blocking = false
	if err := ValidateClientConfig(cfg.Client); err != nil {
		return MonitorConfig{}, err
	}
	return cfg, nil
}

// WithDefaults fills unset fields with their defaults.
func (c ClientConfig) WithDefaults() ClientConfig {
	if c.Mode == "" {
		c.Mode = ModeTCP
	}
	if c.DialTimeoutSeconds <= 0 {
		c.DialTimeoutSeconds = 10
	}
	return c
}

func loadToml(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if err := toml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	return nil
}

func ValidateClientConfig(cfg ClientConfig) error {
	if strings.TrimSpace(cfg.Address) == "" {
		return fmt.Errorf("client config missing address")
	}
	switch cfg.Mode {
	case ModeTCP:
	case ModeSSH:
		if strings.TrimSpace(cfg.SSH.User) == "" {
			return fmt.Errorf("ssh mode requires ssh.user")
		}
		if cfg.SSH.Password == "" && cfg.SSH.PrivateKeyFile == "" {
			return fmt.Errorf("ssh mode requires ssh.password or ssh.private_key_file")
		}
	default:
		return fmt.Errorf("unknown mode: %s", cfg.Mode)
	}
	for i, prefix := range cfg.Greetings {
		if strings.TrimSpace(prefix) == "" {
			return fmt.Errorf("greetings[%d] is empty", i)
		}
	}
	return nil
}
