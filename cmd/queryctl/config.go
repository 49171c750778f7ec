package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/voxnet/queryctl/internal/config"
)

// queryctl config.toml key mapping to client connection settings.
type fileConfig struct {
	Address            string   `toml:"address"`
	Mode               string   `toml:"mode"`
	Blocking           bool     `toml:"blocking"`
	DialTimeoutSeconds int      `toml:"dial_timeout_seconds"`
	Greetings          []string `toml:"greetings"`
	Login              string   `toml:"login"`
	Password           string   `toml:"password"`
	ServerPort         int      `toml:"server_port"`
	Nickname           string   `toml:"nickname"`
	SSHUser            string   `toml:"ssh_user"`
	SSHPassword        string   `toml:"ssh_password"`
	SSHPrivateKeyFile  string   `toml:"ssh_private_key_file"`
}

// loadClientConfig overlays a TOML file onto the built-in defaults; keys
// absent from the file keep their defaults.
func loadClientConfig(path string) (config.ClientConfig, error) {
	cfg := config.ClientConfig{}.WithDefaults()
	cfg.Blocking = true

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return config.ClientConfig{}, fmt.Errorf("load queryctl config: %w", err)
	}

	if meta.IsDefined("address") {
		cfg.Address = strings.TrimSpace(raw.Address)
	}
	if meta.IsDefined("mode") {
		cfg.Mode = strings.ToLower(strings.TrimSpace(raw.Mode))
	}
	if meta.IsDefined("blocking") {
		cfg.Blocking = raw.Blocking
	}
	if meta.IsDefined("dial_timeout_seconds") {
		cfg.DialTimeoutSeconds = raw.DialTimeoutSeconds
	}
	if meta.IsDefined("greetings") {
		cfg.Greetings = raw.Greetings
	}
	if meta.IsDefined("login") {
		cfg.Login = strings.TrimSpace(raw.Login)
	}
	if meta.IsDefined("password") {
		cfg.Password = raw.Password
	}
	if meta.IsDefined("server_port") {
		cfg.ServerPort = raw.ServerPort
	}
	if meta.IsDefined("nickname") {
		cfg.Nickname = strings.TrimSpace(raw.Nickname)
	}
	if meta.IsDefined("ssh_user") {
		cfg.SSH.User = strings.TrimSpace(raw.SSHUser)
	}
	if meta.IsDefined("ssh_password") {
		cfg.SSH.Password = raw.SSHPassword
	}
	if meta.IsDefined("ssh_private_key_file") {
		cfg.SSH.PrivateKeyFile = strings.TrimSpace(raw.SSHPrivateKeyFile)
	}

	if err := config.ValidateClientConfig(cfg); err != nil {
		return config.ClientConfig{}, err
	}
	return cfg, nil
}
