package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/voxnet/queryctl/internal/config"
)

func TestLoadClientConfigExample(t *testing.T) {
	cfg, err := loadClientConfig("ex.config.toml")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Address != "voice.example.net:10011" {
		t.Fatalf("unexpected address: %q", cfg.Address)
	}
	if cfg.Mode != config.ModeTCP {
		t.Fatalf("unexpected mode: %q", cfg.Mode)
	}
	if !cfg.Blocking {
		t.Fatalf("expected blocking transport")
	}
	if cfg.DialTimeoutSeconds != 5 {
		t.Fatalf("unexpected dial timeout: %d", cfg.DialTimeoutSeconds)
	}
	if len(cfg.Greetings) != 2 {
		t.Fatalf("unexpected greetings: %+v", cfg.Greetings)
	}
	if cfg.Login != "serveradmin" || cfg.Password != "changeme" {
		t.Fatalf("unexpected credentials: %q/%q", cfg.Login, cfg.Password)
	}
	if cfg.ServerPort != 9987 {
		t.Fatalf("unexpected server port: %d", cfg.ServerPort)
	}
	if cfg.Nickname != "queryctl" {
		t.Fatalf("unexpected nickname: %q", cfg.Nickname)
	}
}

func TestLoadClientConfigPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("address = \"a:1\"\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := loadClientConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.Blocking {
		t.Fatalf("queryctl should default to blocking reads")
	}
	if cfg.Mode != config.ModeTCP {
		t.Fatalf("unexpected mode: %q", cfg.Mode)
	}
	if cfg.DialTimeoutSeconds != 10 {
		t.Fatalf("unexpected dial timeout: %d", cfg.DialTimeoutSeconds)
	}
}

func TestLoadClientConfigSSHKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := "address = \"a:1\"\nmode = \"ssh\"\nssh_user = \"query\"\nssh_password = \"secret\"\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := loadClientConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.SSH.User != "query" || cfg.SSH.Password != "secret" {
		t.Fatalf("unexpected ssh auth: %+v", cfg.SSH)
	}
}

func TestLoadClientConfigRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("mode = \"udp\"\naddress = \"a:1\"\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := loadClientConfig(path); err == nil {
		t.Fatalf("expected validation error")
	}
}
