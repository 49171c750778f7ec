package transport

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/crypto/ssh"
)

var ErrSSHAuthRequired = errors.New("transport: ssh password or private key required")

// SSHConfig carries query-over-SSH connection settings.
type SSHConfig struct {
	Address        string
	User           string
	Password       string
	PrivateKeyFile string
	DialTimeout    time.Duration
}

// WithDefaults fills unset fields with their defaults.
func (c SSHConfig) WithDefaults() SSHConfig {
	if c.DialTimeout <= 0 {
		c.DialTimeout = 10 * time.Second
	}
	return c
}

// SSH is a query session tunnelled over an SSH channel. SSH streams carry
// no read deadlines, so the transport is always blocking.
type SSH struct {
	client  *ssh.Client
	session *ssh.Session
	stdin   io.WriteCloser
	reader  *bufio.Reader
	obs     LineObserver
	closed  atomic.Bool
}

// DialSSH opens an SSH connection and starts a query shell session.
func DialSSH(ctx context.Context, cfg SSHConfig) (*SSH, error) {
	cfg = cfg.WithDefaults()
	if strings.TrimSpace(cfg.Address) == "" {
		return nil, ErrAddressRequired
	}
	clientCfg, err := buildClientConfig(cfg)
	if err != nil {
		return nil, err
	}

	dialer := net.Dialer{Timeout: cfg.DialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", cfg.Address)
	if err != nil {
		return nil, err
	}
	sshConn, chans, reqs, err := ssh.NewClientConn(conn, cfg.Address, clientCfg)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("transport: ssh handshake failed: %w", err)
	}
	client := ssh.NewClient(sshConn, chans, reqs)

	session, err := client.NewSession()
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("transport: ssh session failed: %w", err)
	}
	stdin, err := session.StdinPipe()
	if err != nil {
		_ = session.Close()
		_ = client.Close()
		return nil, err
	}
	stdout, err := session.StdoutPipe()
	if err != nil {
		_ = session.Close()
		_ = client.Close()
		return nil, err
	}
	if err := session.Shell(); err != nil {
		_ = session.Close()
		_ = client.Close()
		return nil, fmt.Errorf("transport: ssh shell failed: %w", err)
	}

	return &SSH{
		client:  client,
		session: session,
		stdin:   stdin,
		reader:  bufio.NewReader(stdout),
	}, nil
}

func buildClientConfig(cfg SSHConfig) (*ssh.ClientConfig, error) {
	clientCfg := &ssh.ClientConfig{
		User:            cfg.User,
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         cfg.DialTimeout,
	}
	if cfg.PrivateKeyFile != "" {
		pem, err := os.ReadFile(cfg.PrivateKeyFile)
		if err != nil {
			return nil, fmt.Errorf("transport: read private key: %w", err)
		}
		signer, err := ssh.ParsePrivateKey(pem)
		if err != nil {
			return nil, fmt.Errorf("transport: parse private key: %w", err)
		}
		clientCfg.Auth = append(clientCfg.Auth, ssh.PublicKeys(signer))
	}
	if cfg.Password != "" {
		clientCfg.Auth = append(clientCfg.Auth, ssh.Password(cfg.Password))
	}
	if len(clientCfg.Auth) == 0 {
		return nil, ErrSSHAuthRequired
	}
	return clientCfg, nil
}

func (s *SSH) SendLine(line string) error {
	if !s.Connected() {
		return ErrClosed
	}
	if _, err := s.stdin.Write([]byte(line + "\n")); err != nil {
		return err
	}
	if s.obs != nil {
		s.obs.LineSent(line)
	}
	return nil
}

func (s *SSH) ReadLine() (string, error) {
	if !s.Connected() {
		return "", ErrClosed
	}
	raw, err := s.reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	line := strings.TrimRight(raw, "\r\n")
	if s.obs != nil {
		s.obs.LineRead(line)
	}
	return line, nil
}

func (s *SSH) Connected() bool {
	return s.client != nil && !s.closed.Load()
}

// Blocking is always true: the event-wait loop needs deadline-capable reads
// that SSH channels cannot provide.
func (s *SSH) Blocking() bool { return true }

func (s *SSH) Bind(obs LineObserver) {
	s.obs = obs
}

func (s *SSH) Close() error {
	if s.client == nil || !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	_ = s.session.Close()
	return s.client.Close()
}
