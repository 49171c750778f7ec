package transport

import (
	"bufio"
	"context"
	"errors"
	"net"
	"strings"
	"sync/atomic"
	"time"
)

var ErrAddressRequired = errors.New("transport: address required")

// TCPConfig carries raw TCP connection settings.
type TCPConfig struct {
	Address     string
	DialTimeout time.Duration

	// Blocking selects whether ReadLine suspends until a line arrives.
	// Non-blocking reads poll with a short deadline and surface ErrNoLine.
	Blocking bool

	// PollInterval bounds one non-blocking read attempt.
	PollInterval time.Duration
}

// WithDefaults fills unset fields with their defaults.
func (c TCPConfig) WithDefaults() TCPConfig {
	if c.DialTimeout <= 0 {
		c.DialTimeout = 10 * time.Second
	}
	if c.PollInterval <= 0 {
		c.PollInterval = 100 * time.Millisecond
	}
	return c
}

// TCP is a raw TCP line transport.
type TCP struct {
	cfg    TCPConfig
	conn   net.Conn
	reader *bufio.Reader
	obs    LineObserver

	// pending holds a partially-read line across non-blocking attempts.
	pending []byte

	// closed is atomic: Close may be called from a shutdown goroutine
	// while the owner is blocked in ReadLine.
	closed atomic.Bool
}

// DialTCP opens a raw TCP connection to the query server.
func DialTCP(ctx context.Context, cfg TCPConfig) (*TCP, error) {
	cfg = cfg.WithDefaults()
	if strings.TrimSpace(cfg.Address) == "" {
		return nil, ErrAddressRequired
	}
	dialer := net.Dialer{Timeout: cfg.DialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", cfg.Address)
	if err != nil {
		return nil, err
	}
	return &TCP{
		cfg:    cfg,
		conn:   conn,
		reader: bufio.NewReader(conn),
	}, nil
}

func (t *TCP) SendLine(line string) error {
	if !t.Connected() {
		return ErrClosed
	}
	if _, err := t.conn.Write([]byte(line + "\n")); err != nil {
		return err
	}
	if t.obs != nil {
		t.obs.LineSent(line)
	}
	return nil
}

func (t *TCP) ReadLine() (string, error) {
	if !t.Connected() {
		return "", ErrClosed
	}
	if t.cfg.Blocking {
		if err := t.conn.SetReadDeadline(time.Time{}); err != nil {
			return "", err
		}
	} else {
		if err := t.conn.SetReadDeadline(time.Now().Add(t.cfg.PollInterval)); err != nil {
			return "", err
		}
	}

	for {
		b, err := t.reader.ReadByte()
		if err != nil {
			if t.closed.Load() || errors.Is(err, net.ErrClosed) {
				return "", ErrClosed
			}
			var netErr net.Error
			if !t.cfg.Blocking && errors.As(err, &netErr) && netErr.Timeout() {
				return "", ErrNoLine
			}
			return "", err
		}
		if b != '\n' {
			t.pending = append(t.pending, b)
			continue
		}
		line := strings.TrimRight(string(t.pending), "\r")
		t.pending = t.pending[:0]
		if t.obs != nil {
			t.obs.LineRead(line)
		}
		return line, nil
	}
}

func (t *TCP) Connected() bool {
	return t.conn != nil && !t.closed.Load()
}

func (t *TCP) Blocking() bool {
	return t.cfg.Blocking
}

func (t *TCP) Bind(obs LineObserver) {
	t.obs = obs
}

func (t *TCP) Close() error {
	if t.conn == nil || !t.closed.CompareAndSwap(false, true) {
		return nil
	}
	return t.conn.Close()
}
