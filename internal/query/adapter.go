// Package query implements the synchronous client adapter for a
// line-oriented query server: command pre-flight checks, the send/accumulate
// request engine, the notification wait loop, session instrumentation, and
// best-effort shutdown.
package query

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/voxnet/queryctl/internal/host"
	"github.com/voxnet/queryctl/internal/observability"
	"github.com/voxnet/queryctl/internal/profile"
	"github.com/voxnet/queryctl/internal/protocol"
	"github.com/voxnet/queryctl/internal/signal"
	"github.com/voxnet/queryctl/internal/transport"
)

// quitCommand is sent best-effort on teardown.
const quitCommand = protocol.Command("quit")

// defaultBlocklist holds verbs rejected before any I/O.
var defaultBlocklist = map[string]struct{}{
	"help": {},
}

// Options configure one adapter instance. Every field is optional.
type Options struct {
	// Name keys the profiling scope and metric labels. Defaults to the
	// address, then to "query".
	Name string

	// Address is the server address recorded on the host handle.
	Address string

	// Bus receives connected/command signals. Nil disables signalling.
	Bus *signal.Emitter

	// Profiler accounts cumulative command runtime. Created when nil.
	Profiler *profile.Profiler

	// Greetings overrides the accepted greeting prefixes.
	Greetings []string
}

// Adapter is a synchronous query client over one transport. It is owned by
// exactly one logical caller at a time; the protocol is strictly half-duplex
// request/reply per connection.
type Adapter struct {
	tr        transport.Transport
	bus       *signal.Emitter
	prof      *profile.Profiler
	greetings []string
	name      string
	addr      string

	blocklist map[string]struct{}

	count         uint64
	lastCommandAt time.Time
	host          *host.Host
}

// New wraps a transport in a query adapter. The connection is not usable
// until Handshake succeeds.
func New(tr transport.Transport, opts Options) *Adapter {
	name := opts.Name
	if name == "" {
		name = opts.Address
	}
	if name == "" {
		name = "query"
	}
	prof := opts.Profiler
	if prof == nil {
		prof = profile.New()
	}
	greetings := opts.Greetings
	if len(greetings) == 0 {
		greetings = protocol.DefaultGreetings
	}
	return &Adapter{
		tr:        tr,
		bus:       opts.Bus,
		prof:      prof,
		greetings: greetings,
		name:      name,
		addr:      opts.Address,
		blocklist: defaultBlocklist,
	}
}

// Handshake binds instrumentation to the transport, reads the greeting line
// and verifies it against the accepted protocol identifiers. On success a
// connected signal is emitted; the emit is fire-and-forget and never blocks
// the handshake result.
func (a *Adapter) Handshake() error {
	a.tr.Bind(a)
	a.prof.Init(a.name)

	line, err := a.readGreeting()
	if err != nil {
		return fmt.Errorf("query: handshake read failed: %w", err)
	}
	if !protocol.GreetingAccepted(line, a.greetings) {
		return fmt.Errorf("%w: %q", ErrBadGreeting, line)
	}
	log.Debug().Str("adapter", a.name).Str("greeting", line).Msg("handshake accepted")
	a.bus.Emit(signal.Connected, a.Host())
	return nil
}

// readGreeting consumes exactly one line, riding out non-blocking polls.
func (a *Adapter) readGreeting() (string, error) {
	for {
		line, err := a.tr.ReadLine()
		if errors.Is(err, transport.ErrNoLine) {
			continue
		}
		return line, err
	}
}

// Request sends one command and accumulates its reply. A non-success status
// is returned as a *ServerError.
func (a *Adapter) Request(cmd protocol.Command) (*Reply, error) {
	return a.request(cmd, true)
}

// RequestUnchecked is Request without status raising: the reply is returned
// whatever the server's status; callers inspect Reply.Err themselves.
func (a *Adapter) RequestUnchecked(cmd protocol.Command) (*Reply, error) {
	return a.request(cmd, false)
}

func (a *Adapter) request(cmd protocol.Command, raise bool) (*Reply, error) {
	line := cmd.String()
	if strings.ContainsAny(line, "\r\n") {
		return nil, fmt.Errorf("%w: %q", ErrIllegalCharacters, line)
	}
	verb := cmd.Verb()
	if _, blocked := a.blocklist[verb]; blocked {
		return nil, fmt.Errorf("%w: %q", ErrCommandBlocked, verb)
	}

	a.bus.Emit(signal.CommandStarted, line)

	a.prof.Start(a.name)
	defer a.prof.Stop(a.name)
	start := time.Now()

	sendErr := a.tr.SendLine(line)
	a.lastCommandAt = time.Now()
	a.count++
	if sendErr != nil {
		observability.RecordCommand(a.name, verb, "transport_error", time.Since(start))
		return nil, sendErr
	}

	var raw []string
	for {
		reply, err := a.tr.ReadLine()
		if err != nil {
			observability.RecordCommand(a.name, verb, "transport_error", time.Since(start))
			return nil, err
		}
		raw = append(raw, reply)
		if protocol.IsStatus(reply) {
			break
		}
	}

	reply, err := newReply(raw, line, a.Host())
	duration := time.Since(start)
	if err != nil {
		observability.RecordCommand(a.name, verb, "error", duration)
		log.Debug().Str("adapter", a.name).Str("verb", verb).Dur("duration", duration).Err(err).Msg("malformed reply")
		return nil, err
	}
	if reply.Status().OK() {
		observability.RecordCommand(a.name, verb, "ok", duration)
	} else {
		observability.RecordCommand(a.name, verb, "error", duration)
	}
	// The finished signal always carries the parsed reply, even when the
	// status is raised to the caller afterwards.
	a.bus.Emit(signal.CommandFinished, line, reply)
	if raise {
		if serr := reply.Err(); serr != nil {
			log.Debug().Str("adapter", a.name).Str("verb", verb).Dur("duration", duration).Err(serr).Msg("command failed")
			return nil, serr
		}
	}
	return reply, nil
}

// Wait blocks until the next asynchronous notification arrives, discarding
// any interleaved non-notification lines. It is only meaningful on a
// non-blocking transport and fails fast otherwise, without reading.
func (a *Adapter) Wait() (*Event, error) {
	if a.tr.Blocking() {
		return nil, ErrBlockingTransport
	}
	for {
		line, err := a.tr.ReadLine()
		if errors.Is(err, transport.ErrNoLine) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if !protocol.IsNotification(line) {
			continue
		}
		ev := newEvent(line, a.Host())
		observability.RecordEvent(a.name, ev.Kind())
		a.bus.Emit(signal.EventReceived, ev)
		return ev, nil
	}
}

// Host returns the adapter-owned domain root, creating it on first access.
// The adapter is single-caller by contract, so no locking is required.
func (a *Adapter) Host() *host.Host {
	if a.host == nil {
		a.host = host.New(a.addr)
	}
	return a.host
}

// Count returns how many requests reached the send step.
func (a *Adapter) Count() uint64 { return a.count }

// LastCommandAt returns the timestamp of the most recent request.
func (a *Adapter) LastCommandAt() time.Time { return a.lastCommandAt }

// Runtime returns the cumulative profiled command runtime.
func (a *Adapter) Runtime() time.Duration { return a.prof.Runtime(a.name) }

// Close tears the session down: a best-effort quit is sent while connected
// and every error from it is discarded, then the transport is closed.
func (a *Adapter) Close() error {
	if a.tr.Connected() {
		if _, err := a.request(quitCommand, false); err != nil {
			log.Debug().Str("adapter", a.name).Err(err).Msg("quit on close discarded")
		}
	}
	return a.tr.Close()
}

// LineSent implements transport.LineObserver for wire metrics.
func (a *Adapter) LineSent(line string) {
	observability.RecordLineSent(a.name, len(line)+1)
}

// LineRead implements transport.LineObserver for wire metrics.
func (a *Adapter) LineRead(line string) {
	observability.RecordLineRead(a.name, len(line)+1)
}
