// Package transport provides line-oriented connections to a query server.
//
// Ownership boundary:
// - the Transport contract consumed by the query adapter
// - raw TCP with blocking and non-blocking read semantics
// - query-over-SSH (always blocking)
package transport

import "errors"

var (
	// ErrNoLine is returned by a non-blocking ReadLine when no complete
	// line is available yet. Only the event-wait loop tolerates it.
	ErrNoLine = errors.New("transport: no line available")
	// ErrClosed is returned for I/O on a closed or never-opened connection.
	ErrClosed = errors.New("transport: connection closed")
)

// LineObserver receives instrumentation callbacks for every line crossing
// the wire. Implementations must not block.
type LineObserver interface {
	LineSent(line string)
	LineRead(line string)
}

// Transport is one synchronous line connection to a query server.
// Implementations are not safe for concurrent use; the protocol is strictly
// half-duplex request/reply per connection.
type Transport interface {
	// SendLine writes one newline-terminated line.
	SendLine(line string) error

	// ReadLine returns the next line with its terminator trimmed. In
	// non-blocking mode it may return ErrNoLine.
	ReadLine() (string, error)

	// Connected reports whether the connection is open.
	Connected() bool

	// Blocking reports whether ReadLine suspends until a line arrives.
	Blocking() bool

	// Bind attaches the owning adapter's line observer. A nil observer
	// detaches instrumentation.
	Bind(obs LineObserver)

	// Close tears the connection down.
	Close() error
}
