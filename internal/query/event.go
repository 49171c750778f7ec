package query

import (
	"strings"

	"github.com/voxnet/queryctl/internal/host"
	"github.com/voxnet/queryctl/internal/protocol"
)

// Event is one asynchronous notification line bound to the host handle.
// Events are immutable after construction.
type Event struct {
	raw  string
	kind string
	data map[string]string
	host *host.Host
}

func newEvent(line string, h *host.Host) *Event {
	verb := protocol.Verb(line)
	rest := strings.TrimPrefix(line, verb)
	rest = strings.TrimPrefix(rest, protocol.SeparatorCell)
	return &Event{
		raw:  line,
		kind: strings.TrimPrefix(verb, protocol.NotifyMarker),
		data: protocol.DecodePairs(rest),
		host: h,
	}
}

// Raw returns the notification line as received.
func (e *Event) Raw() string { return e.raw }

// Kind returns the notification name without its marker prefix, such as
// "textmessage" for a notifytextmessage line.
func (e *Event) Kind() string { return e.kind }

// Data returns the decoded key/value payload of the notification.
func (e *Event) Data() map[string]string { return e.data }

// Host returns the domain root handle the event is bound to.
func (e *Event) Host() *host.Host { return e.host }
