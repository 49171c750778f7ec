package query

import (
	"github.com/voxnet/queryctl/internal/host"
	"github.com/voxnet/queryctl/internal/protocol"
)

// Reply is the complete answer to one command: the raw payload lines
// received before the terminal status line, the parsed status, the original
// command text, and the host handle it belongs to. Replies are immutable
// after construction.
type Reply struct {
	lines  []string
	status protocol.Status
	cmd    string
	host   *host.Host
}

// newReply builds a Reply from the accumulated raw lines, the terminal
// status line included. A failed status is not an error here; callers raise
// via Err when they want one.
func newReply(raw []string, cmd string, h *host.Host) (*Reply, error) {
	if len(raw) == 0 {
		return nil, protocol.ErrNotStatusLine
	}
	terminal := raw[len(raw)-1]
	status, err := protocol.ParseStatus(terminal)
	if err != nil {
		return nil, err
	}
	return &Reply{
		lines:  raw[:len(raw)-1],
		status: status,
		cmd:    cmd,
		host:   h,
	}, nil
}

// Lines returns the payload lines, terminal status line excluded.
func (r *Reply) Lines() []string {
	out := make([]string, len(r.lines))
	copy(out, r.lines)
	return out
}

// Status returns the parsed terminal status.
func (r *Reply) Status() protocol.Status { return r.status }

// Command returns the command text this reply answers.
func (r *Reply) Command() string { return r.cmd }

// Host returns the domain root handle the reply is bound to.
func (r *Reply) Host() *host.Host { return r.host }

// Err returns the status as a *ServerError, or nil on success.
func (r *Reply) Err() error {
	if r.status.OK() {
		return nil
	}
	return &ServerError{
		ID:           r.status.ID,
		Msg:          r.status.Msg,
		ExtraMsg:     r.status.ExtraMsg,
		FailedPermID: r.status.FailedPermID,
		Command:      r.cmd,
	}
}

// First decodes the first payload line into a key/value map. Empty replies
// decode to an empty map.
func (r *Reply) First() map[string]string {
	if len(r.lines) == 0 {
		return map[string]string{}
	}
	return protocol.DecodePairs(r.lines[0])
}

// List decodes every payload line as a list of cell groups and concatenates
// the resulting rows.
func (r *Reply) List() []map[string]string {
	var rows []map[string]string
	for _, line := range r.lines {
		rows = append(rows, protocol.DecodeList(line)...)
	}
	return rows
}
