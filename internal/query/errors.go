package query

import (
	"errors"
	"fmt"
)

// CodeCommandBlocked is the fixed numeric code carried by blocked-command
// rejections.
const CodeCommandBlocked = 0x600

var (
	ErrIllegalCharacters = errors.New("query: illegal characters in command")
	ErrCommandBlocked    = fmt.Errorf("query: command not allowed (code 0x%x)", CodeCommandBlocked)
	ErrBlockingTransport = errors.New("query: event wait requires a non-blocking transport")
	ErrBadGreeting       = errors.New("query: unrecognized server greeting")
)

// ServerError is a non-success status reported by the server on the
// terminal line of a reply.
type ServerError struct {
	ID           int
	Msg          string
	ExtraMsg     string
	FailedPermID int
	Command      string
}

func (e *ServerError) Error() string {
	msg := fmt.Sprintf("query: server error %d: %s", e.ID, e.Msg)
	if e.ExtraMsg != "" {
		msg += " (" + e.ExtraMsg + ")"
	}
	return msg
}
