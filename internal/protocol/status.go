package protocol

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrNotStatusLine = errors.New("protocol: not a status line")

// Status is the parsed terminal line of a reply. ID zero is success.
type Status struct {
	ID           int
	Msg          string
	ExtraMsg     string
	FailedPermID int
}

// OK reports whether the server signalled success.
func (s Status) OK() bool { return s.ID == 0 }

// ParseStatus parses a terminal status line such as
// "error id=0 msg=ok" into its fields.
func ParseStatus(line string) (Status, error) {
	if !IsStatus(line) {
		return Status{}, fmt.Errorf("%w: %q", ErrNotStatusLine, line)
	}
	pairs := DecodePairs(strings.TrimPrefix(line, StatusMarker+SeparatorCell))

	var st Status
	if raw, ok := pairs["id"]; ok {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return Status{}, fmt.Errorf("protocol: bad status id %q: %w", raw, err)
		}
		st.ID = id
	}
	st.Msg = pairs["msg"]
	st.ExtraMsg = pairs["extra_msg"]
	if raw, ok := pairs["failed_permid"]; ok {
		if id, err := strconv.Atoi(raw); err == nil {
			st.FailedPermID = id
		}
	}
	return st, nil
}

// DecodePairs splits one cell group into a key/value map, unescaping values.
// Tokens without a pair separator map to the empty string.
func DecodePairs(group string) map[string]string {
	pairs := make(map[string]string)
	for _, token := range strings.Split(group, SeparatorCell) {
		if token == "" {
			continue
		}
		key, value, found := strings.Cut(token, SeparatorPair)
		if !found {
			pairs[key] = ""
			continue
		}
		pairs[key] = Unescape(value)
	}
	return pairs
}

// DecodeList splits a list-formatted line into one pair map per cell group.
func DecodeList(line string) []map[string]string {
	groups := strings.Split(line, SeparatorList)
	out := make([]map[string]string, 0, len(groups))
	for _, group := range groups {
		out = append(out, DecodePairs(group))
	}
	return out
}
