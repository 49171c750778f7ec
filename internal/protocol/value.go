package protocol

import "strconv"

// Kind tags a parameter value variant.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindString
	KindRef
	KindList
)

// Identified is anything that can stand in for itself on the wire through
// an identifier, such as a domain node handle.
type Identified interface {
	Identifier() string
}

// Value is a tagged parameter value. Every variant has a defined encoding
// or omission rule: null is omitted, booleans become 1/0, references become
// their identifier, lists expand into parallel cell groups, and everything
// else is escaped text.
type Value struct {
	kind Kind
	b    bool
	n    int64
	s    string
	list []Value
}

// Null returns the omitted-parameter value.
func Null() Value { return Value{kind: KindNull} }

// Bool returns a boolean value, encoded as 1 or 0.
func Bool(v bool) Value { return Value{kind: KindBool, b: v} }

// Int returns an integer value.
func Int(v int64) Value { return Value{kind: KindInt, n: v} }

// String returns a text value, escaped on encode.
func String(v string) Value { return Value{kind: KindString, s: v} }

// Ref returns an opaque-reference value encoded as the referent's identifier.
func Ref(v Identified) Value { return Value{kind: KindRef, s: v.Identifier()} }

// List returns an ordered list value expanding into parallel cells.
func List(vs ...Value) Value { return Value{kind: KindList, list: vs} }

// Kind returns the variant tag.
func (v Value) Kind() Kind { return v.kind }

// Elements returns the list elements, nil for non-list values.
func (v Value) Elements() []Value { return v.list }

// encode renders a non-list value as a wire token. The second return is
// false when the value is omitted entirely.
func (v Value) encode() (string, bool) {
	switch v.kind {
	case KindNull:
		return "", false
	case KindBool:
		if v.b {
			return "1", true
		}
		return "0", true
	case KindInt:
		return strconv.FormatInt(v.n, 10), true
	case KindRef:
		return v.s, true
	default:
		return Escape(v.s), true
	}
}

// Param is one ordered key/value pair of a command. Key order is wire order.
type Param struct {
	Key   string
	Value Value
}
