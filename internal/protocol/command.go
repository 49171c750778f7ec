package protocol

import "strings"

// Command is one immutable encoded command line.
type Command string

// String returns the raw command line.
func (c Command) String() string { return string(c) }

// Verb returns the command name token.
func (c Command) Verb() string { return Verb(string(c)) }

// EncodeCommand renders a verb and ordered parameters into a wire-format
// command line. It is a pure string transform with no failure conditions;
// malformed input is coerced best-effort and rejected, if at all, by the
// request engine.
func EncodeCommand(verb string, params ...Param) Command {
	args := make([]string, 0, len(params))
	var cells [][]string

	for _, p := range params {
		if p.Value.Kind() == KindList {
			for i, el := range p.Value.Elements() {
				token, ok := encodeToken(p.Key, el)
				if !ok {
					continue
				}
				for len(cells) <= i {
					cells = append(cells, nil)
				}
				cells[i] = append(cells[i], token)
			}
			continue
		}
		if token, ok := encodeToken(p.Key, p.Value); ok {
			args = append(args, token)
		}
	}

	line := verb
	if len(args) > 0 {
		line += SeparatorCell + strings.Join(args, SeparatorCell)
	}
	if len(cells) > 0 {
		// Null elements leave no cell behind, so wholly-empty groups are
		// dropped rather than rendered as empty list slots.
		groups := make([]string, 0, len(cells))
		for _, group := range cells {
			if len(group) == 0 {
				continue
			}
			groups = append(groups, strings.Join(group, SeparatorCell))
		}
		if len(groups) > 0 {
			line += SeparatorCell + strings.Join(groups, SeparatorList)
		}
	}
	return Command(strings.TrimRight(line, SeparatorCell))
}

// encodeToken renders one key/value pair. Purely numeric keys are treated
// as positional and emit no key prefix; other keys are lower-cased.
func encodeToken(key string, v Value) (string, bool) {
	encoded, ok := v.encode()
	if !ok {
		return "", false
	}
	if isNumericKey(key) {
		return encoded, true
	}
	return strings.ToLower(key) + SeparatorPair + encoded, true
}

func isNumericKey(key string) bool {
	if key == "" {
		return true
	}
	for _, r := range key {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
