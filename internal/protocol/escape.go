package protocol

import "strings"

// Escape pairs per the wire grammar. Backslash must be listed first so the
// escape pass never re-escapes its own output.
var escaper = strings.NewReplacer(
	`\`, `\\`,
	`/`, `\/`,
	" ", `\s`,
	"|", `\p`,
	"\a", `\a`,
	"\b", `\b`,
	"\f", `\f`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
	"\v", `\v`,
)

var unescaper = strings.NewReplacer(
	`\\`, `\`,
	`\/`, `/`,
	`\s`, " ",
	`\p`, "|",
	`\a`, "\a",
	`\b`, "\b",
	`\f`, "\f",
	`\n`, "\n",
	`\r`, "\r",
	`\t`, "\t",
	`\v`, "\v",
)

// Escape encodes reserved and control characters for transmission.
func Escape(raw string) string {
	return escaper.Replace(raw)
}

// Unescape decodes a wire-format token back to its raw text.
func Unescape(token string) string {
	return unescaper.Replace(token)
}
