// Package protocol owns the query wire grammar.
//
// Ownership boundary:
// - separator and marker tokens
// - value escaping primitives
// - command line encoding
// - status and notification line parsing
package protocol
