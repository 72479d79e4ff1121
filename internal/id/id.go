// Package id generates prefixed unique identifiers for domain entities.
package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Entity prefixes. Every ID in the system is "prefix-nanoid" so a bare
// ID string is self-describing in logs and API payloads.
const (
	PrefixItem    = "item"
	PrefixCard    = "card"
	PrefixTip     = "tip"
	PrefixUpdate  = "upd"
	PrefixComment = "cmt"
	PrefixClient  = "sse"
)

// New creates a prefixed unique ID using NanoID (21 chars, URL-safe
// alphabet). Returns an error only if the system entropy source fails.
func New(prefix string) (string, error) {
	suffix, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + suffix, nil
}

// MustNew is like New but panics on failure. Use during initialization
// or seeding where an entropy failure should crash the program.
func MustNew(prefix string) string {
	s, err := New(prefix)
	if err != nil {
		panic(fmt.Sprintf("failed to generate ID: %v", err))
	}
	return s
}
