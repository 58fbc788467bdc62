package types

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// SessionID is an opaque, caller supplied identifier of a browser session.
type SessionID string

const maxSessionIDLength = 128

func (x SessionID) String() string {
	return string(x)
}

// Empty returns true when no session id was supplied.
func (x SessionID) Empty() bool {
	return strings.TrimSpace(string(x)) == ""
}

// Validate checks the id is usable as a store key. An empty id is valid and
// means "no session".
func (x SessionID) Validate() error {
	if x.Empty() {
		return nil
	}
	if len(x) > maxSessionIDLength {
		return goerr.New("session id is too long", goerr.V("length", len(x)), goerr.V("max", maxSessionIDLength))
	}
	if strings.ContainsAny(string(x), " \t\r\n") {
		return goerr.New("session id must not contain whitespace")
	}
	return nil
}
