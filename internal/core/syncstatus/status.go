// Package syncstatus contains the synchronization state shared by every
// locally created record.
// This is part of the Functional Core - no I/O, only pure functions.
package syncstatus

import (
	"fmt"

	"github.com/example/feira/internal/core/validation"
)

// Status tracks whether a record has been transmitted to a remote system.
type Status string

const (
	Pending Status = "PENDING"
	Synced  Status = "SYNCED"
	Error   Status = "ERROR"
)

// Initial returns the status of a newly created record.
func Initial() Status {
	return Pending
}

// Valid reports whether s is one of the three known states.
func (s Status) Valid() bool {
	switch s {
	case Pending, Synced, Error:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

// Parse converts a stored value into a Status.
// An empty value is treated as the initial status.
func Parse(raw string) (Status, error) {
	if raw == "" {
		return Initial(), nil
	}
	s := Status(raw)
	if !s.Valid() {
		return "", validation.New("syncStatus", fmt.Sprintf("Status de sincronização inválido: %s", raw))
	}
	return s, nil
}

// MarkSynced returns the status after a successful transmission.
// Calling it on an already synced or failed record overwrites the state.
func MarkSynced(Status) Status {
	return Synced
}

// MarkError returns the status after a failed transmission.
func MarkError(Status) Status {
	return Error
}
