// Package instanceid establishes the process-scoped singleton identity
// referenced throughout this module's client-facing surfaces: a single
// random id, assigned once per process and attached to every outward
// log line and REST health response so operators can tell one running
// node or bridge apart from another without cross-referencing PIDs.
package instanceid

import (
	"sync"

	"github.com/google/uuid"
)

var (
	once sync.Once
	id   uuid.UUID
)

// Current returns this process's instance id, generating it on first
// call and returning the same value for the lifetime of the process.
func Current() uuid.UUID {
	once.Do(func() {
		id = uuid.New()
	})
	return id
}

// String returns Current formatted as a hyphenated UUID string.
func String() string {
	return Current().String()
}
