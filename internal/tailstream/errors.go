// If you are AI: This file collects the sentinel errors the stream engine returns,
// grouped by the taxonomy the spec assigns them to (InvalidInput, NotFound, Conflict,
// Ordering, ListenerState).

package tailstream

import "errors"

// Invalid input: malformed keys and values.
var (
	ErrMalformedKey = errors.New("tailstream: malformed storage key")
)

// Not found: recovery against storage that doesn't have what's expected.
var (
	ErrStreamDoesNotExist = errors.New("tailstream: stream does not exist")
)

// Conflict: declaring or seeding streams that already exist or collide.
var (
	ErrStreamAlreadyExists            = errors.New("tailstream: stream already exists")
	ErrStreamAlreadyListedForCreation = errors.New("tailstream: stream already listed for creation")
	ErrStreamHasNoWriterDefined       = errors.New("tailstream: stream has no writer defined")
	ErrPublisherAlreadyAttached       = errors.New("tailstream: publisher already attached to stream")
	ErrStreamNotDeclared              = errors.New("tailstream: stream not declared in static layout")
)

// Ordering: a publisher attempted to regress HEAD.
var (
	ErrOrderKeysGoBackwards = errors.New("tailstream: order keys go backwards")
)

// Listener state: calling an operation the listener's current state forbids.
var (
	ErrNoDataAvailable = errors.New("tailstream: no data available")
	ErrCannotAdvance   = errors.New("tailstream: cannot advance, no data available")
)
