// If you are AI: This file implements ClientRegistry, a degenerate WaitableCell used
// only for its teardown semantics: it bounds the lifetime of detached worker
// goroutines (the exporter connection handlers). AsyncListener does not use
// it; its Close joins its worker directly.

package tailstream

import "errors"

// ErrRegistryClosed is returned by ScopedClient once the registry has begun
// tearing down; no further clients may register after that point.
var ErrRegistryClosed = errors.New("tailstream: client registry is closed")

// ClientRegistry gates the lifetime of background goroutines against an owner's
// teardown. Goroutines call ScopedClient to obtain a token, check IsLive
// periodically, and release the token when they exit; Close blocks until every
// outstanding token has been released.
type ClientRegistry struct {
	cell *WaitableCell[struct{}]
}

// NewClientRegistry constructs a registry that is open for new clients.
func NewClientRegistry() *ClientRegistry {
	return &ClientRegistry{cell: NewWaitableCell(struct{}{})}
}

// ClientToken is truthy (IsLive() == true) for as long as the owning registry
// has not begun tearing down.
type ClientToken struct {
	release func()
	cell    *WaitableCell[struct{}]
}

// IsLive reports whether the registry is still open. Workers should check this
// periodically and exit their loop once it turns false.
func (t ClientToken) IsLive() bool {
	t.cell.mu.Lock()
	defer t.cell.mu.Unlock()
	return !t.cell.closed
}

// Release returns the token to its registry. Workers must call this exactly
// once, typically via defer, when they stop using the registry.
func (t ClientToken) Release() {
	t.release()
}

// ScopedClient registers a new client token, failing with ErrRegistryClosed if
// the registry is already tearing down.
func (r *ClientRegistry) ScopedClient() (ClientToken, error) {
	release, ok := r.cell.RegisterClient()
	if !ok {
		return ClientToken{}, ErrRegistryClosed
	}
	return ClientToken{release: release, cell: r.cell}, nil
}

// Close begins teardown: no further ScopedClient calls will succeed, and Close
// blocks until every outstanding token has called Release.
func (r *ClientRegistry) Close() {
	r.cell.Close()
}
