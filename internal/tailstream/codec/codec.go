// If you are AI: This file implements entry codecs consumed by Publisher and
// RawListener (spec.md §6.2): a concrete JSON codec for single-type streams,
// and a polymorphic tagged-family codec for streams whose entries are one of
// several related types.

// Package codec provides entry serialization for the stream engine. JSON is
// used throughout, grounded on the original implementation's choice of a
// cereal JSON archive for entry bodies.
package codec

import (
	"encoding/json"
	"fmt"
	"sync"
)

// JSON implements both tailstream.Codec[E] and tailstream.Decoder[E] for a
// single concrete entry type via encoding/json.
type JSON[E any] struct{}

// Serialize marshals e to JSON.
func (JSON[E]) Serialize(e E) ([]byte, error) {
	return json.Marshal(e)
}

// Decode unmarshals raw into a new E.
func (JSON[E]) Decode(raw []byte) (E, error) {
	var e E
	err := json.Unmarshal(raw, &e)
	return e, err
}

// ErrUnrecognizedType fires when a Family decodes an envelope whose tag has
// no registered type, per spec.md §7's PolymorphicDispatch error kind.
var ErrUnrecognizedType = fmt.Errorf("tailstream/codec: unrecognized polymorphic type")

// Tagged is implemented by every concrete member of a polymorphic entry
// family so Family.Serialize can recover its registered tag.
type Tagged interface {
	FamilyTag() string
}

type envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Family is a closed, registered set of tagged entry types, the Go
// equivalent of the original's runtime-dispatched polymorphic entry family
// (a tagged variant plus a visitor-style handler, no v-table or RTTI
// required). The zero value is not usable; construct with NewFamily.
type Family struct {
	mu       sync.RWMutex
	decoders map[string]func(json.RawMessage) (any, error)
}

// NewFamily constructs an empty Family. Call Register for each member type
// before using it to serialize or decode.
func NewFamily() *Family {
	return &Family{decoders: make(map[string]func(json.RawMessage) (any, error))}
}

// Register adds T to the family under tag. Entries passed to Serialize must
// report this same tag from FamilyTag.
func Register[T any](f *Family, tag string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.decoders[tag] = func(raw json.RawMessage) (any, error) {
		var v T
		err := json.Unmarshal(raw, &v)
		return v, err
	}
}

// Serialize wraps e in a tagged envelope, using e's FamilyTag as the tag.
func (f *Family) Serialize(e any) ([]byte, error) {
	tagged, ok := e.(Tagged)
	if !ok {
		return nil, fmt.Errorf("tailstream/codec: %T is not a Tagged family member", e)
	}
	payload, err := json.Marshal(e)
	if err != nil {
		return nil, err
	}
	return json.Marshal(envelope{Type: tagged.FamilyTag(), Payload: payload})
}

// Decode unwraps a tagged envelope and decodes its payload using the
// registered decoder for its tag, returning the concrete decoded value as
// any. Callers that need the concrete type perform their own type switch, in
// keeping with the original's visitor-style dispatch. Fails with
// ErrUnrecognizedType if the tag was never registered.
func (f *Family) Decode(raw []byte) (any, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, err
	}

	f.mu.RLock()
	decode, ok := f.decoders[env.Type]
	f.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnrecognizedType, env.Type)
	}
	return decode(env.Payload)
}
