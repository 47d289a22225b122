// Package vocab maps syllables to token ids and back.
//
// Ids 0..127 are the identity mapping of ASCII codepoints. The next id is the
// unknown-sentinel meta token, followed by one meta token per end-of-text
// marker of the script. Later ids are assigned in first-insertion order and
// are never reused.
package vocab

import (
	"errors"
	"fmt"
	"sync"

	"github.com/example/go-brahmi-lipi/internal/script"
	"github.com/example/go-brahmi-lipi/internal/syllable"
)

// IdentitySize is the number of pre-seeded identity ids.
const IdentitySize = 128

var (
	// ErrUnmappedToken is returned by Reverse for ids outside the vocabulary.
	ErrUnmappedToken = errors.New("unmapped token")
	// ErrFrozen is returned by Insert after Freeze.
	ErrFrozen = errors.New("vocabulary is frozen")
)

// Vocabulary is a bidirectional syllable/token table. It is safe for
// concurrent use: lookups take a read lock and Insert takes the write lock.
type Vocabulary struct {
	mu      sync.RWMutex
	forward map[syllable.Syllable]uint32
	inverse []syllable.Syllable
	unknown uint32
	frozen  bool
}

// New returns a vocabulary seeded with the identity range and the meta
// tokens of p.
func New(p *script.Profile) *Vocabulary {
	v := &Vocabulary{
		forward: make(map[syllable.Syllable]uint32, IdentitySize+8),
		inverse: make([]syllable.Syllable, 0, IdentitySize+8),
	}

	for r := range rune(IdentitySize) {
		v.insertLocked(syllable.Mono(r))
	}

	v.seedMeta(p)

	return v
}

// seedMeta appends the unknown sentinel and end-of-text markers of p when
// they are missing and records the unknown id.
func (v *Vocabulary) seedMeta(p *script.Profile) {
	v.unknown = v.insertLocked(syllable.Meta(p.UnknownSentinel()))
	for _, m := range p.EndMarkers() {
		v.insertLocked(syllable.Meta(m))
	}
}

// Lookup returns the id of s, or the id of the unknown-sentinel meta token
// when s is absent.
func (v *Vocabulary) Lookup(s syllable.Syllable) uint32 {
	v.mu.RLock()
	defer v.mu.RUnlock()

	if id, ok := v.forward[s]; ok {
		return id
	}

	return v.unknown
}

// Contains reports whether s has an id.
func (v *Vocabulary) Contains(s syllable.Syllable) bool {
	v.mu.RLock()
	defer v.mu.RUnlock()

	_, ok := v.forward[s]

	return ok
}

// Reverse returns the syllable for id.
func (v *Vocabulary) Reverse(id uint32) (syllable.Syllable, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	if uint64(id) >= uint64(len(v.inverse)) {
		return syllable.Syllable{}, fmt.Errorf("%w %d (vocabulary size %d)", ErrUnmappedToken, id, len(v.inverse))
	}

	return v.inverse[id], nil
}

// Insert adds s with the next sequential id and returns its id. Inserting a
// syllable that is already present returns the existing id.
func (v *Vocabulary) Insert(s syllable.Syllable) (uint32, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if id, ok := v.forward[s]; ok {
		return id, nil
	}

	if v.frozen {
		return 0, fmt.Errorf("insert %v: %w", s, ErrFrozen)
	}

	return v.insertLocked(s), nil
}

func (v *Vocabulary) insertLocked(s syllable.Syllable) uint32 {
	if id, ok := v.forward[s]; ok {
		return id
	}

	id := uint32(len(v.inverse))
	v.forward[s] = id
	v.inverse = append(v.inverse, s)

	return id
}

// Len returns the number of id slots, which is one past the largest id.
func (v *Vocabulary) Len() int {
	v.mu.RLock()
	defer v.mu.RUnlock()

	return len(v.inverse)
}

// Unknown returns the id of the unknown-sentinel meta token.
func (v *Vocabulary) Unknown() uint32 {
	v.mu.RLock()
	defer v.mu.RUnlock()

	return v.unknown
}

// Freeze makes the vocabulary read-only. Later Insert calls of new
// syllables fail with ErrFrozen.
func (v *Vocabulary) Freeze() {
	v.mu.Lock()
	v.frozen = true
	v.mu.Unlock()
}

// Frozen reports whether Freeze has been called.
func (v *Vocabulary) Frozen() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()

	return v.frozen
}
