package vocab

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/example/go-brahmi-lipi/internal/script"
	"github.com/example/go-brahmi-lipi/internal/syllable"
)

// ErrInvalidFile is returned when a persisted vocabulary is inconsistent.
var ErrInvalidFile = errors.New("invalid vocabulary file")

// MaxFileToken is the largest maximum id a persisted vocabulary may declare.
// Load allocates one slot per id up to the declared maximum.
const MaxFileToken = 1<<20 - 1

// File is the persisted form of a Vocabulary.
type File struct {
	Syllables []Entry `json:"syllables"`
	Maximum   uint32  `json:"maximum"`
}

// Entry binds one syllable to its token id.
type Entry struct {
	Syllable syllable.Syllable `json:"syllable"`
	Token    uint32            `json:"token"`
}

// rawFile defers syllable decoding until the script virama is known.
type rawFile struct {
	Syllables []struct {
		Syllable json.RawMessage `json:"syllable"`
		Token    uint32          `json:"token"`
	} `json:"syllables"`
	Maximum uint32 `json:"maximum"`
}

// Load builds a vocabulary from f. Slots not named by any entry hold a
// zero-codepoint placeholder. The unknown sentinel and end-of-text meta
// tokens of p are appended when absent; existing ids are kept. A token id
// or a syllable listed twice makes the file invalid.
func Load(f File, p *script.Profile) (*Vocabulary, error) {
	if f.Maximum > MaxFileToken {
		return nil, fmt.Errorf("%w: maximum %d exceeds limit %d", ErrInvalidFile, f.Maximum, MaxFileToken)
	}

	v := &Vocabulary{
		forward: make(map[syllable.Syllable]uint32, len(f.Syllables)),
		inverse: make([]syllable.Syllable, int(f.Maximum)+1),
	}

	for i := range v.inverse {
		v.inverse[i] = syllable.Mono(0)
	}

	seen := make([]bool, len(v.inverse))

	for _, e := range f.Syllables {
		if e.Token > f.Maximum {
			return nil, fmt.Errorf("%w: token %d exceeds maximum %d", ErrInvalidFile, e.Token, f.Maximum)
		}

		if seen[e.Token] {
			return nil, fmt.Errorf("%w: duplicate token %d", ErrInvalidFile, e.Token)
		}

		if prev, ok := v.forward[e.Syllable]; ok {
			return nil, fmt.Errorf("%w: duplicate syllable %v at tokens %d and %d", ErrInvalidFile, e.Syllable, prev, e.Token)
		}

		seen[e.Token] = true

		v.inverse[e.Token] = e.Syllable
		v.forward[e.Syllable] = e.Token
	}

	v.seedMeta(p)

	return v, nil
}

// Decode reads a persisted vocabulary from r. Legacy fixed-arity syllable
// tags are expanded using the virama of p.
func Decode(r io.Reader, p *script.Profile) (*Vocabulary, error) {
	var raw rawFile
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFile, err)
	}

	f := File{
		Syllables: make([]Entry, 0, len(raw.Syllables)),
		Maximum:   raw.Maximum,
	}

	for i, e := range raw.Syllables {
		s, err := syllable.Decode(e.Syllable, p.Virama())
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: %w", ErrInvalidFile, i, err)
		}

		f.Syllables = append(f.Syllables, Entry{Syllable: s, Token: e.Token})
	}

	return Load(f, p)
}

// ReadFile loads a persisted vocabulary from path.
func ReadFile(path string, p *script.Profile) (*Vocabulary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open vocabulary %q: %w", path, err)
	}

	defer func() { _ = f.Close() }()

	v, err := Decode(f, p)
	if err != nil {
		return nil, fmt.Errorf("read vocabulary %q: %w", path, err)
	}

	return v, nil
}

// Snapshot returns the persisted form of v. Entries are ordered by token id
// and placeholder slots are omitted.
func (v *Vocabulary) Snapshot() File {
	v.mu.RLock()
	defer v.mu.RUnlock()

	f := File{Syllables: make([]Entry, 0, len(v.forward))}
	if len(v.inverse) > 0 {
		f.Maximum = uint32(len(v.inverse) - 1)
	}

	for id, s := range v.inverse {
		if got, ok := v.forward[s]; ok && got == uint32(id) {
			f.Syllables = append(f.Syllables, Entry{Syllable: s, Token: uint32(id)})
		}
	}

	return f
}

// Encode writes the persisted form of v to w as indented JSON.
func (v *Vocabulary) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if err := enc.Encode(v.Snapshot()); err != nil {
		return fmt.Errorf("encode vocabulary: %w", err)
	}

	return nil
}

// WriteFile persists v to path, replacing it atomically.
func (v *Vocabulary) WriteFile(path string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".vocab-*.json")
	if err != nil {
		return fmt.Errorf("create temp vocabulary file: %w", err)
	}

	defer func() { _ = os.Remove(tmp.Name()) }() // no-op after a successful rename

	if err := v.Encode(tmp); err != nil {
		_ = tmp.Close()
		return err
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp vocabulary file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("write vocabulary %q: %w", path, err)
	}

	return nil
}
