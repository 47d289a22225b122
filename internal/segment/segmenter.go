// Package segment groups classified codepoints into orthographic syllables.
//
// A Segmenter keeps one open cluster. Consonants extend it only after a
// virama, independent vowels always start a new one, and dependent marks
// attach to whatever is open. Anything else closes the cluster and is
// emitted on its own. Clusters longer than syllable.MaxLen are discarded.
package segment

import (
	"github.com/example/go-brahmi-lipi/internal/script"
	"github.com/example/go-brahmi-lipi/internal/syllable"
)

// Option configures a Segmenter.
type Option func(*Segmenter)

// WithStrict makes a vowel sign with no open cluster a Violation. The sign
// is still emitted as its own syllable so the text is not lost.
func WithStrict(strict bool) Option {
	return func(s *Segmenter) { s.strict = strict }
}

// Segmenter is a single-use stack machine. It is not safe for concurrent use.
type Segmenter struct {
	stack  []script.Symbol
	out    []syllable.Syllable
	strict bool
	failed bool
}

// New returns an empty Segmenter.
func New(opts ...Option) *Segmenter {
	s := &Segmenter{stack: make([]script.Symbol, 0, syllable.MaxLen)}
	for _, fn := range opts {
		fn(s)
	}

	return s
}

// Consume feeds one symbol. A non-nil error describes a failure for this
// step only; the Segmenter stays usable and later input is processed
// normally.
func (s *Segmenter) Consume(sym script.Symbol) error {
	var err error

	switch sym.Class {
	case script.ClassConsonant:
		if len(s.stack) == 0 || s.stack[len(s.stack)-1].Class == script.ClassVirama {
			s.push(sym)
			return nil
		}

		err = s.Flush()
		s.push(sym)
	case script.ClassVowel:
		err = s.Flush()
		s.push(sym)
	case script.ClassVowelSign:
		if len(s.stack) == 0 && s.strict {
			s.emit(syllable.Mono(sym.Rune))
			err = &Violation{Symbol: sym, Err: ErrUnexpectedVowelSign}
			break
		}

		s.push(sym)
	case script.ClassVowelSuffix:
		if len(s.stack) == 0 {
			err = &Violation{Symbol: sym, Err: ErrUnexpectedSuffix}
			break
		}

		s.push(sym)
	case script.ClassVirama:
		if len(s.stack) == 0 {
			err = &Violation{Symbol: sym, Err: ErrUnexpectedVirama}
			break
		}

		s.push(sym)
	case script.ClassDigit, script.ClassEndMarker, script.ClassOutOfRange:
		err = s.Flush()
		s.emit(syllable.Mono(sym.Rune))
	case script.ClassIgnored:
		return nil
	}

	if err != nil {
		s.failed = true
	}

	return err
}

// Flush closes the open cluster. Zero codepoints emit nothing, one to
// syllable.MaxLen emit one syllable in input order, and more than that are
// discarded with an *Overflow error. The buffer is empty afterwards in every
// case.
func (s *Segmenter) Flush() error {
	defer func() { s.stack = s.stack[:0] }()

	switch n := len(s.stack); {
	case n == 0:
		return nil
	case n <= syllable.MaxLen:
		s.emit(syllable.MustCluster(s.runes()...))
		return nil
	default:
		s.failed = true
		return &Overflow{Runes: s.runes()}
	}
}

// Finish flushes trailing content and reports whether every step of the
// run succeeded. err is the error of the final flush, if any.
func (s *Segmenter) Finish() (ok bool, err error) {
	err = s.Flush()

	return !s.failed, err
}

// Pending returns the number of codepoints in the open cluster.
func (s *Segmenter) Pending() int { return len(s.stack) }

// Syllables returns the syllables emitted so far without draining them.
func (s *Segmenter) Syllables() []syllable.Syllable {
	return append([]syllable.Syllable(nil), s.out...)
}

// Drain returns the syllables emitted since the last Drain and forgets them.
func (s *Segmenter) Drain() []syllable.Syllable {
	out := s.out
	s.out = nil

	return out
}

// Reset returns s to its initial state, keeping its options.
func (s *Segmenter) Reset() {
	s.stack = s.stack[:0]
	s.out = nil
	s.failed = false
}

func (s *Segmenter) push(sym script.Symbol) { s.stack = append(s.stack, sym) }

func (s *Segmenter) runes() []rune {
	rs := make([]rune, len(s.stack))
	for i, sym := range s.stack {
		rs[i] = sym.Rune
	}

	return rs
}

func (s *Segmenter) emit(syl syllable.Syllable) { s.out = append(s.out, syl) }
