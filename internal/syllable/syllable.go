// Package syllable defines the token unit produced by segmentation: a short
// run of codepoints treated as one opaque cluster, or a meta control token.
package syllable

import (
	"errors"
	"fmt"
	"strings"
)

// MaxLen is the largest number of codepoints a cluster may hold.
const MaxLen = 8

// ErrLength is returned when a cluster would hold zero or more than MaxLen
// codepoints.
var ErrLength = errors.New("syllable length out of range")

// Kind distinguishes the syllable variants.
type Kind uint8

const (
	KindMono Kind = iota
	KindCluster
	KindMeta
)

func (k Kind) String() string {
	switch k {
	case KindMono:
		return "Mono"
	case KindCluster:
		return "Cluster"
	case KindMeta:
		return "Meta"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Syllable is a comparable value usable as a map key. Two syllables are
// equal when they have the same variant and the same codepoints in order.
type Syllable struct {
	meta bool
	n    uint8
	cps  [MaxLen]rune
}

// Mono returns the single-codepoint syllable for r.
func Mono(r rune) Syllable {
	return Syllable{n: 1, cps: [MaxLen]rune{r}}
}

// Meta returns the control token wrapping r.
func Meta(r rune) Syllable {
	return Syllable{meta: true, n: 1, cps: [MaxLen]rune{r}}
}

// Cluster returns a syllable holding rs in order. A single codepoint yields
// the same value as Mono.
func Cluster(rs ...rune) (Syllable, error) {
	if len(rs) == 0 || len(rs) > MaxLen {
		return Syllable{}, fmt.Errorf("%w: %d codepoints (want 1..%d)", ErrLength, len(rs), MaxLen)
	}

	s := Syllable{n: uint8(len(rs))}
	copy(s.cps[:], rs)

	return s, nil
}

// MustCluster is like Cluster but panics on a length error.
func MustCluster(rs ...rune) Syllable {
	s, err := Cluster(rs...)
	if err != nil {
		panic(err)
	}

	return s
}

// Kind reports the variant of s.
func (s Syllable) Kind() Kind {
	switch {
	case s.meta:
		return KindMeta
	case s.n > 1:
		return KindCluster
	default:
		return KindMono
	}
}

// IsMeta reports whether s is a control token.
func (s Syllable) IsMeta() bool { return s.meta }

// Len returns the number of codepoints in s.
func (s Syllable) Len() int { return int(s.n) }

// Runes returns a copy of the codepoints of s.
func (s Syllable) Runes() []rune {
	return append([]rune(nil), s.cps[:s.n]...)
}

// AppendTo appends the rendered codepoints of s to dst.
func (s Syllable) AppendTo(dst []rune) []rune {
	return append(dst, s.cps[:s.n]...)
}

// Text renders s as a string.
func (s Syllable) Text() string {
	return string(s.cps[:s.n])
}

func (s Syllable) String() string {
	var b strings.Builder

	b.WriteString(s.Kind().String())
	b.WriteByte('(')

	for i, r := range s.cps[:s.n] {
		if i > 0 {
			b.WriteByte(' ')
		}

		fmt.Fprintf(&b, "U+%04X", r)
	}

	b.WriteByte(')')

	return b.String()
}
