// Package script holds the per-script classification tables used to split
// Brahmic text into orthographic syllables.
package script

import "slices"

// Profile is the immutable classification data for one script. Profiles are
// built once by the registry and shared; none of their methods mutate state.
type Profile struct {
	name string

	vowelSuffixes set
	vowelSigns    set // vowel signs plus vowel suffixes
	vowels        set
	consonants    set
	reserved      set
	ignored       set
	digits        map[rune]int
	virama        rune
	endOfText     []rune
	unknown       rune
}

// Definition is the raw table data a Profile is built from.
type Definition struct {
	Name            string
	Vowels          []rune
	Consonants      []rune
	VowelSuffixes   []rune
	VowelSigns      []rune
	Reserved        []rune
	Ignored         []rune
	Digits          []rune
	Virama          rune
	EndOfText       []rune
	UnknownSentinel rune
}

type set map[rune]struct{}

func newSet(groups ...[]rune) set {
	s := make(set)
	for _, g := range groups {
		for _, r := range g {
			s[r] = struct{}{}
		}
	}

	return s
}

func (s set) has(r rune) bool {
	_, ok := s[r]
	return ok
}

// NewProfile builds a Profile from def. The input slices are copied.
func NewProfile(def Definition) *Profile {
	digits := make(map[rune]int, len(def.Digits))
	for i, d := range def.Digits {
		if _, dup := digits[d]; !dup {
			digits[d] = i
		}
	}

	return &Profile{
		name:          def.Name,
		vowelSuffixes: newSet(def.VowelSuffixes),
		vowelSigns:    newSet(def.VowelSigns, def.VowelSuffixes),
		vowels:        newSet(def.Vowels),
		consonants:    newSet(def.Consonants),
		reserved:      newSet(def.Reserved),
		ignored:       newSet(def.Ignored),
		digits:        digits,
		virama:        def.Virama,
		endOfText:     slices.Clone(def.EndOfText),
		unknown:       def.UnknownSentinel,
	}
}

// Name returns the registry name of the script.
func (p *Profile) Name() string { return p.name }

// Virama returns the script's virama codepoint.
func (p *Profile) Virama() rune { return p.virama }

// UnknownSentinel returns the codepoint used for the unknown-syllable token.
func (p *Profile) UnknownSentinel() rune { return p.unknown }

// EndMarkers returns the end-of-text marker codepoints in configured order.
func (p *Profile) EndMarkers() []rune { return slices.Clone(p.endOfText) }

// BoundaryMarker returns the last configured end-of-text marker, which
// encoders prepend to mark a corpus boundary. ok is false when the profile
// has no markers.
func (p *Profile) BoundaryMarker() (rune, bool) {
	if len(p.endOfText) == 0 {
		return 0, false
	}

	return p.endOfText[len(p.endOfText)-1], true
}

// IsReserved reports whether r is in the script's reserved set.
func (p *Profile) IsReserved(r rune) bool { return p.reserved.has(r) }
