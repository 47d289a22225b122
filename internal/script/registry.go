package script

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrUnknownScript is returned by Lookup for names with no registered profile.
var ErrUnknownScript = errors.New("unknown script")

const (
	Telugu     = "telugu"
	Devanagari = "devnagari"
)

var registry = map[string]*Profile{
	Telugu:     NewProfile(teluguDefinition()),
	Devanagari: NewProfile(devanagariDefinition()),
}

// Lookup returns the profile registered under name. Matching is
// case-insensitive and ignores surrounding whitespace.
func Lookup(name string) (*Profile, error) {
	p, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w %q (expected one of %s)", ErrUnknownScript, name, strings.Join(Names(), "|"))
	}

	return p, nil
}

// Names returns the registered script names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// runeRange returns lo..hi inclusive.
func runeRange(lo, hi rune) []rune {
	out := make([]rune, 0, hi-lo+1)
	for r := lo; r <= hi; r++ {
		out = append(out, r)
	}

	return out
}

func teluguDefinition() Definition {
	consonants := runeRange(0xC15, 0xC28)
	consonants = append(consonants, runeRange(0xC2A, 0xC39)...)
	consonants = append(consonants, 0xC58, 0xC59, 0xC5A)

	return Definition{
		Name: Telugu,
		Vowels: []rune{
			0xC05, 0xC06, 0xC07, 0xC08, 0xC09, 0xC0A, 0xC0B, 0xC0C,
			0xC0E, 0xC0F, 0xC10, 0xC12, 0xC13, 0xC14, 0xC60, 0xC61,
		},
		Consonants:    consonants,
		VowelSuffixes: []rune{0xC00, 0xC01, 0xC02, 0xC03, 0xC04},
		VowelSigns: []rune{
			0xC3E, 0xC3F, 0xC40, 0xC41, 0xC42, 0xC43, 0xC44, 0xC46,
			0xC47, 0xC48, 0xC4A, 0xC4B, 0xC4C, 0xC62, 0xC63,
		},
		Reserved: []rune{
			0xC0D, 0xC11, 0xC29, 0xC3A, 0xC3B, 0xC45, 0xC49, 0xC4E, 0xC4F,
			0xC50, 0xC51, 0xC52, 0xC53, 0xC54, 0xC57, 0xC5B, 0xC5C, 0xC5E, 0xC5F,
			0xC64, 0xC65, 0xC70, 0xC71, 0xC72, 0xC73, 0xC74, 0xC75, 0xC76,
		},
		Ignored: []rune{
			0xC55, 0x5A, 0xC5D, 0xC77, 0xC78, 0xC79, 0xC7A, 0xC7B, 0xC7C, 0xC7D, 0xC7E, 0xC7F,
		},
		Digits:          runeRange(0xC66, 0xC6F),
		Virama:          0xC4D,
		EndOfText:       []rune{0xC77},
		UnknownSentinel: 0xC7F,
	}
}

func devanagariDefinition() Definition {
	consonants := runeRange(0x915, 0x939)
	consonants = append(consonants, runeRange(0x958, 0x95F)...)

	vowels := runeRange(0x904, 0x914)
	vowels = append(vowels, 0x950, 0x960, 0x961)

	return Definition{
		Name:          Devanagari,
		Vowels:        vowels,
		Consonants:    consonants,
		VowelSuffixes: []rune{0x900, 0x901, 0x902, 0x903},
		// The virama (U+094D) is listed as a vowel sign too, so it classifies
		// as ClassVowelSign for this script.
		VowelSigns:      runeRange(0x93A, 0x94F),
		Reserved:        runeRange(0x970, 0x97F),
		Digits:          runeRange(0x966, 0x96F),
		Virama:          0x94D,
		EndOfText:       []rune{0x964, 0x965},
		UnknownSentinel: 0x97F,
	}
}
