package script

import "slices"

// Classify maps r to exactly one Symbol. The checks run in a fixed priority
// order and the first match wins, so overlapping tables resolve the same way
// for every input.
//
// Reserved codepoints that are not also ignored fall through to
// ClassOutOfRange.
func (p *Profile) Classify(r rune) Symbol {
	switch {
	case p.vowelSuffixes.has(r):
		return Symbol{Class: ClassVowelSuffix, Rune: r}
	case p.vowelSigns.has(r):
		return Symbol{Class: ClassVowelSign, Rune: r}
	case p.vowels.has(r):
		return Symbol{Class: ClassVowel, Rune: r}
	case p.consonants.has(r):
		return Symbol{Class: ClassConsonant, Rune: r}
	case r == p.virama:
		return Symbol{Class: ClassVirama, Rune: r}
	case p.ignored.has(r):
		return Symbol{Class: ClassIgnored, Rune: r}
	}

	if idx, ok := p.digits[r]; ok {
		return Symbol{Class: ClassDigit, Rune: '0' + rune(idx)}
	}

	if slices.Contains(p.endOfText, r) {
		return Symbol{Class: ClassEndMarker, Rune: r}
	}

	return Symbol{Class: ClassOutOfRange, Rune: r}
}
