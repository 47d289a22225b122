package script

import "fmt"

// Class is the category a codepoint falls into for a given script.
type Class uint8

const (
	ClassOutOfRange Class = iota
	ClassVowelSuffix
	ClassVowelSign
	ClassVowel
	ClassConsonant
	ClassVirama
	ClassIgnored
	ClassDigit
	ClassEndMarker
)

var classNames = [...]string{
	ClassOutOfRange:  "OutOfRange",
	ClassVowelSuffix: "VowelSuffix",
	ClassVowelSign:   "VowelSign",
	ClassVowel:       "Vowel",
	ClassConsonant:   "Consonant",
	ClassVirama:      "Virama",
	ClassIgnored:     "Ignored",
	ClassDigit:       "Digit",
	ClassEndMarker:   "EndMarker",
}

func (c Class) String() string {
	if int(c) < len(classNames) {
		return classNames[c]
	}

	return fmt.Sprintf("Class(%d)", uint8(c))
}

// Symbol is one classified codepoint. For ClassDigit, Rune holds the ASCII
// digit rather than the script digit.
type Symbol struct {
	Class Class
	Rune  rune
}

func (s Symbol) String() string {
	return fmt.Sprintf("%s(%s %q)", s.Class, FormatRune(s.Rune), s.Rune)
}

// FormatRune renders r as U+XXXX.
func FormatRune(r rune) string {
	return fmt.Sprintf("U+%04X", r)
}
