package script

import (
	"errors"
	"testing"
	"unicode"
)

func mustLookup(t *testing.T, name string) *Profile {
	t.Helper()

	p, err := Lookup(name)
	if err != nil {
		t.Fatalf("Lookup(%q): %v", name, err)
	}

	return p
}

// ---------------------------------------------------------------------------
// Registry
// ---------------------------------------------------------------------------

func TestLookup_KnownScripts(t *testing.T) {
	for _, name := range []string{"telugu", "devnagari", "  Telugu ", "DEVNAGARI"} {
		p, err := Lookup(name)
		if err != nil {
			t.Fatalf("Lookup(%q): %v", name, err)
		}

		if p == nil {
			t.Fatalf("Lookup(%q) returned nil profile", name)
		}
	}
}

func TestLookup_UnknownScript(t *testing.T) {
	_, err := Lookup("klingon")
	if err == nil {
		t.Fatal("expected error for unknown script")
	}

	if !errors.Is(err, ErrUnknownScript) {
		t.Errorf("expected ErrUnknownScript, got: %v", err)
	}
}

func TestNames_Sorted(t *testing.T) {
	got := Names()

	want := []string{"devnagari", "telugu"}
	if len(got) != len(want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestProfile_EndMarkersIsCopy(t *testing.T) {
	p := mustLookup(t, Devanagari)

	markers := p.EndMarkers()
	markers[0] = 'x'

	if p.EndMarkers()[0] != 0x964 {
		t.Error("mutating EndMarkers() result changed the profile")
	}
}

func TestProfile_BoundaryMarkerIsLast(t *testing.T) {
	p := mustLookup(t, Devanagari)

	got, ok := p.BoundaryMarker()
	if !ok || got != 0x965 {
		t.Errorf("BoundaryMarker() = (%U, %v), want (U+0965, true)", got, ok)
	}

	empty := NewProfile(Definition{Name: "empty"})
	if _, ok := empty.BoundaryMarker(); ok {
		t.Error("BoundaryMarker() on a profile without markers should report false")
	}
}

// ---------------------------------------------------------------------------
// Classify
// ---------------------------------------------------------------------------

func TestClassify_Telugu(t *testing.T) {
	p := mustLookup(t, Telugu)

	tests := []struct {
		name string
		in   rune
		want Symbol
	}{
		{"anusvara is a suffix", 0x0C02, Symbol{ClassVowelSuffix, 0x0C02}},
		{"aa sign", 0x0C3E, Symbol{ClassVowelSign, 0x0C3E}},
		{"independent a", 0x0C05, Symbol{ClassVowel, 0x0C05}},
		{"ka", 0x0C15, Symbol{ClassConsonant, 0x0C15}},
		{"virama", 0x0C4D, Symbol{ClassVirama, 0x0C4D}},
		{"ignored length mark", 0x0C55, Symbol{ClassIgnored, 0x0C55}},
		{"ascii Z is ignored", 'Z', Symbol{ClassIgnored, 'Z'}},
		{"digit zero", 0x0C66, Symbol{ClassDigit, '0'}},
		{"digit seven", 0x0C6D, Symbol{ClassDigit, '7'}},
		{"end marker is shadowed by ignored", 0x0C77, Symbol{ClassIgnored, 0x0C77}},
		{"reserved falls through", 0x0C0D, Symbol{ClassOutOfRange, 0x0C0D}},
		{"ascii letter", 'a', Symbol{ClassOutOfRange, 'a'}},
		{"newline", '\n', Symbol{ClassOutOfRange, '\n'}},
		{"devanagari ka", 0x0915, Symbol{ClassOutOfRange, 0x0915}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.Classify(tt.in)
			if got != tt.want {
				t.Errorf("Classify(%U) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestClassify_Devanagari(t *testing.T) {
	p := mustLookup(t, Devanagari)

	tests := []struct {
		name string
		in   rune
		want Symbol
	}{
		{"visarga", 0x0903, Symbol{ClassVowelSuffix, 0x0903}},
		{"virama listed as vowel sign", 0x094D, Symbol{ClassVowelSign, 0x094D}},
		{"om", 0x0950, Symbol{ClassVowel, 0x0950}},
		{"nukta consonant", 0x0958, Symbol{ClassConsonant, 0x0958}},
		{"danda", 0x0964, Symbol{ClassEndMarker, 0x0964}},
		{"double danda", 0x0965, Symbol{ClassEndMarker, 0x0965}},
		{"digit nine", 0x096F, Symbol{ClassDigit, '9'}},
		{"reserved abbreviation sign", 0x0970, Symbol{ClassOutOfRange, 0x0970}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.Classify(tt.in)
			if got != tt.want {
				t.Errorf("Classify(%U) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestClassify_TotalOverScalarRange(t *testing.T) {
	for _, name := range Names() {
		p := mustLookup(t, name)

		for r := rune(0); r <= unicode.MaxRune; r++ {
			sym := p.Classify(r)
			if sym.Class > ClassEndMarker {
				t.Fatalf("%s: Classify(%U) returned invalid class %d", name, r, sym.Class)
			}

			if sym.Class == ClassDigit {
				if sym.Rune < '0' || sym.Rune > '9' {
					t.Fatalf("%s: Classify(%U) digit mapped to %q", name, r, sym.Rune)
				}

				continue
			}

			if sym.Rune != r {
				t.Fatalf("%s: Classify(%U) changed the codepoint to %U", name, r, sym.Rune)
			}
		}
	}
}

func TestClass_String(t *testing.T) {
	if got := ClassConsonant.String(); got != "Consonant" {
		t.Errorf("ClassConsonant.String() = %q", got)
	}

	if got := Class(200).String(); got != "Class(200)" {
		t.Errorf("Class(200).String() = %q", got)
	}
}

func TestFormatRune(t *testing.T) {
	if got := FormatRune(0x0C4D); got != "U+0C4D" {
		t.Errorf("FormatRune = %q, want U+0C4D", got)
	}
}
