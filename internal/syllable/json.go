package syllable

import (
	"encoding/json"
	"errors"
	"fmt"
)

// NoVirama disables the legacy tags that need a virama to be rendered.
const NoVirama rune = -1

// ErrTag is returned when a tagged syllable has an unknown or malformed tag.
var ErrTag = errors.New("invalid syllable tag")

// MarshalJSON writes s as a single-key object: {"Mono":c}, {"Meta":c} or
// {"Cluster":[c1,c2,...]}.
func (s Syllable) MarshalJSON() ([]byte, error) {
	switch s.Kind() {
	case KindMeta:
		return json.Marshal(map[string]rune{"Meta": s.cps[0]})
	case KindMono:
		return json.Marshal(map[string]rune{"Mono": s.cps[0]})
	default:
		return json.Marshal(map[string][]rune{"Cluster": s.Runes()})
	}
}

// UnmarshalJSON accepts the tags written by MarshalJSON and the legacy
// fixed-arity tags that do not depend on a virama.
func (s *Syllable) UnmarshalJSON(data []byte) error {
	decoded, err := Decode(data, NoVirama)
	if err != nil {
		return err
	}

	*s = decoded

	return nil
}

// Decode parses a tagged syllable. Besides Mono, Cluster and Meta it accepts
// the legacy arity tags: Di and Cvv hold their codepoints verbatim, while Cc,
// Cvc and Cvvc elide the virama after the first codepoint, which is
// re-inserted here. Trailing zero codepoints in legacy tags are padding and
// are dropped. Pass NoVirama to reject the virama-eliding tags.
func Decode(data []byte, virama rune) (Syllable, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return Syllable{}, fmt.Errorf("decode syllable: %w", err)
	}

	if len(obj) != 1 {
		return Syllable{}, fmt.Errorf("%w: want exactly one tag, got %d", ErrTag, len(obj))
	}

	for tag, raw := range obj {
		switch tag {
		case "Mono", "Meta":
			var r rune
			if err := json.Unmarshal(raw, &r); err != nil {
				return Syllable{}, fmt.Errorf("%w: %s: %w", ErrTag, tag, err)
			}

			if tag == "Meta" {
				return Meta(r), nil
			}

			return Mono(r), nil
		case "Cluster":
			var rs []rune
			if err := json.Unmarshal(raw, &rs); err != nil {
				return Syllable{}, fmt.Errorf("%w: %s: %w", ErrTag, tag, err)
			}

			return Cluster(rs...)
		case "Di", "Cvv":
			rs, err := legacyRunes(tag, raw)
			if err != nil {
				return Syllable{}, err
			}

			return Cluster(rs...)
		case "Cc", "Cvc", "Cvvc":
			if virama == NoVirama {
				return Syllable{}, fmt.Errorf("%w: %s requires a script virama", ErrTag, tag)
			}

			rs, err := legacyRunes(tag, raw)
			if err != nil {
				return Syllable{}, err
			}

			joined := make([]rune, 0, len(rs)+1)
			joined = append(joined, rs[0], virama)
			joined = append(joined, rs[1:]...)

			return Cluster(joined...)
		default:
			return Syllable{}, fmt.Errorf("%w: %q", ErrTag, tag)
		}
	}

	return Syllable{}, ErrTag
}

func legacyRunes(tag string, raw json.RawMessage) ([]rune, error) {
	var rs []rune
	if err := json.Unmarshal(raw, &rs); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrTag, tag, err)
	}

	for len(rs) > 1 && rs[len(rs)-1] == 0 {
		rs = rs[:len(rs)-1]
	}

	if len(rs) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", ErrTag, tag)
	}

	return rs, nil
}
