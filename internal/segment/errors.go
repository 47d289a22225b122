package segment

import (
	"errors"
	"fmt"

	"github.com/example/go-brahmi-lipi/internal/script"
	"github.com/example/go-brahmi-lipi/internal/syllable"
)

var (
	// ErrUnexpectedVirama is returned when a virama arrives with no open cluster.
	ErrUnexpectedVirama = errors.New("unexpected virama")
	// ErrUnexpectedSuffix is returned when a vowel suffix arrives with no open cluster.
	ErrUnexpectedSuffix = errors.New("unexpected suffix")
	// ErrUnexpectedVowelSign is returned in strict mode when a vowel sign
	// arrives with no open cluster.
	ErrUnexpectedVowelSign = errors.New("unexpected vowel sign")
	// ErrClusterTooLarge is returned when a flushed cluster exceeds syllable.MaxLen.
	ErrClusterTooLarge = errors.New("cluster too large")
)

// Violation reports a combining mark with no valid preceding cluster.
type Violation struct {
	Symbol script.Symbol
	Err    error
}

func (v *Violation) Error() string {
	return fmt.Sprintf("%v: %s", v.Err, v.Symbol)
}

func (v *Violation) Unwrap() error { return v.Err }

// Overflow reports a discarded cluster that held more than syllable.MaxLen
// codepoints.
type Overflow struct {
	Runes []rune
}

func (o *Overflow) Error() string {
	return fmt.Sprintf("%v: %d codepoints (max %d) starting at %s",
		ErrClusterTooLarge, len(o.Runes), syllable.MaxLen, script.FormatRune(o.Runes[0]))
}

func (o *Overflow) Unwrap() error { return ErrClusterTooLarge }
