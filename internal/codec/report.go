package codec

import (
	"fmt"

	"go.uber.org/multierr"
)

// Diagnostic is a failure tied to an input position. Line and Col are
// 1-based and count codepoints; lines are split on U+000A. A zero Line means
// the failure has no input position.
type Diagnostic struct {
	Line int
	Col  int
	Err  error
}

func (d *Diagnostic) Error() string {
	if d.Line == 0 {
		return d.Err.Error()
	}

	return fmt.Sprintf("%d:%d: %v", d.Line, d.Col, d.Err)
}

func (d *Diagnostic) Unwrap() error { return d.Err }

// Report summarizes one encode or collection run.
type Report struct {
	// Syllables is the number of syllables emitted by segmentation.
	Syllables int
	// Inserted is the number of syllables that received a new id.
	Inserted int
	// Diagnostics lists every failed step in input order.
	Diagnostics []*Diagnostic
}

// OK reports whether every step of the run succeeded.
func (r Report) OK() bool { return len(r.Diagnostics) == 0 }

// Err combines all diagnostics into one error, or nil when the run
// succeeded.
func (r Report) Err() error {
	var err error
	for _, d := range r.Diagnostics {
		err = multierr.Append(err, d)
	}

	return err
}

// merge folds other into r.
func (r *Report) merge(other Report) {
	r.Syllables += other.Syllables
	r.Inserted += other.Inserted
	r.Diagnostics = append(r.Diagnostics, other.Diagnostics...)
}
