// Package doctor provides preflight checks for a script profile, its
// vocabulary and optional corpora.
package doctor

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/example/go-brahmi-lipi/internal/codec"
	"github.com/example/go-brahmi-lipi/internal/script"
	"github.com/example/go-brahmi-lipi/internal/syllable"
	"github.com/example/go-brahmi-lipi/internal/text"
	"github.com/example/go-brahmi-lipi/internal/vocab"
)

// PassMark and FailMark are the prefix symbols printed for each check result.
const (
	PassMark = "✓"
	FailMark = "✗"
)

// Config holds the inputs for each doctor check.
type Config struct {
	// ScriptName selects the script profile.
	ScriptName string
	// VocabularyPath is the persisted vocabulary to verify. Empty checks a
	// fresh vocabulary.
	VocabularyPath string
	// CorpusFiles are decoded and segmented against the vocabulary.
	CorpusFiles []string
}

// Result collects the outcome of all checks.
type Result struct {
	failures []string
}

// Failed returns true if any check failed.
func (r *Result) Failed() bool { return len(r.failures) > 0 }

// Failures returns the list of failure messages.
func (r *Result) Failures() []string { return append([]string(nil), r.failures...) }

// AddFailure appends an external failure message to the result.
func (r *Result) AddFailure(msg string) { r.failures = append(r.failures, msg) }

func (r *Result) fail(msg string) { r.failures = append(r.failures, msg) }

// check prints one result line and records a failure when err is non-nil.
func (r *Result) check(w io.Writer, name string, err error, ok string) {
	if err != nil {
		r.fail(fmt.Sprintf("%s: %v", name, err))
		fmt.Fprintf(w, "%s %s: %v\n", FailMark, name, err)
		return
	}

	fmt.Fprintf(w, "%s %s: %s\n", PassMark, name, ok)
}

// Run executes all configured checks and writes human-readable output to w.
// Each check line is prefixed with PassMark or FailMark. Checks that need
// the script or the vocabulary are skipped when those fail to load.
func Run(cfg Config, w io.Writer) Result {
	var res Result

	// ---- script profile ---------------------------------------------------
	p, err := script.Lookup(cfg.ScriptName)
	if err != nil {
		res.check(w, "script", err, "")
		return res
	}

	marker, _ := p.BoundaryMarker()
	res.check(w, "script", nil, fmt.Sprintf("%s (virama %s, boundary marker %s)",
		p.Name(), script.FormatRune(p.Virama()), script.FormatRune(marker)))

	// ---- vocabulary -------------------------------------------------------
	var v *vocab.Vocabulary

	if cfg.VocabularyPath == "" {
		v = vocab.New(p)
		fmt.Fprintf(w, "%s vocabulary: skipped (fresh)\n", PassMark)
	} else {
		v, err = vocab.ReadFile(cfg.VocabularyPath, p)
		if err != nil {
			res.check(w, "vocabulary", err, "")
			return res
		}

		res.check(w, "vocabulary", nil, fmt.Sprintf("%s (%d ids)", cfg.VocabularyPath, v.Len()))
	}

	res.check(w, "identity range", checkIdentity(v), fmt.Sprintf("ids 0..%d", vocab.IdentitySize-1))
	res.check(w, "meta tokens", checkMeta(v, p), fmt.Sprintf("unknown id %d", v.Unknown()))

	st := v.Stats()
	res.check(w, "bijection", checkBijection(v),
		fmt.Sprintf("%d mono, %d cluster, %d meta, %d placeholder", st.Mono, st.Cluster, st.Meta, st.Placeholders))

	// ---- corpora ----------------------------------------------------------
	if len(cfg.CorpusFiles) == 0 {
		return res
	}

	c := codec.New(p, v, codec.WithLogger(slog.New(slog.DiscardHandler)))

	for _, path := range cfg.CorpusFiles {
		summary, err := checkCorpus(c, v, path)
		res.check(w, "corpus "+path, err, summary)
	}

	return res
}

// checkIdentity verifies that ids below vocab.IdentitySize decode to the
// codepoint with the same value and back.
func checkIdentity(v *vocab.Vocabulary) error {
	for r := range rune(vocab.IdentitySize) {
		id := uint32(r)

		s, err := v.Reverse(id)
		if err != nil {
			return err
		}

		if s != syllable.Mono(r) {
			return fmt.Errorf("id %d holds %v, want %v", id, s, syllable.Mono(r))
		}

		if got := v.Lookup(s); got != id {
			return fmt.Errorf("%v maps to id %d, want %d", s, got, id)
		}
	}

	return nil
}

// checkMeta verifies that the unknown sentinel and every end-of-text marker
// are present as meta tokens.
func checkMeta(v *vocab.Vocabulary, p *script.Profile) error {
	unknown := syllable.Meta(p.UnknownSentinel())
	if !v.Contains(unknown) {
		return fmt.Errorf("missing %v", unknown)
	}

	if got := v.Lookup(unknown); got != v.Unknown() {
		return fmt.Errorf("%v maps to id %d, want %d", unknown, got, v.Unknown())
	}

	for _, m := range p.EndMarkers() {
		if !v.Contains(syllable.Meta(m)) {
			return fmt.Errorf("missing %v", syllable.Meta(m))
		}
	}

	return nil
}

// checkBijection verifies that every id maps to a syllable that maps back
// to it. Zero-codepoint placeholder slots are exempt.
func checkBijection(v *vocab.Vocabulary) error {
	placeholder := syllable.Mono(0)

	for id := range uint32(v.Len()) {
		s, err := v.Reverse(id)
		if err != nil {
			return err
		}

		if !v.Contains(s) {
			return fmt.Errorf("id %d holds %v which has no forward entry", id, s)
		}

		if got := v.Lookup(s); got != id && s != placeholder {
			return fmt.Errorf("id %d holds %v which maps to id %d", id, s, got)
		}
	}

	return nil
}

// checkCorpus decodes and segments path and reports how much of it the
// vocabulary covers. Segmentation failures fail the check.
func checkCorpus(c *codec.Codec, v *vocab.Vocabulary, path string) (string, error) {
	contents, err := text.ReadFile(path)
	if err != nil {
		return "", err
	}

	syls, rep := c.Segment(contents)

	var unknown int
	for _, s := range syls {
		if !v.Contains(s) {
			unknown++
		}
	}

	if !rep.OK() {
		return "", fmt.Errorf("%d segmentation failures: %w", len(rep.Diagnostics), rep.Err())
	}

	return fmt.Sprintf("%d codepoints, %d syllables, %d not in vocabulary", len(contents), len(syls), unknown), nil
}
