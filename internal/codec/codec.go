// Package codec drives segmentation over whole texts to encode, decode and
// grow a vocabulary.
package codec

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/sourcegraph/conc/iter"

	"github.com/example/go-brahmi-lipi/internal/script"
	"github.com/example/go-brahmi-lipi/internal/segment"
	"github.com/example/go-brahmi-lipi/internal/syllable"
	"github.com/example/go-brahmi-lipi/internal/vocab"
)

// ErrNoBoundaryMarker is returned when a marker prefix is requested for a
// script without end-of-text markers.
var ErrNoBoundaryMarker = errors.New("script has no end-of-text marker")

type options struct {
	strict bool
	logger *slog.Logger
}

// Option configures a Codec.
type Option func(*options)

// WithStrict turns stray vowel signs into diagnostics and makes Encode fail
// on the first diagnostic instead of continuing.
func WithStrict(strict bool) Option {
	return func(o *options) { o.strict = strict }
}

// WithLogger sets the logger that receives per-incident diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Codec binds a script profile to a vocabulary. It holds no per-call state,
// so one Codec may serve concurrent Encode and Decode calls.
type Codec struct {
	profile *script.Profile
	vocab   *vocab.Vocabulary
	strict  bool
	log     *slog.Logger
}

// New returns a Codec over p and v.
func New(p *script.Profile, v *vocab.Vocabulary, optFns ...Option) *Codec {
	opts := options{logger: slog.Default()}
	for _, fn := range optFns {
		fn(&opts)
	}

	return &Codec{
		profile: p,
		vocab:   v,
		strict:  opts.strict,
		log:     opts.logger,
	}
}

// Segment runs the automaton over text and returns every emitted syllable
// in order. It never stops early; failures are collected in the report and
// logged.
func (c *Codec) Segment(text []rune) ([]syllable.Syllable, Report) {
	seg := segment.New(segment.WithStrict(c.strict))

	var (
		out []syllable.Syllable
		rep Report
	)

	line, col := 1, 1

	for _, r := range text {
		if c.profile.IsReserved(r) {
			c.log.Debug("reserved codepoint",
				slog.Int("line", line),
				slog.Int("col", col),
				slog.String("codepoint", script.FormatRune(r)),
			)
		}

		if err := seg.Consume(c.profile.Classify(r)); err != nil {
			rep.Diagnostics = append(rep.Diagnostics, c.diagnose(line, col, err))
		}

		out = append(out, seg.Drain()...)

		if r == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}

	if _, err := seg.Finish(); err != nil {
		rep.Diagnostics = append(rep.Diagnostics, c.diagnose(line, col, err))
	}

	out = append(out, seg.Drain()...)
	rep.Syllables = len(out)

	return out, rep
}

func (c *Codec) diagnose(line, col int, err error) *Diagnostic {
	d := &Diagnostic{Line: line, Col: col, Err: err}

	attrs := []any{
		slog.Int("line", line),
		slog.Int("col", col),
		slog.String("error", err.Error()),
	}

	var v *segment.Violation
	if errors.As(err, &v) {
		attrs = append(attrs, slog.String("codepoint", script.FormatRune(v.Symbol.Rune)))
	}

	var o *segment.Overflow
	if errors.As(err, &o) {
		attrs = append(attrs, slog.Int("cluster_len", len(o.Runes)))
	}

	c.log.Warn("segmentation failure", attrs...)

	return d
}

// Collect segments text and inserts every syllable into the vocabulary in
// emission order. It scans the whole input regardless of failures.
func (c *Codec) Collect(text []rune) Report {
	syls, rep := c.Segment(text)
	rep.merge(c.insert(syls))

	return rep
}

// CollectAll is Collect over several texts. Segmentation runs in parallel;
// insertion follows the order of texts so ids do not depend on scheduling.
func (c *Codec) CollectAll(texts [][]rune) Report {
	type segmented struct {
		syls []syllable.Syllable
		rep  Report
	}

	results := iter.Map(texts, func(text *[]rune) segmented {
		syls, rep := c.Segment(*text)
		return segmented{syls: syls, rep: rep}
	})

	var total Report
	for _, res := range results {
		total.merge(res.rep)
		total.merge(c.insert(res.syls))
	}

	return total
}

func (c *Codec) insert(syls []syllable.Syllable) Report {
	var rep Report

	before := c.vocab.Len()

	for _, s := range syls {
		if _, err := c.vocab.Insert(s); err != nil {
			c.log.Warn("vocabulary insert failed", slog.String("syllable", s.String()), slog.String("error", err.Error()))
			rep.Diagnostics = append(rep.Diagnostics, &Diagnostic{Err: err})

			break
		}
	}

	rep.Inserted = c.vocab.Len() - before

	return rep
}

// Encode segments text and maps each syllable to its id. Syllables missing
// from the vocabulary map to the unknown-sentinel id. With prependMarker the
// id of the script's last end-of-text marker comes first. In strict mode
// the first diagnostic is returned as an error.
func (c *Codec) Encode(text []rune, prependMarker bool) ([]uint32, Report, error) {
	syls, rep := c.Segment(text)

	if c.strict && !rep.OK() {
		return nil, rep, fmt.Errorf("encode: %w", rep.Diagnostics[0])
	}

	ids := make([]uint32, 0, len(syls)+1)

	if prependMarker {
		marker, ok := c.profile.BoundaryMarker()
		if !ok {
			return nil, rep, fmt.Errorf("encode %s: %w", c.profile.Name(), ErrNoBoundaryMarker)
		}

		ids = append(ids, c.vocab.Lookup(syllable.Meta(marker)))
	}

	for _, s := range syls {
		ids = append(ids, c.vocab.Lookup(s))
	}

	return ids, rep, nil
}

// Decode maps ids back to text by concatenating their syllables. The first
// unmapped id aborts decoding.
func (c *Codec) Decode(ids []uint32) ([]rune, error) {
	out := make([]rune, 0, len(ids)*2)

	for i, id := range ids {
		s, err := c.vocab.Reverse(id)
		if err != nil {
			return nil, fmt.Errorf("decode token %d: %w", i, err)
		}

		out = s.AppendTo(out)
	}

	return out, nil
}
