// Package tokenizer converts Brahmic-script text to syllable token ids and
// back. A Tokenizer owns one script profile and one vocabulary.
package tokenizer

import (
	"fmt"
	"log/slog"

	"github.com/example/go-brahmi-lipi/internal/codec"
	"github.com/example/go-brahmi-lipi/internal/script"
	"github.com/example/go-brahmi-lipi/internal/text"
	"github.com/example/go-brahmi-lipi/internal/vocab"
)

type options struct {
	strict bool
	logger *slog.Logger
}

// Option configures a Tokenizer.
type Option func(*options)

// WithStrict enables strict segmentation. See codec.WithStrict.
func WithStrict(strict bool) Option {
	return func(o *options) { o.strict = strict }
}

// WithLogger sets the logger for diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Tokenizer is safe for concurrent Encode and Decode calls. Vocabulary
// collection may run alongside them; readers see each syllable once its id
// is assigned.
type Tokenizer struct {
	profile *script.Profile
	vocab   *vocab.Vocabulary
	codec   *codec.Codec
	log     *slog.Logger
}

// New resolves scriptName and loads the vocabulary at vocabularyPath. An
// empty path starts from a fresh vocabulary holding only the reserved ids.
func New(scriptName, vocabularyPath string, optFns ...Option) (*Tokenizer, error) {
	p, err := script.Lookup(scriptName)
	if err != nil {
		return nil, err
	}

	var v *vocab.Vocabulary

	if vocabularyPath == "" {
		v = vocab.New(p)
	} else {
		v, err = vocab.ReadFile(vocabularyPath, p)
		if err != nil {
			return nil, err
		}
	}

	return NewWithVocabulary(p, v, optFns...), nil
}

// NewWithVocabulary builds a Tokenizer from an already loaded vocabulary.
func NewWithVocabulary(p *script.Profile, v *vocab.Vocabulary, optFns ...Option) *Tokenizer {
	opts := options{logger: slog.Default()}
	for _, fn := range optFns {
		fn(&opts)
	}

	return &Tokenizer{
		profile: p,
		vocab:   v,
		codec:   codec.New(p, v, codec.WithStrict(opts.strict), codec.WithLogger(opts.logger)),
		log:     opts.logger,
	}
}

// Profile returns the script profile.
func (t *Tokenizer) Profile() *script.Profile { return t.profile }

// Vocabulary returns the live vocabulary.
func (t *Tokenizer) Vocabulary() *vocab.Vocabulary { return t.vocab }

// Stats summarizes the live vocabulary.
func (t *Tokenizer) Stats() vocab.Stats { return t.vocab.Stats() }

// Encode tokenizes text without a boundary marker. Segmentation failures are
// logged and only returned as an error in strict mode.
func (t *Tokenizer) Encode(s string) ([]uint32, error) {
	ids, _, err := t.EncodeText(s, false)
	return ids, err
}

// EncodeText tokenizes s and also returns the segmentation report.
func (t *Tokenizer) EncodeText(s string, prependMarker bool) ([]uint32, codec.Report, error) {
	return t.codec.Encode([]rune(s), prependMarker)
}

// EncodeFile tokenizes the file at path, prefixed with the boundary marker.
func (t *Tokenizer) EncodeFile(path string) ([]uint32, error) {
	contents, err := text.ReadFile(path)
	if err != nil {
		return nil, err
	}

	ids, rep, err := t.codec.Encode(contents, true)
	if err != nil {
		return nil, fmt.Errorf("encode %q: %w", path, err)
	}

	t.log.Debug("encoded file",
		slog.String("path", path),
		slog.Int("tokens", len(ids)),
		slog.Int("diagnostics", len(rep.Diagnostics)),
	)

	return ids, nil
}

// Decode renders ids back to text. An id outside the vocabulary is an error.
func (t *Tokenizer) Decode(ids []uint32) (string, error) {
	rs, err := t.codec.Decode(ids)
	if err != nil {
		return "", err
	}

	return string(rs), nil
}

// CollectVocabulary grows the vocabulary from the corpus at path. ok is the
// aggregate success flag of the scan; err reports only read failures.
func (t *Tokenizer) CollectVocabulary(path string) (ok bool, err error) {
	rep, err := t.CollectVocabularyFiles(path)
	if err != nil {
		return false, err
	}

	return rep.OK(), nil
}

// CollectVocabularyFiles is CollectVocabulary over several corpora, assigned
// ids in the order of paths. The report carries every segmentation failure.
func (t *Tokenizer) CollectVocabularyFiles(paths ...string) (codec.Report, error) {
	texts := make([][]rune, 0, len(paths))

	for _, path := range paths {
		contents, err := text.ReadFile(path)
		if err != nil {
			return codec.Report{}, err
		}

		texts = append(texts, contents)
	}

	rep := t.codec.CollectAll(texts)

	t.log.Info("vocabulary collected",
		slog.Int("files", len(paths)),
		slog.Int("syllables", rep.Syllables),
		slog.Int("inserted", rep.Inserted),
		slog.Int("diagnostics", len(rep.Diagnostics)),
		slog.Int("vocabulary_size", t.vocab.Len()),
	)

	return rep, nil
}

// WriteVocabularyFile persists the live vocabulary to path.
func (t *Tokenizer) WriteVocabularyFile(path string) error {
	return t.vocab.WriteFile(path)
}
