package doctor_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/go-brahmi-lipi/internal/doctor"
	"github.com/example/go-brahmi-lipi/internal/script"
	"github.com/example/go-brahmi-lipi/internal/syllable"
	"github.com/example/go-brahmi-lipi/internal/testutil"
	"github.com/example/go-brahmi-lipi/internal/vocab"
)

// writeVocabulary persists a Telugu vocabulary that knows "కా".
func writeVocabulary(t *testing.T, dir string) string {
	t.Helper()

	p, err := script.Lookup(script.Telugu)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}

	v := vocab.New(p)
	if _, err := v.Insert(syllable.MustCluster(0xC15, 0xC3E)); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	path := filepath.Join(dir, "vocab.json")
	if err := v.WriteFile(path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	return path
}

// ---------------------------------------------------------------------------
// all-pass scenarios
// ---------------------------------------------------------------------------

func TestRun_FreshVocabularyPasses(t *testing.T) {
	var out strings.Builder
	result := doctor.Run(doctor.Config{ScriptName: script.Telugu}, &out)

	if result.Failed() {
		t.Errorf("expected all checks to pass; failures: %v", result.Failures())
	}

	for _, want := range []string{"script", "identity range", "meta tokens", "bijection", "skipped"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output should mention %q:\n%s", want, out.String())
		}
	}
}

func TestRun_PersistedVocabularyPasses(t *testing.T) {
	dir := t.TempDir()
	path := writeVocabulary(t, dir)
	corpus := testutil.WriteFile(t, dir, "corpus.txt", "కా కి")

	var out strings.Builder
	result := doctor.Run(doctor.Config{
		ScriptName:     script.Telugu,
		VocabularyPath: path,
		CorpusFiles:    []string{corpus},
	}, &out)

	if result.Failed() {
		t.Fatalf("expected all checks to pass; failures: %v\n%s", result.Failures(), out.String())
	}

	// "కి" is not in the vocabulary.
	if !strings.Contains(out.String(), "1 not in vocabulary") {
		t.Errorf("want coverage line, got:\n%s", out.String())
	}
}

// ---------------------------------------------------------------------------
// failures
// ---------------------------------------------------------------------------

func TestRun_UnknownScriptFails(t *testing.T) {
	var out strings.Builder
	result := doctor.Run(doctor.Config{ScriptName: "klingon"}, &out)

	if !result.Failed() {
		t.Fatal("expected failure for unknown script")
	}

	if !hasFailureContaining(result.Failures(), "script") {
		t.Errorf("expected failure mentioning script, got: %v", result.Failures())
	}

	// Later checks need the profile.
	if strings.Contains(out.String(), "identity range") {
		t.Errorf("identity check should be skipped:\n%s", out.String())
	}
}

func TestRun_MissingVocabularyFails(t *testing.T) {
	var out strings.Builder
	result := doctor.Run(doctor.Config{
		ScriptName:     script.Telugu,
		VocabularyPath: filepath.Join(t.TempDir(), "missing.json"),
	}, &out)

	if !hasFailureContaining(result.Failures(), "vocabulary") {
		t.Errorf("expected failure mentioning vocabulary, got: %v", result.Failures())
	}
}

func TestRun_BrokenIdentityRangeFails(t *testing.T) {
	dir := t.TempDir()
	// No identity entries: ids 0..129 are placeholders.
	path := testutil.WriteFile(t, dir, "vocab.json",
		`{"syllables":[{"syllable":{"Cluster":[3093,3134]},"token":130}],"maximum":130}`)

	var out strings.Builder
	result := doctor.Run(doctor.Config{ScriptName: script.Telugu, VocabularyPath: path}, &out)

	if !hasFailureContaining(result.Failures(), "identity range") {
		t.Errorf("expected identity range failure, got: %v", result.Failures())
	}
}

func TestRun_DuplicateSyllableRejected(t *testing.T) {
	dir := t.TempDir()
	path := writeVocabulary(t, dir)

	// Append a second id for the cluster already stored at 130.
	data := testutil.ReadFile(t, path)
	data = strings.Replace(data, `"maximum": 130`, `"maximum": 131`, 1)
	data = strings.Replace(data, `"syllables": [`,
		`"syllables": [{"syllable":{"Cluster":[3093,3134]},"token":131},`, 1)
	testutil.WriteFile(t, dir, "vocab.json", data)

	var out strings.Builder
	result := doctor.Run(doctor.Config{ScriptName: script.Telugu, VocabularyPath: path}, &out)

	if !hasFailureContaining(result.Failures(), "duplicate syllable") {
		t.Errorf("expected duplicate syllable failure, got: %v\n%s", result.Failures(), out.String())
	}
}

func TestRun_CorpusSegmentationFailureFails(t *testing.T) {
	dir := t.TempDir()
	corpus := testutil.WriteFile(t, dir, "bad.txt", "్")

	var out strings.Builder
	result := doctor.Run(doctor.Config{ScriptName: script.Telugu, CorpusFiles: []string{corpus}}, &out)

	if !hasFailureContaining(result.Failures(), "corpus") {
		t.Errorf("expected corpus failure, got: %v", result.Failures())
	}
}

func TestRun_CorpusFailureListsEveryDiagnostic(t *testing.T) {
	dir := t.TempDir()
	corpus := testutil.WriteFile(t, dir, "bad.txt", "్ ్")

	var out strings.Builder
	result := doctor.Run(doctor.Config{ScriptName: script.Telugu, CorpusFiles: []string{corpus}}, &out)

	for _, want := range []string{"2 segmentation failures", "1:1: unexpected virama", "1:3: unexpected virama"} {
		if !hasFailureContaining(result.Failures(), want) {
			t.Errorf("expected failure containing %q, got: %v", want, result.Failures())
		}
	}
}

func TestRun_MissingCorpusFails(t *testing.T) {
	var out strings.Builder
	result := doctor.Run(doctor.Config{
		ScriptName:  script.Telugu,
		CorpusFiles: []string{filepath.Join(t.TempDir(), "nope.txt")},
	}, &out)

	if !hasFailureContaining(result.Failures(), "corpus") {
		t.Errorf("expected corpus failure, got: %v", result.Failures())
	}
}

func TestRun_OutputContainsPassAndFailMarkers(t *testing.T) {
	var out strings.Builder
	doctor.Run(doctor.Config{
		ScriptName:  script.Telugu,
		CorpusFiles: []string{filepath.Join(t.TempDir(), "nope.txt")},
	}, &out)

	output := out.String()
	if !strings.Contains(output, doctor.PassMark) {
		t.Errorf("output should contain PassMark %q:\n%s", doctor.PassMark, output)
	}

	if !strings.Contains(output, doctor.FailMark) {
		t.Errorf("output should contain FailMark %q:\n%s", doctor.FailMark, output)
	}
}

func TestResult_AddFailure(t *testing.T) {
	var r doctor.Result
	r.AddFailure("external check")

	if !r.Failed() {
		t.Fatal("Failed() = false after AddFailure")
	}

	got := r.Failures()
	got[0] = "mutated"

	if r.Failures()[0] != "external check" {
		t.Error("Failures() must return a copy")
	}
}

func hasFailureContaining(failures []string, substr string) bool {
	for _, f := range failures {
		if strings.Contains(f, substr) {
			return true
		}
	}

	return false
}
