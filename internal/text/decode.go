// Package text converts raw corpus bytes to codepoints and moves token
// streams in and out of files.
package text

import (
	"fmt"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Decode converts data to codepoints. UTF-8 is assumed unless a byte-order
// mark selects UTF-16; a UTF-8 byte-order mark is stripped. Invalid
// sequences decode to U+FFFD. No other normalization is applied.
func Decode(data []byte) ([]rune, error) {
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())

	out, _, err := transform.Bytes(dec, data)
	if err != nil {
		return nil, fmt.Errorf("decode text: %w", err)
	}

	return []rune(string(out)), nil
}

// ReadFile reads and decodes the file at path.
func ReadFile(path string) ([]rune, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read text %q: %w", path, err)
	}

	return Decode(data)
}
