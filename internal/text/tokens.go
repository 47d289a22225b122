package text

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrWidth is returned for token widths other than 16 and 32.
	ErrWidth = errors.New("token width must be 16 or 32")
	// ErrTokenRange is returned when a token does not fit the chosen width.
	ErrTokenRange = errors.New("token out of range for width")
)

func checkWidth(width int) error {
	if width != 16 && width != 32 {
		return fmt.Errorf("%w, got %d", ErrWidth, width)
	}

	return nil
}

// WriteTokens writes ids to w as little-endian unsigned integers of the
// given bit width.
func WriteTokens(w io.Writer, ids []uint32, width int) error {
	if err := checkWidth(width); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	buf := make([]byte, width/8)

	for i, id := range ids {
		if width == 16 {
			if id > math.MaxUint16 {
				return fmt.Errorf("token %d (%d): %w %d", i, id, ErrTokenRange, width)
			}

			binary.LittleEndian.PutUint16(buf, uint16(id))
		} else {
			binary.LittleEndian.PutUint32(buf, id)
		}

		if _, err := bw.Write(buf); err != nil {
			return fmt.Errorf("write tokens: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write tokens: %w", err)
	}

	return nil
}

// ReadTokens reads little-endian unsigned integers of the given bit width
// until EOF.
func ReadTokens(r io.Reader, width int) ([]uint32, error) {
	if err := checkWidth(width); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read tokens: %w", err)
	}

	size := width / 8
	if len(data)%size != 0 {
		return nil, fmt.Errorf("read tokens: %d bytes is not a multiple of %d", len(data), size)
	}

	ids := make([]uint32, 0, len(data)/size)

	for off := 0; off < len(data); off += size {
		if width == 16 {
			ids = append(ids, uint32(binary.LittleEndian.Uint16(data[off:])))
		} else {
			ids = append(ids, binary.LittleEndian.Uint32(data[off:]))
		}
	}

	return ids, nil
}

// FormatTokens renders ids as space-separated decimals.
func FormatTokens(ids []uint32) string {
	var b strings.Builder

	for i, id := range ids {
		if i > 0 {
			b.WriteByte(' ')
		}

		b.WriteString(strconv.FormatUint(uint64(id), 10))
	}

	return b.String()
}

// ParseTokens parses whitespace-separated decimal ids. Commas and
// surrounding brackets are accepted as separators.
func ParseTokens(s string) ([]uint32, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == '[' || r == ']' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})

	ids := make([]uint32, 0, len(fields))

	for _, f := range fields {
		id, err := strconv.ParseUint(f, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("parse token %q: %w", f, err)
		}

		ids = append(ids, uint32(id))
	}

	return ids, nil
}
