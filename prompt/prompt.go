// Package prompt holds the restore tool's operator-input parsing, kept
// free of terminal I/O so the selection rules can be tested directly.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var (
	// ErrInvalidSelection means the input was not a number.
	ErrInvalidSelection = errors.New("selection is not a number")
	// ErrOutOfRange means the numeric input named no listed archive.
	ErrOutOfRange = errors.New("selection out of range")
)

// Select maps a raw selection line onto a zero-based index into a list of
// count items. Empty input picks the last (newest) item; otherwise the
// input must be a number in [1, count].
func Select(count int, raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return count - 1, nil
	}

	choice, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSelection, raw)
	}
	if choice < 1 || choice > count {
		return 0, fmt.Errorf("%w: %d (valid: 1-%d)", ErrOutOfRange, choice, count)
	}

	return choice - 1, nil
}

// Confirm reports whether raw is an explicit yes. Anything else, empty
// input included, declines.
func Confirm(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "y", "yes":
		return true
	}
	return false
}

// Reader reads successive lines of operator input. A single Reader must
// serve the whole dialogue, since it buffers ahead.
type Reader struct {
	buf *bufio.Reader
}

func NewReader(r io.Reader) *Reader {
	return &Reader{buf: bufio.NewReader(r)}
}

// ReadLine returns the next input line without the trailing newline. EOF
// with no input counts as an empty line.
func (r *Reader) ReadLine() (string, error) {
	line, err := r.buf.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
