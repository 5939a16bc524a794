// SPDX-License-Identifier: MIT

package library

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// commentMarker starts a comment that runs to the end of the line.
const commentMarker = "#"

// tokenReader yields whitespace-separated tokens, dropping comments.
type tokenReader struct {
	sc      *bufio.Scanner
	pending []string
	line    int
}

func newTokenReader(r io.Reader) *tokenReader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &tokenReader{sc: sc}
}

// next returns the next token or io.EOF once the input is exhausted.
func (t *tokenReader) next() (string, error) {
	for len(t.pending) == 0 {
		if !t.sc.Scan() {
			if err := t.sc.Err(); err != nil {
				return "", err
			}
			return "", io.EOF
		}
		t.line++
		text := t.sc.Text()
		if i := strings.Index(text, commentMarker); i >= 0 {
			text = text[:i]
		}
		t.pending = strings.Fields(text)
	}
	tok := t.pending[0]
	t.pending = t.pending[1:]

	return tok, nil
}

// field returns the next token, reporting a missing one as truncation.
func (t *tokenReader) field(what string) (string, error) {
	tok, err := t.next()
	if err == io.EOF {
		return "", fmt.Errorf("line %d: missing %s: %w", t.line, what, ErrTruncated)
	}
	return tok, err
}

func (t *tokenReader) float(what string) (float64, error) {
	tok, err := t.field(what)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, fmt.Errorf("line %d: %s %q: %w", t.line, what, tok, ErrBadNumber)
	}
	return v, nil
}

func (t *tokenReader) int(what string) (int, error) {
	tok, err := t.field(what)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(tok)
	if err != nil {
		// Some libraries write integral fields as reals ("26.0").
		f, ferr := strconv.ParseFloat(tok, 64)
		if ferr != nil || f != float64(int(f)) {
			return 0, fmt.Errorf("line %d: %s %q: %w", t.line, what, tok, ErrBadNumber)
		}
		v = int(f)
	}
	return v, nil
}

// count reads a non-negative record count.
func (t *tokenReader) count(what string) (int, error) {
	n, err := t.int(what)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("line %d: %s %d: %w", t.line, what, n, ErrBadNumber)
	}
	return n, nil
}
