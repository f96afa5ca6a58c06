// Package textfile streams lines from title lists and markup dumps.
package textfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/transform"
)

const maxLineSize = 1024 * 1024

// Open opens path and decodes it from the named charset to UTF-8.
// The caller closes the returned ReadCloser.
func Open(path, charsetName string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	r, err := Decode(f, charsetName)
	if err != nil {
		f.Close()
		return nil, err
	}
	return struct {
		io.Reader
		io.Closer
	}{r, f}, nil
}

// Decode wraps r so that it yields UTF-8. Empty or utf-8 charsets return r.
func Decode(r io.Reader, charsetName string) (io.Reader, error) {
	name := strings.ToLower(strings.TrimSpace(charsetName))
	if name == "" || name == "utf-8" || name == "utf8" {
		return r, nil
	}
	enc, canonical := charset.Lookup(name)
	if enc == nil {
		return nil, fmt.Errorf("unknown charset %q", charsetName)
	}
	if canonical == "utf-8" {
		return r, nil
	}
	return transform.NewReader(r, enc.NewDecoder()), nil
}

// Lines returns a scanner over r that accepts long lines.
func Lines(r io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLineSize)
	return sc
}

// ReadAll reads a whole file, decoded to UTF-8.
func ReadAll(path, charsetName string) (string, error) {
	rc, err := Open(path, charsetName)
	if err != nil {
		return "", err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}
