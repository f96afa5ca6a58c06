// Package tsv writes dictionary records as "word<TAB>pinyin" lines.
package tsv

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/heartmarshall/zhwiki-pinyin/internal/domain"
)

// Writer buffers records and writes one line per record.
type Writer struct {
	w *bufio.Writer
}

// NewWriter creates a Writer on top of w (usually os.Stdout).
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriterSize(w, 256*1024)}
}

// Write appends one record line.
func (t *Writer) Write(_ context.Context, rec domain.Record) error {
	if _, err := fmt.Fprintln(t.w, rec.String()); err != nil {
		return fmt.Errorf("tsv: write: %w", err)
	}
	return nil
}

// Flush writes buffered lines to the underlying writer.
func (t *Writer) Flush(_ context.Context) error {
	if err := t.w.Flush(); err != nil {
		return fmt.Errorf("tsv: flush: %w", err)
	}
	return nil
}
