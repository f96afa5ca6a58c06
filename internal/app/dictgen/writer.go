package dictgen

import (
	"context"

	"github.com/heartmarshall/zhwiki-pinyin/internal/domain"
)

// MultiWriter fans records out to several writers in order.
type MultiWriter []RecordWriter

// Write forwards rec to every writer and stops at the first error.
func (m MultiWriter) Write(ctx context.Context, rec domain.Record) error {
	for _, w := range m {
		if err := w.Write(ctx, rec); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes every writer and stops at the first error.
func (m MultiWriter) Flush(ctx context.Context) error {
	for _, w := range m {
		if err := w.Flush(ctx); err != nil {
			return err
		}
	}
	return nil
}
