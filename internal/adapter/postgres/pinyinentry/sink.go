package pinyinentry

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/zhwiki-pinyin/internal/domain"
)

// DefaultBatchSize is used when a non-positive batch size is given.
const DefaultBatchSize = 500

// BulkInserter is the storage contract consumed by Sink.
// Implemented by Repo.
type BulkInserter interface {
	BulkInsert(ctx context.Context, entries []domain.PinyinEntry) (int, error)
}

// Sink buffers records and writes them in batches.
type Sink struct {
	repo      BulkInserter
	log       *slog.Logger
	source    string
	batchSize int
	now       func() time.Time

	buf      []domain.PinyinEntry
	inserted int
	skipped  int
}

// NewSink creates a Sink tagging every entry with source.
func NewSink(repo BulkInserter, log *slog.Logger, source string, batchSize int) *Sink {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Sink{
		repo:      repo,
		log:       log.With("adapter", "pinyinentry"),
		source:    source,
		batchSize: batchSize,
		now:       time.Now,
		buf:       make([]domain.PinyinEntry, 0, batchSize),
	}
}

// Write buffers rec and flushes once the batch is full.
func (s *Sink) Write(ctx context.Context, rec domain.Record) error {
	s.buf = append(s.buf, domain.NewPinyinEntry(rec, s.source, s.now()))
	if len(s.buf) >= s.batchSize {
		return s.Flush(ctx)
	}
	return nil
}

// Flush writes buffered entries.
func (s *Sink) Flush(ctx context.Context) error {
	if len(s.buf) == 0 {
		return nil
	}

	n, err := s.repo.BulkInsert(ctx, s.buf)
	if err != nil {
		return fmt.Errorf("store batch of %d: %w", len(s.buf), err)
	}

	s.inserted += n
	s.skipped += len(s.buf) - n
	s.log.DebugContext(ctx, "batch stored",
		slog.Int("batch", len(s.buf)),
		slog.Int("inserted", n),
	)
	s.buf = s.buf[:0]
	return nil
}

// Inserted returns how many rows were new.
func (s *Sink) Inserted() int { return s.inserted }

// Skipped returns how many records hit an existing word.
func (s *Sink) Skipped() int { return s.skipped }
