// Package dictgen turns a stream of Wikipedia titles into word/pinyin records.
package dictgen

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/heartmarshall/zhwiki-pinyin/internal/adapter/textfile"
	"github.com/heartmarshall/zhwiki-pinyin/internal/app"
	"github.com/heartmarshall/zhwiki-pinyin/internal/domain"
	"github.com/heartmarshall/zhwiki-pinyin/internal/filter"
	"github.com/heartmarshall/zhwiki-pinyin/internal/transcribe"
)

// DefaultProgressEvery is how many accepted records pass between progress logs.
const DefaultProgressEvery = 10000

// Normalizer converts a title to simplified script.
// Implemented by opencc.Normalizer.
type Normalizer interface {
	Normalize(text string) (string, error)
}

// Transcriber produces space-separated tone-numbered pinyin.
// Implemented by transcribe.Transcriber.
type Transcriber interface {
	Transcribe(text string) string
}

// RecordWriter receives accepted records.
// Implemented by tsv.Writer and pinyinentry.Sink.
type RecordWriter interface {
	Write(ctx context.Context, rec domain.Record) error
	Flush(ctx context.Context) error
}

// Config holds pipeline settings.
type Config struct {
	ProgressEvery int
	DryRun        bool
}

// Result summarizes one run.
type Result struct {
	Lines     int
	Accepted  int
	Conflicts int
	Rejected  map[filter.Reason]int
	Duration  time.Duration
}

// RejectedTotal sums rejections over all rules.
func (r Result) RejectedTotal() int {
	total := 0
	for _, n := range r.Rejected {
		total += n
	}
	return total
}

// Pipeline filters, transcribes and emits titles in input order.
type Pipeline struct {
	log    *slog.Logger
	norm   Normalizer
	filter *filter.Filter
	tr     Transcriber
	out    RecordWriter
	cfg    Config
}

// NewPipeline creates a new Pipeline.
func NewPipeline(log *slog.Logger, norm Normalizer, f *filter.Filter, tr Transcriber, out RecordWriter, cfg Config) *Pipeline {
	if cfg.ProgressEvery <= 0 {
		cfg.ProgressEvery = DefaultProgressEvery
	}
	return &Pipeline{
		log:    log.With(slog.String("component", "dictgen")),
		norm:   norm,
		filter: f,
		tr:     tr,
		out:    out,
		cfg:    cfg,
	}
}

// Run reads one title per line from r until EOF. The final count is logged
// once input is exhausted, even when nothing was accepted. Normalizer,
// reader and writer failures abort the run.
func (p *Pipeline) Run(ctx context.Context, r io.Reader) (Result, error) {
	start := time.Now()
	res := Result{Rejected: make(map[filter.Reason]int, len(filter.AllReasons))}

	// previous is the last title that produced a record.
	var previous string

	scanner := textfile.Lines(r)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		res.Lines++

		title, err := p.norm.Normalize(domain.TrimTitle(scanner.Text()))
		if err != nil {
			return res, fmt.Errorf("normalize line %d: %w", res.Lines, err)
		}

		if reason := p.filter.Check(title, previous); reason != filter.ReasonNone {
			res.Rejected[reason]++
			continue
		}

		rec, err := transcribe.NewRecord(title, p.tr.Transcribe(title))
		if errors.Is(err, domain.ErrTranscriptionConflict) {
			res.Conflicts++
			p.log.Info("failed to convert to pinyin, ignoring", slog.String("title", title))
			continue
		}

		if !p.cfg.DryRun {
			if err := p.out.Write(ctx, rec); err != nil {
				return res, fmt.Errorf("write %q: %w", rec.Word, err)
			}
		}

		res.Accepted++
		previous = title

		if res.Accepted%p.cfg.ProgressEvery == 0 {
			p.log.Info("progress", slog.Int("count", res.Accepted))
		}
	}
	if err := scanner.Err(); err != nil {
		return res, fmt.Errorf("read titles: %w", err)
	}

	if !p.cfg.DryRun {
		if err := p.out.Flush(ctx); err != nil {
			return res, fmt.Errorf("flush: %w", err)
		}
	}

	res.Duration = time.Since(start)
	p.log.Log(ctx, app.LevelReport, "words generated", slog.Int("count", res.Accepted))
	p.logSummary(res)

	return res, nil
}

func (p *Pipeline) logSummary(res Result) {
	attrs := []any{
		slog.Int("lines", res.Lines),
		slog.Int("accepted", res.Accepted),
		slog.Int("conflicts", res.Conflicts),
		slog.Bool("dry_run", p.cfg.DryRun),
		slog.Duration("duration", res.Duration),
	}
	for _, reason := range filter.AllReasons {
		attrs = append(attrs, slog.Int("rejected_"+string(reason), res.Rejected[reason]))
	}
	p.log.Debug("pipeline completed", attrs...)
}
