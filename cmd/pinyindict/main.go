// Command pinyindict builds a word/pinyin dictionary from a list of
// Chinese Wikipedia titles, one per line. Records are written to stdout as
// "word<TAB>pinyin"; progress and diagnostics go to stderr.
//
// Usage:
//
//	pinyindict [flags] <titles-file>
//
// Flags:
//
//	--config    path to YAML config file (overrides CONFIG_PATH)
//	--charset   input charset (default from config, utf-8)
//	--dry-run   filter and transcribe without writing records
//	--store     also store records in PostgreSQL
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/heartmarshall/zhwiki-pinyin/internal/adapter/opencc"
	"github.com/heartmarshall/zhwiki-pinyin/internal/adapter/postgres"
	"github.com/heartmarshall/zhwiki-pinyin/internal/adapter/postgres/pinyinentry"
	"github.com/heartmarshall/zhwiki-pinyin/internal/adapter/textfile"
	"github.com/heartmarshall/zhwiki-pinyin/internal/adapter/tsv"
	"github.com/heartmarshall/zhwiki-pinyin/internal/app"
	"github.com/heartmarshall/zhwiki-pinyin/internal/app/dictgen"
	"github.com/heartmarshall/zhwiki-pinyin/internal/config"
	"github.com/heartmarshall/zhwiki-pinyin/internal/filter"
	"github.com/heartmarshall/zhwiki-pinyin/internal/lexicon"
	"github.com/heartmarshall/zhwiki-pinyin/internal/transcribe"
)

// Compile-time interface assertions.
var (
	_ dictgen.RecordWriter = (*tsv.Writer)(nil)
	_ dictgen.RecordWriter = (*pinyinentry.Sink)(nil)
	_ dictgen.Normalizer   = (*opencc.Normalizer)(nil)
	_ dictgen.Transcriber  = (*transcribe.Transcriber)(nil)
)

func main() {
	configFlag := pflag.String("config", "", "path to YAML config file")
	charsetFlag := pflag.String("charset", "", "input charset (default from config)")
	dryRunFlag := pflag.Bool("dry-run", false, "filter and transcribe without writing records")
	storeFlag := pflag.Bool("store", false, "also store records in PostgreSQL")
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <titles-file>\n", os.Args[0])
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if pflag.NArg() != 1 {
		pflag.Usage()
		os.Exit(1)
	}
	inputPath := pflag.Arg(0)

	cfg, logger, err := app.Bootstrap("pinyindict", *configFlag)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// CLI flags override config.
	if *charsetFlag != "" {
		cfg.Pipeline.InputCharset = *charsetFlag
	}
	if *dryRunFlag {
		cfg.Pipeline.DryRun = true
	}
	if *storeFlag {
		cfg.Store.Enabled = true
		if err := cfg.Validate(); err != nil {
			logger.Error("invalid config", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger, inputPath); err != nil {
		logger.Error("pinyindict failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger, inputPath string) error {
	tables, err := lexicon.Load(cfg.Filter.TablesPath)
	if err != nil {
		return fmt.Errorf("load lexicon: %w", err)
	}

	norm, err := opencc.NewNormalizer(cfg.Pipeline.Conversion)
	if err != nil {
		return fmt.Errorf("create normalizer: %w", err)
	}

	in, err := textfile.Open(inputPath, cfg.Pipeline.InputCharset)
	if err != nil {
		return err
	}
	defer in.Close()

	writers := dictgen.MultiWriter{tsv.NewWriter(os.Stdout)}

	var sink *pinyinentry.Sink
	if cfg.Store.Enabled && !cfg.Pipeline.DryRun {
		pool, err := postgres.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer pool.Close()

		repo := pinyinentry.New(pool, postgres.NewTxManager(pool))
		sink = pinyinentry.NewSink(repo, logger, cfg.Store.Source, cfg.Store.BatchSize)
		writers = append(writers, sink)
	}

	f := filter.New(tables, filter.WithLengthBounds(cfg.Filter.MinLen, cfg.Filter.MaxLen))
	pipeline := dictgen.NewPipeline(logger, norm, f, transcribe.New(tables), writers, dictgen.Config{
		ProgressEvery: cfg.Pipeline.ProgressEvery,
		DryRun:        cfg.Pipeline.DryRun,
	})

	res, err := pipeline.Run(ctx, in)
	if err != nil {
		return err
	}

	if sink != nil {
		logger.Info("records stored",
			slog.Int("inserted", sink.Inserted()),
			slog.Int("skipped", sink.Skipped()),
			slog.String("source", cfg.Store.Source),
		)
	}
	logger.Debug("run finished",
		slog.Int("lines", res.Lines),
		slog.Int("rejected", res.RejectedTotal()),
		slog.Duration("duration", res.Duration),
	)

	return nil
}
