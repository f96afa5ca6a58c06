// Command slang harvests internet-slang words from the Chinese Wikipedia
// list of mainland internet slang.
//
// Usage:
//
//	slang                     fetch the page and print extracted words
//	slang --fetch             print the raw page markup
//	slang --process <file>    print words extracted from saved markup
//
// Any other combination is not implemented and exits with status 1.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/heartmarshall/zhwiki-pinyin/internal/adapter/provider/zhwiki"
	"github.com/heartmarshall/zhwiki-pinyin/internal/adapter/textfile"
	"github.com/heartmarshall/zhwiki-pinyin/internal/app"
	"github.com/heartmarshall/zhwiki-pinyin/internal/app/slang"
)

// Compile-time interface assertion.
var _ slang.Fetcher = (*zhwiki.Client)(nil)

func main() {
	configFlag := pflag.String("config", "", "path to YAML config file")
	fetchFlag := pflag.Bool("fetch", false, "print the raw page markup")
	processFlag := pflag.String("process", "", "extract words from a saved markup file")
	pflag.Parse()

	cfg, logger, err := app.Bootstrap("slang", *configFlag)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	mode, err := slang.ParseMode(*fetchFlag, *processFlag, pflag.Args())
	if err != nil {
		logger.Error("invalid invocation", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	readMarkup := func(path string) (string, error) {
		return textfile.ReadAll(path, "")
	}

	h := slang.NewHarvester(logger, zhwiki.NewClient(cfg.Wiki, logger), readMarkup, cfg.Wiki.Page, slang.ExtractOptions{
		GlossPrefix: cfg.Slang.GlossPrefix,
		MinLen:      cfg.Slang.MinLen,
		MaxLen:      cfg.Slang.MaxLen,
	})

	if err := h.Run(ctx, mode, *processFlag, os.Stdout); err != nil {
		logger.Error("slang failed", slog.String("mode", mode.String()), slog.String("error", err.Error()))
		os.Exit(1)
	}
}
