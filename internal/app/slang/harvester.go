package slang

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/heartmarshall/zhwiki-pinyin/internal/domain"
)

// Mode selects what a harvest run does.
type Mode int

const (
	// ModeAll fetches the page and prints the extracted words.
	ModeAll Mode = iota
	// ModeFetch prints the raw page markup.
	ModeFetch
	// ModeProcess reads markup from a file and prints the extracted words.
	ModeProcess
)

func (m Mode) String() string {
	switch m {
	case ModeAll:
		return "all"
	case ModeFetch:
		return "fetch"
	case ModeProcess:
		return "process"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode maps command-line input to a Mode. Positional arguments and
// combining --fetch with --process are not supported.
func ParseMode(fetch bool, processPath string, args []string) (Mode, error) {
	switch {
	case len(args) > 0:
		return 0, fmt.Errorf("unexpected arguments %q: %w", args, domain.ErrUnimplementedMode)
	case fetch && processPath != "":
		return 0, fmt.Errorf("--fetch with --process: %w", domain.ErrUnimplementedMode)
	case fetch:
		return ModeFetch, nil
	case processPath != "":
		return ModeProcess, nil
	default:
		return ModeAll, nil
	}
}

// Fetcher returns the markup of a wiki page.
// Implemented by zhwiki.Client.
type Fetcher interface {
	FetchWikitext(ctx context.Context, page string) (string, error)
}

// MarkupReader loads markup saved by an earlier fetch.
type MarkupReader func(path string) (string, error)

// Harvester runs the fetch and process steps.
type Harvester struct {
	log     *slog.Logger
	fetcher Fetcher
	read    MarkupReader
	page    string
	opts    ExtractOptions
}

// NewHarvester creates a new Harvester for page.
func NewHarvester(log *slog.Logger, fetcher Fetcher, read MarkupReader, page string, opts ExtractOptions) *Harvester {
	return &Harvester{
		log:     log.With(slog.String("component", "slang")),
		fetcher: fetcher,
		read:    read,
		page:    page,
		opts:    opts,
	}
}

// Run executes mode and writes its output to w. processPath is only used by
// ModeProcess.
func (h *Harvester) Run(ctx context.Context, mode Mode, processPath string, w io.Writer) error {
	bw := bufio.NewWriter(w)

	switch mode {
	case ModeFetch:
		wikitext, err := h.fetcher.FetchWikitext(ctx, h.page)
		if err != nil {
			return fmt.Errorf("fetch %s: %w", h.page, err)
		}
		if _, err := fmt.Fprintln(bw, wikitext); err != nil {
			return err
		}
	case ModeProcess:
		wikitext, err := h.read(processPath)
		if err != nil {
			return fmt.Errorf("read %s: %w", processPath, err)
		}
		if err := h.printWords(bw, h.Process(wikitext)); err != nil {
			return err
		}
	case ModeAll:
		wikitext, err := h.fetcher.FetchWikitext(ctx, h.page)
		if err != nil {
			return fmt.Errorf("fetch %s: %w", h.page, err)
		}
		if err := h.printWords(bw, h.Process(wikitext)); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%s: %w", mode, domain.ErrUnimplementedMode)
	}

	return bw.Flush()
}

// Process extracts slang words from wikitext.
func (h *Harvester) Process(wikitext string) *WordSet {
	words := Extract(wikitext, h.opts)
	h.log.Debug("words extracted", slog.Int("count", words.Len()))
	return words
}

func (h *Harvester) printWords(w io.Writer, words *WordSet) error {
	for _, word := range words.Words() {
		if _, err := fmt.Fprintln(w, word); err != nil {
			return err
		}
	}
	return nil
}
