package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Log.validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	if err := c.Filter.validate(); err != nil {
		return fmt.Errorf("filter: %w", err)
	}
	if c.Pipeline.ProgressEvery <= 0 {
		return fmt.Errorf("pipeline: progress_every must be > 0 (got %d)", c.Pipeline.ProgressEvery)
	}
	if c.Store.Enabled {
		if strings.TrimSpace(c.Database.DSN) == "" {
			return fmt.Errorf("database.dsn is required when store is enabled")
		}
		if c.Store.BatchSize <= 0 {
			return fmt.Errorf("store: batch_size must be > 0 (got %d)", c.Store.BatchSize)
		}
	}
	if err := c.Wiki.validate(); err != nil {
		return fmt.Errorf("wiki: %w", err)
	}
	if err := c.Slang.validate(); err != nil {
		return fmt.Errorf("slang: %w", err)
	}
	return nil
}

func (l *LogConfig) validate() error {
	switch strings.ToLower(strings.TrimSpace(l.Level)) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown level %q", l.Level)
	}
	switch strings.ToLower(strings.TrimSpace(l.Format)) {
	case "", "json", "text":
	default:
		return fmt.Errorf("unknown format %q", l.Format)
	}
	return nil
}

func (f *FilterConfig) validate() error {
	if f.MinLen < 1 {
		return fmt.Errorf("min_len must be >= 1 (got %d)", f.MinLen)
	}
	if f.MaxLen < f.MinLen {
		return fmt.Errorf("max_len must be >= min_len (got %d < %d)", f.MaxLen, f.MinLen)
	}
	return nil
}

func (w *WikiConfig) validate() error {
	u, err := url.Parse(w.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api_url must be an absolute URL (got %q)", w.APIURL)
	}
	if strings.TrimSpace(w.Page) == "" {
		return fmt.Errorf("page must not be empty")
	}
	if w.Timeout < 0 {
		return fmt.Errorf("timeout must be >= 0 (got %v)", w.Timeout)
	}
	return nil
}

func (s *SlangConfig) validate() error {
	if s.MinLen < 1 {
		return fmt.Errorf("min_len must be >= 1 (got %d)", s.MinLen)
	}
	if s.MaxLen < s.MinLen {
		return fmt.Errorf("max_len must be >= min_len (got %d < %d)", s.MaxLen, s.MinLen)
	}
	return nil
}
