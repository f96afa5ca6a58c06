package app

import (
	"log/slog"

	"github.com/heartmarshall/zhwiki-pinyin/internal/config"
)

// Bootstrap loads configuration, initializes the default logger and logs
// startup information for the named command. A non-empty configPath takes
// precedence over CONFIG_PATH.
func Bootstrap(command, configPath string) (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return nil, nil, err
	}

	logger := NewLogger(cfg.Log).With(slog.String("command", command))

	logger.Debug("starting",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	return cfg, logger, nil
}
