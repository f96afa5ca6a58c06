// Command migrate applies the embedded schema migrations for the
// pinyin entry store to the database in DATABASE_DSN.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/heartmarshall/zhwiki-pinyin/internal/adapter/postgres"
	"github.com/heartmarshall/zhwiki-pinyin/internal/app"
)

func main() {
	configFlag := pflag.String("config", "", "path to YAML config file")
	timeoutFlag := pflag.Duration("timeout", 2*time.Minute, "overall migration timeout")
	pflag.Parse()

	cfg, logger, err := app.Bootstrap("migrate", *configFlag)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	if cfg.Database.DSN == "" {
		logger.Error("database.dsn is required")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeoutFlag)
	defer cancel()

	if err := postgres.Migrate(ctx, cfg.Database.DSN, logger); err != nil {
		logger.Error("migrate failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
