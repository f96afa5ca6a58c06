package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/zhwiki-pinyin/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedPinyinEntry inserts one entry with a unique word and returns it.
func SeedPinyinEntry(t *testing.T, pool *pgxpool.Pool, source string) domain.PinyinEntry {
	t.Helper()

	e := domain.NewPinyinEntry(domain.Record{
		Word:   "测试" + uniqueSuffix(),
		Pinyin: "ce4 shi4",
	}, source, time.Now().UTC().Truncate(time.Microsecond))

	_, err := pool.Exec(context.Background(),
		`INSERT INTO pinyin_entries (id, word, pinyin, source, created_at) VALUES ($1, $2, $3, $4, $5)`,
		e.ID, e.Word, e.Pinyin, e.Source, e.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: seed pinyin entry: %v", err)
	}
	return e
}
