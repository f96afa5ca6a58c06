// Package pinyinentry stores generated word/pinyin pairs in PostgreSQL.
package pinyinentry

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/zhwiki-pinyin/internal/adapter/postgres"
	"github.com/heartmarshall/zhwiki-pinyin/internal/domain"
)

const (
	table  = "pinyin_entries"
	entity = "pinyin_entry"

	// maxRowsPerStatement keeps a single INSERT under the 65535 bind parameter limit.
	maxRowsPerStatement = 10000
)

var columns = []string{"id", "word", "pinyin", "source", "created_at"}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo provides pinyin entry persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
	txm  *postgres.TxManager
}

// New creates a new pinyin entry repository.
func New(pool *pgxpool.Pool, txm *postgres.TxManager) *Repo {
	return &Repo{pool: pool, txm: txm}
}

// BulkInsert inserts entries in one transaction. Words that already exist
// are skipped via ON CONFLICT (word) DO NOTHING.
// Returns the number of actually inserted rows.
func (r *Repo) BulkInsert(ctx context.Context, entries []domain.PinyinEntry) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}

	var inserted int
	err := r.txm.RunInTx(ctx, func(ctx context.Context) error {
		for start := 0; start < len(entries); start += maxRowsPerStatement {
			end := min(start+maxRowsPerStatement, len(entries))

			query, args, err := insertQuery(entries[start:end])
			if err != nil {
				return fmt.Errorf("build insert: %w", err)
			}

			tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...)
			if err != nil {
				return postgres.MapError(err, entity, entries[start].Word)
			}
			inserted += int(tag.RowsAffected())
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return inserted, nil
}

// GetByWord returns the stored entry for word.
// Returns domain.ErrNotFound if the word is not stored.
func (r *Repo) GetByWord(ctx context.Context, word string) (*domain.PinyinEntry, error) {
	query, args, err := psql.Select(columns...).From(table).Where(sq.Eq{"word": word}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var e domain.PinyinEntry
	err = postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...).
		Scan(&e.ID, &e.Word, &e.Pinyin, &e.Source, &e.CreatedAt)
	if err != nil {
		return nil, postgres.MapError(err, entity, word)
	}
	return &e, nil
}

// CountBySource returns how many entries came from source.
func (r *Repo) CountBySource(ctx context.Context, source string) (int, error) {
	query, args, err := psql.Select("count(*)").From(table).Where(sq.Eq{"source": source}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count: %w", err)
	}

	var n int
	if err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, postgres.MapError(err, entity, source)
	}
	return n, nil
}

// ListBySource returns entries from source ordered by word.
func (r *Repo) ListBySource(ctx context.Context, source string, limit uint64) ([]domain.PinyinEntry, error) {
	b := psql.Select(columns...).From(table).Where(sq.Eq{"source": source}).OrderBy("word")
	if limit > 0 {
		b = b.Limit(limit)
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, entity, source)
	}

	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.PinyinEntry, error) {
		var e domain.PinyinEntry
		err := row.Scan(&e.ID, &e.Word, &e.Pinyin, &e.Source, &e.CreatedAt)
		return e, err
	})
	if err != nil {
		return nil, postgres.MapError(err, entity, source)
	}
	return entries, nil
}

func insertQuery(entries []domain.PinyinEntry) (string, []any, error) {
	b := psql.Insert(table).Columns(columns...)
	for _, e := range entries {
		b = b.Values(e.ID, e.Word, e.Pinyin, e.Source, e.CreatedAt)
	}
	return b.Suffix("ON CONFLICT (word) DO NOTHING").ToSql()
}
