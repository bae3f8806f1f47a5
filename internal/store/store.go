package store

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/dmitrymomot/formintake/internal/submission"
	"github.com/dmitrymomot/formintake/pkg/logger"
	"github.com/dmitrymomot/formintake/pkg/pg"
)

// Beginner starts transactions; *pgxpool.Pool satisfies it.
type Beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Store writes submissions, one transaction per insert.
type Store struct {
	db  Beginner
	log *slog.Logger
}

type Option func(*Store)

func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

func New(db Beginner, opts ...Option) *Store {
	s := &Store{db: db, log: logger.Discard()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Insert prepares the form's insert statement, executes it with values in
// column order and commits. Driver errors are logged and never returned to
// the client: a failure to begin or prepare yields submission.PrepareFailed,
// anything later submission.SaveFailed.
func (s *Store) Insert(ctx context.Context, desc submission.Descriptor, values []any) (submission.Record, error) {
	log := s.log.With(logger.Component("store"), logger.Form(string(desc.Type)))

	if len(values) != len(desc.Columns) {
		return submission.Record{}, submission.SaveFailed(
			fmt.Errorf("store: %d values for %d columns of %s", len(values), len(desc.Columns), desc.Table),
		)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		log.ErrorContext(ctx, "failed to begin transaction", logger.Error(err))
		return submission.Record{}, submission.PrepareFailed(err)
	}
	defer func() {
		if err := tx.Rollback(context.WithoutCancel(ctx)); err != nil && !pg.IsTxClosedError(err) {
			log.WarnContext(ctx, "failed to roll back transaction", logger.Error(err))
		}
	}()

	stmt, err := tx.Prepare(ctx, statementName(desc), InsertSQL(desc))
	if err != nil {
		attrs := []any{logger.Error(err)}
		if pg.IsUndefinedTableError(err) {
			attrs = append(attrs, slog.String("hint", "run migrations"))
		}
		log.ErrorContext(ctx, "failed to prepare insert statement", attrs...)
		return submission.Record{}, submission.PrepareFailed(err)
	}

	record := submission.Record{Form: desc.Type, Values: values}
	if err := tx.QueryRow(ctx, stmt.Name, values...).Scan(&record.ID, &record.SubmittedAt); err != nil {
		log.ErrorContext(ctx, "failed to insert submission", logger.Error(err))
		return submission.Record{}, submission.SaveFailed(err)
	}

	if err := tx.Commit(ctx); err != nil {
		log.ErrorContext(ctx, "failed to commit submission", logger.Error(err))
		return submission.Record{}, submission.SaveFailed(err)
	}

	return record, nil
}

// InsertSQL builds the parameterized insert for desc.
func InsertSQL(desc submission.Descriptor) string {
	placeholders := make([]string, len(desc.Columns))
	for i := range desc.Columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	return fmt.Sprintf(
		"INSERT INTO %s (%s, submitted_at) VALUES (%s, NOW()) RETURNING id, submitted_at",
		desc.Table,
		strings.Join(desc.ColumnNames(), ", "),
		strings.Join(placeholders, ", "),
	)
}

func statementName(desc submission.Descriptor) string {
	return "insert_" + desc.Table
}
