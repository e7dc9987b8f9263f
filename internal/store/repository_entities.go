// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Enki Somer

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/enki-somer/qs-sync/internal/logger"
)

type entityRepository struct {
	*DB
	logger *logger.Logger
}

// NewEntityRepository constructs the SQLite-backed cache repository over the
// registered entity tables.
func NewEntityRepository(db *DB, logger *logger.Logger) EntityRepository {
	return &entityRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *entityRepository) Put(ctx context.Context, table, id string, payload []byte, indexes map[string]any) error {
	spec, ok := entityTables[table]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}

	columns := []string{spec.pk, "payload", "last_modified"}
	values := []any{id, payload, time.Now()}

	// Deterministic column order keeps generated SQL stable.
	indexColumns := make([]string, 0, len(indexes))
	for column := range indexes {
		if !spec.hasIndex(column) {
			return fmt.Errorf("%w: %s.%s", ErrUnknownIndex, table, column)
		}
		indexColumns = append(indexColumns, column)
	}
	sort.Strings(indexColumns)
	for _, column := range indexColumns {
		columns = append(columns, column)
		values = append(values, indexes[column])
	}

	query, args, err := sq.Insert(spec.name).
		Options("OR REPLACE").
		Columns(columns...).
		Values(values...).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s", ErrBuildingSQLQuery, err)
	}

	if _, err = r.DB.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "entityRepository.Put").
			Str("table", table).
			Str("id", id).
			Msg("failed to upsert cached record")
		return fmt.Errorf("%w: %s", ErrExecutingStatement, err)
	}

	return nil
}

func (r *entityRepository) Get(ctx context.Context, table, id string) (Record, error) {
	spec, ok := entityTables[table]
	if !ok {
		return Record{}, fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}

	query, args, err := sq.Select(spec.pk, "payload", "last_modified").
		From(spec.name).
		Where(sq.Eq{spec.pk: id}).
		ToSql()
	if err != nil {
		return Record{}, fmt.Errorf("%w: %s", ErrBuildingSQLQuery, err)
	}

	var rec Record
	row := r.DB.QueryRowContext(ctx, query, args...)
	if err = row.Scan(&rec.ID, &rec.Payload, &rec.LastModified); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, fmt.Errorf("%w: %s/%s", ErrRecordNotFound, table, id)
		}
		return Record{}, fmt.Errorf("%w: %s", ErrScanningRow, err)
	}

	return rec, nil
}

func (r *entityRepository) GetAll(ctx context.Context, table string) ([]Record, error) {
	spec, ok := entityTables[table]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}

	return r.queryRecords(ctx, sq.Select(spec.pk, "payload", "last_modified").
		From(spec.name).
		OrderBy(spec.pk))
}

func (r *entityRepository) GetByIndex(ctx context.Context, table, index string, value any) ([]Record, error) {
	spec, ok := entityTables[table]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}
	if !spec.hasIndex(index) {
		return nil, fmt.Errorf("%w: %s.%s", ErrUnknownIndex, table, index)
	}

	return r.queryRecords(ctx, sq.Select(spec.pk, "payload", "last_modified").
		From(spec.name).
		Where(sq.Eq{index: value}).
		OrderBy(spec.pk))
}

func (r *entityRepository) Delete(ctx context.Context, table, id string) error {
	spec, ok := entityTables[table]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}

	query, args, err := sq.Delete(spec.name).Where(sq.Eq{spec.pk: id}).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s", ErrBuildingSQLQuery, err)
	}

	if _, err = r.DB.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %s", ErrExecutingStatement, err)
	}

	return nil
}

func (r *entityRepository) Clear(ctx context.Context, table string) error {
	spec, ok := entityTables[table]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}

	query, args, err := sq.Delete(spec.name).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s", ErrBuildingSQLQuery, err)
	}

	if _, err = r.DB.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %s", ErrExecutingStatement, err)
	}

	return nil
}

func (r *entityRepository) Count(ctx context.Context, table string) (int64, error) {
	spec, ok := entityTables[table]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}

	query, args, err := sq.Select("COUNT(*)").From(spec.name).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrBuildingSQLQuery, err)
	}

	var count int64
	if err = r.DB.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: %s", ErrExecutingQuery, err)
	}

	return count, nil
}

func (r *entityRepository) queryRecords(ctx context.Context, builder sq.SelectBuilder) ([]Record, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		if err = rows.Scan(&rec.ID, &rec.Payload, &rec.LastModified); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrScanningRow, err)
		}
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrExecutingQuery, err)
	}

	return records, nil
}
