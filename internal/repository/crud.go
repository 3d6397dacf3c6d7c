package repository

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"go.uber.org/zap"
)

// CRUD - обобщенный движок create/read/update/delete поверх одной таблицы.
// Все репозитории сущностей построены на нем; собственные методы остаются
// только там, где семантика сущности выходит за рамки общих операций.
type CRUD[T any] struct {
	db     DBTX
	schema Schema
	logger *zap.Logger
}

// NewCRUD создает движок для схемы сущности.
func NewCRUD[T any](db DBTX, schema Schema, logger *zap.Logger) *CRUD[T] {
	return &CRUD[T]{db: db, schema: schema, logger: logger}
}

// Get возвращает запись по id или models.ErrNotFound.
func (r *CRUD[T]) Get(ctx context.Context, id int64) (*T, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", r.schema.selectList(), r.schema.Table)

	var entity T
	if err := pgxscan.Get(ctx, r.db, &entity, query, id); err != nil {
		if translated := translateError(err); translated != err {
			return nil, translated
		}
		return nil, fmt.Errorf("failed to get %s: %w", r.schema.Table, err)
	}
	return &entity, nil
}

// List возвращает страницу записей в порядке вставки (ORDER BY id).
func (r *CRUD[T]) List(ctx context.Context, skip, limit int) ([]T, error) {
	skip, limit = clampPage(skip, limit)
	query := fmt.Sprintf(
		"SELECT %s FROM %s ORDER BY id LIMIT $1 OFFSET $2",
		r.schema.selectList(), r.schema.Table,
	)

	entities := []T{}
	if err := pgxscan.Select(ctx, r.db, &entities, query, limit, skip); err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", r.schema.Table, err)
	}
	return entities, nil
}

// Create вставляет запись и возвращает ее в полностью заполненном виде
// (включая сгенерированный id и вычисленные сервером значения по умолчанию).
func (r *CRUD[T]) Create(ctx context.Context, fields Fields) (*T, error) {
	query, args := buildInsert(r.schema, fields)
	r.logger.Debug("creating entity", zap.String("table", r.schema.Table))

	var entity T
	if err := pgxscan.Get(ctx, r.db, &entity, query, args...); err != nil {
		if translated := translateError(err); translated != err {
			return nil, translated
		}
		return nil, fmt.Errorf("failed to create %s: %w", r.schema.Table, err)
	}
	return &entity, nil
}

// Update применяет частичное обновление: затрагиваются только переданные
// поля, мергируемые JSONB-колонки объединяются по ключам (входящие побеждают).
// Пустой набор полей сводится к чтению текущего состояния.
func (r *CRUD[T]) Update(ctx context.Context, id int64, fields Fields) (*T, error) {
	if len(fields) == 0 {
		return r.Get(ctx, id)
	}

	query, args := buildUpdate(r.schema, id, fields)
	r.logger.Debug("updating entity", zap.String("table", r.schema.Table), zap.Int64("id", id))

	var entity T
	if err := pgxscan.Get(ctx, r.db, &entity, query, args...); err != nil {
		if translated := translateError(err); translated != err {
			return nil, translated
		}
		return nil, fmt.Errorf("failed to update %s: %w", r.schema.Table, err)
	}
	return &entity, nil
}

// Delete удаляет запись и возвращает ее снимок, или models.ErrNotFound.
func (r *CRUD[T]) Delete(ctx context.Context, id int64) (*T, error) {
	query := fmt.Sprintf(
		"DELETE FROM %s WHERE id = $1 RETURNING %s",
		r.schema.Table, r.schema.selectList(),
	)
	r.logger.Debug("deleting entity", zap.String("table", r.schema.Table), zap.Int64("id", id))

	var entity T
	if err := pgxscan.Get(ctx, r.db, &entity, query, id); err != nil {
		if translated := translateError(err); translated != err {
			return nil, translated
		}
		return nil, fmt.Errorf("failed to delete %s: %w", r.schema.Table, err)
	}
	return &entity, nil
}
