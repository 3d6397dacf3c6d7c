package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"novelforge-server/internal/models"
)

// DBTX - минимальный интерфейс исполнителя запросов. Ему удовлетворяют
// и *pgxpool.Pool, и pgx.Tx, что позволяет выполнять методы репозиториев
// внутри внешней транзакции.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const (
	defaultListLimit = 100

	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// Field - одна пара колонка/значение для вставки или частичного обновления.
// Порядок полей в Fields фиксирован, поэтому сборка SQL детерминирована.
type Field struct {
	Column string
	Value  any
}

// Fields - упорядоченный набор полей записи.
type Fields []Field

// Set добавляет поле и возвращает расширенный набор.
func (f Fields) Set(column string, value any) Fields {
	return append(f, Field{Column: column, Value: value})
}

// Lookup возвращает значение поля по имени колонки.
func (f Fields) Lookup(column string) (any, bool) {
	for _, field := range f {
		if field.Column == column {
			return field.Value, true
		}
	}
	return nil, false
}

// Schema описывает хранение сущности: таблицу, список колонок и колонки
// с семантикой shallow-merge при обновлении. Мергируемость - явно
// объявленное свойство схемы, а не определение типа колонки на лету.
type Schema struct {
	Table     string
	Columns   []string
	Mergeable map[string]bool
}

func (s Schema) selectList() string {
	return strings.Join(s.Columns, ", ")
}

// buildInsert собирает INSERT ... RETURNING по набору полей.
func buildInsert(s Schema, fields Fields) (string, []any) {
	columns := make([]string, 0, len(fields))
	placeholders := make([]string, 0, len(fields))
	args := make([]any, 0, len(fields))

	for i, field := range fields {
		columns = append(columns, field.Column)
		placeholders = append(placeholders, fmt.Sprintf("$%d", i+1))
		args = append(args, field.Value)
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		s.Table,
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
		s.selectList(),
	)
	return query, args
}

// buildUpdate собирает UPDATE ... RETURNING. Для мергируемых JSONB-колонок
// используется конкатенация `col || $n`: входящие ключи побеждают, ключи,
// отсутствующие во входе, сохраняются.
func buildUpdate(s Schema, id int64, fields Fields) (string, []any) {
	assignments := make([]string, 0, len(fields))
	args := make([]any, 0, len(fields)+1)

	for i, field := range fields {
		if s.Mergeable[field.Column] {
			assignments = append(assignments,
				fmt.Sprintf("%s = COALESCE(%s, '{}'::jsonb) || $%d", field.Column, field.Column, i+1))
		} else {
			assignments = append(assignments, fmt.Sprintf("%s = $%d", field.Column, i+1))
		}
		args = append(args, field.Value)
	}

	args = append(args, id)
	query := fmt.Sprintf(
		"UPDATE %s SET %s WHERE id = $%d RETURNING %s",
		s.Table,
		strings.Join(assignments, ", "),
		len(args),
		s.selectList(),
	)
	return query, args
}

// clampPage нормализует параметры пагинации: отрицательные значения
// приводятся к нулю, нулевой либо отрицательный limit - к значению по умолчанию.
func clampPage(skip, limit int) (int, int) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	return skip, limit
}

// translateError приводит ошибки драйвера к доменным.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return models.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %s", models.ErrConflict, pgErr.ConstraintName)
		case pgForeignKeyViolation:
			return fmt.Errorf("%w: referenced resource does not exist", models.ErrBadRequest)
		}
	}
	return err
}
