package models

import "errors"

// Стандартные ошибки доменного уровня. Репозитории и сервисы возвращают их
// (обернутыми через fmt.Errorf + %w), а HTTP-слой транслирует в статус-коды.
var (
	ErrNotFound = errors.New("resource not found")

	// ErrBadRequest - некорректные входные данные (валидация, ссылки между сущностями).
	ErrBadRequest = errors.New("bad request")

	// ErrConflict - нарушение уникальности на уровне БД (duplicate key).
	ErrConflict = errors.New("resource already exists")

	// ErrDecryptFailed - сохраненный ключ не удалось расшифровать текущим секретом.
	ErrDecryptFailed = errors.New("failed to decrypt stored credential")
)
