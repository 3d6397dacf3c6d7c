package service

import "errors"

// ErrGenerationFailed - ошибка генерации текста внешней моделью.
var ErrGenerationFailed = errors.New("ai generation failed")

// ErrConnectionFailed - проверка подключения к внешней модели не прошла.
var ErrConnectionFailed = errors.New("ai connection test failed")
