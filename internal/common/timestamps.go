// Package common — timestamps.go: работа с метками времени в файлах данных.
// Метки хранятся строками RFC3339 (или null), как в исходном формате файлов.
// Разбор «мягкий»: битая строка означает «условие не выполнено», а не ошибку —
// кулдаун считается прошедшим, эффект — неактивным.
package common

import "time"

// ParseTimestamp разбирает сохранённую метку времени.
// nil, пустая или нечитаемая строка → (zero, false).
func ParseTimestamp(s *string) (time.Time, bool) {
	if s == nil || *s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, *s)
	if err != nil {
		// Fail open: битую метку трактуем как отсутствие особого состояния
		return time.Time{}, false
	}
	return t, true
}

// FormatTimestamp сериализует время в строку для файла данных.
func FormatTimestamp(t time.Time) *string {
	s := t.UTC().Format(time.RFC3339)
	return &s
}
