package storage

import "sync"

// KeyedMutex — набор мьютексов по строковому ключу (ID пользователя).
// Сериализует последовательности read-modify-write для ОДНОГО пользователя,
// не блокируя операции остальных. Закрывает гонку «потерянного обновления»,
// когда сообщение и тик для одного пользователя приходят почти одновременно.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewKeyedMutex создаёт пустой набор мьютексов.
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: make(map[string]*sync.Mutex)}
}

// Lock блокирует мьютекс ключа key и возвращает функцию разблокировки.
//
// Использование:
//
//	unlock := km.Lock(userID)
//	defer unlock()
//
// Мьютексы не удаляются: количество пользователей ограничено размером
// сообщества, утечка здесь не проблема.
func (km *KeyedMutex) Lock(key string) func() {
	km.mu.Lock()
	m, ok := km.locks[key]
	if !ok {
		m = &sync.Mutex{}
		km.locks[key] = m
	}
	km.mu.Unlock()

	m.Lock()
	return m.Unlock
}
