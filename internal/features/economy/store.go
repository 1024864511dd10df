// Package economy — store.go: долговременное хранилище счетов.
// Та же модель, что у хранилища прокачки: in-memory карта, полная
// синхронная перезапись файла после каждой мутации, пер-пользовательские
// замки для сериализации read-modify-write.
package economy

import (
	"sort"
	"sync"

	"levelbot/internal/storage"
)

// Store — хранилище счетов, ключ — Discord ID пользователя.
type Store struct {
	path string

	mu       sync.RWMutex
	accounts map[string]*Account

	locks  *storage.KeyedMutex
	saveMu sync.Mutex
}

// RichEntry — строка таблицы богатейших.
type RichEntry struct {
	UserID string
	Account
}

// NewStore создаёт хранилище для файла path.
func NewStore(path string) *Store {
	return &Store{
		path:     path,
		accounts: make(map[string]*Account),
		locks:    storage.NewKeyedMutex(),
	}
}

// Load читает файл при старте (нет файла или битый — пустое состояние).
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := make(map[string]*Account)
	if err := storage.LoadJSON(s.path, &data); err != nil {
		return err
	}
	// Инвентарь обязан быть непустым слайсом, а не null
	for _, a := range data {
		if a.Inventory == nil {
			a.Inventory = []string{}
		}
	}
	s.accounts = data
	return nil
}

func (s *Store) persist() error {
	s.mu.RLock()
	snapshot := make(map[string]*Account, len(s.accounts))
	for id, a := range s.accounts {
		copied := *a
		copied.Inventory = append([]string{}, a.Inventory...)
		snapshot[id] = &copied
	}
	s.mu.RUnlock()

	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	return storage.SaveJSON(s.path, snapshot)
}

// Get возвращает копию счёта (нулевые дефолты, если счёта нет).
func (s *Store) Get(userID string) Account {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if a, ok := s.accounts[userID]; ok {
		copied := *a
		copied.Inventory = append([]string{}, a.Inventory...)
		return copied
	}
	return *NewAccount()
}

func (s *Store) getOrCreateLocked(userID string) *Account {
	a, ok := s.accounts[userID]
	if !ok {
		a = NewAccount()
		s.accounts[userID] = a
	}
	return a
}

// Update — атомарная мутация одного счёта с синхронным сохранением.
// fn получает рабочую копию: ошибка валидации означает, что мутации
// не было вовсе — ни в памяти, ни в файле.
func (s *Store) Update(userID string, fn func(a *Account) error) (Account, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	s.mu.Lock()
	a := s.getOrCreateLocked(userID)
	work := *a
	work.Inventory = append([]string{}, a.Inventory...)
	if err := fn(&work); err != nil {
		s.mu.Unlock()
		return work, err
	}
	*a = work
	result := work
	result.Inventory = append([]string{}, work.Inventory...)
	s.mu.Unlock()

	return result, s.persist()
}

// UpdatePair — атомарная мутация двух счетов (перевод).
// Замки берутся в детерминированном порядке, чтобы встречные переводы
// не взаимоблокировались. Либо мутируются оба счёта, либо ни один.
func (s *Store) UpdatePair(firstID, secondID string, fn func(first, second *Account) error) error {
	lockOrder := []string{firstID, secondID}
	if lockOrder[0] > lockOrder[1] {
		lockOrder[0], lockOrder[1] = lockOrder[1], lockOrder[0]
	}
	for _, id := range lockOrder {
		unlock := s.locks.Lock(id)
		defer unlock()
	}

	s.mu.Lock()
	first := s.getOrCreateLocked(firstID)
	second := s.getOrCreateLocked(secondID)
	workFirst, workSecond := *first, *second
	workFirst.Inventory = append([]string{}, first.Inventory...)
	workSecond.Inventory = append([]string{}, second.Inventory...)
	if err := fn(&workFirst, &workSecond); err != nil {
		s.mu.Unlock()
		return err
	}
	*first, *second = workFirst, workSecond
	s.mu.Unlock()

	return s.persist()
}

// Richest возвращает n счетов с наибольшим балансом по убыванию.
func (s *Store) Richest(n int) []RichEntry {
	s.mu.RLock()
	entries := make([]RichEntry, 0, len(s.accounts))
	for id, a := range s.accounts {
		entries = append(entries, RichEntry{UserID: id, Account: *a})
	}
	s.mu.RUnlock()

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Balance > entries[j].Balance
	})

	if n > len(entries) {
		n = len(entries)
	}
	return entries[:n]
}

// ResetAll очищает все счета.
func (s *Store) ResetAll() error {
	s.mu.Lock()
	s.accounts = make(map[string]*Account)
	s.mu.Unlock()

	return s.persist()
}
