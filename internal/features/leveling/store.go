// Package leveling — store.go: долговременное хранилище записей прогресса.
// Владеет in-memory картой и жизненным циклом load/persist поверх
// плоского JSON-файла. Каждая мутация синхронно переписывает файл целиком,
// поэтому вызывающий наблюдает долговечность до видимого эффекта.
package leveling

import (
	"sort"
	"sync"

	"levelbot/internal/storage"
)

// Store — хранилище записей прогрессa, ключ — Discord ID пользователя.
type Store struct {
	path string

	mu    sync.RWMutex
	users map[string]*UserProgress

	// Пер-пользовательская сериализация read-modify-write.
	// Два события для одного пользователя (сообщение и тик) не могут
	// переплести свои чтение-изменение-запись и потерять обновление.
	locks *storage.KeyedMutex

	// Последовательность записей на диск
	saveMu sync.Mutex
}

// TopEntry — строка таблицы лидеров.
type TopEntry struct {
	UserID string
	UserProgress
}

// NewStore создаёт хранилище для файла path (без чтения диска).
func NewStore(path string) *Store {
	return &Store{
		path:  path,
		users: make(map[string]*UserProgress),
		locks: storage.NewKeyedMutex(),
	}
}

// Load читает файл при старте. Нет файла — пустое состояние,
// битый файл — логируется внутри storage и тоже пустое состояние.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := make(map[string]*UserProgress)
	if err := storage.LoadJSON(s.path, &data); err != nil {
		return err
	}
	s.users = data
	return nil
}

// persist сбрасывает снимок карты на диск.
func (s *Store) persist() error {
	s.mu.RLock()
	snapshot := make(map[string]*UserProgress, len(s.users))
	for id, u := range s.users {
		copied := *u
		snapshot[id] = &copied
	}
	s.mu.RUnlock()

	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	return storage.SaveJSON(s.path, snapshot)
}

// Get возвращает копию записи пользователя (нулевые дефолты, если записи нет).
// Карту не мутирует и диск не трогает.
func (s *Store) Get(userID string) UserProgress {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if u, ok := s.users[userID]; ok {
		return *u
	}
	return *NewUserProgress()
}

// Update выполняет атомарную мутацию записи пользователя: берёт
// пер-пользовательский мьютекс, достаёт (или создаёт) запись, применяет fn
// и синхронно сохраняет весь файл. Возвращает копию записи после мутации.
//
// Это ЕДИНСТВЕННЫЙ путь мутации — сервисы не трогают карту напрямую.
func (s *Store) Update(userID string, fn func(u *UserProgress)) (UserProgress, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	s.mu.Lock()
	u, ok := s.users[userID]
	if !ok {
		u = NewUserProgress()
		s.users[userID] = u
	}
	fn(u)
	result := *u
	s.mu.Unlock()

	return result, s.persist()
}

// ListTop возвращает n записей с наибольшим опытом по убыванию.
// Порядок при равном XP не определён — это не требование корректности.
func (s *Store) ListTop(n int) []TopEntry {
	s.mu.RLock()
	entries := make([]TopEntry, 0, len(s.users))
	for id, u := range s.users {
		entries = append(entries, TopEntry{UserID: id, UserProgress: *u})
	}
	s.mu.RUnlock()

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].XP > entries[j].XP
	})

	if n > len(entries) {
		n = len(entries)
	}
	return entries[:n]
}

// ResetUser обнуляет запись пользователя до дефолтов.
func (s *Store) ResetUser(userID string) error {
	_, err := s.Update(userID, func(u *UserProgress) {
		*u = *NewUserProgress()
	})
	return err
}

// ResetAll очищает всё хранилище. Последующий Get для любого
// ранее существовавшего пользователя вернёт нулевые дефолты.
func (s *Store) ResetAll() error {
	s.mu.Lock()
	s.users = make(map[string]*UserProgress)
	s.mu.Unlock()

	return s.persist()
}

// Count возвращает количество записей (для статистики и тестов).
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}
