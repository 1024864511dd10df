package trivia

import (
	"sort"
	"sync"

	"levelbot/internal/storage"
)

// ScoreStore хранит счёт викторины (количество верных ответов)
// в отдельном JSON-файле — том же формате, что и остальные хранилища.
type ScoreStore struct {
	path string

	mu     sync.RWMutex
	scores map[string]int

	saveMu sync.Mutex
}

// NewScoreStore создаёт хранилище счёта викторины.
func NewScoreStore(path string) *ScoreStore {
	return &ScoreStore{
		path:   path,
		scores: make(map[string]int),
	}
}

// Load читает счёт с диска.
func (s *ScoreStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return storage.LoadJSON(s.path, &s.scores)
}

// persist пишет снимок на диск.
func (s *ScoreStore) persist() error {
	s.mu.RLock()
	snapshot := make(map[string]int, len(s.scores))
	for k, v := range s.scores {
		snapshot[k] = v
	}
	s.mu.RUnlock()

	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	return storage.SaveJSON(s.path, snapshot)
}

// Increment добавляет пользователю одно очко и возвращает новый счёт.
func (s *ScoreStore) Increment(userID string) (int, error) {
	s.mu.Lock()
	s.scores[userID]++
	n := s.scores[userID]
	s.mu.Unlock()

	return n, s.persist()
}

// ScoreEntry — строка таблицы викторины.
type ScoreEntry struct {
	UserID string
	Score  int
}

// Top возвращает n лучших по числу верных ответов.
func (s *ScoreStore) Top(n int) []ScoreEntry {
	s.mu.RLock()
	entries := make([]ScoreEntry, 0, len(s.scores))
	for id, score := range s.scores {
		entries = append(entries, ScoreEntry{UserID: id, Score: score})
	}
	s.mu.RUnlock()

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// Reset очищает таблицу счёта.
func (s *ScoreStore) Reset() error {
	s.mu.Lock()
	s.scores = make(map[string]int)
	s.mu.Unlock()
	return s.persist()
}
