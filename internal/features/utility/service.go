// Package utility — сервисные команды: информация о сервере и
// пользователях, опросы, пинг, аптайм.
package utility

import (
	"sync"
	"time"
)

// Эмодзи вариантов опроса, по порядку.
var pollEmojis = []string{"1️⃣", "2️⃣", "3️⃣", "4️⃣", "5️⃣", "6️⃣", "7️⃣", "8️⃣", "9️⃣", "🔟"}

// MaxPollOptions — максимум вариантов в опросе.
var MaxPollOptions = len(pollEmojis)

// Poll — активный опрос канала.
type Poll struct {
	MessageID string
	Question  string
	Options   []string
	CreatedAt time.Time
}

// Service хранит аптайм и активные опросы (один на канал,
// новый опрос замещает прежний).
type Service struct {
	startedAt time.Time

	mu    sync.Mutex
	polls map[string]*Poll // ключ — ID канала
}

// NewService создаёт сервис с отметкой старта.
func NewService() *Service {
	return &Service{
		startedAt: time.Now(),
		polls:     make(map[string]*Poll),
	}
}

// Uptime возвращает время работы процесса.
func (s *Service) Uptime() time.Duration {
	return time.Since(s.startedAt)
}

// SetPoll запоминает опрос канала.
func (s *Service) SetPoll(channelID string, p Poll) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.polls[channelID] = &p
}

// GetPoll возвращает активный опрос канала.
func (s *Service) GetPoll(channelID string) (Poll, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.polls[channelID]
	if !ok {
		return Poll{}, false
	}
	return *p, true
}
