// Package giveaway — розыгрыши призов.
// Участие через реакцию 🎉 под сообщением розыгрыша; фоновая задача
// раз в 10 секунд завершает просроченные розыгрыши и выбирает
// победителя. Состояние живёт в памяти: перезапуск бота отменяет
// незавершённые розыгрыши.
package giveaway

import (
	"math/rand"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"levelbot/internal/common"
)

// EntryEmoji — реакция участия.
const EntryEmoji = "🎉"

// Пределы длительности розыгрыша.
const (
	MinDuration = 30 * time.Second
	MaxDuration = 7 * 24 * time.Hour
)

// Giveaway — один розыгрыш.
type Giveaway struct {
	ID        string
	ChannelID string
	MessageID string
	HostID    string
	Prize     string
	EndsAt    time.Time
	Ended     bool
	WinnerID  string
	Entrants  []string
}

// Service хранит розыгрыши в памяти.
type Service struct {
	mu        sync.Mutex
	giveaways map[string]*Giveaway

	// Подменяются в тестах
	Now   func() time.Time
	randN func(n int) int
}

// NewService создаёт сервис розыгрышей.
func NewService() *Service {
	return &Service{
		giveaways: make(map[string]*Giveaway),
		Now:       time.Now,
		randN:     rand.Intn,
	}
}

// ParseDuration разбирает длительность вида "30s", "10m", "2h", "1d".
func ParseDuration(s string) (time.Duration, error) {
	s = strings.ToLower(strings.TrimSpace(s))

	// Поддержка дней поверх стандартного парсера
	if strings.HasSuffix(s, "d") {
		days, err := strconv.ParseFloat(strings.TrimSuffix(s, "d"), 64)
		if err != nil {
			return 0, common.ErrGiveawayDuration
		}
		return checkDuration(time.Duration(days * 24 * float64(time.Hour)))
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, common.ErrGiveawayDuration
	}
	return checkDuration(d)
}

func checkDuration(d time.Duration) (time.Duration, error) {
	if d < MinDuration || d > MaxDuration {
		return 0, common.ErrGiveawayDuration
	}
	return d, nil
}

// Create регистрирует розыгрыш. MessageID привязывается позже,
// когда сообщение отправлено.
func (s *Service) Create(channelID, hostID, prize string, d time.Duration) *Giveaway {
	g := &Giveaway{
		ID:        strings.Split(uuid.NewString(), "-")[0],
		ChannelID: channelID,
		HostID:    hostID,
		Prize:     prize,
		EndsAt:    s.Now().Add(d),
	}

	s.mu.Lock()
	s.giveaways[g.ID] = g
	s.mu.Unlock()

	log.WithFields(log.Fields{"giveaway": g.ID, "prize": prize}).Info("Розыгрыш создан")
	return g
}

// BindMessage привязывает ID сообщения розыгрыша для учёта реакций.
func (s *Service) BindMessage(giveawayID, messageID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if g, ok := s.giveaways[giveawayID]; ok {
		g.MessageID = messageID
	}
}

// AddEntrant регистрирует участника по реакции под сообщением.
// Повторные реакции и реакции под чужими сообщениями игнорируются.
func (s *Service) AddEntrant(messageID, userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, g := range s.giveaways {
		if g.MessageID != messageID || g.Ended {
			continue
		}
		for _, e := range g.Entrants {
			if e == userID {
				return
			}
		}
		g.Entrants = append(g.Entrants, userID)
		return
	}
}

// RemoveEntrant убирает участника, снявшего реакцию.
func (s *Service) RemoveEntrant(messageID, userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, g := range s.giveaways {
		if g.MessageID != messageID || g.Ended {
			continue
		}
		for i, e := range g.Entrants {
			if e == userID {
				g.Entrants = append(g.Entrants[:i], g.Entrants[i+1:]...)
				return
			}
		}
	}
}

// EndDue завершает просроченные розыгрыши и возвращает их копии
// с выбранными победителями (WinnerID пуст, если участников не было).
func (s *Service) EndDue() []Giveaway {
	now := s.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	var ended []Giveaway
	for _, g := range s.giveaways {
		if g.Ended || now.Before(g.EndsAt) {
			continue
		}
		g.Ended = true
		if len(g.Entrants) > 0 {
			g.WinnerID = g.Entrants[s.randN(len(g.Entrants))]
		}
		ended = append(ended, *g)
		log.WithFields(log.Fields{"giveaway": g.ID, "winner": g.WinnerID}).Info("Розыгрыш завершён")
	}
	return ended
}

// Reroll выбирает нового победителя завершённого розыгрыша.
func (s *Service) Reroll(giveawayID string) (Giveaway, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.giveaways[giveawayID]
	if !ok || !g.Ended {
		return Giveaway{}, common.ErrGiveawayNotFound
	}
	if len(g.Entrants) == 0 {
		return *g, nil
	}
	g.WinnerID = g.Entrants[s.randN(len(g.Entrants))]
	return *g, nil
}

// Active возвращает незавершённые розыгрыши, ближайшие — первыми.
func (s *Service) Active() []Giveaway {
	s.mu.Lock()
	defer s.mu.Unlock()

	var active []Giveaway
	for _, g := range s.giveaways {
		if !g.Ended {
			active = append(active, *g)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].EndsAt.Before(active[j].EndsAt)
	})
	return active
}
