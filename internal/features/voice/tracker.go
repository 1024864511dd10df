// Package voice отслеживает голосовые сессии участников.
// Трекер — стейт-машина на пользователя: join создаёт сессию,
// leave превращает её в минуты и опыт, move ничего не мутирует.
//
// Опыт за войс начисляется ДВУМЯ независимыми путями:
// поминутным тиком для всех, кто сейчас в канале, и единовременной суммой
// за сессию при выходе. Пути накопительные и не исключают друг друга —
// это намеренное свойство модели наград, его нельзя «чинить».
package voice

import (
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"levelbot/internal/config"
	"levelbot/internal/features/leveling"
)

// BoostSource отдаёт множитель опыта пользователя (XP-буст из экономики).
type BoostSource interface {
	XPMultiplier(userID string) int
}

// Tracker хранит активные голосовые сессии в памяти.
// Сессии не переживают рестарт процесса: зеркало last_voice_join
// пишется на диск, но при старте не реплеится (как в исходной системе).
type Tracker struct {
	mu       sync.Mutex
	sessions map[string]time.Time

	leveling *leveling.Service
	boosts   BoostSource // может быть nil, если экономика отключена
	cfg      *config.Config

	// Подменяется в тестах
	Now func() time.Time
}

// LeaveResult — итог завершения голосовой сессии.
type LeaveResult struct {
	Duration time.Duration
	Minutes  int
	XPGained int
	Grant    leveling.GrantResult
}

// TickAward — начисление одного поминутного тика.
type TickAward struct {
	UserID   string
	XPGained int
	Grant    leveling.GrantResult
}

// NewTracker создаёт трекер голосовых сессий.
func NewTracker(levelingService *leveling.Service, boosts BoostSource, cfg *config.Config) *Tracker {
	return &Tracker{
		sessions: make(map[string]time.Time),
		leveling: levelingService,
		boosts:   boosts,
		cfg:      cfg,
		Now:      time.Now,
	}
}

func (t *Tracker) multiplier(userID string) int {
	if t.boosts == nil {
		return 1
	}
	m := t.boosts.XPMultiplier(userID)
	if m < 1 {
		return 1
	}
	return m
}

// Join открывает сессию. Опыт на этом шаге не начисляется.
// Повторный join при открытой сессии (рассинхрон гейтвея) игнорируется.
func (t *Tracker) Join(userID string) {
	t.mu.Lock()
	if _, ok := t.sessions[userID]; ok {
		t.mu.Unlock()
		log.WithField("user_id", userID).Debug("Join при открытой сессии, игнорируем")
		return
	}
	t.sessions[userID] = t.Now()
	t.mu.Unlock()

	t.leveling.SetVoiceJoin(userID)
	log.WithField("user_id", userID).Debug("Голосовая сессия открыта")
}

// Leave закрывает сессию и конвертирует её длительность в награду.
// Считаются целые минуты: сессия короче минуты даёт 0 опыта, дробный
// остаток не накапливается — небольшая потеря точности принята.
// Возвращает (результат, true), только если минуты > 0.
func (t *Tracker) Leave(userID string) (LeaveResult, bool) {
	t.mu.Lock()
	joinTime, ok := t.sessions[userID]
	// Сессия снимается в любом случае, даже если награды не будет
	delete(t.sessions, userID)
	t.mu.Unlock()

	t.leveling.ClearVoiceJoin(userID)

	if !ok {
		log.WithField("user_id", userID).Debug("Leave без открытой сессии")
		return LeaveResult{}, false
	}

	duration := t.Now().Sub(joinTime)
	minutes := int(duration.Minutes())
	if minutes <= 0 {
		log.WithFields(log.Fields{
			"user_id":  userID,
			"duration": duration,
		}).Debug("Сессия короче минуты, награды нет")
		return LeaveResult{}, false
	}

	xp := minutes * t.cfg.VoiceXPPerMinute * t.multiplier(userID)
	grant, err := t.leveling.AddVoiceMinutes(userID, minutes, xp)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Error("Ошибка начисления за голосовую сессию")
	}

	return LeaveResult{
		Duration: duration,
		Minutes:  minutes,
		XPGained: xp,
		Grant:    grant,
	}, true
}

// Move — переход между каналами без выхода из войса.
// Чисто уведомительное событие: сессия не сбрасывается, опыт не начисляется.
func (t *Tracker) Move(userID string) {
	log.WithField("user_id", userID).Debug("Переход между голосовыми каналами")
}

// Tick начисляет плоскую поминутную награду каждому из userIDs —
// списка участников, находящихся сейчас в голосовых каналах по данным
// гейтвея (не по нашим сессиям!). Ботов и AFK отфильтровывает вызывающий.
// Открытая сессия НЕ исключает пользователя из тика.
func (t *Tracker) Tick(userIDs []string) []TickAward {
	awards := make([]TickAward, 0, len(userIDs))
	for _, userID := range userIDs {
		xp := t.cfg.VoiceXPPerMinute * t.multiplier(userID)
		grant, err := t.leveling.AddVoiceMinutes(userID, 1, xp)
		if err != nil {
			log.WithError(err).WithField("user_id", userID).Error("Ошибка начисления тика")
			continue
		}
		awards = append(awards, TickAward{UserID: userID, XPGained: xp, Grant: grant})
	}
	return awards
}

// ActiveSessions возвращает количество открытых сессий.
func (t *Tracker) ActiveSessions() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.sessions)
}
