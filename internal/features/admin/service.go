// Package admin — стейт-машина подтверждения разрушительных операций.
// Сбросы (одного пользователя, всей прокачки, всей экономики) требуют,
// чтобы администратор повторил одноразовый токен в течение 30 секунд.
// Права администратора проверяет слой Discord ДО вызова сервиса —
// здесь авторизации нет.
package admin

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"levelbot/internal/common"
	"levelbot/internal/features/economy"
	"levelbot/internal/features/leveling"
)

// Action — вид разрушительной операции.
type Action string

const (
	ActionResetUser    Action = "reset_user"
	ActionResetAll     Action = "reset_all"
	ActionResetEconomy Action = "reset_economy"
)

// ConfirmWindow — сколько живёт ожидающее подтверждение.
const ConfirmWindow = 30 * time.Second

// Pending — ожидающая подтверждения операция одного администратора.
type Pending struct {
	Action    Action
	TargetID  string // пусто для глобальных сбросов
	Token     string
	ExpiresAt time.Time
}

// Service хранит ожидающие подтверждения в памяти.
// Просроченные записи не чистятся фоном: истечение проверяется лениво
// при подтверждении, частичное состояние не фиксируется никогда.
type Service struct {
	mu      sync.Mutex
	pending map[string]*Pending // ключ — ID администратора

	leveling *leveling.Service
	economy  *economy.Service // nil, если экономика отключена

	// Подменяется в тестах
	Now func() time.Time
}

// NewService создаёт сервис админ-операций.
func NewService(levelingService *leveling.Service, economyService *economy.Service) *Service {
	return &Service{
		pending:  make(map[string]*Pending),
		leveling: levelingService,
		economy:  economyService,
		Now:      time.Now,
	}
}

// Request регистрирует разрушительную операцию и возвращает токен,
// который администратор должен повторить в течение 30 секунд.
// Новый запрос того же администратора замещает прежний.
func (s *Service) Request(adminID string, action Action, targetID string) Pending {
	p := Pending{
		Action:    action,
		TargetID:  targetID,
		Token:     strings.Split(uuid.NewString(), "-")[0],
		ExpiresAt: s.Now().Add(ConfirmWindow),
	}

	s.mu.Lock()
	s.pending[adminID] = &p
	s.mu.Unlock()

	log.WithFields(log.Fields{
		"admin":  adminID,
		"action": string(action),
		"target": targetID,
	}).Warn("Запрошена разрушительная операция, ждём подтверждения")
	return p
}

// Confirm сверяет токен и выполняет операцию.
// Истёкшее окно — отмена без изменений состояния; неверный токен
// оставляет запрос в силе до истечения окна.
func (s *Service) Confirm(adminID, token string) (Pending, error) {
	s.mu.Lock()
	p, ok := s.pending[adminID]
	if !ok {
		s.mu.Unlock()
		return Pending{}, common.ErrNoPendingConfirm
	}
	if s.Now().After(p.ExpiresAt) {
		delete(s.pending, adminID)
		s.mu.Unlock()
		return Pending{}, common.ErrConfirmExpired
	}
	if p.Token != strings.TrimSpace(token) {
		s.mu.Unlock()
		return *p, common.ErrWrongConfirmToken
	}
	delete(s.pending, adminID)
	result := *p
	s.mu.Unlock()

	return result, s.execute(result)
}

// execute выполняет подтверждённую операцию.
func (s *Service) execute(p Pending) error {
	switch p.Action {
	case ActionResetUser:
		return s.leveling.ResetUser(p.TargetID)
	case ActionResetAll:
		return s.leveling.ResetAll()
	case ActionResetEconomy:
		if s.economy == nil {
			return nil
		}
		return s.economy.ResetAll()
	}
	return nil
}

// HasPending сообщает, ждёт ли администратор подтверждения (для UI).
func (s *Service) HasPending(adminID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.pending[adminID]
	return ok && !s.Now().After(p.ExpiresAt)
}
