// Package leveling — service.go: бизнес-логика начисления опыта.
// Начисление, кулдаун сообщений, голосовые минуты и админ-операции.
package leveling

import (
	"time"

	log "github.com/sirupsen/logrus"

	"levelbot/internal/common"
	"levelbot/internal/config"
)

// Service управляет прокачкой участников.
type Service struct {
	store *Store
	cfg   *config.Config

	// Подменяется в тестах для контроля времени
	Now func() time.Time
}

// GrantResult — итог начисления опыта.
type GrantResult struct {
	LeveledUp bool // пересечён ли порог уровня этим начислением
	NewLevel  int
	TotalXP   int
}

// NewService создаёт сервис прокачки.
func NewService(store *Store, cfg *config.Config) *Service {
	return &Service{store: store, cfg: cfg, Now: time.Now}
}

// GrantXP начисляет ровно amount опыта и пересчитывает уровень.
// Прежний уровень фиксируется до мутации, чтобы корректно определить левел-ап.
func (s *Service) GrantXP(userID string, amount int) (GrantResult, error) {
	if amount <= 0 {
		return GrantResult{}, common.ErrInvalidXPAmount
	}

	var res GrantResult
	_, err := s.store.Update(userID, func(u *UserProgress) {
		oldLevel := u.Level
		u.XP += amount
		u.Level = XPToLevel(u.XP)
		res = GrantResult{
			LeveledUp: u.Level > oldLevel,
			NewLevel:  u.Level,
			TotalXP:   u.XP,
		}
	})
	if err != nil {
		// Начисление уже произошло в памяти; без записи оно не переживёт
		// рестарт — транзакционного отката здесь нет по построению.
		log.WithError(err).WithField("user_id", userID).Error("Ошибка сохранения после начисления опыта")
	}
	return res, nil
}

// CanGainMessageXP — кулдаун-гейт для опыта за сообщения.
// true, если метки нет (первое сообщение) или кулдаун прошёл.
// Сам гейт метку НЕ обновляет — начисление фиксирует её отдельно.
func CanGainMessageXP(u *UserProgress, now time.Time, cooldown time.Duration) bool {
	last, ok := common.ParseTimestamp(u.LastMessageTime)
	if !ok {
		return true
	}
	return now.Sub(last) >= cooldown
}

// HandleMessage обрабатывает сообщение пользователя: проверяет кулдаун и,
// если он прошёл, начисляет опыт, двигает счётчик сообщений и метку времени.
// Гейт и начисление выполняются одним шагом под пер-пользовательским
// замком — повторная проверка в рамках одного события не даст двойного
// начисления.
//
// amount — уже умноженный на активный XP-буст опыт за сообщение.
func (s *Service) HandleMessage(userID string, amount int) (granted bool, res GrantResult, err error) {
	now := s.Now()
	cooldown := time.Duration(s.cfg.XPCooldownSeconds) * time.Second

	_, err = s.store.Update(userID, func(u *UserProgress) {
		if !CanGainMessageXP(u, now, cooldown) {
			return
		}
		oldLevel := u.Level
		u.XP += amount
		u.Level = XPToLevel(u.XP)
		u.MessagesSent++
		u.LastMessageTime = common.FormatTimestamp(now)
		granted = true
		res = GrantResult{
			LeveledUp: u.Level > oldLevel,
			NewLevel:  u.Level,
			TotalXP:   u.XP,
		}
	})
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Error("Ошибка сохранения после опыта за сообщение")
		err = nil
	}
	return granted, res, err
}

// AddVoiceMinutes начисляет minutes голосовых минут: опыт плюс оба счётчика
// времени, одной атомарной мутацией.
//
// xpAmount — суммарный опыт за эти минуты (minutes × ставка × буст).
func (s *Service) AddVoiceMinutes(userID string, minutes, xpAmount int) (GrantResult, error) {
	var res GrantResult
	_, err := s.store.Update(userID, func(u *UserProgress) {
		oldLevel := u.Level
		u.XP += xpAmount
		u.Level = XPToLevel(u.XP)
		u.VoiceTime += minutes
		u.TotalVoiceTime += minutes
		res = GrantResult{
			LeveledUp: u.Level > oldLevel,
			NewLevel:  u.Level,
			TotalXP:   u.XP,
		}
	})
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Error("Ошибка сохранения голосовых минут")
	}
	return res, nil
}

// SetVoiceJoin записывает зеркало начала голосовой сессии на диск.
func (s *Service) SetVoiceJoin(userID string) {
	now := s.Now()
	if _, err := s.store.Update(userID, func(u *UserProgress) {
		u.LastVoiceJoin = common.FormatTimestamp(now)
	}); err != nil {
		log.WithError(err).WithField("user_id", userID).Warn("Не удалось сохранить начало голосовой сессии")
	}
}

// ClearVoiceJoin очищает зеркало голосовой сессии.
func (s *Service) ClearVoiceJoin(userID string) {
	if _, err := s.store.Update(userID, func(u *UserProgress) {
		u.LastVoiceJoin = nil
	}); err != nil {
		log.WithError(err).WithField("user_id", userID).Warn("Не удалось очистить начало голосовой сессии")
	}
}

// Get возвращает копию записи пользователя.
func (s *Service) Get(userID string) UserProgress {
	return s.store.Get(userID)
}

// Top возвращает n лучших по опыту.
func (s *Service) Top(n int) []TopEntry {
	return s.store.ListTop(n)
}

// --- Админ-операции (права проверяет вызывающий слой) ---

// SetLevel выставляет уровень и пересчитывает опыт как (level-1)*200.
func (s *Service) SetLevel(userID string, level int) (UserProgress, error) {
	if level < 1 {
		return UserProgress{}, common.ErrInvalidLevel
	}
	return s.store.Update(userID, func(u *UserProgress) {
		u.Level = level
		u.XP = (level - 1) * LevelXPUnit
	})
}

// AddXP — админское начисление. Неположительные суммы отклоняются.
func (s *Service) AddXP(userID string, amount int) (GrantResult, error) {
	return s.GrantXP(userID, amount)
}

// ResetUser обнуляет запись одного пользователя.
func (s *Service) ResetUser(userID string) error {
	log.WithField("user_id", userID).Warn("Сброс прогресса пользователя")
	return s.store.ResetUser(userID)
}

// ResetAll очищает всё хранилище прокачки.
func (s *Service) ResetAll() error {
	log.Warn("Полный сброс прокачки всех пользователей")
	return s.store.ResetAll()
}
