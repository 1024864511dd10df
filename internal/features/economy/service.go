// Package economy — service.go: бизнес-логика экономики.
// Ежедневные награды, работа, ставки, магазин, предметы и переводы.
// Все проверки валидации выполняются до мутации: при отказе состояние
// не меняется и файл не переписывается.
package economy

import (
	"math/rand"
	"time"

	log "github.com/sirupsen/logrus"

	"levelbot/internal/common"
	"levelbot/internal/config"
	"levelbot/internal/features/leveling"
)

// Service управляет экономикой бота.
type Service struct {
	store    *Store
	cfg      *config.Config
	leveling *leveling.Service // начисление опыта из таинственной коробки

	// Подменяются в тестах
	Now      func() time.Time
	randN    func(n int64) int64
	randBool func() bool
}

// NewService создаёт сервис экономики.
func NewService(store *Store, cfg *config.Config, levelingService *leveling.Service) *Service {
	return &Service{
		store:    store,
		cfg:      cfg,
		leveling: levelingService,
		Now:      time.Now,
		randN:    rand.Int63n,
		randBool: func() bool { return rand.Intn(2) == 0 },
	}
}

// randRange возвращает случайное число в [min, max].
func (s *Service) randRange(min, max int64) int64 {
	if max <= min {
		return min
	}
	return min + s.randN(max-min+1)
}

// reconcileDay сверяет дату счётчиков с сегодняшней (UTC) и при смене
// календарного дня обнуляет ОБА счётчика вместе с датой — всегда до
// любого чтения или инкремента, под замком пользователя.
func reconcileDay(a *Account, now time.Time) {
	today := common.UTCDate(now)
	if a.LastUsageDate != today {
		a.WorkCount = 0
		a.GambleCount = 0
		a.LastUsageDate = today
	}
}

// Get возвращает копию счёта со свежими дневными счётчиками.
func (s *Service) Get(userID string) Account {
	a := s.store.Get(userID)
	reconcileDay(&a, s.Now())
	return a
}

// DailyResult — итог ежедневной награды.
type DailyResult struct {
	Reward     int64
	NewBalance int64
	// Remaining заполнен при ErrDailyCooldown
	Remaining time.Duration
}

// Daily выдаёт ежедневную награду (50–200) раз в скользящие 24 часа
// от прошлого получения.
func (s *Service) Daily(userID string) (DailyResult, error) {
	now := s.Now()
	var res DailyResult

	_, err := s.store.Update(userID, func(a *Account) error {
		if last, ok := common.ParseTimestamp(a.LastDaily); ok {
			elapsed := now.Sub(last)
			if elapsed < 24*time.Hour {
				res.Remaining = 24*time.Hour - elapsed
				return common.ErrDailyCooldown
			}
		}

		res.Reward = s.randRange(s.cfg.DailyRewardMin, s.cfg.DailyRewardMax)
		a.Balance += res.Reward
		a.LastDaily = common.FormatTimestamp(now)
		res.NewBalance = a.Balance
		return nil
	})
	if err != nil {
		return res, err
	}

	log.WithFields(log.Fields{"user_id": userID, "reward": res.Reward}).Info("Ежедневная награда выдана")
	return res, nil
}

// WorkResult — итог работы.
type WorkResult struct {
	Reward     int64
	NewBalance int64
	UsedToday  int
}

// Work выдаёт награду за работу (20–100), не больше 5 раз в день.
func (s *Service) Work(userID string) (WorkResult, error) {
	now := s.Now()
	var res WorkResult

	_, err := s.store.Update(userID, func(a *Account) error {
		reconcileDay(a, now)
		if a.WorkCount >= s.cfg.DailyUseLimit {
			return common.ErrWorkLimit
		}

		res.Reward = s.randRange(s.cfg.WorkRewardMin, s.cfg.WorkRewardMax)
		a.Balance += res.Reward
		a.WorkCount++
		res.NewBalance = a.Balance
		res.UsedToday = a.WorkCount
		return nil
	})
	return res, err
}

// GambleResult — итог ставки.
type GambleResult struct {
	Won        bool
	Amount     int64
	NewBalance int64
	UsedToday  int
}

// Gamble — ставка 50/50: баланс растёт или падает ровно на amount.
// Требует положительную сумму, счётчик < 5 и баланс не меньше ставки.
func (s *Service) Gamble(userID string, amount int64) (GambleResult, error) {
	now := s.Now()
	var res GambleResult

	_, err := s.store.Update(userID, func(a *Account) error {
		if amount <= 0 {
			return common.ErrInvalidAmount
		}
		reconcileDay(a, now)
		if a.GambleCount >= s.cfg.DailyUseLimit {
			return common.ErrGambleLimit
		}
		if a.Balance < amount {
			return common.ErrInsufficientBalance
		}

		res.Won = s.randBool()
		res.Amount = amount
		if res.Won {
			a.Balance += amount
		} else {
			a.Balance -= amount
		}
		a.GambleCount++
		res.NewBalance = a.Balance
		res.UsedToday = a.GambleCount
		return nil
	})
	return res, err
}

// Buy покупает товар: списывает цену и кладёт предмет в инвентарь.
func (s *Service) Buy(userID, query string) (ShopItem, int64, error) {
	item, ok := FindItem(query)
	if !ok {
		return ShopItem{}, 0, common.ErrItemNotFound
	}

	account, err := s.store.Update(userID, func(a *Account) error {
		if a.Balance < item.Price {
			return common.ErrInsufficientBalance
		}
		a.Balance -= item.Price
		a.Inventory = append(a.Inventory, item.ID)
		return nil
	})
	if err != nil {
		return item, account.Balance, err
	}

	log.WithFields(log.Fields{"user_id": userID, "item": item.ID}).Info("Покупка в магазине")
	return item, account.Balance, nil
}

// Виды эффектов использования предмета.
const (
	EffectCoins      = "coins"       // коробка дала монеты
	EffectXP         = "xp"          // коробка дала опыт
	EffectXPBoost    = "xp_boost"    // активирован двойной опыт
	EffectLuckyCharm = "lucky_charm" // активирован талисман
	EffectVIP        = "vip"         // VIP-статус включён
	EffectVIPAgain   = "vip_again"   // VIP уже был активен (no-op)
	EffectRoleColor  = "role_color"  // цвет роли — выдаётся вручную
)

// UseResult — итог использования предмета.
type UseResult struct {
	Item        ShopItem
	Effect      string
	CoinsGained int64
	XPGained    int
	NewBalance  int64
	Grant       leveling.GrantResult // заполнен при EffectXP
}

// UseItem потребляет один экземпляр расходуемого предмета и применяет
// эффект. Постоянные предметы идемпотентны: повторная активация VIP —
// no-op ответ, не ошибка.
func (s *Service) UseItem(userID, query string) (UseResult, error) {
	item, ok := FindItem(query)
	if !ok {
		return UseResult{}, common.ErrItemNotFound
	}

	now := s.Now()
	res := UseResult{Item: item}
	var pendingXP int64

	account, err := s.store.Update(userID, func(a *Account) error {
		if !contains(a.Inventory, item.ID) {
			return common.ErrItemNotOwned
		}

		switch item.ID {
		case ItemMysteryBox:
			a.Inventory = removeOne(a.Inventory, item.ID)
			if s.randBool() {
				res.Effect = EffectCoins
				res.CoinsGained = s.randRange(100, 500)
				a.Balance += res.CoinsGained
			} else {
				res.Effect = EffectXP
				pendingXP = s.randRange(50, 200)
				res.XPGained = int(pendingXP)
			}

		case ItemXPBoost:
			a.Inventory = removeOne(a.Inventory, item.ID)
			res.Effect = EffectXPBoost
			a.XPBoostUntil = common.FormatTimestamp(now.Add(time.Hour))

		case ItemLuckyCharm:
			a.Inventory = removeOne(a.Inventory, item.ID)
			res.Effect = EffectLuckyCharm
			a.LuckyCharmUntil = common.FormatTimestamp(now.Add(time.Hour))

		case ItemVIPBadge:
			if a.VIPBadge {
				res.Effect = EffectVIPAgain
			} else {
				a.VIPBadge = true
				res.Effect = EffectVIP
			}

		case ItemRoleColor:
			// Выдаётся администратором вручную, предмет не расходуется
			res.Effect = EffectRoleColor
		}
		return nil
	})
	if err != nil {
		return res, err
	}
	res.NewBalance = account.Balance

	// Опыт из коробки идёт через сервис прокачки — в файл прокачки,
	// а не в файл экономики
	if pendingXP > 0 && s.leveling != nil {
		grant, err := s.leveling.GrantXP(userID, int(pendingXP))
		if err != nil {
			log.WithError(err).WithField("user_id", userID).Error("Опыт из коробки не начислен")
		} else {
			res.Grant = grant
		}
	}

	return res, nil
}

// Transfer — атомарный перевод: либо дебет и кредит вместе, либо ничего.
// Отклоняет перевод себе и неположительные суммы.
func (s *Service) Transfer(fromID, toID string, amount int64) (fromBalance, toBalance int64, err error) {
	if amount <= 0 {
		return 0, 0, common.ErrInvalidAmount
	}
	if fromID == toID {
		return 0, 0, common.ErrSelfTransfer
	}

	err = s.store.UpdatePair(fromID, toID, func(from, to *Account) error {
		if from.Balance < amount {
			return common.ErrInsufficientBalance
		}
		from.Balance -= amount
		to.Balance += amount
		fromBalance = from.Balance
		toBalance = to.Balance
		return nil
	})
	if err != nil {
		return 0, 0, err
	}

	log.WithFields(log.Fields{"from": fromID, "to": toID, "amount": amount}).Info("Перевод выполнен")
	return fromBalance, toBalance, nil
}

// Credit начисляет монеты на счёт (награды викторины и розыгрышей).
func (s *Service) Credit(userID string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, common.ErrInvalidAmount
	}
	a, err := s.store.Update(userID, func(a *Account) error {
		a.Balance += amount
		return nil
	})
	return a.Balance, err
}

// Richest возвращает n богатейших счетов.
func (s *Service) Richest(n int) []RichEntry {
	return s.store.Richest(n)
}

// Effects — активные эффекты счёта для отображения.
type Effects struct {
	XPBoostLeft    time.Duration // 0 — неактивен
	LuckyCharmLeft time.Duration
	VIP            bool
}

// ActiveEffects возвращает активные эффекты пользователя.
// Битая метка времени трактуется как неактивный эффект.
func (s *Service) ActiveEffects(userID string) Effects {
	a := s.store.Get(userID)
	now := s.Now()

	var e Effects
	if until, ok := common.ParseTimestamp(a.XPBoostUntil); ok && now.Before(until) {
		e.XPBoostLeft = until.Sub(now)
	}
	if until, ok := common.ParseTimestamp(a.LuckyCharmUntil); ok && now.Before(until) {
		e.LuckyCharmLeft = until.Sub(now)
	}
	e.VIP = a.VIPBadge
	return e
}

// XPMultiplier отдаёт множитель опыта: 2 при активном XP-бусте, иначе 1.
func (s *Service) XPMultiplier(userID string) int {
	if s.ActiveEffects(userID).XPBoostLeft > 0 {
		return 2
	}
	return 1
}

// ResetAll очищает все счета (админ-операция с подтверждением).
func (s *Service) ResetAll() error {
	log.Warn("Полный сброс экономики")
	return s.store.ResetAll()
}

func contains(items []string, id string) bool {
	for _, it := range items {
		if it == id {
			return true
		}
	}
	return false
}

// removeOne удаляет первый экземпляр id из items.
func removeOne(items []string, id string) []string {
	for i, it := range items {
		if it == id {
			return append(items[:i:i], items[i+1:]...)
		}
	}
	return items
}
