package economy

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"levelbot/internal/common"
	"levelbot/internal/config"
	"levelbot/internal/features/leveling"
)

func testConfig() *config.Config {
	return &config.Config{
		DailyRewardMin: 50,
		DailyRewardMax: 200,
		WorkRewardMin:  20,
		WorkRewardMax:  100,
		DailyUseLimit:  5,
	}
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	dir := t.TempDir()

	store := NewStore(filepath.Join(dir, "economy_data.json"))
	require.NoError(t, store.Load())

	levelingStore := leveling.NewStore(filepath.Join(dir, "user_data.json"))
	require.NoError(t, levelingStore.Load())
	levelingService := leveling.NewService(levelingStore, testConfig())

	s := NewService(store, testConfig(), levelingService)
	// Детерминированный рандом: минимальные награды, всегда «выигрыш»
	s.randN = func(n int64) int64 { return 0 }
	s.randBool = func() bool { return true }
	return s
}

func TestDaily(t *testing.T) {
	s := newTestService(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.Now = func() time.Time { return now }

	res, err := s.Daily("42")
	require.NoError(t, err)
	assert.Equal(t, int64(50), res.Reward)
	assert.Equal(t, int64(50), res.NewBalance)

	// Повторное получение до истечения 24 часов
	now = now.Add(23 * time.Hour)
	res, err = s.Daily("42")
	assert.ErrorIs(t, err, common.ErrDailyCooldown)
	assert.Equal(t, time.Hour, res.Remaining)
	assert.Equal(t, int64(50), s.Get("42").Balance, "баланс не изменился")

	// Скользящие 24 часа от прошлого получения
	now = now.Add(time.Hour)
	_, err = s.Daily("42")
	require.NoError(t, err)
	assert.Equal(t, int64(100), s.Get("42").Balance)
}

func TestWorkDailyLimit(t *testing.T) {
	s := newTestService(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.Now = func() time.Time { return now }

	for i := 1; i <= 5; i++ {
		res, err := s.Work("42")
		require.NoError(t, err)
		assert.Equal(t, i, res.UsedToday)
	}

	// Шестая попытка в тот же день отклоняется
	_, err := s.Work("42")
	assert.ErrorIs(t, err, common.ErrWorkLimit)
	assert.Equal(t, int64(100), s.Get("42").Balance, "5 × 20 монет")

	// Следующий календарный день (UTC) — счётчик обнулён
	now = now.Add(13 * time.Hour)
	res, err := s.Work("42")
	require.NoError(t, err)
	assert.Equal(t, 1, res.UsedToday)
}

func TestDayReconcileResetsBothCounters(t *testing.T) {
	s := newTestService(t)
	now := time.Date(2025, 6, 1, 23, 0, 0, 0, time.UTC)
	s.Now = func() time.Time { return now }

	_, err := s.Work("42")
	require.NoError(t, err)
	_, err = s.Daily("42") // стартовый капитал для ставки
	require.NoError(t, err)
	_, err = s.Gamble("42", 10)
	require.NoError(t, err)

	a := s.Get("42")
	assert.Equal(t, 1, a.WorkCount)
	assert.Equal(t, 1, a.GambleCount)

	// Смена календарного дня сбрасывает ОБА счётчика разом
	now = now.Add(2 * time.Hour)
	a = s.Get("42")
	assert.Equal(t, 0, a.WorkCount)
	assert.Equal(t, 0, a.GambleCount)
}

func TestGamble(t *testing.T) {
	s := newTestService(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.Now = func() time.Time { return now }

	_, err := s.Daily("42") // баланс 50
	require.NoError(t, err)

	// Выигрыш: баланс растёт ровно на ставку
	res, err := s.Gamble("42", 30)
	require.NoError(t, err)
	assert.True(t, res.Won)
	assert.Equal(t, int64(80), res.NewBalance)

	// Проигрыш: баланс падает ровно на ставку
	s.randBool = func() bool { return false }
	res, err = s.Gamble("42", 30)
	require.NoError(t, err)
	assert.False(t, res.Won)
	assert.Equal(t, int64(50), res.NewBalance)
}

func TestGambleValidation(t *testing.T) {
	s := newTestService(t)

	_, err := s.Gamble("42", 0)
	assert.ErrorIs(t, err, common.ErrInvalidAmount)

	_, err = s.Gamble("42", -10)
	assert.ErrorIs(t, err, common.ErrInvalidAmount)

	// Ставка больше баланса
	_, err = s.Gamble("42", 100)
	assert.ErrorIs(t, err, common.ErrInsufficientBalance)

	a := s.Get("42")
	assert.Equal(t, 0, a.GambleCount, "отклонённые ставки не тратят лимит")
}

func TestGambleDailyLimit(t *testing.T) {
	s := newTestService(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.Now = func() time.Time { return now }

	_, err := s.Credit("42", 1000)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		_, err := s.Gamble("42", 10)
		require.NoError(t, err)
	}

	_, err = s.Gamble("42", 10)
	assert.ErrorIs(t, err, common.ErrGambleLimit)
}

func TestBuy(t *testing.T) {
	s := newTestService(t)

	// Недостаточно средств — ни списания, ни предмета
	_, _, err := s.Buy("42", "xp_boost")
	assert.ErrorIs(t, err, common.ErrInsufficientBalance)
	assert.Empty(t, s.Get("42").Inventory)

	_, err = s.Credit("42", 600)
	require.NoError(t, err)

	item, balance, err := s.Buy("42", "xp_boost")
	require.NoError(t, err)
	assert.Equal(t, ItemXPBoost, item.ID)
	assert.Equal(t, int64(100), balance)
	assert.Equal(t, []string{ItemXPBoost}, s.Get("42").Inventory)

	// Неизвестный товар
	_, _, err = s.Buy("42", "что-то")
	assert.ErrorIs(t, err, common.ErrItemNotFound)
}

func TestUseXPBoost(t *testing.T) {
	s := newTestService(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.Now = func() time.Time { return now }

	_, err := s.Credit("42", 500)
	require.NoError(t, err)
	_, _, err = s.Buy("42", "xp_boost")
	require.NoError(t, err)

	res, err := s.UseItem("42", "xp_boost")
	require.NoError(t, err)
	assert.Equal(t, EffectXPBoost, res.Effect)
	assert.Empty(t, s.Get("42").Inventory, "расходник потреблён")

	// Буст активен час: множитель 2, потом снова 1
	assert.Equal(t, 2, s.XPMultiplier("42"))
	now = now.Add(61 * time.Minute)
	assert.Equal(t, 1, s.XPMultiplier("42"))
}

func TestUseItemNotOwned(t *testing.T) {
	s := newTestService(t)

	_, err := s.UseItem("42", "xp_boost")
	assert.ErrorIs(t, err, common.ErrItemNotOwned)
}

func TestUseVIPIdempotent(t *testing.T) {
	s := newTestService(t)

	_, err := s.Credit("42", 10000)
	require.NoError(t, err)
	_, _, err = s.Buy("42", "vip_badge")
	require.NoError(t, err)

	res, err := s.UseItem("42", "vip_badge")
	require.NoError(t, err)
	assert.Equal(t, EffectVIP, res.Effect)
	assert.True(t, s.Get("42").VIPBadge)

	// Повторная активация — no-op, не ошибка
	res, err = s.UseItem("42", "vip_badge")
	require.NoError(t, err)
	assert.Equal(t, EffectVIPAgain, res.Effect)
}

func TestUseMysteryBox(t *testing.T) {
	s := newTestService(t)

	_, err := s.Credit("42", 200)
	require.NoError(t, err)
	_, _, err = s.Buy("42", "mystery_box")
	require.NoError(t, err)

	// randBool=true → монеты, randN=0 → минимум диапазона (100)
	res, err := s.UseItem("42", "mystery_box")
	require.NoError(t, err)
	assert.Equal(t, EffectCoins, res.Effect)
	assert.Equal(t, int64(100), res.CoinsGained)
	assert.Equal(t, int64(200), res.NewBalance)
}

func TestUseMysteryBoxXP(t *testing.T) {
	s := newTestService(t)

	_, err := s.Credit("42", 100)
	require.NoError(t, err)
	_, _, err = s.Buy("42", "mystery_box")
	require.NoError(t, err)

	// randBool=false → ветка опыта, randN=0 → минимум (50 XP)
	s.randBool = func() bool { return false }
	res, err := s.UseItem("42", "mystery_box")
	require.NoError(t, err)
	assert.Equal(t, EffectXP, res.Effect)
	assert.Equal(t, 50, res.XPGained)
	assert.Equal(t, 50, res.Grant.TotalXP, "опыт ушёл в прокачку")
}

func TestTransfer(t *testing.T) {
	s := newTestService(t)

	_, err := s.Credit("alice", 100)
	require.NoError(t, err)

	from, to, err := s.Transfer("alice", "bob", 40)
	require.NoError(t, err)
	assert.Equal(t, int64(60), from)
	assert.Equal(t, int64(40), to)
}

func TestTransferValidation(t *testing.T) {
	s := newTestService(t)

	_, err := s.Credit("alice", 100)
	require.NoError(t, err)

	_, _, err = s.Transfer("alice", "alice", 10)
	assert.ErrorIs(t, err, common.ErrSelfTransfer)

	_, _, err = s.Transfer("alice", "bob", 0)
	assert.ErrorIs(t, err, common.ErrInvalidAmount)

	// Недостаточно средств: ни один счёт не изменился
	_, _, err = s.Transfer("alice", "bob", 500)
	assert.ErrorIs(t, err, common.ErrInsufficientBalance)
	assert.Equal(t, int64(100), s.Get("alice").Balance)
	assert.Equal(t, int64(0), s.Get("bob").Balance)
}

func TestRichest(t *testing.T) {
	s := newTestService(t)

	for id, balance := range map[string]int64{"a": 10, "b": 300, "c": 50} {
		_, err := s.Credit(id, balance)
		require.NoError(t, err)
	}

	top := s.Richest(2)
	require.Len(t, top, 2)
	assert.Equal(t, "b", top[0].UserID)
	assert.Equal(t, "c", top[1].UserID)
}

func TestActiveEffectsMalformedTimestamp(t *testing.T) {
	s := newTestService(t)

	bad := "мусор"
	_, err := s.store.Update("42", func(a *Account) error {
		a.XPBoostUntil = &bad
		return nil
	})
	require.NoError(t, err)

	// Битая метка — эффект неактивен, множитель 1
	assert.Zero(t, s.ActiveEffects("42").XPBoostLeft)
	assert.Equal(t, 1, s.XPMultiplier("42"))
}
