package admin

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

func newTestService(t *testing.T) (*Service, *leveling.Service) {
	t.Helper()
	store := leveling.NewStore(filepath.Join(t.TempDir(), "user_data.json"))
	require.NoError(t, store.Load())
	levelingService := leveling.NewService(store, &config.Config{XPCooldownSeconds: 60})
	return NewService(levelingService, nil), levelingService
}

func TestConfirmFlow(t *testing.T) {
	s, levelingService := newTestService(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.Now = func() time.Time { return now }

	_, err := levelingService.GrantXP("target", 500)
	require.NoError(t, err)

	p := s.Request("admin", ActionResetUser, "target")
	assert.Len(t, p.Token, 8, "первый сегмент UUID")
	assert.True(t, s.HasPending("admin"))

	// Верный токен в окне — операция выполняется
	result, err := s.Confirm("admin", p.Token)
	require.NoError(t, err)
	assert.Equal(t, ActionResetUser, result.Action)
	assert.Equal(t, 0, levelingService.Get("target").XP, "прогресс сброшен")
	assert.False(t, s.HasPending("admin"))
}

func TestConfirmExpired(t *testing.T) {
	s, levelingService := newTestService(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.Now = func() time.Time { return now }

	_, err := levelingService.GrantXP("target", 500)
	require.NoError(t, err)

	p := s.Request("admin", ActionResetUser, "target")

	// 31 секунда — окно истекло, состояние не тронуто
	now = now.Add(31 * time.Second)
	_, err = s.Confirm("admin", p.Token)
	assert.ErrorIs(t, err, common.ErrConfirmExpired)
	assert.Equal(t, 500, levelingService.Get("target").XP)

	// Запрос снят, повторное подтверждение — «нет ожидающих»
	_, err = s.Confirm("admin", p.Token)
	assert.ErrorIs(t, err, common.ErrNoPendingConfirm)
}

func TestConfirmWrongToken(t *testing.T) {
	s, levelingService := newTestService(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.Now = func() time.Time { return now }

	_, err := levelingService.GrantXP("target", 500)
	require.NoError(t, err)

	p := s.Request("admin", ActionResetUser, "target")

	// Неверный токен не выполняет операцию и не снимает запрос
	_, err = s.Confirm("admin", "wrong")
	assert.ErrorIs(t, err, common.ErrWrongConfirmToken)
	assert.Equal(t, 500, levelingService.Get("target").XP)
	assert.True(t, s.HasPending("admin"))

	// Правильный токен всё ещё работает
	_, err = s.Confirm("admin", p.Token)
	require.NoError(t, err)
	assert.Equal(t, 0, levelingService.Get("target").XP)
}

func TestConfirmNoPending(t *testing.T) {
	s, _ := newTestService(t)

	_, err := s.Confirm("admin", "abc")
	assert.ErrorIs(t, err, common.ErrNoPendingConfirm)
}

func TestRequestReplacesPending(t *testing.T) {
	s, _ := newTestService(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.Now = func() time.Time { return now }

	first := s.Request("admin", ActionResetUser, "target")
	second := s.Request("admin", ActionResetAll, "")

	// Старый токен больше не действует
	_, err := s.Confirm("admin", first.Token)
	if first.Token != second.Token {
		assert.ErrorIs(t, err, common.ErrWrongConfirmToken)
	}
}

func TestConfirmTokenTrimsSpace(t *testing.T) {
	s, _ := newTestService(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.Now = func() time.Time { return now }

	p := s.Request("admin", ActionResetAll, "")

	_, err := s.Confirm("admin", "  "+p.Token+"  ")
	assert.NoError(t, err)
}
