package leveling

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"levelbot/internal/common"
	"levelbot/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		MessageXP:         2,
		VoiceXPPerMinute:  3,
		XPCooldownSeconds: 60,
	}
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	store := NewStore(filepath.Join(t.TempDir(), "user_data.json"))
	require.NoError(t, store.Load())
	return NewService(store, testConfig())
}

func TestGrantXP(t *testing.T) {
	s := newTestService(t)

	res, err := s.GrantXP("42", 150)
	require.NoError(t, err)
	assert.False(t, res.LeveledUp)
	assert.Equal(t, 1, res.NewLevel)
	assert.Equal(t, 150, res.TotalXP)

	// Второе начисление пересекает порог 200
	res, err = s.GrantXP("42", 100)
	require.NoError(t, err)
	assert.True(t, res.LeveledUp)
	assert.Equal(t, 2, res.NewLevel)
	assert.Equal(t, 250, res.TotalXP)
}

func TestGrantXPRejectsNonPositive(t *testing.T) {
	s := newTestService(t)

	_, err := s.GrantXP("42", 0)
	assert.ErrorIs(t, err, common.ErrInvalidXPAmount)

	_, err = s.GrantXP("42", -5)
	assert.ErrorIs(t, err, common.ErrInvalidXPAmount)

	assert.Equal(t, 0, s.Get("42").XP, "состояние не изменилось")
}

func TestGrantXPExactAmount(t *testing.T) {
	s := newTestService(t)

	// Начисляется ровно запрошенная сумма, никаких скрытых множителей
	res, err := s.GrantXP("42", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, res.TotalXP)
}

func TestHandleMessageCooldown(t *testing.T) {
	s := newTestService(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.Now = func() time.Time { return now }

	// Первое сообщение — опыт начислен
	granted, res, err := s.HandleMessage("42", 2)
	require.NoError(t, err)
	assert.True(t, granted)
	assert.Equal(t, 2, res.TotalXP)

	// Сразу второе — кулдаун ещё не прошёл
	now = now.Add(30 * time.Second)
	granted, _, err = s.HandleMessage("42", 2)
	require.NoError(t, err)
	assert.False(t, granted)

	u := s.Get("42")
	assert.Equal(t, 2, u.XP, "опыт не менялся")
	assert.Equal(t, 1, u.MessagesSent, "счётчик сообщений не двигался на кулдауне")

	// Ровно 60 секунд от первого начисления — кулдаун прошёл
	now = now.Add(30 * time.Second)
	granted, res, err = s.HandleMessage("42", 2)
	require.NoError(t, err)
	assert.True(t, granted)
	assert.Equal(t, 4, res.TotalXP)
	assert.Equal(t, 2, s.Get("42").MessagesSent)
}

func TestCanGainMessageXPMalformedTimestamp(t *testing.T) {
	// Битая метка времени трактуется как «кулдаун прошёл»
	bad := "это не время"
	u := &UserProgress{LastMessageTime: &bad}
	assert.True(t, CanGainMessageXP(u, time.Now(), time.Minute))

	// Отсутствие метки — тоже проходит
	assert.True(t, CanGainMessageXP(&UserProgress{}, time.Now(), time.Minute))
}

func TestSetLevel(t *testing.T) {
	s := newTestService(t)

	u, err := s.SetLevel("42", 5)
	require.NoError(t, err)
	assert.Equal(t, 5, u.Level)
	assert.Equal(t, 800, u.XP, "XP пересчитан как (level-1)*200")

	_, err = s.SetLevel("42", 0)
	assert.ErrorIs(t, err, common.ErrInvalidLevel)
}

func TestAddVoiceMinutes(t *testing.T) {
	s := newTestService(t)

	res, err := s.AddVoiceMinutes("42", 2, 6)
	require.NoError(t, err)
	assert.Equal(t, 6, res.TotalXP)

	u := s.Get("42")
	assert.Equal(t, 2, u.VoiceTime)
	assert.Equal(t, 2, u.TotalVoiceTime)
}

func TestVoiceJoinMirror(t *testing.T) {
	s := newTestService(t)

	s.SetVoiceJoin("42")
	require.NotNil(t, s.Get("42").LastVoiceJoin)

	s.ClearVoiceJoin("42")
	assert.Nil(t, s.Get("42").LastVoiceJoin)
}
