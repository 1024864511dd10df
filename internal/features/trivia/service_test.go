package trivia

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"levelbot/internal/common"
	"levelbot/internal/config"
)

type fakeRewarder struct {
	credits map[string]int64
}

func (f *fakeRewarder) Credit(userID string, amount int64) (int64, error) {
	if f.credits == nil {
		f.credits = make(map[string]int64)
	}
	f.credits[userID] += amount
	return f.credits[userID], nil
}

func newTestService(t *testing.T, rewards Rewarder) *Service {
	t.Helper()
	scores := NewScoreStore(filepath.Join(t.TempDir(), "trivia_scores.json"))
	require.NoError(t, scores.Load())

	cfg := &config.Config{TriviaAnswerSeconds: 15, TriviaReward: 10}
	s := NewService(scores, rewards, cfg)
	s.randN = func(int) int { return 0 } // всегда первый вопрос
	return s
}

func TestStartRound(t *testing.T) {
	s := newTestService(t, nil)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.Now = func() time.Time { return now }

	res, err := s.Start("channel")
	require.NoError(t, err)
	assert.Equal(t, questions[0].Text, res.Question.Text)
	assert.Equal(t, 15*time.Second, res.Window)

	// Второй раунд в том же канале до истечения окна
	_, err = s.Start("channel")
	assert.ErrorIs(t, err, common.ErrTriviaActive)

	// В другом канале — без ограничений
	_, err = s.Start("other")
	assert.NoError(t, err)

	// После истечения окна просроченный раунд вытесняется молча
	now = now.Add(16 * time.Second)
	_, err = s.Start("channel")
	assert.NoError(t, err)
}

func TestCheckAnswer(t *testing.T) {
	rewards := &fakeRewarder{}
	s := newTestService(t, rewards)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.Now = func() time.Time { return now }

	_, err := s.Start("channel")
	require.NoError(t, err)

	// Неверный ответ не закрывает раунд
	_, won := s.CheckAnswer("channel", "alice", "сатурн")
	assert.False(t, won)

	// Верный ответ: регистр и пробелы не важны
	res, won := s.CheckAnswer("channel", "bob", "  Юпитер ")
	require.True(t, won)
	assert.Equal(t, int64(10), res.Reward)
	assert.Equal(t, 1, res.Score)
	assert.Equal(t, int64(10), rewards.credits["bob"])

	// Раунд закрыт — второй верный ответ опоздал
	_, won = s.CheckAnswer("channel", "carol", "юпитер")
	assert.False(t, won)
}

func TestCheckAnswerAfterWindow(t *testing.T) {
	s := newTestService(t, nil)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.Now = func() time.Time { return now }

	_, err := s.Start("channel")
	require.NoError(t, err)

	now = now.Add(16 * time.Second)
	_, won := s.CheckAnswer("channel", "bob", "юпитер")
	assert.False(t, won, "ответ после окна не принимается")
}

func TestExpire(t *testing.T) {
	s := newTestService(t, nil)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.Now = func() time.Time { return now }

	res, err := s.Start("channel")
	require.NoError(t, err)

	q, expired := s.Expire("channel", res.RoundID)
	assert.True(t, expired)
	assert.Equal(t, questions[0].Answers[0], q.Answers[0])

	// Повторное истечение того же раунда — no-op
	_, expired = s.Expire("channel", res.RoundID)
	assert.False(t, expired)
}

func TestExpireIgnoresWonRound(t *testing.T) {
	s := newTestService(t, nil)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.Now = func() time.Time { return now }

	res, err := s.Start("channel")
	require.NoError(t, err)

	_, won := s.CheckAnswer("channel", "bob", "юпитер")
	require.True(t, won)

	_, expired := s.Expire("channel", res.RoundID)
	assert.False(t, expired, "выигранный раунд не объявляет таймаут")
}

func TestScoresPersist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trivia_scores.json")

	scores := NewScoreStore(path)
	require.NoError(t, scores.Load())
	_, err := scores.Increment("bob")
	require.NoError(t, err)
	_, err = scores.Increment("bob")
	require.NoError(t, err)
	_, err = scores.Increment("alice")
	require.NoError(t, err)

	reloaded := NewScoreStore(path)
	require.NoError(t, reloaded.Load())

	top := reloaded.Top(10)
	require.Len(t, top, 2)
	assert.Equal(t, "bob", top[0].UserID)
	assert.Equal(t, 2, top[0].Score)

	require.NoError(t, reloaded.Reset())
	assert.Empty(t, reloaded.Top(10))
}
