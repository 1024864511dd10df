package giveaway

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"levelbot/internal/common"
)

func newTestService() *Service {
	s := NewService()
	s.randN = func(int) int { return 0 } // победитель — первый участник
	return s
}

func TestParseDuration(t *testing.T) {
	cases := []struct {
		input string
		want  time.Duration
		ok    bool
	}{
		{"30s", 30 * time.Second, true},
		{"10m", 10 * time.Minute, true},
		{"2h", 2 * time.Hour, true},
		{"1d", 24 * time.Hour, true},
		{"7d", 7 * 24 * time.Hour, true},
		{"29s", 0, false}, // короче минимума
		{"8d", 0, false},  // дольше максимума
		{"abc", 0, false},
		{"", 0, false},
	}

	for _, c := range cases {
		d, err := ParseDuration(c.input)
		if c.ok {
			require.NoError(t, err, "input=%q", c.input)
			assert.Equal(t, c.want, d)
		} else {
			assert.ErrorIs(t, err, common.ErrGiveawayDuration, "input=%q", c.input)
		}
	}
}

func TestEntrants(t *testing.T) {
	s := newTestService()

	g := s.Create("channel", "host", "Nitro", time.Minute)
	s.BindMessage(g.ID, "msg1")

	s.AddEntrant("msg1", "alice")
	s.AddEntrant("msg1", "alice") // повтор игнорируется
	s.AddEntrant("msg1", "bob")
	s.AddEntrant("другое-сообщение", "carol")

	active := s.Active()
	require.Len(t, active, 1)
	assert.ElementsMatch(t, []string{"alice", "bob"}, active[0].Entrants)

	s.RemoveEntrant("msg1", "alice")
	assert.Equal(t, []string{"bob"}, s.Active()[0].Entrants)
}

func TestEndDue(t *testing.T) {
	s := newTestService()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.Now = func() time.Time { return now }

	g := s.Create("channel", "host", "Nitro", time.Minute)
	s.BindMessage(g.ID, "msg1")
	s.AddEntrant("msg1", "alice")
	s.AddEntrant("msg1", "bob")

	// До срока ничего не завершается
	assert.Empty(t, s.EndDue())

	now = now.Add(61 * time.Second)
	ended := s.EndDue()
	require.Len(t, ended, 1)
	assert.Equal(t, "alice", ended[0].WinnerID)

	// Завершённый розыгрыш не завершается повторно
	assert.Empty(t, s.EndDue())
	assert.Empty(t, s.Active())
}

func TestEndDueNoEntrants(t *testing.T) {
	s := newTestService()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.Now = func() time.Time { return now }

	s.Create("channel", "host", "Nitro", time.Minute)

	now = now.Add(2 * time.Minute)
	ended := s.EndDue()
	require.Len(t, ended, 1)
	assert.Empty(t, ended[0].WinnerID)
}

func TestReroll(t *testing.T) {
	s := newTestService()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.Now = func() time.Time { return now }

	g := s.Create("channel", "host", "Nitro", time.Minute)
	s.BindMessage(g.ID, "msg1")
	s.AddEntrant("msg1", "alice")
	s.AddEntrant("msg1", "bob")

	// Активный розыгрыш нельзя перевыбрать
	_, err := s.Reroll(g.ID)
	assert.ErrorIs(t, err, common.ErrGiveawayNotFound)

	now = now.Add(2 * time.Minute)
	s.EndDue()

	s.randN = func(int) int { return 1 }
	rerolled, err := s.Reroll(g.ID)
	require.NoError(t, err)
	assert.Equal(t, "bob", rerolled.WinnerID)

	_, err = s.Reroll("нет-такого")
	assert.ErrorIs(t, err, common.ErrGiveawayNotFound)
}
