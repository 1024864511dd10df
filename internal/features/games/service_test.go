package games

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(n int) *Service {
	s := NewService()
	s.randN = func(int) int { return n }
	return s
}

func TestParseDice(t *testing.T) {
	cases := []struct {
		spec  string
		dice  int
		sides int
		ok    bool
	}{
		{"", 1, 6, true},
		{"2d6", 2, 6, true},
		{"d20", 1, 20, true},
		{"20", 1, 20, true},
		{"D8", 1, 8, true},
		{"0d6", 0, 0, false},
		{"21d6", 0, 0, false},
		{"2d1", 0, 0, false},
		{"2d1001", 0, 0, false},
		{"abc", 0, 0, false},
		{"2dx", 0, 0, false},
	}

	for _, c := range cases {
		dice, sides, ok := ParseDice(c.spec)
		assert.Equal(t, c.ok, ok, "spec=%q", c.spec)
		if c.ok {
			assert.Equal(t, c.dice, dice, "spec=%q", c.spec)
			assert.Equal(t, c.sides, sides, "spec=%q", c.spec)
		}
	}
}

func TestRoll(t *testing.T) {
	s := newTestService(2) // каждая кость выпадает на 3

	res := s.Roll(3, 6)
	assert.Equal(t, []int{3, 3, 3}, res.Rolls)
	assert.Equal(t, 9, res.Total)
}

func TestRandomSwapsBounds(t *testing.T) {
	s := newTestService(0)

	assert.Equal(t, 1, s.Random(1, 100))
	// Перевёрнутые границы
	assert.Equal(t, 1, s.Random(100, 1))
}

func TestPick(t *testing.T) {
	s := newTestService(1)

	choice, ok := s.Pick([]string{"кофе", "чай", "сок"})
	require.True(t, ok)
	assert.Equal(t, "чай", choice)

	_, ok = s.Pick([]string{"одно"})
	assert.False(t, ok)
}

func TestParseMove(t *testing.T) {
	for input, want := range map[string]string{
		"камень":  MoveRock,
		"rock":    MoveRock,
		"НОЖНИЦЫ": MoveScissors,
		"paper":   MovePaper,
		"б":       MovePaper,
	} {
		move, ok := ParseMove(input)
		require.True(t, ok, "input=%q", input)
		assert.Equal(t, want, move)
	}

	_, ok := ParseMove("ящерица")
	assert.False(t, ok)
}

func TestRPSOutcomes(t *testing.T) {
	// randN(3)==0 → бот всегда играет камень
	s := newTestService(0)

	assert.Equal(t, 0, s.RPS(MoveRock).Outcome, "камень против камня — ничья")
	assert.Equal(t, 1, s.RPS(MovePaper).Outcome, "бумага бьёт камень")
	assert.Equal(t, -1, s.RPS(MoveScissors).Outcome, "камень бьёт ножницы")
}
