package leveling

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestXPToLevel(t *testing.T) {
	cases := []struct {
		xp    int
		level int
	}{
		{0, 1},
		{1, 1},
		{199, 1},
		{200, 2},
		{399, 2},
		{400, 3},
		{999, 5},
		{1000, 6},
	}

	for _, c := range cases {
		assert.Equal(t, c.level, XPToLevel(c.xp), "xp=%d", c.xp)
	}
}

func TestLevelProgress(t *testing.T) {
	// 250 XP на 2-м уровне: 50 внутри уровня, 150 до следующего
	current, needed := LevelProgress(250, 2)
	assert.Equal(t, 50, current)
	assert.Equal(t, 150, needed)

	// Ровно на границе уровня
	current, needed = LevelProgress(200, 2)
	assert.Equal(t, 0, current)
	assert.Equal(t, 200, needed)

	// Новичок без опыта
	current, needed = LevelProgress(0, 1)
	assert.Equal(t, 0, current)
	assert.Equal(t, 200, needed)
}
