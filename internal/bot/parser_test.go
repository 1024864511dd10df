package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	p := NewCommandParser()

	cmd, ok := p.Parse("!gamble 100")
	require.True(t, ok)
	assert.Equal(t, "gamble", cmd.Name)
	assert.Equal(t, []string{"100"}, cmd.Args)
	assert.Equal(t, "100", cmd.Raw)

	// Имя команды нормализуется к нижнему регистру
	cmd, ok = p.Parse("!TOP")
	require.True(t, ok)
	assert.Equal(t, "top", cmd.Name)
	assert.Empty(t, cmd.Args)

	// Raw сохраняет текст после имени как есть (для !poll с разделителями)
	cmd, ok = p.Parse("!poll Вопрос? | да | нет")
	require.True(t, ok)
	assert.Equal(t, "poll", cmd.Name)
	assert.Equal(t, "Вопрос? | да | нет", cmd.Raw)
}

func TestParseNotACommand(t *testing.T) {
	p := NewCommandParser()

	for _, input := range []string{"привет", "", "!", "  ", "level"} {
		_, ok := p.Parse(input)
		assert.False(t, ok, "input=%q", input)
	}
}

func TestParseTrimsWhitespace(t *testing.T) {
	p := NewCommandParser()

	cmd, ok := p.Parse("  !level  @user  ")
	require.True(t, ok)
	assert.Equal(t, "level", cmd.Name)
	assert.Equal(t, []string{"@user"}, cmd.Args)
}
