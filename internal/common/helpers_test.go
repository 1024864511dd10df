package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPluralizeCoins(t *testing.T) {
	cases := map[int64]string{
		0:   "монет",
		1:   "монета",
		2:   "монеты",
		4:   "монеты",
		5:   "монет",
		11:  "монет",
		12:  "монет",
		21:  "монета",
		22:  "монеты",
		100: "монет",
		101: "монета",
		111: "монет",
	}
	for n, want := range cases {
		assert.Equal(t, want, PluralizeCoins(n), "n=%d", n)
	}
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "45с", FormatDuration(45*time.Second))
	assert.Equal(t, "2м 5с", FormatDuration(125*time.Second))
	assert.Equal(t, "1ч 23м 45с", FormatDuration(time.Hour+23*time.Minute+45*time.Second))
}

func TestFormatVoiceMinutes(t *testing.T) {
	assert.Equal(t, "45м", FormatVoiceMinutes(45))
	assert.Equal(t, "2ч 5м", FormatVoiceMinutes(125))
}

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "[█████░░░░░] 100/200", ProgressBar(100, 200, 10))
	assert.Equal(t, "[░░░░░░░░░░] 0/200", ProgressBar(0, 200, 10))
	// Переполнение не выходит за ширину
	assert.Equal(t, "[██████████] 250/200", ProgressBar(250, 200, 10))
}

func TestParseTimestamp(t *testing.T) {
	// nil и пустая строка — «метки нет»
	_, ok := ParseTimestamp(nil)
	assert.False(t, ok)

	empty := ""
	_, ok = ParseTimestamp(&empty)
	assert.False(t, ok)

	// Битая метка тоже не валит процесс
	bad := "не время"
	_, ok = ParseTimestamp(&bad)
	assert.False(t, ok)

	// Валидная метка ходит туда-обратно
	now := time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)
	s := FormatTimestamp(now)
	parsed, ok := ParseTimestamp(s)
	assert.True(t, ok)
	assert.True(t, parsed.Equal(now))
}

func TestUTCDate(t *testing.T) {
	// Дата берётся по UTC независимо от зоны
	msk := time.FixedZone("MSK", 3*3600)
	late := time.Date(2025, 6, 2, 1, 30, 0, 0, msk) // 22:30 UTC 1 июня
	assert.Equal(t, "2025-06-01", UTCDate(late))
}
