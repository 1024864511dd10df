package leveling

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore(filepath.Join(t.TempDir(), "user_data.json"))
	require.NoError(t, store.Load())
	return store
}

func TestStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user_data.json")

	store := NewStore(path)
	require.NoError(t, store.Load())

	_, err := store.Update("42", func(u *UserProgress) {
		u.XP = 450
		u.Level = 3
		u.MessagesSent = 17
	})
	require.NoError(t, err)

	// Свежее хранилище читает тот же файл
	reloaded := NewStore(path)
	require.NoError(t, reloaded.Load())

	u := reloaded.Get("42")
	assert.Equal(t, 450, u.XP)
	assert.Equal(t, 3, u.Level)
	assert.Equal(t, 17, u.MessagesSent)
}

func TestStoreLoadMissingFile(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, store.Load())
	assert.Equal(t, 0, store.Count())
}

func TestStoreLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user_data.json")
	require.NoError(t, os.WriteFile(path, []byte("{не json"), 0o644))

	// Битый файл — пустое состояние, не ошибка
	store := NewStore(path)
	require.NoError(t, store.Load())
	assert.Equal(t, 0, store.Count())
}

func TestStoreGetUnknownUser(t *testing.T) {
	store := newTestStore(t)

	u := store.Get("ghost")
	assert.Equal(t, 0, u.XP)
	assert.Equal(t, 1, u.Level)
	assert.Equal(t, 0, store.Count(), "Get не создаёт запись")
}

func TestStoreListTop(t *testing.T) {
	store := newTestStore(t)

	for id, xp := range map[string]int{"a": 100, "b": 500, "c": 300} {
		_, err := store.Update(id, func(u *UserProgress) { u.XP = xp })
		require.NoError(t, err)
	}

	top := store.ListTop(2)
	require.Len(t, top, 2)
	assert.Equal(t, "b", top[0].UserID)
	assert.Equal(t, "c", top[1].UserID)

	// n больше размера — возвращаем всех
	assert.Len(t, store.ListTop(10), 3)
}

func TestStoreResetUser(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Update("42", func(u *UserProgress) {
		u.XP = 999
		u.Level = 5
	})
	require.NoError(t, err)

	require.NoError(t, store.ResetUser("42"))

	u := store.Get("42")
	assert.Equal(t, 0, u.XP)
	assert.Equal(t, 1, u.Level)
}

func TestStoreResetAll(t *testing.T) {
	store := newTestStore(t)

	for _, id := range []string{"a", "b"} {
		_, err := store.Update(id, func(u *UserProgress) { u.XP = 100 })
		require.NoError(t, err)
	}

	require.NoError(t, store.ResetAll())
	assert.Equal(t, 0, store.Count())
	assert.Equal(t, 0, store.Get("a").XP)
}
