package localfile

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "github.com/yourusername/trivia-quiz/internal/pkg/errors"
)

func newTestCache(t *testing.T) *CacheRepo {
	t.Helper()
	cache, err := NewCacheRepo(t.TempDir())
	require.NoError(t, err)
	return cache
}

func TestCacheRepo_RoundTrip(t *testing.T) {
	// Arrange
	cache := newTestCache(t)
	value := map[string]int{"вопросов": 10}

	// Act
	require.NoError(t, cache.SetJSON("key", value, time.Minute))
	var got map[string]int
	err := cache.GetJSON("key", &got)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, value, got)
}

func TestCacheRepo_Miss(t *testing.T) {
	// Arrange
	cache := newTestCache(t)

	// Act
	var got string
	err := cache.GetJSON("missing", &got)

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCacheRepo_ExpiredEntryIsEvicted(t *testing.T) {
	// Arrange: запись с ничтожным сроком годности
	dir := t.TempDir()
	cache, err := NewCacheRepo(dir)
	require.NoError(t, err)
	require.NoError(t, cache.SetJSON("key", "значение", time.Millisecond))
	time.Sleep(10 * time.Millisecond)

	// Act
	var got string
	err = cache.GetJSON("key", &got)

	// Assert: просроченная запись отдается как промах и удаляется с диска
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	_, statErr := os.Stat(filepath.Join(dir, "key"))
	assert.True(t, os.IsNotExist(statErr), "Файл просроченной записи должен быть удален")
}

func TestCacheRepo_CorruptEntry(t *testing.T) {
	// Arrange: в файл кеша записан мусор
	dir := t.TempDir()
	cache, err := NewCacheRepo(dir)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "key"), []byte("{мусор"), 0o644))

	// Act
	var got string
	err = cache.GetJSON("key", &got)

	// Assert: поврежденная запись — промах, не ошибка формата
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCacheRepo_Delete(t *testing.T) {
	// Arrange
	cache := newTestCache(t)
	require.NoError(t, cache.SetJSON("key", 1, time.Minute))

	// Act
	require.NoError(t, cache.Delete("key"))

	// Assert
	var got int
	assert.ErrorIs(t, cache.GetJSON("key", &got), apperrors.ErrNotFound)

	// Повторное удаление — не ошибка
	assert.NoError(t, cache.Delete("key"))
}
