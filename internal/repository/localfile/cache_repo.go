package localfile

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	apperrors "github.com/yourusername/trivia-quiz/internal/pkg/errors"
)

// CacheRepo реализует repository.CacheRepository поверх файлов.
// Каждая запись хранится в своем файле вместе с меткой времени и
// сроком годности; просроченная запись вычищается при чтении.
type CacheRepo struct {
	dir string
	mu  sync.Mutex
}

// cacheEnvelope — формат записи кеша на диске
type cacheEnvelope struct {
	Value     json.RawMessage `json:"value"`
	Timestamp time.Time       `json:"timestamp"`
	ExpiresAt time.Time       `json:"expires_at"`
}

// NewCacheRepo создает файловый кеш в каталоге dir
func NewCacheRepo(dir string) (*CacheRepo, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &CacheRepo{dir: dir}, nil
}

func (r *CacheRepo) path(key string) string {
	return filepath.Join(r.dir, key)
}

// SetJSON сохраняет значение в кеше со сроком годности expiration
func (r *CacheRepo) SetJSON(key string, value interface{}, expiration time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	now := time.Now()
	data, err := json.Marshal(cacheEnvelope{
		Value:     raw,
		Timestamp: now,
		ExpiresAt: now.Add(expiration),
	})
	if err != nil {
		return err
	}
	return os.WriteFile(r.path(key), data, 0o644)
}

// GetJSON читает значение из кеша. Для отсутствующей, поврежденной или
// просроченной записи возвращает apperrors.ErrNotFound; просроченная
// запись при этом удаляется.
func (r *CacheRepo) GetJSON(key string, dest interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := os.ReadFile(r.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return apperrors.ErrNotFound
		}
		return err
	}

	var envelope cacheEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return apperrors.ErrNotFound
	}

	if time.Now().After(envelope.ExpiresAt) {
		_ = os.Remove(r.path(key))
		return apperrors.ErrNotFound
	}

	return json.Unmarshal(envelope.Value, dest)
}

// Delete удаляет запись из кеша
func (r *CacheRepo) Delete(key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := os.Remove(r.path(key)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
