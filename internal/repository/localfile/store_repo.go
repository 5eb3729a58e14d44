package localfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/yourusername/trivia-quiz/internal/domain/entity"
	apperrors "github.com/yourusername/trivia-quiz/internal/pkg/errors"
)

// Ключи хранилища. Каждый ключ — отдельный файл в каталоге хранилища.
const (
	KeyUser      = "quiz_user"
	KeyQuizState = "quiz_state"
	KeyHistory   = "quiz_history"
)

// StoreRepo реализует repository.StoreRepository поверх плоских файлов.
// Каждая запись пишется независимо, атомарность между ключами не
// гарантируется: приложение рассчитано на одного пользователя и один
// активный процесс.
type StoreRepo struct {
	dir string
	mu  sync.Mutex
}

// NewStoreRepo создает файловое хранилище в каталоге dir
func NewStoreRepo(dir string) (*StoreRepo, error) {
	if dir == "" {
		return nil, fmt.Errorf("storage directory cannot be empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("не удалось создать каталог хранилища %s: %w", dir, err)
	}
	return &StoreRepo{dir: dir}, nil
}

func (r *StoreRepo) path(key string) string {
	return filepath.Join(r.dir, key)
}

func (r *StoreRepo) read(key string) ([]byte, error) {
	data, err := os.ReadFile(r.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

func (r *StoreRepo) write(key string, data []byte) error {
	return os.WriteFile(r.path(key), data, 0o644)
}

func (r *StoreRepo) remove(key string) error {
	if err := os.Remove(r.path(key)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// SetUser сохраняет имя пользователя как простую строку
func (r *StoreRepo) SetUser(username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.write(KeyUser, []byte(username))
}

// GetUser возвращает сохраненное имя пользователя
func (r *StoreRepo) GetUser() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	data, err := r.read(KeyUser)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// RemoveUser удаляет запись с именем пользователя
func (r *StoreRepo) RemoveUser() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.remove(KeyUser)
}

// SaveQuizState сохраняет снимок активной сессии
func (r *StoreRepo) SaveQuizState(state *entity.QuizSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("не удалось сериализовать снимок сессии: %w", err)
	}
	return r.write(KeyQuizState, data)
}

// GetQuizState возвращает сохраненный снимок сессии.
// Отсутствующий снимок — apperrors.ErrNotFound; поврежденный снимок
// также считается отсутствующим: возобновление начинает заново.
func (r *StoreRepo) GetQuizState() (*entity.QuizSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	data, err := r.read(KeyQuizState)
	if err != nil {
		return nil, err
	}
	var state entity.QuizSession
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("%w: поврежденный снимок сессии: %v", apperrors.ErrNotFound, err)
	}
	return &state, nil
}

// ClearQuizState удаляет снимок сессии
func (r *StoreRepo) ClearQuizState() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.remove(KeyQuizState)
}

// AppendHistory добавляет запись в журнал результатов.
// Выполняется как read-modify-write: журнал читается целиком,
// дополняется одной записью и пишется обратно.
func (r *StoreRepo) AppendHistory(entry entity.QuizHistoryEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	history, err := r.readHistory()
	if err != nil {
		return err
	}
	history = append(history, entry)
	data, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("не удалось сериализовать журнал результатов: %w", err)
	}
	return r.write(KeyHistory, data)
}

// GetHistory возвращает журнал результатов. Отсутствующий журнал —
// пустой список, не ошибка.
func (r *StoreRepo) GetHistory() ([]entity.QuizHistoryEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.readHistory()
}

func (r *StoreRepo) readHistory() ([]entity.QuizHistoryEntry, error) {
	data, err := r.read(KeyHistory)
	if err != nil {
		if err == apperrors.ErrNotFound {
			return []entity.QuizHistoryEntry{}, nil
		}
		return nil, err
	}
	var history []entity.QuizHistoryEntry
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, fmt.Errorf("не удалось прочитать журнал результатов: %w", err)
	}
	return history, nil
}

// ClearAll удаляет все три записи хранилища
func (r *StoreRepo) ClearAll() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, key := range []string{KeyUser, KeyQuizState, KeyHistory} {
		if err := r.remove(key); err != nil {
			return err
		}
	}
	return nil
}
