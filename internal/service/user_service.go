package service

import (
	"errors"
	"log"
	"strings"

	"github.com/yourusername/trivia-quiz/internal/domain/repository"
	apperrors "github.com/yourusername/trivia-quiz/internal/pkg/errors"
)

// MaxUsernameLength — максимальная длина имени пользователя
const MaxUsernameLength = 50

// UserService управляет именем текущего пользователя
type UserService struct {
	store repository.StoreRepository
}

// NewUserService создает сервис пользователя
func NewUserService(store repository.StoreRepository) *UserService {
	return &UserService{store: store}
}

// Login валидирует и сохраняет имя пользователя. Ошибка записи в
// хранилище не прерывает вход: имя продолжает жить в памяти процесса.
func (s *UserService) Login(username string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return "", ErrEmptyUsername
	}
	if len([]rune(username)) > MaxUsernameLength {
		return "", ErrUsernameTooLong
	}

	if err := s.store.SetUser(username); err != nil {
		log.Printf("[UserService] WARNING: не удалось сохранить имя пользователя: %v", err)
	}
	return username, nil
}

// CurrentUser возвращает сохраненное имя или пустую строку, если
// пользователь еще не представился
func (s *UserService) CurrentUser() string {
	username, err := s.store.GetUser()
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			log.Printf("[UserService] WARNING: не удалось прочитать имя пользователя: %v", err)
		}
		return ""
	}
	return username
}

// Logout удаляет имя пользователя. Снимок активной сессии при этом
// сохраняется: прогресс переживает выход.
func (s *UserService) Logout() error {
	return s.store.RemoveUser()
}
