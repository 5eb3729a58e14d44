package service

import (
	"errors"
	"fmt"

	apperrors "github.com/yourusername/trivia-quiz/internal/pkg/errors"
)

// Ошибки сервисного слоя. Ошибки валидации и конфликтов оборачивают
// базовые sentinel-ошибки, чтобы вызывающий код мог проверять и
// конкретную причину, и класс ошибки.
var (
	// ErrEmptyUsername возвращается при попытке входа без имени
	ErrEmptyUsername = fmt.Errorf("%w: username cannot be empty", apperrors.ErrValidation)

	// ErrUsernameTooLong возвращается, когда имя превышает лимит длины
	ErrUsernameTooLong = fmt.Errorf("%w: username is too long", apperrors.ErrValidation)

	// ErrNoActiveSession возвращается, когда операция требует активной
	// сессии, а ее нет
	ErrNoActiveSession = errors.New("no active quiz session")

	// ErrNoResumableSession возвращается, когда нет сохраненного
	// незавершенного снимка для возобновления
	ErrNoResumableSession = errors.New("no resumable quiz session")

	// ErrSessionCompleted возвращается при попытке изменить уже
	// завершенную сессию
	ErrSessionCompleted = errors.New("quiz session is already completed")

	// ErrSessionNotCompleted возвращается при попытке подвести итог
	// незавершенной сессии
	ErrSessionNotCompleted = errors.New("quiz session is not completed yet")

	// ErrAlreadyFinalized возвращается при повторной попытке подвести
	// итог: подсчет и запись в журнал выполняются ровно один раз
	ErrAlreadyFinalized = fmt.Errorf("%w: quiz session is already finalized", apperrors.ErrConflict)
)
