package tui

import (
	"github.com/yourusername/trivia-quiz/internal/domain/entity"
)

// questionsLoadedMsg приходит, когда вопросы получены и сессия готова
type questionsLoadedMsg struct {
	session *entity.QuizSession
}

// startFailedMsg приходит при неудачном запуске сессии; пользователю
// предлагается выбор: повторить или выйти
type startFailedMsg struct {
	err error
}

// timerTickMsg доставляет очередной тик обратного отсчета через цикл
// сообщений bubbletea
type timerTickMsg struct {
	remaining int
}

// timerExpiredMsg приходит один раз при истечении времени
type timerExpiredMsg struct{}

// finalizedMsg несет подведенный итог сессии и обновленный журнал
type finalizedMsg struct {
	result  entity.QuizResult
	history []entity.QuizHistoryEntry
}
