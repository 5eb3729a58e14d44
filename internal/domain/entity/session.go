package entity

import (
	"time"
)

// Параметры викторины по умолчанию
const (
	DefaultQuestionCount = 10
	DefaultDurationSec   = 180
)

// QuizSession хранит состояние одной активной викторины. Экземпляр
// принадлежит исключительно QuizService: только он изменяет поля.
// После установки IsCompleted=true сессия больше не мутируется.
type QuizSession struct {
	Questions            []QuizQuestion `json:"questions"`
	CurrentQuestionIndex int            `json:"current_question_index"`
	UserAnswers          map[int]string `json:"user_answers"`
	StartTime            time.Time      `json:"start_time"`
	TimeRemaining        int            `json:"time_remaining"`
	IsCompleted          bool           `json:"is_completed"`
}

// CurrentQuestion возвращает текущий вопрос или nil, если сессия пуста
func (s *QuizSession) CurrentQuestion() *QuizQuestion {
	if s.CurrentQuestionIndex < 0 || s.CurrentQuestionIndex >= len(s.Questions) {
		return nil
	}
	return &s.Questions[s.CurrentQuestionIndex]
}

// AnsweredCount возвращает количество записанных ответов
func (s *QuizSession) AnsweredCount() int {
	return len(s.UserAnswers)
}

// IsLastQuestion проверяет, является ли текущий вопрос последним
func (s *QuizSession) IsLastQuestion() bool {
	return s.CurrentQuestionIndex == len(s.Questions)-1
}

// IsResumable проверяет, можно ли предложить продолжить сессию:
// есть вопросы и сессия не завершена.
func (s *QuizSession) IsResumable() bool {
	return s != nil && len(s.Questions) > 0 && !s.IsCompleted
}

// RemainingAt пересчитывает оставшееся время при возобновлении:
// max(0, duration - прошедшее с момента старта). Сохраненное значение
// TimeRemaining при этом игнорируется, коррекция дрейфа не выполняется.
func (s *QuizSession) RemainingAt(now time.Time, duration time.Duration) int {
	elapsed := now.Sub(s.StartTime)
	remaining := duration - elapsed
	if remaining < 0 {
		return 0
	}
	return int(remaining.Seconds())
}
