package entity

import (
	"time"
)

// QuizResult представляет итоговый результат завершенной викторины.
// Значения производные: считаются один раз из записанных ответов
// и отдельно не изменяются.
type QuizResult struct {
	TotalQuestions    int `json:"total_questions"`
	CorrectAnswers    int `json:"correct_answers"`
	WrongAnswers      int `json:"wrong_answers"`
	AnsweredQuestions int `json:"answered_questions"`
	// Score — процент правильных ответов от общего числа вопросов,
	// целое число 0-100 с округлением
	Score int `json:"score"`
}

// Accuracy возвращает точность в процентах: доля правильных среди
// отвеченных. При нуле отвеченных возвращает 0.
func (r *QuizResult) Accuracy() int {
	if r.AnsweredQuestions == 0 {
		return 0
	}
	return int(float64(r.CorrectAnswers)/float64(r.AnsweredQuestions)*100 + 0.5)
}

// QuizHistoryEntry представляет запись в журнале результатов:
// результат плюс момент завершения и снимок имени пользователя.
// Журнал только пополняется, записи не редактируются.
type QuizHistoryEntry struct {
	QuizResult
	Timestamp time.Time `json:"timestamp"`
	Username  string    `json:"username"`
}
