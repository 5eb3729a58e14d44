package service

import (
	"math"
	"time"

	"github.com/yourusername/trivia-quiz/internal/domain/entity"
	"github.com/yourusername/trivia-quiz/internal/domain/repository"
)

// ResultService подсчитывает итоги завершенной сессии и ведет журнал
// результатов
type ResultService struct {
	store repository.StoreRepository
}

// NewResultService создает сервис результатов
func NewResultService(store repository.StoreRepository) *ResultService {
	return &ResultService{store: store}
}

// CalculateResult — чистая функция подсчета итогов по записанным
// ответам. Правильность определяется строгим сравнением строк.
// Сессия без вопросов защитно дает score=0, а не панику.
func CalculateResult(session *entity.QuizSession) entity.QuizResult {
	total := len(session.Questions)
	answered := len(session.UserAnswers)

	correct := 0
	for index, answer := range session.UserAnswers {
		if index < 0 || index >= total {
			continue
		}
		if session.Questions[index].IsCorrect(answer) {
			correct++
		}
	}

	score := 0
	if total > 0 {
		score = int(math.Round(float64(correct) / float64(total) * 100))
	}

	return entity.QuizResult{
		TotalQuestions:    total,
		CorrectAnswers:    correct,
		WrongAnswers:      answered - correct,
		AnsweredQuestions: answered,
		Score:             score,
	}
}

// SaveToHistory добавляет результат в журнал вместе с моментом
// завершения и снимком имени пользователя
func (s *ResultService) SaveToHistory(result entity.QuizResult, username string) error {
	entry := entity.QuizHistoryEntry{
		QuizResult: result,
		Timestamp:  time.Now(),
		Username:   username,
	}
	return s.store.AppendHistory(entry)
}

// History возвращает журнал результатов, от старых к новым
func (s *ResultService) History() ([]entity.QuizHistoryEntry, error) {
	return s.store.GetHistory()
}
