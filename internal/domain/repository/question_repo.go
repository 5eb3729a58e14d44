package repository

import (
	"context"

	"github.com/yourusername/trivia-quiz/internal/domain/entity"
)

// QuestionRepository определяет методы получения вопросов из внешнего
// источника. Реализация обязана всегда возвращать пригодный список:
// при недоступности источника — резервный набор, а не ошибку.
type QuestionRepository interface {
	// GetQuestions возвращает amount подготовленных вопросов.
	// Ошибка возможна только при отмене контекста.
	GetQuestions(ctx context.Context, amount int) ([]entity.QuizQuestion, error)

	// GetCategories возвращает справочник категорий вопросов
	GetCategories(ctx context.Context) ([]entity.Category, error)
}
