package opentdb

import (
	"fmt"

	"github.com/yourusername/trivia-quiz/internal/domain/entity"
)

// fallbackData — фиксированный набор из 10 вопросов на случай полной
// недоступности API. Тексты уже без HTML-сущностей.
var fallbackData = []entity.Question{
	{
		Category:         "General Knowledge",
		Type:             entity.QuestionTypeMultiple,
		Difficulty:       entity.DifficultyMedium,
		Text:             "What is the capital of France?",
		CorrectAnswer:    "Paris",
		IncorrectAnswers: []string{"London", "Berlin", "Madrid"},
	},
	{
		Category:         "Science",
		Type:             entity.QuestionTypeMultiple,
		Difficulty:       entity.DifficultyEasy,
		Text:             "What planet is known as the Red Planet?",
		CorrectAnswer:    "Mars",
		IncorrectAnswers: []string{"Venus", "Jupiter", "Saturn"},
	},
	{
		Category:         "History",
		Type:             entity.QuestionTypeMultiple,
		Difficulty:       entity.DifficultyMedium,
		Text:             "In which year did World War II end?",
		CorrectAnswer:    "1945",
		IncorrectAnswers: []string{"1944", "1946", "1943"},
	},
	{
		Category:         "Geography",
		Type:             entity.QuestionTypeMultiple,
		Difficulty:       entity.DifficultyEasy,
		Text:             "What is the largest ocean on Earth?",
		CorrectAnswer:    "Pacific Ocean",
		IncorrectAnswers: []string{"Atlantic Ocean", "Indian Ocean", "Arctic Ocean"},
	},
	{
		Category:         "Science",
		Type:             entity.QuestionTypeBoolean,
		Difficulty:       entity.DifficultyEasy,
		Text:             "The Earth is flat.",
		CorrectAnswer:    "False",
		IncorrectAnswers: []string{"True"},
	},
	{
		Category:         "General Knowledge",
		Type:             entity.QuestionTypeMultiple,
		Difficulty:       entity.DifficultyEasy,
		Text:             "How many continents are there?",
		CorrectAnswer:    "7",
		IncorrectAnswers: []string{"5", "6", "8"},
	},
	{
		Category:         "Science",
		Type:             entity.QuestionTypeMultiple,
		Difficulty:       entity.DifficultyMedium,
		Text:             "What is the chemical symbol for gold?",
		CorrectAnswer:    "Au",
		IncorrectAnswers: []string{"Go", "Gd", "Ag"},
	},
	{
		Category:         "History",
		Type:             entity.QuestionTypeMultiple,
		Difficulty:       entity.DifficultyEasy,
		Text:             "Who was the first President of the United States?",
		CorrectAnswer:    "George Washington",
		IncorrectAnswers: []string{"Thomas Jefferson", "John Adams", "Benjamin Franklin"},
	},
	{
		Category:         "Geography",
		Type:             entity.QuestionTypeMultiple,
		Difficulty:       entity.DifficultyMedium,
		Text:             "What is the capital of Japan?",
		CorrectAnswer:    "Tokyo",
		IncorrectAnswers: []string{"Kyoto", "Osaka", "Hiroshima"},
	},
	{
		Category:         "Science",
		Type:             entity.QuestionTypeBoolean,
		Difficulty:       entity.DifficultyEasy,
		Text:             "Water boils at 100 degrees Celsius at sea level.",
		CorrectAnswer:    "True",
		IncorrectAnswers: []string{"False"},
	},
}

// FallbackQuestions возвращает резервный набор: каждый вопрос получает
// стабильный id и независимо перемешанный список ответов. Набор в кеш
// не записывается, чтобы при восстановлении API вернуться к свежим
// вопросам.
func FallbackQuestions() []entity.QuizQuestion {
	questions := make([]entity.QuizQuestion, 0, len(fallbackData))
	for i, q := range fallbackData {
		questions = append(questions, entity.NewQuizQuestion(q, fmt.Sprintf("fallback-%d", i)))
	}
	return questions
}
