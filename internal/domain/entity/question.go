package entity

import (
	"math/rand"
)

// Типы вопросов, которые отдает Open Trivia DB
const (
	QuestionTypeMultiple = "multiple"
	QuestionTypeBoolean  = "boolean"
)

// Уровни сложности вопросов
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Question представляет вопрос викторины в том виде, в котором его
// возвращает внешний API. После получения вопрос не изменяется.
type Question struct {
	Category         string   `json:"category"`
	Type             string   `json:"type"`
	Difficulty       string   `json:"difficulty"`
	Text             string   `json:"question"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
}

// IsCorrect проверяет, совпадает ли ответ с правильным.
// Сравнение строгое, с учетом регистра.
func (q *Question) IsCorrect(answer string) bool {
	return answer == q.CorrectAnswer
}

// AnswerCount возвращает общее количество вариантов ответа
func (q *Question) AnswerCount() int {
	return 1 + len(q.IncorrectAnswers)
}

// QuizQuestion представляет вопрос, подготовленный к показу: исходный
// Question плюс уникальный id и объединенный список вариантов ответа.
// Список перемешивается ровно один раз при создании и далее стабилен,
// повторное перемешивание при каждом показе намеренно исключено.
type QuizQuestion struct {
	Question
	ID      string   `json:"id"`
	Answers []string `json:"answers"`
}

// NewQuizQuestion создает QuizQuestion: объединяет правильный и
// неправильные ответы и перемешивает их алгоритмом Фишера-Йейтса.
func NewQuizQuestion(q Question, id string) QuizQuestion {
	answers := make([]string, 0, q.AnswerCount())
	answers = append(answers, q.CorrectAnswer)
	answers = append(answers, q.IncorrectAnswers...)

	for i := len(answers) - 1; i > 0; i-- {
		j := rand.Intn(i + 1)
		answers[i], answers[j] = answers[j], answers[i]
	}

	return QuizQuestion{
		Question: q,
		ID:       id,
		Answers:  answers,
	}
}

// HasValidAnswers проверяет инвариант списка ответов: правильный ответ
// присутствует ровно один раз, а размер списка равен 1 + количество
// неправильных ответов.
func (q *QuizQuestion) HasValidAnswers() bool {
	if len(q.Answers) != q.AnswerCount() {
		return false
	}
	correct := 0
	for _, a := range q.Answers {
		if a == q.CorrectAnswer {
			correct++
		}
	}
	return correct == 1
}

// Category представляет категорию вопросов из справочника API
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
