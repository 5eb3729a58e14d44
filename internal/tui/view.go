package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yourusername/trivia-quiz/internal/domain/entity"
)

// View отрисовывает активный экран
func (m Model) View() string {
	var body string
	switch m.screen {
	case screenLogin:
		body = m.viewLogin()
	case screenResume:
		body = m.viewResume()
	case screenLoading:
		body = m.viewLoading()
	case screenLoadFailed:
		body = m.viewLoadFailed()
	case screenQuiz:
		body = m.viewQuiz()
	case screenResult:
		body = m.viewResult()
	}

	if m.width > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
	}
	return body
}

func (m Model) viewLogin() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Trivia Quiz"))
	b.WriteString("\n\n")
	b.WriteString("Представьтесь, чтобы начать викторину:\n\n")
	b.WriteString(m.nameInput.View())
	b.WriteString("\n")
	if m.loginErr != "" {
		b.WriteString("\n" + errorStyle.Render(m.loginErr) + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("enter — начать · esc — выход"))
	return cardStyle.Render(b.String())
}

func (m Model) viewResume() string {
	answered := 0
	total := 0
	if m.session != nil {
		answered = m.session.AnsweredCount()
		total = len(m.session.Questions)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Продолжить викторину?"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("У вас есть незавершенная викторина:\nотвечено %d из %d вопросов.\n", answered, total))
	b.WriteString("\n" + helpStyle.Render("r — продолжить · n — начать заново · q — выход"))
	return cardStyle.Render(b.String())
}

func (m Model) viewLoading() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Trivia Quiz"))
	b.WriteString("\n\n")
	b.WriteString("Загружаем вопросы...\n")
	b.WriteString(categoryStyle.Render("Это может занять несколько секунд"))
	return cardStyle.Render(b.String())
}

func (m Model) viewLoadFailed() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Не удалось загрузить викторину"))
	b.WriteString("\n\n")
	b.WriteString(errorStyle.Render(m.loadErr))
	b.WriteString("\n\n" + helpStyle.Render("r — повторить · q — выход"))
	return cardStyle.Render(b.String())
}

func (m Model) viewQuiz() string {
	session := m.session
	if session == nil {
		return ""
	}
	question := session.CurrentQuestion()
	if question == nil {
		return ""
	}

	total := len(session.Questions)
	answered := session.AnsweredCount()

	header := lipgloss.JoinHorizontal(lipgloss.Top,
		statLabelStyle.Render("Игрок: ")+statValueStyle.Render(m.username),
		strings.Repeat(" ", 6),
		statLabelStyle.Render("Осталось: ")+m.timerView(),
	)

	stats := lipgloss.JoinHorizontal(lipgloss.Top,
		statLabelStyle.Render("Вопрос ")+statValueStyle.Render(fmt.Sprintf("%d/%d", session.CurrentQuestionIndex+1, total)),
		strings.Repeat(" ", 4),
		statLabelStyle.Render("Отвечено ")+statValueStyle.Render(fmt.Sprintf("%d", answered)),
		strings.Repeat(" ", 4),
		statLabelStyle.Render("Впереди ")+statValueStyle.Render(fmt.Sprintf("%d", total-answered)),
	)

	var card strings.Builder
	card.WriteString(categoryStyle.Render(fmt.Sprintf("%s · %s", question.Category, question.Difficulty)))
	card.WriteString("\n\n")
	card.WriteString(questionStyle.Render(question.Text))
	card.WriteString("\n\n")

	selected := session.UserAnswers[session.CurrentQuestionIndex]
	for i, answer := range question.Answers {
		line := fmt.Sprintf("%d. %s", i+1, answer)
		if answer == selected && selected != "" {
			card.WriteString(answeredStyle.Render("> " + line))
		} else {
			card.WriteString(answerStyle.Render(line))
		}
		card.WriteString("\n")
	}

	help := helpStyle.Render(fmt.Sprintf("1-%d — ответить · q — выйти (прогресс сохранится)", len(question.Answers)))

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		stats,
		"",
		cardStyle.Render(card.String()),
		"",
		help,
	)
}

// timerView рисует mm:ss с подсветкой последних 30 и 10 секунд
func (m Model) timerView() string {
	minutes := m.remaining / 60
	seconds := m.remaining % 60
	text := fmt.Sprintf("%02d:%02d", minutes, seconds)
	switch {
	case m.remaining <= timerCriticalAt:
		return timerCriticalStyle.Render(text)
	case m.remaining <= timerWarningAt:
		return timerWarningStyle.Render(text)
	default:
		return timerOKStyle.Render(text)
	}
}

func (m Model) viewResult() string {
	r := m.result

	var b strings.Builder
	b.WriteString(titleStyle.Render("Результат"))
	b.WriteString("\n\n")
	b.WriteString("Ваш счет: " + scoreStyle(r.Score).Render(fmt.Sprintf("%d%%", r.Score)))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Всего вопросов:  %d\n", r.TotalQuestions))
	b.WriteString(fmt.Sprintf("Отвечено:        %d\n", r.AnsweredQuestions))
	b.WriteString(fmt.Sprintf("Правильно:       %d\n", r.CorrectAnswers))
	b.WriteString(fmt.Sprintf("Неправильно:     %d\n", r.WrongAnswers))
	b.WriteString("\nТочность: " + scoreStyle(r.Accuracy()).Render(fmt.Sprintf("%d%%", r.Accuracy())))
	b.WriteString(" " + accuracyBar(r.Accuracy()))

	if len(m.history) > 1 {
		b.WriteString("\n\n" + statLabelStyle.Render(fmt.Sprintf("Сыграно игр: %d, лучший счет: %d%%", len(m.history), bestScore(m.history))))
	}

	b.WriteString("\n\n" + helpStyle.Render("p — сыграть еще раз · q — выход"))
	return cardStyle.Render(b.String())
}

// accuracyBar рисует простую шкалу точности на 20 делений
func accuracyBar(accuracy int) string {
	const width = 20
	filled := accuracy * width / 100
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}

// bestScore возвращает лучший счет за все сыгранные игры
func bestScore(history []entity.QuizHistoryEntry) int {
	best := 0
	for _, entry := range history {
		if entry.Score > best {
			best = entry.Score
		}
	}
	return best
}
