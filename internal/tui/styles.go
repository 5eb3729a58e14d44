package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Пороги подсветки таймера, в секундах
const (
	timerWarningAt  = 30
	timerCriticalAt = 10
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 2)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2)

	questionStyle = lipgloss.NewStyle().
			Bold(true)

	categoryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")).
			Italic(true)

	answerStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	answeredStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			PaddingLeft(2)

	statLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	statValueStyle = lipgloss.NewStyle().
			Bold(true)

	timerOKStyle = lipgloss.NewStyle().
			Bold(true)

	timerWarningStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("208"))

	timerCriticalStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("196"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	scoreHighStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("46"))
	scoreGoodStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	scoreMidStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208"))
	scoreLowStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
)

// scoreStyle подбирает стиль под величину счета: те же пороги, что и в
// сводке результата (80/60/40)
func scoreStyle(score int) lipgloss.Style {
	switch {
	case score >= 80:
		return scoreHighStyle
	case score >= 60:
		return scoreGoodStyle
	case score >= 40:
		return scoreMidStyle
	default:
		return scoreLowStyle
	}
}
