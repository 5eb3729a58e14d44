// Package tui реализует интерактивный интерфейс викторины поверх
// bubbletea: ввод имени, предложение возобновления, экран вопросов с
// обратным отсчетом и сводка результата.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/yourusername/trivia-quiz/internal/domain/entity"
	"github.com/yourusername/trivia-quiz/internal/service"
	"github.com/yourusername/trivia-quiz/internal/service/quiztimer"
)

// screen определяет активный экран приложения
type screen int

const (
	screenLogin screen = iota
	screenResume
	screenLoading
	screenLoadFailed
	screenQuiz
	screenResult
)

// Model — корневая модель bubbletea. Владеет обратным отсчетом и
// обязана отменять его на каждом пути выхода из активной сессии.
type Model struct {
	users   *service.UserService
	quiz    *service.QuizService
	results *service.ResultService

	countdown *quiztimer.Countdown
	// timerCh доставляет события таймера в цикл сообщений bubbletea;
	// буфер позволяет колбэкам не блокироваться на выходе
	timerCh chan tea.Msg

	screen screen
	width  int
	height int

	username  string
	nameInput textinput.Model
	loginErr  string

	session   *entity.QuizSession
	remaining int
	loadErr   string

	result  entity.QuizResult
	history []entity.QuizHistoryEntry
}

// New создает корневую модель приложения
func New(users *service.UserService, quiz *service.QuizService, results *service.ResultService) Model {
	nameInput := textinput.New()
	nameInput.Placeholder = "Ваше имя"
	nameInput.CharLimit = service.MaxUsernameLength
	nameInput.Focus()

	m := Model{
		users:     users,
		quiz:      quiz,
		results:   results,
		countdown: quiztimer.New(),
		timerCh:   make(chan tea.Msg, 8),
		nameInput: nameInput,
	}

	// Если имя уже сохранено, экран входа пропускается; при наличии
	// незавершенного снимка стартуем с предложения возобновления
	if username := users.CurrentUser(); username != "" {
		m.username = username
		if saved := quiz.ResumableSession(); saved != nil {
			m.screen = screenResume
			m.session = saved
		} else {
			m.screen = screenLoading
		}
	} else {
		m.screen = screenLogin
	}
	return m
}

// Init запускает стартовую последовательность
func (m Model) Init() tea.Cmd {
	switch m.screen {
	case screenLogin:
		return textinput.Blink
	case screenLoading:
		return m.startNewCmd()
	}
	return nil
}

// decideStartup решает, что показать после входа: предложение
// возобновления или загрузку новой сессии
func (m Model) decideStartup() (Model, tea.Cmd) {
	if saved := m.quiz.ResumableSession(); saved != nil {
		m.screen = screenResume
		m.session = saved
		return m, nil
	}
	m.screen = screenLoading
	return m, m.startNewCmd()
}

// startNewCmd асинхронно запускает новую сессию
func (m Model) startNewCmd() tea.Cmd {
	quiz := m.quiz
	return func() tea.Msg {
		session, err := quiz.StartNew(context.Background())
		if err != nil {
			return startFailedMsg{err: err}
		}
		return questionsLoadedMsg{session: session}
	}
}

// resumeCmd возобновляет сохраненную сессию
func (m Model) resumeCmd() tea.Cmd {
	quiz := m.quiz
	return func() tea.Msg {
		session, err := quiz.Resume(time.Now())
		if err != nil {
			return startFailedMsg{err: err}
		}
		return questionsLoadedMsg{session: session}
	}
}

// finalizeCmd подводит итог завершенной сессии и читает журнал
func (m Model) finalizeCmd() tea.Cmd {
	quiz := m.quiz
	results := m.results
	username := m.username
	return func() tea.Msg {
		result, err := quiz.Finalize(username)
		if err != nil {
			// Повторное подведение итога невозможно; показываем
			// пустой результат вместо падения
			result = entity.QuizResult{}
		}
		history, histErr := results.History()
		if histErr != nil {
			history = nil
		}
		return finalizedMsg{result: result, history: history}
	}
}

// startCountdown запускает обратный отсчет и команду ожидания его
// событий
func (m Model) startCountdown(seconds int) tea.Cmd {
	ch := m.timerCh
	m.countdown.Start(time.Duration(seconds)*time.Second,
		func(remaining int) {
			select {
			case ch <- timerTickMsg{remaining: remaining}:
			default:
			}
		},
		func() {
			select {
			case ch <- timerExpiredMsg{}:
			default:
			}
		},
	)
	return m.waitForTimer()
}

// waitForTimer ждет очередное событие таймера из канала
func (m Model) waitForTimer() tea.Cmd {
	ch := m.timerCh
	return func() tea.Msg {
		return <-ch
	}
}

// Update обрабатывает сообщения bubbletea
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		// Ctrl+C завершает приложение с любого экрана; отсчет
		// отменяется безусловно
		if msg.String() == "ctrl+c" {
			m.countdown.Cancel()
			return m, tea.Quit
		}
		return m.updateKey(msg)

	case questionsLoadedMsg:
		m.session = msg.session
		m.remaining = msg.session.TimeRemaining
		m.screen = screenQuiz
		return m, m.startCountdown(m.remaining)

	case startFailedMsg:
		m.loadErr = msg.err.Error()
		m.screen = screenLoadFailed
		return m, nil

	case timerTickMsg:
		if m.screen != screenQuiz {
			// Запоздавший тик уже закрытой сессии игнорируется
			return m, nil
		}
		m.remaining = msg.remaining
		return m, m.waitForTimer()

	case timerExpiredMsg:
		if m.screen != screenQuiz {
			return m, nil
		}
		m.remaining = 0
		m.countdown.Cancel()
		m.quiz.ExpireTime()
		return m, m.finalizeCmd()

	case finalizedMsg:
		m.result = msg.result
		m.history = msg.history
		m.screen = screenResult
		return m, nil
	}

	if m.screen == screenLogin {
		var cmd tea.Cmd
		m.nameInput, cmd = m.nameInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

// updateKey обрабатывает клавиатурный ввод в зависимости от экрана
func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.screen {
	case screenLogin:
		return m.updateLoginKey(msg)
	case screenResume:
		return m.updateResumeKey(msg)
	case screenLoadFailed:
		return m.updateLoadFailedKey(msg)
	case screenQuiz:
		return m.updateQuizKey(msg)
	case screenResult:
		return m.updateResultKey(msg)
	}
	return m, nil
}

func (m Model) updateLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		username, err := m.users.Login(m.nameInput.Value())
		if err != nil {
			switch err {
			case service.ErrEmptyUsername:
				m.loginErr = "Введите имя, оно не может быть пустым"
			case service.ErrUsernameTooLong:
				m.loginErr = "Имя слишком длинное"
			default:
				m.loginErr = err.Error()
			}
			return m, nil
		}
		m.username = username
		m.loginErr = ""
		return m.decideStartup()
	case "esc":
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

func (m Model) updateResumeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "r", "enter":
		m.screen = screenLoading
		return m, m.resumeCmd()
	case "n":
		m.quiz.DiscardSnapshot()
		m.screen = screenLoading
		return m, m.startNewCmd()
	case "q", "esc":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) updateLoadFailedKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "r", "enter":
		m.loadErr = ""
		m.screen = screenLoading
		return m, m.startNewCmd()
	case "q", "esc":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) updateQuizKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	session := m.quiz.Session()
	if session == nil {
		return m, nil
	}
	question := session.CurrentQuestion()
	if question == nil {
		return m, nil
	}

	switch key := msg.String(); key {
	case "q", "esc":
		// Выход без завершения: снимок уже сохранен, прогресс
		// переживет перезапуск
		m.countdown.Cancel()
		return m, tea.Quit
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		index := int(key[0] - '1')
		if index >= len(question.Answers) {
			return m, nil
		}
		completed, err := m.quiz.SubmitAnswer(question.Answers[index])
		if err != nil {
			return m, nil
		}
		m.session = m.quiz.Session()
		if completed {
			m.countdown.Cancel()
			return m, m.finalizeCmd()
		}
		return m, nil
	}
	return m, nil
}

func (m Model) updateResultKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "p", "enter":
		// Сыграть еще раз: новая сессия с полным таймером
		m.screen = screenLoading
		return m, m.startNewCmd()
	case "q", "esc":
		return m, tea.Quit
	}
	return m, nil
}
