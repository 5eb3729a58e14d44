package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/yourusername/trivia-quiz/internal/domain/entity"
	"github.com/yourusername/trivia-quiz/internal/domain/repository"
	apperrors "github.com/yourusername/trivia-quiz/internal/pkg/errors"
)

// QuizConfig содержит настройки сессии викторины
type QuizConfig struct {
	// QuestionCount — количество вопросов в сессии
	QuestionCount int
	// Duration — общее время на викторину
	Duration time.Duration
}

// DefaultQuizConfig возвращает конфигурацию по умолчанию:
// 10 вопросов, 3 минуты
func DefaultQuizConfig() QuizConfig {
	return QuizConfig{
		QuestionCount: entity.DefaultQuestionCount,
		Duration:      entity.DefaultDurationSec * time.Second,
	}
}

// QuizService владеет единственной активной сессией и выполняет
// переходы ее состояния: запуск, возобновление, запись ответов,
// истечение времени и подведение итогов. Каждый переход, меняющий
// состояние, немедленно сохраняет полный снимок; ошибка сохранения
// логируется и не прерывает сессию.
type QuizService struct {
	config    QuizConfig
	questions repository.QuestionRepository
	store     repository.StoreRepository
	results   *ResultService

	mu        sync.Mutex
	session   *entity.QuizSession
	finalized bool
}

// NewQuizService создает сервис сессии викторины
func NewQuizService(config QuizConfig, questions repository.QuestionRepository, store repository.StoreRepository, results *ResultService) *QuizService {
	if config.QuestionCount <= 0 {
		config.QuestionCount = entity.DefaultQuestionCount
	}
	if config.Duration <= 0 {
		config.Duration = entity.DefaultDurationSec * time.Second
	}
	return &QuizService{
		config:    config,
		questions: questions,
		store:     store,
		results:   results,
	}
}

// Config возвращает действующие настройки сессии
func (s *QuizService) Config() QuizConfig {
	return s.config
}

// Session возвращает активную сессию или nil
func (s *QuizService) Session() *entity.QuizSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

// ResumableSession возвращает сохраненный незавершенный снимок или
// nil, если его нет либо он непригоден. Ошибка чтения приравнивается
// к отсутствию снимка: в этом случае начинаем заново.
func (s *QuizService) ResumableSession() *entity.QuizSession {
	saved, err := s.store.GetQuizState()
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			log.Printf("[QuizService] WARNING: не удалось прочитать снимок сессии: %v", err)
		}
		return nil
	}
	if !saved.IsResumable() {
		return nil
	}
	return saved
}

// StartNew запускает новую сессию: получает свежие вопросы, сбрасывает
// таймер на полную длительность и сохраняет снимок. Прежний снимок
// при этом перезаписывается.
func (s *QuizService) StartNew(ctx context.Context) (*entity.QuizSession, error) {
	questions, err := s.questions.GetQuestions(ctx, s.config.QuestionCount)
	if err != nil {
		return nil, fmt.Errorf("не удалось загрузить вопросы: %w", err)
	}

	session := &entity.QuizSession{
		Questions:            questions,
		CurrentQuestionIndex: 0,
		UserAnswers:          make(map[int]string),
		StartTime:            time.Now(),
		TimeRemaining:        int(s.config.Duration.Seconds()),
		IsCompleted:          false,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = session
	s.finalized = false
	s.persistLocked()
	log.Printf("[QuizService] Новая сессия: %d вопросов, %v на прохождение", len(questions), s.config.Duration)
	return session, nil
}

// Resume возобновляет сохраненную сессию. Оставшееся время
// пересчитывается от момента старта: max(0, duration - прошедшее);
// снимок старше длительности возобновляется с нулем секунд и сразу
// истекает.
func (s *QuizService) Resume(now time.Time) (*entity.QuizSession, error) {
	saved := s.ResumableSession()
	if saved == nil {
		return nil, ErrNoResumableSession
	}

	saved.TimeRemaining = saved.RemainingAt(now, s.config.Duration)

	// Снимок старого формата или правленный вручную файл может не
	// содержать карты ответов; без нормализации запись ответа упадет
	if saved.UserAnswers == nil {
		saved.UserAnswers = make(map[int]string)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = saved
	s.finalized = false
	s.persistLocked()
	log.Printf("[QuizService] Сессия возобновлена: вопрос %d из %d, осталось %d сек.",
		saved.CurrentQuestionIndex+1, len(saved.Questions), saved.TimeRemaining)
	return saved, nil
}

// DiscardSnapshot удаляет сохраненный снимок (выбор "начать заново")
func (s *QuizService) DiscardSnapshot() {
	if err := s.store.ClearQuizState(); err != nil {
		log.Printf("[QuizService] WARNING: не удалось удалить снимок сессии: %v", err)
	}
}

// SubmitAnswer записывает ответ на текущий вопрос. Повторная запись по
// тому же индексу перезаписывает ответ. Если вопрос последний, сессия
// помечается завершенной без продвижения индекса; иначе индекс
// увеличивается на единицу. Возвращает true, когда сессия завершилась
// этим ответом.
func (s *QuizService) SubmitAnswer(answer string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return false, ErrNoActiveSession
	}
	if s.session.IsCompleted {
		return false, ErrSessionCompleted
	}

	s.session.UserAnswers[s.session.CurrentQuestionIndex] = answer

	if s.session.IsLastQuestion() {
		s.session.IsCompleted = true
		s.persistLocked()
		return true, nil
	}

	s.session.CurrentQuestionIndex++
	s.persistLocked()
	return false, nil
}

// ExpireTime фиксирует истечение времени: сессия замораживается как
// есть, ответ за событие истечения не записывается. Повторный вызов и
// вызов без активной сессии безопасны: запоздавший тик таймера не
// должен мутировать уже закрытую сессию.
func (s *QuizService) ExpireTime() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil || s.session.IsCompleted {
		return
	}
	s.session.IsCompleted = true
	s.session.TimeRemaining = 0
	s.persistLocked()
	log.Printf("[QuizService] Время вышло: отвечено %d из %d", s.session.AnsweredCount(), len(s.session.Questions))
}

// Finalize подводит итог завершенной сессии ровно один раз: считает
// результат, дописывает его в журнал и удаляет снимок. Ошибки
// хранилища логируются и не мешают вернуть результат.
func (s *QuizService) Finalize(username string) (entity.QuizResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return entity.QuizResult{}, ErrNoActiveSession
	}
	if !s.session.IsCompleted {
		return entity.QuizResult{}, ErrSessionNotCompleted
	}
	if s.finalized {
		return entity.QuizResult{}, ErrAlreadyFinalized
	}

	result := CalculateResult(s.session)

	if err := s.results.SaveToHistory(result, username); err != nil {
		log.Printf("[QuizService] WARNING: не удалось записать результат в журнал: %v", err)
	}
	if err := s.store.ClearQuizState(); err != nil {
		log.Printf("[QuizService] WARNING: не удалось удалить снимок завершенной сессии: %v", err)
	}

	s.finalized = true
	log.Printf("[QuizService] Сессия завершена: счет %d%% (%d/%d)", result.Score, result.CorrectAnswers, result.TotalQuestions)
	return result, nil
}

// persistLocked сохраняет снимок текущей сессии; вызывается только под
// мьютексом. Ошибка не критична: сессия продолжает жить в памяти.
func (s *QuizService) persistLocked() {
	if err := s.store.SaveQuizState(s.session); err != nil {
		log.Printf("[QuizService] WARNING: не удалось сохранить снимок сессии: %v", err)
	}
}
