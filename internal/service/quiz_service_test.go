package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/trivia-quiz/internal/domain/entity"
	apperrors "github.com/yourusername/trivia-quiz/internal/pkg/errors"
)

// ============================================================================
// Моки репозиториев для тестов сервисного слоя.
// MockStoreRepository переиспользуется в result_service_test.go и
// user_service_test.go.
// ============================================================================

// MockQuestionRepository реализует repository.QuestionRepository
type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) GetQuestions(ctx context.Context, amount int) ([]entity.QuizQuestion, error) {
	args := m.Called(ctx, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.QuizQuestion), args.Error(1)
}

func (m *MockQuestionRepository) GetCategories(ctx context.Context) ([]entity.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Category), args.Error(1)
}

// MockStoreRepository реализует repository.StoreRepository
type MockStoreRepository struct {
	mock.Mock
}

func (m *MockStoreRepository) SetUser(username string) error {
	args := m.Called(username)
	return args.Error(0)
}

func (m *MockStoreRepository) GetUser() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

func (m *MockStoreRepository) RemoveUser() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockStoreRepository) SaveQuizState(state *entity.QuizSession) error {
	args := m.Called(state)
	return args.Error(0)
}

func (m *MockStoreRepository) GetQuizState() (*entity.QuizSession, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.QuizSession), args.Error(1)
}

func (m *MockStoreRepository) ClearQuizState() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockStoreRepository) AppendHistory(entry entity.QuizHistoryEntry) error {
	args := m.Called(entry)
	return args.Error(0)
}

func (m *MockStoreRepository) GetHistory() ([]entity.QuizHistoryEntry, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.QuizHistoryEntry), args.Error(1)
}

func (m *MockStoreRepository) ClearAll() error {
	args := m.Called()
	return args.Error(0)
}

// ============================================================================
// Вспомогательные функции
// ============================================================================

// testQuestions создает count вопросов с правильным ответом "Да"
func testQuestions(count int) []entity.QuizQuestion {
	questions := make([]entity.QuizQuestion, 0, count)
	for i := 0; i < count; i++ {
		questions = append(questions, entity.NewQuizQuestion(entity.Question{
			Type:             entity.QuestionTypeBoolean,
			Text:             "Тестовый вопрос",
			CorrectAnswer:    "Да",
			IncorrectAnswers: []string{"Нет"},
		}, "q"))
	}
	return questions
}

// newTestQuizService собирает сервис с разрешением на любые записи
// снимков: сохранение сопровождает каждый переход состояния
func newTestQuizService(questionRepo *MockQuestionRepository, storeRepo *MockStoreRepository) *QuizService {
	results := NewResultService(storeRepo)
	return NewQuizService(QuizConfig{QuestionCount: 3, Duration: 180 * time.Second}, questionRepo, storeRepo, results)
}

// ============================================================================
// Тесты StartNew / Resume
// ============================================================================

func TestQuizService_StartNew(t *testing.T) {
	// Arrange
	questionRepo := new(MockQuestionRepository)
	storeRepo := new(MockStoreRepository)
	service := newTestQuizService(questionRepo, storeRepo)

	questions := testQuestions(3)
	questionRepo.On("GetQuestions", mock.Anything, 3).Return(questions, nil)
	storeRepo.On("SaveQuizState", mock.AnythingOfType("*entity.QuizSession")).Return(nil)

	// Act
	session, err := service.StartNew(context.Background())

	// Assert
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Len(t, session.Questions, 3)
	assert.Equal(t, 0, session.CurrentQuestionIndex)
	assert.Equal(t, 180, session.TimeRemaining)
	assert.False(t, session.IsCompleted)
	assert.Empty(t, session.UserAnswers)
	assert.WithinDuration(t, time.Now(), session.StartTime, time.Second)

	questionRepo.AssertExpectations(t)
	storeRepo.AssertCalled(t, "SaveQuizState", session)
}

func TestQuizService_StartNew_FetchError(t *testing.T) {
	// Arrange: источник вопросов вернул ошибку (отмена контекста)
	questionRepo := new(MockQuestionRepository)
	storeRepo := new(MockStoreRepository)
	service := newTestQuizService(questionRepo, storeRepo)

	questionRepo.On("GetQuestions", mock.Anything, 3).Return(nil, context.Canceled)

	// Act
	session, err := service.StartNew(context.Background())

	// Assert: сессия не создается, снимок не пишется
	require.Error(t, err)
	assert.Nil(t, session)
	assert.Nil(t, service.Session())
	storeRepo.AssertNotCalled(t, "SaveQuizState", mock.Anything)
}

func TestQuizService_Resume_RecalculatesRemaining(t *testing.T) {
	// Arrange: снимок, сделанный 60 секунд назад
	questionRepo := new(MockQuestionRepository)
	storeRepo := new(MockStoreRepository)
	service := newTestQuizService(questionRepo, storeRepo)

	start := time.Now().Add(-60 * time.Second)
	saved := &entity.QuizSession{
		Questions:            testQuestions(3),
		CurrentQuestionIndex: 1,
		UserAnswers:          map[int]string{0: "Да"},
		StartTime:            start,
		TimeRemaining:        180,
	}
	storeRepo.On("GetQuizState").Return(saved, nil)
	storeRepo.On("SaveQuizState", mock.AnythingOfType("*entity.QuizSession")).Return(nil)

	// Act
	session, err := service.Resume(start.Add(60 * time.Second))

	// Assert: осталось 180 - 60 = 120 секунд, прогресс сохранен
	require.NoError(t, err)
	assert.Equal(t, 120, session.TimeRemaining)
	assert.Equal(t, 1, session.CurrentQuestionIndex)
	assert.Equal(t, 1, session.AnsweredCount())
}

func TestQuizService_Resume_ExpiredSnapshot(t *testing.T) {
	// Arrange: снимок старше полной длительности
	questionRepo := new(MockQuestionRepository)
	storeRepo := new(MockStoreRepository)
	service := newTestQuizService(questionRepo, storeRepo)

	start := time.Now().Add(-time.Hour)
	saved := &entity.QuizSession{
		Questions: testQuestions(3),
		StartTime: start,
	}
	storeRepo.On("GetQuizState").Return(saved, nil)
	storeRepo.On("SaveQuizState", mock.AnythingOfType("*entity.QuizSession")).Return(nil)

	// Act
	session, err := service.Resume(time.Now())

	// Assert: время не уходит в минус, возобновляется с нулем
	require.NoError(t, err)
	assert.Equal(t, 0, session.TimeRemaining)
}

func TestQuizService_Resume_SnapshotWithoutAnswersMap(t *testing.T) {
	// Arrange: в файле снимка нет ключа user_answers, после
	// десериализации карта ответов нулевая
	questionRepo := new(MockQuestionRepository)
	storeRepo := new(MockStoreRepository)
	service := newTestQuizService(questionRepo, storeRepo)

	saved := &entity.QuizSession{
		Questions:   testQuestions(2),
		StartTime:   time.Now(),
		UserAnswers: nil,
	}
	storeRepo.On("GetQuizState").Return(saved, nil)
	storeRepo.On("SaveQuizState", mock.AnythingOfType("*entity.QuizSession")).Return(nil)

	// Act
	session, err := service.Resume(time.Now())
	require.NoError(t, err)

	// Assert: карта нормализована, первый же ответ записывается
	// без паники
	require.NotNil(t, session.UserAnswers)
	var done bool
	require.NotPanics(t, func() {
		done, err = service.SubmitAnswer("Да")
	})
	require.NoError(t, err)
	assert.False(t, done)
	assert.Equal(t, "Да", session.UserAnswers[0])
}

func TestQuizService_Resume_NoSnapshot(t *testing.T) {
	testCases := []struct {
		name     string
		snapshot *entity.QuizSession
		err      error
	}{
		{"снимок отсутствует", nil, apperrors.ErrNotFound},
		{"снимок поврежден", nil, errors.New("unexpected end of JSON input")},
		{"снимок уже завершен", &entity.QuizSession{Questions: testQuestions(3), IsCompleted: true}, nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			questionRepo := new(MockQuestionRepository)
			storeRepo := new(MockStoreRepository)
			service := newTestQuizService(questionRepo, storeRepo)

			if tc.snapshot == nil {
				storeRepo.On("GetQuizState").Return(nil, tc.err)
			} else {
				storeRepo.On("GetQuizState").Return(tc.snapshot, nil)
			}

			// Act
			session, err := service.Resume(time.Now())

			// Assert
			assert.ErrorIs(t, err, ErrNoResumableSession)
			assert.Nil(t, session)
		})
	}
}

// ============================================================================
// Тесты SubmitAnswer
// ============================================================================

func TestQuizService_SubmitAnswer_Advances(t *testing.T) {
	// Arrange
	questionRepo := new(MockQuestionRepository)
	storeRepo := new(MockStoreRepository)
	service := newTestQuizService(questionRepo, storeRepo)

	questionRepo.On("GetQuestions", mock.Anything, 3).Return(testQuestions(3), nil)
	storeRepo.On("SaveQuizState", mock.AnythingOfType("*entity.QuizSession")).Return(nil)
	_, err := service.StartNew(context.Background())
	require.NoError(t, err)

	// Act
	done, err := service.SubmitAnswer("Да")

	// Assert: ответ записан, индекс продвинулся, сессия не завершена
	require.NoError(t, err)
	assert.False(t, done)
	session := service.Session()
	assert.Equal(t, 1, session.CurrentQuestionIndex)
	assert.Equal(t, "Да", session.UserAnswers[0])
	assert.False(t, session.IsCompleted)
}

func TestQuizService_SubmitAnswer_LastQuestionCompletes(t *testing.T) {
	// Arrange
	questionRepo := new(MockQuestionRepository)
	storeRepo := new(MockStoreRepository)
	service := newTestQuizService(questionRepo, storeRepo)

	questionRepo.On("GetQuestions", mock.Anything, 3).Return(testQuestions(3), nil)
	storeRepo.On("SaveQuizState", mock.AnythingOfType("*entity.QuizSession")).Return(nil)
	_, err := service.StartNew(context.Background())
	require.NoError(t, err)

	// Act: отвечаем на все три вопроса
	done, err := service.SubmitAnswer("Да")
	require.NoError(t, err)
	require.False(t, done)
	done, err = service.SubmitAnswer("Нет")
	require.NoError(t, err)
	require.False(t, done)
	done, err = service.SubmitAnswer("Да")

	// Assert: последний ответ завершает сессию без продвижения индекса
	require.NoError(t, err)
	assert.True(t, done)
	session := service.Session()
	assert.True(t, session.IsCompleted)
	assert.Equal(t, 2, session.CurrentQuestionIndex, "Индекс остается на последнем вопросе")
	assert.Equal(t, 3, session.AnsweredCount())
}

func TestQuizService_SubmitAnswer_AfterCompletion(t *testing.T) {
	// Arrange: сессия уже завершена по времени
	questionRepo := new(MockQuestionRepository)
	storeRepo := new(MockStoreRepository)
	service := newTestQuizService(questionRepo, storeRepo)

	questionRepo.On("GetQuestions", mock.Anything, 3).Return(testQuestions(3), nil)
	storeRepo.On("SaveQuizState", mock.AnythingOfType("*entity.QuizSession")).Return(nil)
	_, err := service.StartNew(context.Background())
	require.NoError(t, err)
	service.ExpireTime()

	// Act
	done, err := service.SubmitAnswer("Да")

	// Assert
	assert.ErrorIs(t, err, ErrSessionCompleted)
	assert.False(t, done)
	assert.Equal(t, 0, service.Session().AnsweredCount(), "Запоздавший ответ не записывается")
}

func TestQuizService_SubmitAnswer_NoSession(t *testing.T) {
	// Arrange
	service := newTestQuizService(new(MockQuestionRepository), new(MockStoreRepository))

	// Act
	done, err := service.SubmitAnswer("Да")

	// Assert
	assert.ErrorIs(t, err, ErrNoActiveSession)
	assert.False(t, done)
}

func TestQuizService_SubmitAnswer_PersistFailureDoesNotBreakSession(t *testing.T) {
	// Arrange: хранилище отказывает на каждой записи
	questionRepo := new(MockQuestionRepository)
	storeRepo := new(MockStoreRepository)
	service := newTestQuizService(questionRepo, storeRepo)

	questionRepo.On("GetQuestions", mock.Anything, 3).Return(testQuestions(3), nil)
	storeRepo.On("SaveQuizState", mock.AnythingOfType("*entity.QuizSession")).Return(errors.New("disk full"))
	_, err := service.StartNew(context.Background())
	require.NoError(t, err)

	// Act
	done, err := service.SubmitAnswer("Да")

	// Assert: сессия живет в памяти, несмотря на сбой записи
	require.NoError(t, err)
	assert.False(t, done)
	assert.Equal(t, 1, service.Session().CurrentQuestionIndex)
}

// ============================================================================
// Тесты ExpireTime / Finalize
// ============================================================================

func TestQuizService_ExpireTime(t *testing.T) {
	// Arrange
	questionRepo := new(MockQuestionRepository)
	storeRepo := new(MockStoreRepository)
	service := newTestQuizService(questionRepo, storeRepo)

	questionRepo.On("GetQuestions", mock.Anything, 3).Return(testQuestions(3), nil)
	storeRepo.On("SaveQuizState", mock.AnythingOfType("*entity.QuizSession")).Return(nil)
	_, err := service.StartNew(context.Background())
	require.NoError(t, err)
	_, err = service.SubmitAnswer("Да")
	require.NoError(t, err)

	// Act
	service.ExpireTime()

	// Assert: сессия заморожена как есть, ответ за истечение не записан
	session := service.Session()
	assert.True(t, session.IsCompleted)
	assert.Equal(t, 0, session.TimeRemaining)
	assert.Equal(t, 1, session.AnsweredCount())

	// Повторный вызов безопасен
	service.ExpireTime()
	assert.Equal(t, 1, service.Session().AnsweredCount())
}

func TestQuizService_ExpireTime_NoSession(t *testing.T) {
	// Arrange
	service := newTestQuizService(new(MockQuestionRepository), new(MockStoreRepository))

	// Act & Assert: вызов без сессии — no-op, паники нет
	assert.NotPanics(t, func() { service.ExpireTime() })
}

func TestQuizService_Finalize(t *testing.T) {
	// Arrange: 3 вопроса, 2 ответа, из них 1 правильный
	questionRepo := new(MockQuestionRepository)
	storeRepo := new(MockStoreRepository)
	service := newTestQuizService(questionRepo, storeRepo)

	questionRepo.On("GetQuestions", mock.Anything, 3).Return(testQuestions(3), nil)
	storeRepo.On("SaveQuizState", mock.AnythingOfType("*entity.QuizSession")).Return(nil)
	storeRepo.On("AppendHistory", mock.AnythingOfType("entity.QuizHistoryEntry")).Return(nil)
	storeRepo.On("ClearQuizState").Return(nil)

	_, err := service.StartNew(context.Background())
	require.NoError(t, err)
	_, err = service.SubmitAnswer("Да")
	require.NoError(t, err)
	_, err = service.SubmitAnswer("Нет")
	require.NoError(t, err)
	service.ExpireTime()

	// Act
	result, err := service.Finalize("Алиса")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 3, result.TotalQuestions)
	assert.Equal(t, 1, result.CorrectAnswers)
	assert.Equal(t, 1, result.WrongAnswers)
	assert.Equal(t, 2, result.AnsweredQuestions)
	assert.Equal(t, 33, result.Score)

	storeRepo.AssertCalled(t, "AppendHistory", mock.MatchedBy(func(entry entity.QuizHistoryEntry) bool {
		return entry.Username == "Алиса" && entry.Score == 33
	}))
	storeRepo.AssertCalled(t, "ClearQuizState")
}

func TestQuizService_Finalize_ExactlyOnce(t *testing.T) {
	// Arrange: завершенная сессия
	questionRepo := new(MockQuestionRepository)
	storeRepo := new(MockStoreRepository)
	service := newTestQuizService(questionRepo, storeRepo)

	questionRepo.On("GetQuestions", mock.Anything, 3).Return(testQuestions(3), nil)
	storeRepo.On("SaveQuizState", mock.AnythingOfType("*entity.QuizSession")).Return(nil)
	storeRepo.On("AppendHistory", mock.AnythingOfType("entity.QuizHistoryEntry")).Return(nil)
	storeRepo.On("ClearQuizState").Return(nil)

	_, err := service.StartNew(context.Background())
	require.NoError(t, err)
	service.ExpireTime()

	// Act
	_, err = service.Finalize("Алиса")
	require.NoError(t, err)
	_, secondErr := service.Finalize("Алиса")

	// Assert: повторное подведение итогов запрещено,
	// в журнале ровно одна запись
	assert.ErrorIs(t, secondErr, ErrAlreadyFinalized)
	assert.ErrorIs(t, secondErr, apperrors.ErrConflict)
	storeRepo.AssertNumberOfCalls(t, "AppendHistory", 1)
}

func TestQuizService_Finalize_NotCompleted(t *testing.T) {
	// Arrange: активная незавершенная сессия
	questionRepo := new(MockQuestionRepository)
	storeRepo := new(MockStoreRepository)
	service := newTestQuizService(questionRepo, storeRepo)

	questionRepo.On("GetQuestions", mock.Anything, 3).Return(testQuestions(3), nil)
	storeRepo.On("SaveQuizState", mock.AnythingOfType("*entity.QuizSession")).Return(nil)
	_, err := service.StartNew(context.Background())
	require.NoError(t, err)

	// Act
	_, err = service.Finalize("Алиса")

	// Assert
	assert.ErrorIs(t, err, ErrSessionNotCompleted)
}

func TestQuizService_Finalize_StorageFailuresAreSwallowed(t *testing.T) {
	// Arrange: журнал и удаление снимка отказывают
	questionRepo := new(MockQuestionRepository)
	storeRepo := new(MockStoreRepository)
	service := newTestQuizService(questionRepo, storeRepo)

	questionRepo.On("GetQuestions", mock.Anything, 3).Return(testQuestions(3), nil)
	storeRepo.On("SaveQuizState", mock.AnythingOfType("*entity.QuizSession")).Return(nil)
	storeRepo.On("AppendHistory", mock.AnythingOfType("entity.QuizHistoryEntry")).Return(errors.New("disk full"))
	storeRepo.On("ClearQuizState").Return(errors.New("disk full"))

	_, err := service.StartNew(context.Background())
	require.NoError(t, err)
	service.ExpireTime()

	// Act
	result, err := service.Finalize("Алиса")

	// Assert: результат возвращается несмотря на сбои хранилища
	require.NoError(t, err)
	assert.Equal(t, 3, result.TotalQuestions)
}
