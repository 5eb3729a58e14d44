package opentdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/trivia-quiz/internal/domain/entity"
	"github.com/yourusername/trivia-quiz/internal/domain/repository"
	apperrors "github.com/yourusername/trivia-quiz/internal/pkg/errors"
	"github.com/yourusername/trivia-quiz/internal/pkg/htmltext"
)

const (
	defaultBaseURL = "https://opentdb.com"
	defaultTimeout = 10 * time.Second

	// CacheKey — ключ, под которым пачка вопросов лежит в кеше
	CacheKey = "trivia_questions_cache"

	// CacheDuration — окно валидности кеша с момента записи
	CacheDuration = 5 * time.Minute

	// maxAttempts — бюджет сетевых попыток на одну пачку
	maxAttempts = 3
)

// Задержки вынесены в переменные, чтобы тесты могли их ужать
var (
	// backoffStep — шаг линейной задержки перед попыткой k: 0s, 2s, 4s
	backoffStep = 2 * time.Second

	// rateLimitWait — фиксированная пауза после ответа о превышении
	// лимита. Такая попытка расходует слот из бюджета, чтобы худший
	// случай оставался ограниченным по времени.
	rateLimitWait = 5 * time.Second
)

// Коды ответа Open Trivia DB
const (
	responseCodeSuccess   = 0
	responseCodeRateLimit = 5
)

// errRateLimited сигнализирует о превышении лимита запросов (HTTP 429
// или response_code=5)
var errRateLimited = errors.New("rate limited by trivia API")

// Config содержит настройки клиента Open Trivia DB
type Config struct {
	// BaseURL — адрес API; пустое значение означает публичный opentdb.com
	BaseURL string
	// Category — необязательный фильтр категории (0 — без фильтра)
	Category int
	// Difficulty — необязательный фильтр сложности ("" — без фильтра)
	Difficulty string
	// Timeout — таймаут одного HTTP-запроса
	Timeout time.Duration
}

// QuestionRepo реализует repository.QuestionRepository поверх Open
// Trivia DB: кеш, повторные попытки с нарастающей задержкой и
// резервный набор вопросов при полной недоступности API.
type QuestionRepo struct {
	config     Config
	httpClient *http.Client
	cache      repository.CacheRepository
}

// NewQuestionRepo создает клиент API вопросов
func NewQuestionRepo(cfg Config, cache repository.CacheRepository) *QuestionRepo {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &QuestionRepo{
		config:     cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cache:      cache,
	}
}

// apiResponse — формат ответа /api.php
type apiResponse struct {
	ResponseCode int               `json:"response_code"`
	Results      []entity.Question `json:"results"`
}

// categoriesResponse — формат ответа /api_category.php
type categoriesResponse struct {
	TriviaCategories []entity.Category `json:"trivia_categories"`
}

// GetQuestions возвращает amount подготовленных вопросов.
// Порядок: непросроченный кеш -> до maxAttempts сетевых попыток ->
// резервный набор. Ошибку возвращает только при отмене контекста,
// во всех остальных случаях список пригоден к использованию.
func (r *QuestionRepo) GetQuestions(ctx context.Context, amount int) ([]entity.QuizQuestion, error) {
	if cached := r.getFromCache(); cached != nil {
		log.Printf("[OpenTDB] Используем кешированные вопросы (%d шт.)", len(cached))
		return cached, nil
	}

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			log.Printf("[OpenTDB] Повторная попытка %d...", attempt)
			if err := sleepCtx(ctx, backoffStep*time.Duration(attempt)); err != nil {
				return nil, err
			}
		}

		results, err := r.fetchOnce(ctx, amount)
		if err == nil {
			questions := r.prepare(results)
			r.saveToCache(questions)
			return questions, nil
		}

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		lastErr = err
		log.Printf("[OpenTDB] Попытка %d не удалась: %v", attempt+1, err)

		if errors.Is(err, errRateLimited) {
			log.Printf("[OpenTDB] Превышен лимит запросов, ожидание %v перед повтором", rateLimitWait)
			if err := sleepCtx(ctx, rateLimitWait); err != nil {
				return nil, err
			}
		}
	}

	log.Printf("[OpenTDB] Все попытки исчерпаны (последняя ошибка: %v), используем резервный набор вопросов", lastErr)
	return FallbackQuestions(), nil
}

// GetCategories возвращает справочник категорий вопросов
func (r *QuestionRepo) GetCategories(ctx context.Context) ([]entity.Category, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.config.BaseURL+"/api_category.php", nil)
	if err != nil {
		return nil, err
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("не удалось получить список категорий: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected HTTP status: %d", resp.StatusCode)
	}

	var body categoriesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("не удалось разобрать список категорий: %w", err)
	}
	return body.TriviaCategories, nil
}

// fetchOnce выполняет один запрос к /api.php
func (r *QuestionRepo) fetchOnce(ctx context.Context, amount int) ([]entity.Question, error) {
	query := url.Values{}
	query.Set("amount", strconv.Itoa(amount))
	if r.config.Category > 0 {
		query.Set("category", strconv.Itoa(r.config.Category))
	}
	if r.config.Difficulty != "" {
		query.Set("difficulty", r.config.Difficulty)
	}

	reqURL := r.config.BaseURL + "/api.php?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, errRateLimited
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected HTTP status: %d", resp.StatusCode)
	}

	var body apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("malformed API payload: %w", err)
	}

	switch body.ResponseCode {
	case responseCodeSuccess:
		// Продолжаем
	case responseCodeRateLimit:
		return nil, errRateLimited
	default:
		return nil, fmt.Errorf("API error code: %d", body.ResponseCode)
	}

	if len(body.Results) == 0 {
		return nil, fmt.Errorf("API returned empty result set")
	}
	return body.Results, nil
}

// prepare декодирует HTML-сущности, присваивает каждому вопросу id и
// строит перемешанный список ответов
func (r *QuestionRepo) prepare(results []entity.Question) []entity.QuizQuestion {
	questions := make([]entity.QuizQuestion, 0, len(results))
	for _, q := range results {
		q.Text = htmltext.Decode(q.Text)
		q.CorrectAnswer = htmltext.Decode(q.CorrectAnswer)
		q.IncorrectAnswers = htmltext.DecodeAll(q.IncorrectAnswers)
		questions = append(questions, entity.NewQuizQuestion(q, uuid.NewString()))
	}
	return questions
}

// getFromCache возвращает непросроченную пачку вопросов или nil.
// Пачка с нарушенным списком ответов сбрасывается из кеша: отдать ее
// нельзя, а следующий вызов должен снова идти в сеть.
func (r *QuestionRepo) getFromCache() []entity.QuizQuestion {
	var cached []entity.QuizQuestion
	err := r.cache.GetJSON(CacheKey, &cached)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			log.Printf("[OpenTDB] WARNING: ошибка чтения кеша вопросов: %v", err)
		}
		return nil
	}
	if len(cached) == 0 {
		return nil
	}
	for i := range cached {
		if !cached[i].HasValidAnswers() {
			log.Printf("[OpenTDB] WARNING: в кеше пачка с некорректными вопросами, запись сброшена")
			if err := r.cache.Delete(CacheKey); err != nil {
				log.Printf("[OpenTDB] WARNING: не удалось удалить запись кеша: %v", err)
			}
			return nil
		}
	}
	return cached
}

// saveToCache записывает пачку в кеш; ошибка записи не критична
func (r *QuestionRepo) saveToCache(questions []entity.QuizQuestion) {
	if err := r.cache.SetJSON(CacheKey, questions, CacheDuration); err != nil {
		log.Printf("[OpenTDB] WARNING: не удалось сохранить вопросы в кеш: %v", err)
	}
}

// sleepCtx ждет d с учетом отмены контекста
func sleepCtx(ctx context.Context, d time.Duration) error {
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
