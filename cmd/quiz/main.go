package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	flag "github.com/spf13/pflag"

	"github.com/yourusername/trivia-quiz/internal/config"
	"github.com/yourusername/trivia-quiz/internal/repository/localfile"
	"github.com/yourusername/trivia-quiz/internal/repository/opentdb"
	"github.com/yourusername/trivia-quiz/internal/service"
	"github.com/yourusername/trivia-quiz/internal/tui"
)

func main() {
	configPath := flag.String("config", "", "путь к файлу конфигурации")
	amount := flag.Int("amount", 0, "количество вопросов (переопределяет конфигурацию)")
	duration := flag.Int("duration", 0, "время на викторину в секундах (переопределяет конфигурацию)")
	showCategories := flag.Bool("categories", false, "показать список категорий вопросов и выйти")
	flag.Parse()

	// Загружаем конфигурацию
	path := *configPath
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		path = "config/config.yaml"
	}

	cfg, err := config.Load(path)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	// Флаги командной строки имеют приоритет над конфигурацией
	if *amount > 0 {
		cfg.Quiz.QuestionCount = *amount
	}
	if *duration > 0 {
		cfg.Quiz.DurationSec = *duration
	}

	// Инициализируем репозитории
	storeRepo, err := localfile.NewStoreRepo(cfg.Storage.Dir)
	if err != nil {
		log.Printf("Failed to initialize StoreRepo: %v", err)
		os.Exit(1)
	}

	cacheRepo, err := localfile.NewCacheRepo(cfg.Storage.Dir)
	if err != nil {
		log.Printf("Failed to initialize CacheRepo: %v", err)
		os.Exit(1)
	}

	questionRepo := opentdb.NewQuestionRepo(opentdb.Config{
		BaseURL:    cfg.Trivia.BaseURL,
		Category:   cfg.Trivia.Category,
		Difficulty: cfg.Trivia.Difficulty,
		Timeout:    time.Duration(cfg.Trivia.TimeoutSec) * time.Second,
	}, cacheRepo)

	if *showCategories {
		printCategories(questionRepo)
		return
	}

	// Инициализируем сервисы
	userService := service.NewUserService(storeRepo)
	resultService := service.NewResultService(storeRepo)
	quizService := service.NewQuizService(service.QuizConfig{
		QuestionCount: cfg.Quiz.QuestionCount,
		Duration:      time.Duration(cfg.Quiz.DurationSec) * time.Second,
	}, questionRepo, storeRepo, resultService)

	// Перенаправляем лог в файл: TUI владеет экраном, посторонние
	// строки ломали бы отрисовку. Если файл открыть не удалось, лог
	// глушится — вывод в stderr испортил бы альтернативный экран.
	logFile, err := tea.LogToFile(filepath.Join(cfg.Storage.Dir, "trivia-quiz.log"), "quiz")
	if err != nil {
		log.SetOutput(io.Discard)
	} else {
		defer logFile.Close()
	}

	program := tea.NewProgram(
		tui.New(userService, quizService, resultService),
		tea.WithAltScreen(),
	)
	if _, err := program.Run(); err != nil {
		log.Printf("Ошибка интерфейса: %v", err)
		os.Exit(1)
	}
}

// printCategories выводит справочник категорий Open Trivia DB
func printCategories(repo *opentdb.QuestionRepo) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	categories, err := repo.GetCategories(ctx)
	if err != nil {
		log.Printf("Не удалось получить список категорий: %v", err)
		os.Exit(1)
	}
	for _, category := range categories {
		fmt.Printf("%4d  %s\n", category.ID, category.Name)
	}
}
