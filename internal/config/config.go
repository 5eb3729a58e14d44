package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config хранит все настройки приложения
type Config struct {
	Trivia  TriviaConfig
	Quiz    QuizConfig
	Storage StorageConfig
}

// TriviaConfig содержит настройки клиента Open Trivia DB
type TriviaConfig struct {
	// BaseURL — адрес API викторины
	BaseURL string `mapstructure:"base_url"`

	// Category — необязательный фильтр категории (0 — любая категория)
	Category int `mapstructure:"category"`

	// Difficulty — необязательный фильтр сложности: easy, medium, hard
	// (пустая строка — любая сложность)
	Difficulty string `mapstructure:"difficulty"`

	// TimeoutSec — таймаут одного HTTP-запроса в секундах
	TimeoutSec int `mapstructure:"timeout_sec"`
}

// QuizConfig содержит настройки сессии викторины
type QuizConfig struct {
	// QuestionCount — количество вопросов в сессии
	QuestionCount int `mapstructure:"question_count"`

	// DurationSec — общее время на викторину в секундах
	DurationSec int `mapstructure:"duration_sec"`
}

// StorageConfig содержит настройки локального хранилища
type StorageConfig struct {
	// Dir — каталог хранилища; пустое значение означает каталог
	// trivia-quiz внутри пользовательского каталога конфигурации
	Dir string `mapstructure:"dir"`
}

// Load загружает конфигурацию: значения по умолчанию, затем файл
// (если есть), затем переменные окружения
func Load(configPath string) (*Config, error) {
	vip := viper.New() // Отдельный экземпляр Viper, чтобы избежать глобального состояния

	// 1. Значения по умолчанию
	vip.SetDefault("trivia.base_url", "https://opentdb.com")
	vip.SetDefault("trivia.category", 0)
	vip.SetDefault("trivia.difficulty", "")
	vip.SetDefault("trivia.timeout_sec", 10)
	vip.SetDefault("quiz.question_count", 10)
	vip.SetDefault("quiz.duration_sec", 180)
	vip.SetDefault("storage.dir", "")

	// 2. Привязываем переменные окружения ЯВНО
	vip.BindEnv("trivia.base_url", "TRIVIA_BASE_URL")
	vip.BindEnv("trivia.category", "TRIVIA_CATEGORY")
	vip.BindEnv("trivia.difficulty", "TRIVIA_DIFFICULTY")
	vip.BindEnv("trivia.timeout_sec", "TRIVIA_TIMEOUT_SEC")
	vip.BindEnv("quiz.question_count", "QUIZ_QUESTION_COUNT")
	vip.BindEnv("quiz.duration_sec", "QUIZ_DURATION_SEC")
	vip.BindEnv("storage.dir", "STORAGE_DIR")

	// 3. Пытаемся прочитать файл конфигурации (его отсутствие не страшно)
	if configPath != "" {
		vip.SetConfigFile(configPath)
		if err := vip.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); ok || os.IsNotExist(err) {
				log.Printf("Файл конфигурации '%s' не найден, используются переменные окружения/умолчания.", configPath)
			} else {
				log.Printf("Предупреждение: не удалось прочитать файл конфигурации '%s': %v", configPath, err)
			}
		}
	}

	// 4. Анмаршалим конфигурацию
	var cfg Config
	if err := vip.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 5. Подставляем каталог хранилища по умолчанию
	if cfg.Storage.Dir == "" {
		baseDir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("не удалось определить каталог конфигурации пользователя: %w", err)
		}
		cfg.Storage.Dir = filepath.Join(baseDir, "trivia-quiz")
	}

	// 6. Проверка параметров
	if cfg.Quiz.QuestionCount <= 0 {
		return nil, fmt.Errorf("quiz.question_count must be positive, got %d", cfg.Quiz.QuestionCount)
	}
	if cfg.Quiz.DurationSec <= 0 {
		return nil, fmt.Errorf("quiz.duration_sec must be positive, got %d", cfg.Quiz.DurationSec)
	}
	switch cfg.Trivia.Difficulty {
	case "", "easy", "medium", "hard":
		// Допустимые значения
	default:
		return nil, fmt.Errorf("trivia.difficulty must be one of easy/medium/hard, got %q", cfg.Trivia.Difficulty)
	}

	return &cfg, nil
}
