package repository

import (
	"github.com/yourusername/trivia-quiz/internal/domain/entity"
)

// StoreRepository определяет плоское key-value хранилище трех
// независимых записей: имя пользователя, снимок активной сессии и
// журнал результатов. Записи пишутся независимо, транзакционность
// между ключами не гарантируется: сбой между записями допустим,
// возобновление терпимо к отсутствующему или устаревшему снимку.
type StoreRepository interface {
	// Имя пользователя (хранится как простая строка)
	SetUser(username string) error
	GetUser() (string, error)
	RemoveUser() error

	// Снимок активной сессии
	SaveQuizState(state *entity.QuizSession) error
	GetQuizState() (*entity.QuizSession, error)
	ClearQuizState() error

	// Журнал результатов. AppendHistory выполняет read-modify-write:
	// читает текущий журнал, добавляет запись и пишет его целиком.
	AppendHistory(entry entity.QuizHistoryEntry) error
	GetHistory() ([]entity.QuizHistoryEntry, error)

	// ClearAll удаляет все три записи
	ClearAll() error
}
