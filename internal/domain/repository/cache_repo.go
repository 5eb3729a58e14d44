package repository

import (
	"time"
)

// CacheRepository определяет методы для работы с кешем с ограниченным
// временем жизни записей. Delete позволяет вызывающему коду сбросить
// запись, оказавшуюся непригодной, раньше срока годности.
type CacheRepository interface {
	SetJSON(key string, value interface{}, expiration time.Duration) error
	GetJSON(key string, dest interface{}) error
	Delete(key string) error
}
