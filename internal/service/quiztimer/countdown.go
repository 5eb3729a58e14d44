// Package quiztimer содержит явную отменяемую задачу обратного отсчета.
// Таймер — единственный писатель оставшегося времени; владелец обязан
// вызывать Cancel на каждом пути выхода, включая ошибочные, чтобы
// запоздавший тик не мутировал уже закрытую сессию.
package quiztimer

import (
	"sync"
	"time"
)

// Countdown отсчитывает заданную длительность, раз в секунду вызывая
// onTick с оставшимся числом секунд и один раз onExpire при достижении
// нуля. Колбэки выполняются под внутренней блокировкой отсчета: после
// возврата Cancel ни один колбэк не выполняется и не начнет
// выполняться. По той же причине колбэк не должен обращаться к методам
// Countdown.
type Countdown struct {
	mu      sync.Mutex
	cancel  chan struct{}
	running bool
}

// New создает остановленный отсчет
func New() *Countdown {
	return &Countdown{}
}

// Start запускает отсчет duration. Уже идущий отсчет предварительно
// отменяется, поэтому активен всегда не более одного тикера.
// Неположительная длительность немедленно приводит к onExpire.
func (c *Countdown) Start(duration time.Duration, onTick func(remaining int), onExpire func()) {
	c.mu.Lock()
	if c.running {
		close(c.cancel)
	}
	cancel := make(chan struct{})
	c.cancel = cancel
	c.running = true
	c.mu.Unlock()

	go c.run(int(duration.Seconds()), cancel, onTick, onExpire)
}

// Cancel останавливает отсчет. Вызов идемпотентен; после возврата
// колбэки не выполняются.
func (c *Countdown) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running {
		close(c.cancel)
		c.running = false
	}
}

// Running сообщает, идет ли отсчет
func (c *Countdown) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

func (c *Countdown) run(remaining int, cancel chan struct{}, onTick func(int), onExpire func()) {
	if remaining <= 0 {
		c.expire(cancel, onExpire)
		return
	}

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			remaining--
			if remaining <= 0 {
				c.expire(cancel, onExpire)
				return
			}
			if !c.tick(cancel, remaining, onTick) {
				return
			}
		case <-cancel:
			return
		}
	}
}

// tick вызывает onTick под мьютексом, если отсчет не отменен.
// Проверка и вызов атомарны относительно Cancel: тик не может
// выполниться после возврата Cancel.
func (c *Countdown) tick(cancel chan struct{}, remaining int, onTick func(int)) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	select {
	case <-cancel:
		return false
	default:
	}
	onTick(remaining)
	return true
}

// expire помечает отсчет завершенным и вызывает onExpire под мьютексом,
// если отсчет не был отменен раньше
func (c *Countdown) expire(cancel chan struct{}, onExpire func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	select {
	case <-cancel:
		return
	default:
	}
	if c.cancel == cancel {
		c.running = false
	}
	onExpire()
}
