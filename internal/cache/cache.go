package cache

import (
	"log/slog"
	"sync"
	"time"
)

type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, data T)
	Delete(key string)
	// Purge drops every entry, used when the underlying records change.
	Purge()
	Size() int
}

type Cleaner interface {
	CleanExpired() int
}

// Manager runs periodic expiry over the registered caches.
type Manager struct {
	caches   []Cleaner
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
	started  bool
}

func NewManager() *Manager {
	return &Manager{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
}

func (m *Manager) Register(c Cleaner) {
	m.caches = append(m.caches, c)
}

func (m *Manager) StartCleanup(interval time.Duration) {
	m.started = true
	go m.cleanup(interval)
}

func (m *Manager) cleanup(interval time.Duration) {
	defer close(m.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := m.CleanNow(); n > 0 {
				slog.Debug("Expired cache entries removed", "count", n)
			}
		case <-m.stop:
			return
		}
	}
}

// CleanNow expires entries in every registered cache and returns how many went.
func (m *Manager) CleanNow() int {
	total := 0
	for _, c := range m.caches {
		total += c.CleanExpired()
	}
	return total
}

// Stop is safe to call more than once, and before StartCleanup.
func (m *Manager) Stop() {
	m.stopOnce.Do(func() {
		close(m.stop)
		if m.started {
			<-m.done
		}
	})
}
