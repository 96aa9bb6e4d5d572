package store

import (
	"sync"
	"time"
)

// fakeClock - управляемые часы для тестов. Потокобезопасны,
// потому что свипер читает время из своей горутины.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// newTestStores собирает MessageLog и Directory на одних фейковых часах.
func newTestStores() (*Directory, *MessageLog, *fakeClock) {
	clk := newFakeClock()

	log := NewMessageLog()
	log.now = clk.Now

	dir := NewDirectory(log)
	dir.now = clk.Now

	return dir, log, clk
}
