package otpflow

import (
	"context"
	"sync"
	"time"
)

// DefaultCooldown is the wait before a code may be requested again.
const DefaultCooldown = 30 * time.Second

// Cooldown counts whole seconds down to zero. It only changes on Tick and
// Reset; Run drives Tick from a ticker.
type Cooldown struct {
	mu        sync.RWMutex
	total     int
	remaining int
}

func NewCooldown(d time.Duration) *Cooldown {
	total := int(d / time.Second)
	if total <= 0 {
		total = int(DefaultCooldown / time.Second)
	}
	return &Cooldown{total: total, remaining: total}
}

// Tick moves the countdown one second towards zero and returns the new value.
func (c *Cooldown) Tick() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.remaining > 0 {
		c.remaining--
	}
	return c.remaining
}

func (c *Cooldown) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.remaining = c.total
}

func (c *Cooldown) Remaining() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.remaining
}

func (c *Cooldown) Ready() bool {
	return c.Remaining() == 0
}

// Run ticks every interval until ctx is done. The returned func stops it and
// waits for the goroutine to exit.
func (c *Cooldown) Run(ctx context.Context, interval time.Duration) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	go func() {
		defer close(done)
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				c.Tick()
			}
		}
	}()

	return func() {
		cancel()
		<-done
	}
}
