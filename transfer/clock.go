package transfer

import (
	"sync"
	"time"
)

// Clock schedules the single outstanding protocol deadline. Arming replaces
// any previous deadline; disarming cancels it. Implementations may deliver
// the callback from any goroutine.
//
// The interface exists so tests can drive timeouts deterministically with a
// fake clock instead of sleeping.
type Clock interface {
	Arm(d time.Duration, fn func())
	Disarm()
}

// wallClock implements Clock with real timers.
type wallClock struct {
	mu    sync.Mutex
	timer *time.Timer
}

func (c *wallClock) Arm(d time.Duration, fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(d, fn)
}

func (c *wallClock) Disarm() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}
