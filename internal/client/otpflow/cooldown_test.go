package otpflow

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCooldown_CountsDownToZero(t *testing.T) {
	c := NewCooldown(3 * time.Second)
	assert.Equal(t, 3, c.Remaining())
	assert.False(t, c.Ready())

	assert.Equal(t, 2, c.Tick())
	assert.Equal(t, 1, c.Tick())
	assert.Equal(t, 0, c.Tick())
	assert.Equal(t, 0, c.Tick())
	assert.True(t, c.Ready())

	c.Reset()
	assert.Equal(t, 3, c.Remaining())
}

func TestCooldown_DefaultsToThirtySeconds(t *testing.T) {
	assert.Equal(t, 30, NewCooldown(0).Remaining())
	assert.Equal(t, 30, NewCooldown(DefaultCooldown).Remaining())
}

func TestCooldown_Run(t *testing.T) {
	c := NewCooldown(2 * time.Second)
	stop := c.Run(context.Background(), time.Millisecond)

	assert.Eventually(t, c.Ready, time.Second, time.Millisecond)
	stop()

	c.Reset()
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, 2, c.Remaining(), "no ticks after stop")
}
