package editor

import (
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type collector[T any] struct {
	mu     sync.Mutex
	values []T
}

func (c *collector[T]) add(v T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.values = append(c.values, v)
}

func (c *collector[T]) snapshot() []T {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]T(nil), c.values...)
}

func (c *collector[T]) len() int {
	return len(c.snapshot())
}

func TestDebouncer_DeliversLastValueAfterQuietPeriod(t *testing.T) {
	clock := clockwork.NewFakeClock()
	got := &collector[int]{}
	d := NewDebouncer(clock, time.Second, got.add)

	d.Schedule(1)
	clock.Advance(500 * time.Millisecond)
	d.Schedule(2)
	clock.Advance(500 * time.Millisecond)
	d.Schedule(3)

	assert.True(t, d.Pending())
	assert.Empty(t, got.snapshot())

	clock.Advance(time.Second)

	require.Eventually(t, func() bool { return got.len() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []int{3}, got.snapshot())
	assert.False(t, d.Pending())
}

func TestDebouncer_Flush(t *testing.T) {
	clock := clockwork.NewFakeClock()
	got := &collector[string]{}
	d := NewDebouncer(clock, time.Second, got.add)

	assert.False(t, d.Flush())

	d.Schedule("a")
	assert.True(t, d.Flush())
	assert.Equal(t, []string{"a"}, got.snapshot())

	clock.Advance(2 * time.Second)
	time.Sleep(20 * time.Millisecond)

	assert.Equal(t, []string{"a"}, got.snapshot(), "flushed value must not be delivered twice")
}

