package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/echomaze/internal/core"
)

func TestQueuePollTimeout(t *testing.T) {
	q := NewQueue(2)
	start := time.Now()

	ev, err := q.Poll(context.Background(), 15*time.Millisecond)

	require.NoError(t, err)
	assert.True(t, ev.IsEmpty())
	assert.GreaterOrEqual(t, time.Since(start), 15*time.Millisecond)
}

func TestQueuePushPoll(t *testing.T) {
	q := NewQueue(2)
	assert.True(t, q.Push(core.TextEvent("a")))
	assert.True(t, q.Push(core.KeyEvent(core.KeyUp)))
	assert.False(t, q.Push(core.TextEvent("c")), "full queue drops")
	assert.False(t, q.Push(core.Empty()), "sentinel is never queued")

	ev, err := q.Poll(context.Background(), time.Second)
	require.NoError(t, err)
	assert.Equal(t, core.TextEvent("a"), ev)

	ev, err = q.Poll(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, core.KeyEvent(core.KeyUp), ev)
}

func TestQueueBlockingPollCancel(t *testing.T) {
	q := NewQueue(1)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	ev, err := q.Poll(ctx, 0)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.True(t, ev.IsEmpty())
}

func TestInterval(t *testing.T) {
	assert.Equal(t, 50*time.Millisecond, Interval(20))
	assert.Equal(t, 50*time.Millisecond, Interval(0))
	assert.Equal(t, 100*time.Millisecond, Interval(10))
}
