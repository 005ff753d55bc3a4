package engine

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/echomaze/internal/core"
	"github.com/vovakirdan/echomaze/internal/render"
	"github.com/vovakirdan/echomaze/internal/scene"
)

// scriptSource replays events, then returns the sentinel forever.
type scriptSource struct {
	events   []core.InputEvent
	timeouts []time.Duration
}

func (s *scriptSource) Poll(_ context.Context, timeout time.Duration) (core.InputEvent, error) {
	s.timeouts = append(s.timeouts, timeout)
	if len(s.events) == 0 {
		return core.Empty(), nil
	}
	ev := s.events[0]
	s.events = s.events[1:]
	return ev, nil
}

type failingSource struct{}

func (failingSource) Poll(context.Context, time.Duration) (core.InputEvent, error) {
	return core.Empty(), errors.New("tty gone")
}

// funcScene records what the loop feeds it and answers with next.
type funcScene struct {
	name   string
	next   func(call int, ev core.InputEvent) (core.Signal, error)
	events []core.InputEvent
	resets int
	exits  int
}

func (s *funcScene) Reset() { s.resets++ }

func (s *funcScene) NextFrame(ev core.InputEvent) (core.Signal, error) {
	s.events = append(s.events, ev)
	return s.next(len(s.events), ev)
}

func (s *funcScene) Name() string { return s.name }

func (s *funcScene) OnExit() { s.exits++ }

type losingScene struct {
	*funcScene
	losses int
}

func (s *losingScene) OnLose() { s.losses++ }

type scoredScene struct {
	*funcScene
	key   string
	score int
}

func (s *scoredScene) Score() (string, int) { return s.key, s.score }

type countingSink struct {
	*render.Buffer
	presents int
}

func (c *countingSink) Present() {
	c.presents++
	c.Buffer.Present()
}

func newSink() *countingSink {
	return &countingSink{Buffer: render.NewBuffer(20, 3, nil)}
}

type memScores struct {
	saved map[string]int
	err   error
}

func (m *memScores) SaveScore(levelID string, score int) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	if m.saved == nil {
		m.saved = make(map[string]int)
	}
	m.saved[levelID] = score
	return 1, nil
}

func onKey(key string, sig core.Signal) func(int, core.InputEvent) (core.Signal, error) {
	return func(_ int, ev core.InputEvent) (core.Signal, error) {
		if ev.Is(key) {
			return sig, nil
		}
		return core.SignalContinue, nil
	}
}

func quitOn(n int) func(int, core.InputEvent) (core.Signal, error) {
	return func(call int, _ core.InputEvent) (core.Signal, error) {
		if call == n {
			return core.SignalQuit, nil
		}
		return core.SignalContinue, nil
	}
}

func newLoop(t *testing.T, src Source, sink core.Sink, scenes ...scene.Scene) *Loop {
	t.Helper()
	seq, err := scene.NewSequence(scenes...)
	require.NoError(t, err)
	return New(seq, src, sink, WithInterval(10*time.Millisecond))
}

func TestQuitStopsImmediately(t *testing.T) {
	src := &scriptSource{}
	s := &funcScene{name: "s", next: quitOn(3)}

	res, err := newLoop(t, src, newSink(), s).Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, ReasonQuit, res.Reason)
	assert.Equal(t, uint64(3), res.Ticks)
	assert.Len(t, s.events, 3)
	assert.Len(t, src.timeouts, 2, "no poll after the quitting tick")
	assert.Equal(t, 1, s.exits)
}

func TestAdvanceDeliversSentinel(t *testing.T) {
	src := &scriptSource{events: []core.InputEvent{core.TextEvent(" ")}}
	sink := newSink()
	a := &funcScene{name: "a", next: onKey(" ", core.SignalAdvance)}
	b := &funcScene{name: "b", next: quitOn(1)}

	res, err := newLoop(t, src, sink, a, b).Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, ReasonQuit, res.Reason)
	assert.Equal(t, "b", res.Scene)
	assert.Equal(t, []core.InputEvent{core.Empty(), core.TextEvent(" ")}, a.events)
	assert.Equal(t, []core.InputEvent{core.Empty()}, b.events, "next scene starts with the sentinel")
	assert.Len(t, src.timeouts, 1, "no poll between advance and the next scene's first tick")
	assert.Equal(t, 1, sink.presents)
	assert.Equal(t, 1, a.exits)
	assert.Equal(t, 1, b.exits)
}

func TestResetDeliversSentinel(t *testing.T) {
	src := &scriptSource{events: []core.InputEvent{core.TextEvent("r"), core.TextEvent("q")}}
	s := &funcScene{name: "s", next: func(_ int, ev core.InputEvent) (core.Signal, error) {
		switch {
		case ev.Is("r"):
			return core.SignalReset, nil
		case ev.Is("q"):
			return core.SignalQuit, nil
		}
		return core.SignalContinue, nil
	}}

	_, err := newLoop(t, src, newSink(), s).Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, s.resets)
	assert.Equal(t, []core.InputEvent{
		core.Empty(), core.TextEvent("r"), core.Empty(), core.TextEvent("q"),
	}, s.events)
	assert.Len(t, src.timeouts, 2)
}

// counterScene advances once it has seen three "x" keys.
type counterScene struct {
	count   int
	signals []core.Signal
}

func (c *counterScene) Reset() { c.count = 0 }

func (c *counterScene) NextFrame(ev core.InputEvent) (core.Signal, error) {
	sig := core.SignalContinue
	switch {
	case ev.Is("x"):
		c.count++
		if c.count == 3 {
			sig = core.SignalAdvance
		}
	case ev.Is("r"):
		sig = core.SignalReset
	}
	c.signals = append(c.signals, sig)
	return sig, nil
}

func TestResetThenReplay(t *testing.T) {
	x, r := core.TextEvent("x"), core.TextEvent("r")
	src := &scriptSource{events: []core.InputEvent{x, x, r, x, x, x}}
	c := &counterScene{}

	res, err := newLoop(t, src, newSink(), c).Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, ReasonExhausted, res.Reason, "replay after reset reaches the same advance")
	assert.Equal(t, core.SignalAdvance, c.signals[len(c.signals)-1])
}

func TestLoseResetsScene(t *testing.T) {
	src := &scriptSource{events: []core.InputEvent{core.TextEvent("l"), core.TextEvent("q")}}
	s := &funcScene{name: "s", next: func(_ int, ev core.InputEvent) (core.Signal, error) {
		switch {
		case ev.Is("l"):
			return core.SignalLose, nil
		case ev.Is("q"):
			return core.SignalQuit, nil
		}
		return core.SignalContinue, nil
	}}

	ls := &losingScene{funcScene: s}
	sink := newSink()

	res, err := newLoop(t, src, sink, ls).Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, ReasonQuit, res.Reason)
	assert.Equal(t, 1, s.resets)
	assert.Equal(t, 1, ls.losses)
	// A loss presents and polls like any other tick.
	assert.Equal(t, 2, sink.presents)
	assert.Equal(t, []time.Duration{10 * time.Millisecond, 10 * time.Millisecond}, src.timeouts)
	assert.Equal(t, core.TextEvent("q"), s.events[2])
}

func TestRepeatedLossesKeepPolling(t *testing.T) {
	src := &scriptSource{}
	s := &funcScene{name: "s", next: func(call int, _ core.InputEvent) (core.Signal, error) {
		if call == 5 {
			return core.SignalQuit, nil
		}
		return core.SignalLose, nil
	}}

	res, err := newLoop(t, src, newSink(), s).Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, uint64(5), res.Ticks)
	assert.Equal(t, 4, s.resets)
	assert.Len(t, src.timeouts, 4)
}

func TestExhaustedSequence(t *testing.T) {
	src := &scriptSource{}
	s := &funcScene{name: "only", next: func(int, core.InputEvent) (core.Signal, error) {
		return core.SignalAdvance, nil
	}}

	res, err := newLoop(t, src, newSink(), s).Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, ReasonExhausted, res.Reason)
	assert.Equal(t, uint64(1), res.Ticks)
	assert.Empty(t, src.timeouts)
	assert.Equal(t, 1, s.exits)
}

func TestSceneErrorTerminates(t *testing.T) {
	boom := errors.New("boom")
	src := &scriptSource{}
	sink := newSink()
	s := &funcScene{name: "level 1", next: func(call int, _ core.InputEvent) (core.Signal, error) {
		if call == 2 {
			return core.SignalContinue, boom
		}
		return core.SignalContinue, nil
	}}

	res, err := newLoop(t, src, sink, s).Run(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSceneFailed)
	assert.ErrorIs(t, err, boom)

	var serr *SceneError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "level 1", serr.Scene)
	assert.Equal(t, uint64(2), serr.Tick)

	assert.Equal(t, ReasonFailed, res.Reason)
	assert.Equal(t, 1, s.exits)
	assert.Len(t, src.timeouts, 1)
	assert.Contains(t, sink.Snapshot().String(), EndMessage)
	assert.Equal(t, 2, sink.presents, "the end message is presented")
}

func TestScenePanicIsRecovered(t *testing.T) {
	s := &funcScene{name: "p", next: func(int, core.InputEvent) (core.Signal, error) {
		var m map[string]int
		m["x"]++
		return core.SignalContinue, nil
	}}

	res, err := newLoop(t, &scriptSource{}, newSink(), s).Run(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSceneFailed)
	assert.True(t, strings.Contains(err.Error(), "panic"))
	assert.Equal(t, ReasonFailed, res.Reason)
}

func TestUnknownSignalFails(t *testing.T) {
	s := &funcScene{name: "u", next: func(int, core.InputEvent) (core.Signal, error) {
		return core.Signal(42), nil
	}}

	_, err := newLoop(t, &scriptSource{}, newSink(), s).Run(context.Background())

	assert.ErrorIs(t, err, ErrSceneFailed)
}

func TestPauseBlocksPolling(t *testing.T) {
	p, q := core.TextEvent("p"), core.TextEvent("q")
	src := &scriptSource{events: []core.InputEvent{p, core.TextEvent("a"), q}}
	s := &funcScene{name: "s", next: func(call int, ev core.InputEvent) (core.Signal, error) {
		switch {
		case call == 1:
			return core.SignalPause, nil
		case ev.Is("p"):
			return core.SignalResume, nil
		case ev.Is("q"):
			return core.SignalQuit, nil
		}
		return core.SignalContinue, nil
	}}

	_, err := newLoop(t, src, newSink(), s).Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []time.Duration{0, 10 * time.Millisecond, 10 * time.Millisecond}, src.timeouts)
}

func TestContextCancel(t *testing.T) {
	q := NewQueue(4)
	s := &funcScene{name: "s", next: func(int, core.InputEvent) (core.Signal, error) {
		return core.SignalPause, nil
	}}
	ctx, cancel := context.WithCancel(context.Background())
	loop := newLoop(t, q, newSink(), s)

	done := make(chan Result, 1)
	go func() {
		res, err := loop.Run(ctx)
		assert.NoError(t, err)
		done <- res
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case res := <-done:
		assert.Equal(t, ReasonCanceled, res.Reason)
		assert.Equal(t, 1, s.exits)
	case <-time.After(time.Second):
		t.Fatal("loop did not stop on cancel")
	}
}

func TestInputFailure(t *testing.T) {
	s := &funcScene{name: "s", next: quitOn(10)}

	res, err := newLoop(t, failingSource{}, newSink(), s).Run(context.Background())

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSceneFailed)
	assert.Equal(t, ReasonFailed, res.Reason)
}

func TestScoresRecordedOnAdvance(t *testing.T) {
	scores := &memScores{}
	s := &scoredScene{
		funcScene: &funcScene{name: "level", next: func(int, core.InputEvent) (core.Signal, error) {
			return core.SignalAdvance, nil
		}},
		key:   "1",
		score: 150,
	}
	seq, err := scene.NewSequence(s)
	require.NoError(t, err)

	_, err = New(seq, &scriptSource{}, newSink(), WithScores(scores)).Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, map[string]int{"1": 150}, scores.saved)
}

func TestScoreFailureIsNotFatal(t *testing.T) {
	scores := &memScores{err: errors.New("disk full")}
	s := &scoredScene{
		funcScene: &funcScene{name: "level", next: func(int, core.InputEvent) (core.Signal, error) {
			return core.SignalAdvance, nil
		}},
		key: "1",
	}
	seq, err := scene.NewSequence(s)
	require.NoError(t, err)

	res, err := New(seq, &scriptSource{}, newSink(), WithScores(scores)).Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, ReasonExhausted, res.Reason)
}

func TestRunNeedsCollaborators(t *testing.T) {
	seq, err := scene.NewSequence(&funcScene{next: quitOn(1)})
	require.NoError(t, err)

	_, err = New(seq, nil, newSink()).Run(context.Background())
	assert.Error(t, err)
}
