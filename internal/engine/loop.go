// Package engine runs the game loop: it drives the active scene once per
// tick, applies the scene's control signal, presents the frame and waits for
// the next input.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/echomaze/internal/core"
	"github.com/vovakirdan/echomaze/internal/scene"
)

// EndMessage is shown when a scene fails.
const EndMessage = "Game ended."

// Reason tells why a run terminated.
type Reason int

const (
	ReasonQuit      Reason = iota // a scene returned SignalQuit
	ReasonExhausted               // the last scene advanced
	ReasonCanceled                // the context was canceled
	ReasonFailed                  // a scene or the input source failed
)

func (r Reason) String() string {
	switch r {
	case ReasonQuit:
		return "quit"
	case ReasonExhausted:
		return "exhausted"
	case ReasonCanceled:
		return "canceled"
	case ReasonFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result summarizes a finished run.
type Result struct {
	Reason Reason
	Ticks  uint64
	// Scene is the name of the scene that was active when the run ended.
	Scene string
}

// ScoreRecorder stores the score of a finished scene.
type ScoreRecorder interface {
	SaveScore(levelID string, score int) (int64, error)
}

// Loop drives a scene sequence. A Loop runs once.
type Loop struct {
	seq      *scene.Sequence
	input    Source
	sink     core.Sink
	interval time.Duration
	logger   *log.Logger
	scores   ScoreRecorder

	tick   uint64
	paused bool
}

// Option configures a Loop.
type Option func(*Loop)

// WithInterval sets the bounded wait between ticks.
func WithInterval(d time.Duration) Option {
	return func(l *Loop) {
		if d > 0 {
			l.interval = d
		}
	}
}

// WithLogger sets the logger for loop events.
func WithLogger(logger *log.Logger) Option {
	return func(l *Loop) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithScores records the score of every Scorer scene that advances.
func WithScores(r ScoreRecorder) Option {
	return func(l *Loop) {
		l.scores = r
	}
}

// New creates a loop over seq reading from input and presenting to sink.
func New(seq *scene.Sequence, input Source, sink core.Sink, opts ...Option) *Loop {
	l := &Loop{
		seq:      seq,
		input:    input,
		sink:     sink,
		interval: Interval(DefaultTickRate),
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Ticks returns the number of ticks run so far.
func (l *Loop) Ticks() uint64 {
	return l.tick
}

// Run drives the sequence until a scene quits, the last scene advances, a
// scene fails or ctx is canceled. Only scene and input failures are returned
// as errors.
func (l *Loop) Run(ctx context.Context) (Result, error) {
	if l.seq == nil || l.input == nil || l.sink == nil {
		return Result{Reason: ReasonFailed}, errors.New("engine: loop needs a sequence, an input source and a sink")
	}

	cur := l.seq.Current()
	if cur == nil {
		return l.result(ReasonExhausted, nil), nil
	}
	l.logger.Info("scene started", "scene", scene.NameOf(cur), "tick", l.tick)

	ev := core.Empty()
	for {
		if ctx.Err() != nil {
			return l.stop(cur, ReasonCanceled), nil
		}

		l.tick++
		sig, err := l.step(cur, ev)
		if err != nil {
			return l.fail(cur, err)
		}

		switch sig {
		case core.SignalAdvance:
			l.record(cur)
			scene.Exit(cur)
			next, ok := l.seq.Advance()
			if !ok {
				l.logger.Info("sequence finished", "scene", scene.NameOf(cur), "tick", l.tick)
				return l.result(ReasonExhausted, cur), nil
			}
			cur = next
			l.paused = false
			l.logger.Info("scene started", "scene", scene.NameOf(cur), "tick", l.tick)
			ev = core.Empty()
			continue

		case core.SignalReset:
			l.logger.Debug("scene reset", "scene", scene.NameOf(cur), "tick", l.tick)
			cur.Reset()
			ev = core.Empty()
			continue

		case core.SignalLose:
			// Unlike Reset, a loss is shown and waits for input before the
			// next attempt starts.
			l.logger.Info("scene lost", "scene", scene.NameOf(cur), "tick", l.tick)
			cur.Reset()
			scene.Lose(cur)
			l.paused = false

		case core.SignalQuit:
			l.logger.Info("quit", "scene", scene.NameOf(cur), "tick", l.tick)
			return l.stop(cur, ReasonQuit), nil

		case core.SignalPause:
			l.paused = true
		case core.SignalResume:
			l.paused = false
		case core.SignalContinue:
		default:
			return l.fail(cur, fmt.Errorf("unknown signal %d", int(sig)))
		}

		l.sink.Present()

		timeout := l.interval
		if l.paused {
			timeout = 0
		}
		ev, err = l.input.Poll(ctx, timeout)
		if err != nil {
			if ctx.Err() != nil {
				return l.stop(cur, ReasonCanceled), nil
			}
			l.logger.Error("input failed", "err", err, "tick", l.tick)
			scene.Exit(cur)
			return l.result(ReasonFailed, cur), fmt.Errorf("engine: poll input: %w", err)
		}
	}
}

func (l *Loop) step(s scene.Scene, ev core.InputEvent) (sig core.Signal, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = panicError{value: r}
		}
	}()
	return s.NextFrame(ev)
}

func (l *Loop) fail(cur scene.Scene, err error) (Result, error) {
	serr := &SceneError{Scene: scene.NameOf(cur), Tick: l.tick, Err: err}
	l.logger.Error("scene failed", "scene", serr.Scene, "tick", serr.Tick, "err", err)

	scene.Exit(cur)
	l.sink.ShowOverlay(-1, EndMessage, core.ColorBrightRed)
	l.sink.Present()
	return l.result(ReasonFailed, cur), serr
}

func (l *Loop) stop(cur scene.Scene, reason Reason) Result {
	scene.Exit(cur)
	return l.result(reason, cur)
}

func (l *Loop) record(cur scene.Scene) {
	if l.scores == nil {
		return
	}
	s, ok := cur.(scene.Scorer)
	if !ok {
		return
	}
	key, score := s.Score()
	if key == "" {
		return
	}
	if _, err := l.scores.SaveScore(key, score); err != nil {
		l.logger.Warn("cannot record score", "scene", scene.NameOf(cur), "err", err)
		return
	}
	l.logger.Info("score recorded", "level", key, "score", score)
}

func (l *Loop) result(reason Reason, cur scene.Scene) Result {
	r := Result{Reason: reason, Ticks: l.tick}
	if cur != nil {
		r.Scene = scene.NameOf(cur)
	}
	return r
}
