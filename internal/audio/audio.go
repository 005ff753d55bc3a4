// Package audio plays sound cues for game events. Playback is best effort:
// failures are logged and never reach the game loop.
package audio

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

// Event names a sound cue.
type Event string

const (
	EnterGame Event = "enter_game"
	LevelUp   Event = "level_up"
	StopMusic Event = "stop_music"
	EnterBox  Event = "enter_box"
	HitWall   Event = "hit_wall"
	Echo      Event = "echo"
)

// Events lists every known cue.
func Events() []Event {
	return []Event{EnterGame, LevelUp, StopMusic, EnterBox, HitWall, Echo}
}

// ParseEvents converts cue names such as "hit_wall".
func ParseEvents(names []string) ([]Event, error) {
	known := make(map[Event]bool)
	for _, ev := range Events() {
		known[ev] = true
	}
	out := make([]Event, 0, len(names))
	for _, name := range names {
		ev := Event(strings.ToLower(strings.TrimSpace(name)))
		if !known[ev] {
			return nil, fmt.Errorf("audio: unknown event %q", name)
		}
		out = append(out, ev)
	}
	return out, nil
}

//go:generate mockgen -destination=./mock/mock_audio.go . Player

// Player plays a single cue. Play may block while the cue plays.
type Player interface {
	Play(ev Event) error
}

// Nop is a Player that plays nothing.
type Nop struct{}

// Play implements Player.
func (Nop) Play(Event) error { return nil }

// Bell rings the terminal bell for a chosen set of cues.
type Bell struct {
	mu     sync.Mutex
	w      io.Writer
	events map[Event]bool
}

// NewBell rings on w for the given events, or for HitWall and LevelUp when
// none are given.
func NewBell(w io.Writer, events ...Event) *Bell {
	if len(events) == 0 {
		events = []Event{HitWall, LevelUp}
	}
	b := &Bell{w: w, events: make(map[Event]bool, len(events))}
	for _, ev := range events {
		b.events[ev] = true
	}
	return b
}

// Play implements Player.
func (b *Bell) Play(ev Event) error {
	if !b.events[ev] {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	_, err := io.WriteString(b.w, "\a")
	return err
}

// Trigger fires cues without blocking the caller. A nil Trigger is disabled.
type Trigger struct {
	player Player
	logger *log.Logger
	wg     sync.WaitGroup
}

// NewTrigger creates a trigger over player. A nil logger discards warnings.
func NewTrigger(player Player, logger *log.Logger) *Trigger {
	if player == nil {
		player = Nop{}
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Trigger{player: player, logger: logger}
}

// Fire plays ev in the background.
func (t *Trigger) Fire(ev Event) {
	if t == nil {
		return
	}
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		if err := t.player.Play(ev); err != nil {
			t.logger.Warn("cannot play sound", "event", string(ev), "err", err)
		}
	}()
}

// Wait blocks until every fired cue has finished.
func (t *Trigger) Wait() {
	if t == nil {
		return
	}
	t.wg.Wait()
}
