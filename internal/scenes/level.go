package scenes

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/echomaze/internal/audio"
	"github.com/vovakirdan/echomaze/internal/camera"
	"github.com/vovakirdan/echomaze/internal/config"
	"github.com/vovakirdan/echomaze/internal/core"
	"github.com/vovakirdan/echomaze/internal/levels"
	"github.com/vovakirdan/echomaze/internal/maze"
	"github.com/vovakirdan/echomaze/internal/registry"
	"github.com/vovakirdan/echomaze/internal/scene"
)

// DialogueDuration is how long a dialogue line stays on screen.
const DialogueDuration = 3 * time.Second

// hudRows is the status line on top plus the dialogue line at the bottom.
const hudRows = 2

// Level is a playable maze. The maze is dark: only walls near the player,
// walls found by an echo and the reveal area of the box the player stands
// in are drawn.
type Level struct {
	*scene.Base

	lvl      levels.Level
	scoreKey string
	maze     *maze.Maze
	glyphs   core.Grid
	cam      *camera.Camera
	player   *maze.Player
	audio    *audio.Trigger
	logger   *log.Logger

	margin     int
	echoRadius int
	overlay    time.Duration
	home       core.Point

	tick   uint64
	paused bool
	box    int // index of the box under the player, -1 outside
	echoed map[core.Point]bool
	talked map[int]bool
	first  bool
	lost   bool
}

// LoadLevel builds the level with the given id from env.Levels.
func LoadLevel(env registry.Env, id string) (*Level, error) {
	if id == "" {
		return nil, errors.New("level id is required, e.g. level:1")
	}
	if env.Levels == nil {
		return nil, errors.New("no level loader")
	}
	lvl, err := env.Levels.LoadByID(id)
	if err != nil {
		return nil, err
	}
	return NewLevel(env, lvl, lvl.ID)
}

// NewLevel builds a level scene. Scores are recorded under scoreKey; an
// empty key keeps the level off the scoreboard.
func NewLevel(env registry.Env, lvl levels.Level, scoreKey string) (*Level, error) {
	base, err := newBase(env)
	if err != nil {
		return nil, err
	}

	m := lvl.Maze()
	l := &Level{
		Base:       base,
		lvl:        lvl,
		scoreKey:   scoreKey,
		maze:       m,
		glyphs:     m.Glyphs(),
		audio:      env.Audio,
		logger:     env.Log().With("level", lvl.ID),
		margin:     env.Config.Camera.Margin,
		echoRadius: env.Config.Player.EchoRadius,
		overlay:    time.Duration(env.Config.OverlayMS) * time.Millisecond,
	}
	l.player = maze.NewPlayer(lvl.Start, playerScore(env.Config.Player), uint64(env.Config.Player.CollisionCooldown))

	// The camera clips its far edges, so pad one blank row and column to
	// keep the last map row and column in view.
	size := core.Max(1, core.Min(env.Config.Camera.Size, core.Min(base.Width/2, base.Height-hudRows)))
	l.cam = camera.New(padGrid(lvl.Map), camera.WithSize(size), camera.WithQuickness(env.Config.Camera.Quickness))
	cols, rows := l.cam.Grid().Cols(), l.cam.Grid().Rows()
	l.home = core.Pt(
		core.Clip(0, lvl.Start.X-size/2, core.Max(0, cols-size)),
		core.Clip(0, lvl.Start.Y-size/2, core.Max(0, rows-size)),
	)

	l.Reset()
	return l, nil
}

func playerScore(cfg config.PlayerConfig) maze.Score {
	start, penalty := cfg.StartScore, cfg.Penalty
	if start <= 0 {
		start = maze.DefaultStartScore
	}
	if penalty < 0 {
		penalty = maze.DefaultPenalty
	}
	return maze.NewScore(start, penalty)
}

func padGrid(g core.Grid) core.Grid {
	cols := g.Cols() + 1
	out := make(core.Grid, 0, g.Rows()+1)
	for _, row := range g {
		r := make([]rune, cols)
		copy(r, row)
		for i := len(row); i < cols; i++ {
			r[i] = maze.FloorRune
		}
		out = append(out, r)
	}
	blank := make([]rune, cols)
	for i := range blank {
		blank[i] = maze.FloorRune
	}
	return append(out, blank)
}

// Name implements scene.Named.
func (l *Level) Name() string { return "level:" + l.lvl.ID }

// Score implements scene.Scorer.
func (l *Level) Score() (string, int) { return l.scoreKey, l.player.Score.Int() }

// Player returns the player.
func (l *Level) Player() *maze.Player { return l.player }

// Paused reports whether the level waits for p.
func (l *Level) Paused() bool { return l.paused }

// Reset implements scene.Scene. Reset puts the player back on the start
// cell with a fresh score and forgets everything it has seen.
func (l *Level) Reset() {
	l.Release()
	l.player.Reset()
	l.cam.MoveTo(l.home.X, l.home.Y)
	l.tick = 0
	l.paused = false
	l.box = -1
	l.echoed = nil
	l.talked = make(map[int]bool)
	l.first = true
	l.lost = false
}

// OnLose implements scene.Loser. The next attempt opens with a notice.
func (l *Level) OnLose() {
	l.lost = true
}

// OnExit implements scene.Exiter.
func (l *Level) OnExit() {
	l.Release()
	l.audio.Fire(audio.StopMusic)
}

// NextFrame implements scene.Scene.
func (l *Level) NextFrame(ev core.InputEvent) (core.Signal, error) {
	entering := l.first
	if entering {
		l.first = false
		l.enter()
	}

	switch {
	case ev.Is("q"):
		return core.SignalQuit, nil
	case ev.Is("r"):
		return core.SignalReset, nil
	case ev.Is("p"):
		l.paused = !l.paused
		l.draw()
		if l.paused {
			return core.SignalPause, nil
		}
		return core.SignalResume, nil
	}
	if l.paused {
		return core.SignalContinue, nil
	}

	l.tick++
	switch {
	case ev.IsSequence:
		if dir, ok := maze.Direction(ev.Code); ok && l.move(dir) {
			l.logger.Debug("exit reached", "score", l.player.Score.Int(), "tick", l.tick)
			l.audio.Fire(audio.LevelUp)
			return core.SignalAdvance, nil
		}
	case ev.Is(" "):
		l.echo()
	}

	// The first tick of an attempt never loses.
	l.player.Score.Tick(l.box >= 0)
	if !entering && l.player.Score.Int() <= 0 {
		l.logger.Debug("out of score", "collisions", l.player.Collisions)
		return core.SignalLose, nil
	}

	l.cam.Follow(l.player.Pos, l.margin)
	l.cam.Step()
	l.draw()
	return core.SignalContinue, nil
}

func (l *Level) enter() {
	l.Flash(l.Height/2, l.lvl.Title(), core.ColorBrightYellow, 2*l.overlay)
	if l.lost {
		l.lost = false
		l.Flash(l.Height/2+1, "lost in the dark, try again", core.ColorBrightRed, 2*l.overlay)
	}
	l.audio.Fire(audio.EnterGame)
	l.enterBox()
	l.talk()
	l.draw()
}

// move steps the player and reports whether an end cell was reached.
func (l *Level) move(dir core.Point) bool {
	switch l.player.Step(l.maze, dir, l.tick) {
	case maze.Hit:
		l.Flash(0, "ouch!", core.ColorBrightRed, l.overlay)
		l.audio.Fire(audio.HitWall)
	case maze.Moved:
		l.echoed = nil
		if l.maze.IsEnd(l.player.Pos) {
			return true
		}
		l.enterBox()
		l.talk()
	}
	return false
}

func (l *Level) enterBox() {
	idx := -1
	for i, b := range l.lvl.Boxes {
		if b.Rect.ContainsPoint(l.player.Pos) {
			idx = i
			break
		}
	}
	if idx >= 0 && idx != l.box {
		l.Flash(0, "pow!", l.lvl.Boxes[idx].Color, l.overlay)
		l.audio.Fire(audio.EnterBox)
	}
	l.box = idx
}

func (l *Level) talk() {
	for i, d := range l.lvl.Dialogue {
		if d.At == l.player.Pos && !l.talked[i] {
			l.talked[i] = true
			l.Flash(-1, d.Text, core.ColorBrightWhite, DialogueDuration)
		}
	}
}

// echo marks the walls and corridors seen along the four axes.
func (l *Level) echo() {
	l.echoed = make(map[core.Point]bool)
	for _, dir := range []core.Point{{X: 0, Y: -1}, {X: 0, Y: 1}, {X: -1, Y: 0}, {X: 1, Y: 0}} {
		n := l.maze.DistanceToWall(l.player.Pos, dir)
		p := l.player.Pos
		for i := 0; i <= n; i++ {
			p = p.Add(dir)
			l.echoed[p] = true
		}
	}
	l.audio.Fire(audio.Echo)
}

func (l *Level) visible(p core.Point) bool {
	if l.echoed[p] {
		return true
	}
	if l.box >= 0 && l.lvl.Boxes[l.box].Reveal.ContainsPoint(p) {
		return true
	}
	d := p.Sub(l.player.Pos)
	return core.Max(core.Abs(d.X), core.Abs(d.Y)) <= l.echoRadius
}

func (l *Level) draw() {
	l.ClearFrame()

	collisions := fmt.Sprintf("Collisions: %d", l.player.Collisions)
	score := fmt.Sprintf("Score:%d", l.player.Score.Int())
	l.Text(0, 0, collisions)
	l.Text(l.Width-len(score), 0, score)
	if l.paused {
		l.Centered(0, "PAUSED")
	} else {
		l.Centered(0, l.lvl.Title())
	}

	w := l.cam.Window(l.cam.X, l.cam.Y)
	ox := (l.Width - 2*w.W) / 2
	oy := 1 + (l.Height-hudRows-w.H)/2
	for y := w.Y; y < w.Bottom(); y++ {
		for x := w.X; x < w.Right(); x++ {
			l.drawCell(ox+2*(x-w.X), oy+y-w.Y, core.Pt(x, y))
		}
	}
	l.Commit()
}

func (l *Level) drawCell(sx, sy int, p core.Point) {
	switch {
	case p == l.player.Pos:
		l.Frame.DrawTextColor(sx, sy, "██", l.Fg, l.Bg)
	case l.maze.IsEnd(p):
		l.Frame.DrawTextColor(sx, sy, "<>", core.ColorBrightGreen, l.Bg)
	case l.maze.Wall(p):
		if l.visible(p) && l.maze.Inside(p) {
			row := l.glyphs[p.Y]
			l.Frame.DrawTextColor(sx, sy, string(row[2*p.X:2*p.X+2]), l.Fg, l.Bg)
		}
	default:
		if b, ok := l.lvl.BoxAt(p); ok {
			cell := core.Cell{Rune: ' ', Fg: l.Fg, Bg: b.Color}
			l.Frame.SetCell(sx, sy, cell)
			l.Frame.SetCell(sx+1, sy, cell)
		}
	}
}
