package tui

import (
	"context"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/echomaze/internal/audio"
	"github.com/vovakirdan/echomaze/internal/config"
	"github.com/vovakirdan/echomaze/internal/core"
	"github.com/vovakirdan/echomaze/internal/engine"
	"github.com/vovakirdan/echomaze/internal/levels"
	"github.com/vovakirdan/echomaze/internal/registry"
	"github.com/vovakirdan/echomaze/internal/render"
	"github.com/vovakirdan/echomaze/internal/storage"
)

// Options describes one game session.
type Options struct {
	Config  config.Config
	Runtime core.RuntimeConfig
	// Specs is the scene sequence, e.g. ["title", "level:1", "end"].
	Specs  []string
	Levels *levels.Loader
	Store  *storage.Store // nil: scores are not recorded
	Audio  audio.Player   // nil: silent
	Styler render.Styler  // nil: RenderScreen
	Logger *log.Logger
}

// AudioPlayer returns the sound player configured in cfg, ringing on w, or
// nil when sound is off.
func AudioPlayer(cfg config.Config, w io.Writer) audio.Player {
	if !cfg.Audio.Enabled || !cfg.Audio.Bell {
		return nil
	}
	events, err := audio.ParseEvents(cfg.Audio.Events)
	if err != nil {
		return nil
	}
	return audio.NewBell(w, events...)
}

type frameMsg string

type loopDoneMsg struct {
	result engine.Result
	err    error
}

// GameModel runs the engine loop behind Bubble Tea. The loop runs in its own
// goroutine; keys are pushed to its input queue and presented frames come
// back as messages.
type GameModel struct {
	queue  *engine.Queue
	buffer *render.Buffer
	loop   *engine.Loop
	audio  *audio.Trigger
	logger *log.Logger

	ctx    context.Context
	cancel context.CancelFunc

	frame  string
	failed bool
	done   bool
	result engine.Result
	err    error
}

// NewGameModel builds the scene sequence for opts. Scene construction
// errors are returned before anything is drawn.
func NewGameModel(opts Options) (GameModel, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.Runtime.Seed == 0 {
		opts.Runtime.Seed = time.Now().UnixNano()
	}
	if opts.Runtime.TickRate <= 0 {
		opts.Runtime.TickRate = opts.Config.TickRate
	}
	styler := opts.Styler
	if styler == nil {
		styler = RenderScreen
	}

	buffer := render.NewBuffer(opts.Runtime.ScreenW, opts.Runtime.ScreenH, styler)
	var trigger *audio.Trigger
	if opts.Audio != nil {
		trigger = audio.NewTrigger(opts.Audio, logger)
	}

	env := registry.Env{
		Runtime: opts.Runtime,
		Config:  opts.Config,
		Sink:    buffer,
		Levels:  opts.Levels,
		Audio:   trigger,
		Logger:  logger,
	}
	loopOpts := []engine.Option{
		engine.WithInterval(engine.Interval(opts.Runtime.TickRate)),
		engine.WithLogger(logger),
	}
	if opts.Store != nil {
		env.Scores = opts.Store
		loopOpts = append(loopOpts, engine.WithScores(opts.Store))
	}

	seq, err := registry.Sequence(env, opts.Specs)
	if err != nil {
		return GameModel{}, err
	}

	queue := engine.NewQueue(engine.DefaultQueueSize)
	ctx, cancel := context.WithCancel(context.Background())
	return GameModel{
		queue:  queue,
		buffer: buffer,
		loop:   engine.New(seq, queue, buffer, loopOpts...),
		audio:  trigger,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}, nil
}

// Init starts the loop and waits for its first frame.
func (m GameModel) Init() tea.Cmd {
	return tea.Batch(m.runLoop(), m.waitFrame())
}

func (m GameModel) runLoop() tea.Cmd {
	loop, ctx, trigger := m.loop, m.ctx, m.audio
	return func() tea.Msg {
		res, err := loop.Run(ctx)
		trigger.Wait()
		return loopDoneMsg{result: res, err: err}
	}
}

func (m GameModel) waitFrame() tea.Cmd {
	frames, ctx := m.buffer.Frames(), m.ctx
	return func() tea.Msg {
		select {
		case f := <-frames:
			return frameMsg(f)
		case <-ctx.Done():
			return nil
		}
	}
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.failed {
			m.done = true
			return m, tea.Quit
		}
		if msg.Type == tea.KeyCtrlC {
			m.cancel()
			return m, nil
		}
		if ev, ok := KeyEvent(msg); ok && !m.queue.Push(ev) {
			m.logger.Debug("input dropped", "key", ev.String())
		}
		return m, nil

	case frameMsg:
		m.frame = string(msg)
		return m, m.waitFrame()

	case loopDoneMsg:
		m.result, m.err = msg.result, msg.err
		m.cancel()
		if m.err != nil {
			// The failure frame stays up until the next key.
			m.failed = true
			m.frame = m.buffer.Render()
			return m, nil
		}
		m.done = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the last presented frame.
func (m GameModel) View() string {
	if m.done {
		return ""
	}
	return m.frame
}

// Done reports whether the loop has finished and the model is ready to be
// left. After a failure that waits for a key press.
func (m GameModel) Done() bool {
	return m.done
}

// Result returns how the loop finished. Only scene and input failures are
// returned as errors.
func (m GameModel) Result() (engine.Result, error) {
	return m.result, m.err
}

// Run plays opts in the local terminal until the sequence ends.
func Run(opts Options) (engine.Result, error) {
	model, err := NewGameModel(opts)
	if err != nil {
		return engine.Result{Reason: engine.ReasonFailed}, err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	model.cancel()
	if err != nil {
		return engine.Result{Reason: engine.ReasonFailed}, err
	}

	gm, ok := final.(GameModel)
	if !ok {
		return engine.Result{Reason: engine.ReasonCanceled}, nil
	}
	return gm.Result()
}
