package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/echomaze/internal/levels"
	"github.com/vovakirdan/echomaze/internal/storage"
)

// boardRuns is how many runs of a level the scoreboard loads.
const boardRuns = 100

// LevelTab is one level shown on the scoreboard.
type LevelTab struct {
	ID    string
	Title string
}

// ScoreboardLevels lists the levels the loader knows plus any level that
// only exists in the score table (e.g. removed custom levels).
func ScoreboardLevels(loader *levels.Loader, store *storage.Store) []LevelTab {
	seen := make(map[string]bool)
	var tabs []LevelTab
	if loader != nil {
		lvls, _ := loader.LoadAll()
		for _, l := range lvls {
			seen[l.ID] = true
			tabs = append(tabs, LevelTab{ID: l.ID, Title: l.Title()})
		}
	}
	if store != nil {
		ids, _ := store.Levels()
		levels.SortIDs(ids)
		for _, id := range ids {
			if !seen[id] {
				tabs = append(tabs, LevelTab{ID: id, Title: "Level " + id})
			}
		}
	}
	return tabs
}

type boardKeys struct {
	Scroll key.Binding
	Next   key.Binding
	Prev   key.Binding
	Back   key.Binding
	Quit   key.Binding
}

func (k boardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Scroll, k.Next, k.Prev, k.Back, k.Quit}
}

func (k boardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func newBoardKeys() boardKeys {
	return boardKeys{
		Scroll: key.NewBinding(key.WithKeys("up", "down", "k", "j"), key.WithHelp("↑/↓", "scroll")),
		Next:   key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab/→", "next level")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab/←", "prev level")),
		Back:   key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

type boardExit int

const (
	boardOpen boardExit = iota
	boardBack
	boardQuit
)

var (
	boardTitle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("223"))
	boardTab       = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	boardActiveTab = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("16")).Background(lipgloss.Color("223")).Padding(0, 1)
	boardFrame     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	boardDim       = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// ScoreboardModel shows the recorded runs of one level at a time, best
// first, with a strip of level tabs to switch between levels.
type ScoreboardModel struct {
	store  *storage.Store
	levels []LevelTab
	cur    int

	runs  []storage.ScoreEntry
	stats storage.LevelStats
	table table.Model
	help  help.Model
	keys  boardKeys

	width, height int
	exit          boardExit
	now           func() time.Time
}

// NewScoreboardModel creates the scoreboard for tabs. store may be nil, in
// which case every level shows as empty.
func NewScoreboardModel(store *storage.Store, tabs []LevelTab, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		store:  store,
		levels: tabs,
		help:   help.New(),
		keys:   newBoardKeys(),
		width:  width,
		height: height,
		now:    time.Now,
	}
	m.table = m.newTable()
	m.load()
	return m
}

func (m *ScoreboardModel) newTable() table.Model {
	// Rank, score, share of the best run, age.
	cols := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Score", Width: 7},
		{Title: "of best", Width: 8},
		{Title: "When", Width: 16},
	}
	if extra := m.width - 56; extra > 0 {
		cols[3].Width += min(extra, 14)
	}

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("16")).
		Background(lipgloss.Color("223"))

	return table.New(
		table.WithColumns(cols),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
		table.WithStyles(styles),
	)
}

// load reads the runs and stats of the current level.
func (m *ScoreboardModel) load() {
	m.runs, m.stats = nil, storage.LevelStats{}
	if m.store == nil || len(m.levels) == 0 {
		m.table.SetRows(nil)
		return
	}
	id := m.levels[m.cur].ID
	m.stats.LevelID = id
	if runs, err := m.store.TopScores(id, boardRuns); err == nil {
		m.runs = runs
	}
	if stats, err := m.store.Stats(id); err == nil {
		m.stats = stats
	}

	rows := make([]table.Row, 0, len(m.runs))
	for i, r := range m.runs {
		share := "-"
		if m.stats.Best > 0 {
			share = strconv.Itoa(r.Score*100/m.stats.Best) + "%"
		}
		rows = append(rows, table.Row{
			strconv.Itoa(i + 1),
			strconv.Itoa(r.Score),
			share,
			humanize.RelTime(r.CreatedAt, m.now(), "ago", "from now"),
		})
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m *ScoreboardModel) step(d int) {
	if n := len(m.levels); n > 0 {
		m.cur = (m.cur + d + n) % n
		m.load()
	}
}

// Init implements tea.Model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.exit = boardQuit
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.exit = boardBack
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.step(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.step(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		m.load()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m ScoreboardModel) View() string {
	if m.exit != boardOpen {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(boardTitle.Render("HIGH SCORES"), m.width))
	b.WriteString("\n\n")

	if len(m.levels) == 0 {
		b.WriteString(centerText(boardDim.Render("No levels yet."), m.width))
		b.WriteString("\n\n")
		b.WriteString(m.help.View(m.keys))
		return b.String()
	}

	b.WriteString(centerText(m.tabStrip(), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(m.summary(), m.width))
	b.WriteString("\n\n")

	body := boardDim.Italic(true).Render("No runs yet. Find an exit to set one!")
	if len(m.runs) > 0 {
		body = m.table.View()
	}
	for _, line := range strings.Split(boardFrame.Render(body), "\n") {
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(boardDim.Render(m.help.View(m.keys)))
	return b.String()
}

// tabStrip lists every level, or only the current one with its position
// when they do not fit.
func (m ScoreboardModel) tabStrip() string {
	tabs := make([]string, len(m.levels))
	for i, lt := range m.levels {
		if i == m.cur {
			tabs[i] = boardActiveTab.Render(lt.Title)
		} else {
			tabs[i] = boardTab.Render(lt.Title)
		}
	}
	strip := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	if lipgloss.Width(strip) <= m.width-2 {
		return strip
	}
	return fmt.Sprintf("< %s >  %d/%d", boardActiveTab.Render(m.levels[m.cur].Title), m.cur+1, len(m.levels))
}

func (m ScoreboardModel) summary() string {
	if m.stats.Runs == 0 {
		return boardDim.Render("no runs")
	}
	return fmt.Sprintf("%d runs  |  best %d  |  average %.1f  |  last %s",
		m.stats.Runs, m.stats.Best, m.stats.Average, humanize.RelTime(m.stats.Last, m.now(), "ago", "from now"))
}

// IsGoingBack reports whether the user asked to return to the menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.exit == boardBack
}

// IsQuitting reports whether the user asked to quit.
func (m ScoreboardModel) IsQuitting() bool {
	return m.exit == boardQuit
}

// RunScoreboard shows the scoreboard in the local terminal. goBack is true
// when the user asked for the menu rather than quitting.
func RunScoreboard(store *storage.Store, tabs []LevelTab, width, height int) (goBack bool, err error) {
	final, err := tea.NewProgram(NewScoreboardModel(store, tabs, width, height), tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}
