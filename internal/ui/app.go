package ui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/logtailer/internal/logtail"
	"github.com/five82/logtailer/internal/prefs"
	"github.com/five82/logtailer/internal/state"
)

const defaultRefresh = 250 * time.Millisecond

// Options configures the UI.
type Options struct {
	Store     *state.Store
	Prefs     prefs.Prefs
	PrefsPath string
	Refresh   time.Duration
}

// Model is the root application state for Bubble Tea.
type Model struct {
	store     *state.Store
	prefs     prefs.Prefs
	prefsPath string
	refresh   time.Duration

	theme       Theme
	highlighter logtail.Highlighter
	keys        keyMap
	help        help.Model

	width  int
	height int
	ready  bool

	snapshot state.Snapshot
	viewport viewport.Model
	follow   bool

	search    textinput.Model
	searching bool
	filter    string
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	refresh := opts.Refresh
	if refresh <= 0 {
		refresh = defaultRefresh
	}

	search := textinput.New()
	search.Prompt = "/"
	search.Placeholder = "filter lines"
	search.CharLimit = 200

	theme := GetTheme(opts.Prefs.Theme)
	return Model{
		store:       opts.Store,
		prefs:       opts.Prefs,
		prefsPath:   opts.PrefsPath,
		refresh:     refresh,
		theme:       theme,
		highlighter: theme.Highlighter(),
		keys:        DefaultKeyMap(),
		help:        help.New(),
		follow:      true,
		search:      search,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(fetchSnapshotCmd(m.store), tickCmd(m.refresh))
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.searching {
			return m.handleSearchKey(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(msg.Width, m.bodyHeight())
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = m.bodyHeight()
		}
		m.help.Width = msg.Width
		m.updateContent()
		return m, nil

	case tickMsg:
		return m, tea.Batch(fetchSnapshotCmd(m.store), tickCmd(m.refresh))

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		m.updateContent()
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	return m.renderMain()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize()
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.highlighter = m.theme.Highlighter()
		m.prefs.Theme = m.theme.Name
		m.savePrefs()
		m.updateContent()
		return m, nil

	case key.Matches(msg, m.keys.Wrap):
		m.prefs.Wrap = !m.prefs.Wrap
		m.savePrefs()
		m.updateContent()
		return m, nil

	case key.Matches(msg, m.keys.Follow):
		m.follow = !m.follow
		if m.follow {
			m.viewport.GotoBottom()
		}
		return m, nil

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.search.SetValue(m.filter)
		m.resize()
		cmd := m.search.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.ClearSearch):
		m.filter = ""
		m.updateContent()
		return m, nil

	case key.Matches(msg, m.keys.Top):
		m.follow = false
		m.viewport.GotoTop()
		return m, nil

	case key.Matches(msg, m.keys.Bottom):
		m.follow = true
		m.viewport.GotoBottom()
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	m.follow = m.viewport.AtBottom()
	return m, cmd
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.filter = m.search.Value()
		m.endSearch()
		return m, nil
	case tea.KeyEsc:
		m.endSearch()
		return m, nil
	case tea.KeyCtrlC:
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m *Model) endSearch() {
	m.searching = false
	m.search.Blur()
	m.resize()
}

func (m *Model) resize() {
	if !m.ready {
		return
	}
	m.viewport.Height = m.bodyHeight()
	m.updateContent()
}

func (m *Model) savePrefs() {
	_ = prefs.Save(m.prefsPath, m.prefs)
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		if store == nil {
			return snapshotMsg{}
		}
		return snapshotMsg(store.Snapshot())
	}
}

// Run starts the Bubble Tea program and blocks until the user quits or ctx
// is cancelled.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}
