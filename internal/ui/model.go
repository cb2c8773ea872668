package ui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/five82/warpdeck/internal/live"
	"github.com/five82/warpdeck/internal/logging"
	"github.com/five82/warpdeck/internal/prefs"
	"github.com/five82/warpdeck/internal/signwarp"
	"github.com/five82/warpdeck/internal/view"
)

// View represents the active tab.
type View int

const (
	ViewWarps View = iota
	ViewStats
	ViewSettings
)

var viewNames = []string{"Warps", "Stats", "Settings"}

type inputMode int

const (
	modeNone inputMode = iota
	modeSearch
	modeInvite
)

// Live is the push channel as seen by the UI.
type Live interface {
	Events() <-chan live.Event
	SetURL(url string)
	Close()
}

// Options configures the UI.
type Options struct {
	Context   context.Context
	Sync      *view.Synchronizer
	Gateway   signwarp.Gateway
	Live      Live
	PrefsPath string
	Logger    logrus.FieldLogger
	// APIBind is shown on the settings tab.
	APIBind string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx       context.Context
	sync      *view.Synchronizer
	gw        signwarp.Gateway
	live      Live
	prefsPath string
	apiBind   string
	log       logrus.FieldLogger

	keys    keyMap
	help    help.Model
	spinner spinner.Model
	prompt  textinput.Model
	stats   viewport.Model

	theme       Theme
	currentView View
	width       int
	height      int
	ready       bool
	showHelp    bool
	now         time.Time

	vm      view.Model
	cursor  int
	pending int
	boot    view.Plan

	mode         inputMode
	promptAction view.MutationAction
	promptWarp   string
}

// New creates the Bubble Tea model. The synchronizer's startup plan runs when
// the program starts.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot

	input := textinput.New()
	input.Prompt = "› "
	input.CharLimit = 64

	m := Model{
		ctx:       ctx,
		sync:      opts.Sync,
		gw:        opts.Gateway,
		live:      opts.Live,
		prefsPath: prefsPath,
		apiBind:   opts.APIBind,
		log:       logger.WithField("component", "ui"),
		keys:      DefaultKeyMap(),
		help:      help.New(),
		spinner:   sp,
		prompt:    input,
		stats:     viewport.New(0, 0),
		now:       time.Now(),
	}
	m.boot = m.sync.Init()
	if len(m.boot.Fetches) > 0 {
		m.pending++
	}
	m.refresh()
	m.theme = GetTheme(m.vm.Theme)
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.planCmd(m.boot),
		tickCmd(time.Second),
		m.spinner.Tick,
	}
	if m.live != nil {
		cmds = append(cmds, waitForEvent(m.live.Events()))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		m.refresh()
		return m, nil

	case tickMsg:
		m.now = time.Time(msg)
		m.refresh()
		return m, tickCmd(time.Second)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case resultMsg:
		return m.handleResult(msg)

	case timerMsg:
		cmd := m.runPlan(m.sync.Fire(view.Delay(msg)))
		m.refresh()
		return m, cmd

	case liveMsg:
		cmd := m.runPlan(m.sync.HandleEvent(live.Event(msg)))
		m.refresh()
		if m.sync.Disabled() || m.live == nil {
			return m, cmd
		}
		return m, tea.Batch(cmd, waitForEvent(m.live.Events()))

	case liveClosedMsg:
		m.log.Debug("push channel closed")
		return m, nil

	case prefsSavedMsg:
		if msg.err != nil {
			m.log.WithError(msg.err).Warn("saving preferences failed")
		}
		return m, nil
	}
	return m, nil
}

// handleResult applies one step of a fetch chain and starts the next one.
func (m Model) handleResult(msg resultMsg) (tea.Model, tea.Cmd) {
	cmd := m.runPlan(m.sync.Apply(msg.result))
	more := len(msg.rest) > 0 || msg.mutation != nil
	if more && !m.sync.Disabled() {
		cmd = tea.Batch(cmd, chainCmd(m.ctx, m.gw, msg.rest, msg.mutation))
	} else {
		m.pending = max(0, m.pending-1)
	}
	m.refresh()
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// refresh rebuilds the view-model and keeps the selection on the page.
func (m *Model) refresh() {
	m.vm = m.sync.Model()
	if n := len(m.vm.Page.Items); m.cursor >= n {
		m.cursor = max(0, n-1)
	}
	if m.mode == modeInvite && m.promptAction == view.ActionInvite {
		m.prompt.SetSuggestions(m.vm.Players)
	}
	m.syncStats()
}

// runPlan turns a plan into commands and tracks outstanding fetch chains.
func (m *Model) runPlan(plan view.Plan) tea.Cmd {
	if len(plan.Fetches) > 0 || plan.Mutation != nil {
		m.pending++
	}
	return m.planCmd(plan)
}

func (m Model) planCmd(plan view.Plan) tea.Cmd {
	if plan.Empty() {
		return nil
	}
	var cmds []tea.Cmd
	if plan.Rebase != 0 {
		if err := m.gw.Rebase(plan.Rebase); err != nil {
			m.log.WithError(err).WithField("port", plan.Rebase).Warn("rebasing endpoints failed")
		}
	}
	if plan.Retarget && m.live != nil {
		m.live.SetURL(m.gw.WebSocketURL())
	}
	if plan.StopLive && m.live != nil {
		ch := m.live
		cmds = append(cmds, func() tea.Msg {
			ch.Close()
			return liveClosedMsg{}
		})
	}
	if plan.SavePrefs {
		cmds = append(cmds, savePrefsCmd(m.prefsPath, m.sync.Prefs()))
	}
	for _, d := range plan.Timers {
		cmds = append(cmds, timerCmd(d))
	}
	if len(plan.Fetches) > 0 || plan.Mutation != nil {
		cmds = append(cmds, chainCmd(m.ctx, m.gw, plan.Fetches, plan.Mutation))
	}
	if plan.Quit {
		cmds = append(cmds, tea.Quit)
	}
	return tea.Batch(cmds...)
}

// Busy reports whether fetches are in flight.
func (m Model) Busy() bool {
	return m.pending > 0
}

// Messages

type tickMsg time.Time

type timerMsg view.Delay

type liveMsg live.Event

type liveClosedMsg struct{}

type prefsSavedMsg struct{ err error }

// resultMsg carries one finished step of a fetch chain plus the steps left.
type resultMsg struct {
	result   view.Result
	rest     []view.Fetch
	mutation *view.Mutation
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func timerCmd(d view.Delay) tea.Cmd {
	return tea.Tick(d.After, func(time.Time) tea.Msg {
		return timerMsg(d)
	})
}

// chainCmd runs the first pending fetch, or the mutation once the fetches are
// exhausted. Results come back one at a time so each is applied in order.
func chainCmd(ctx context.Context, gw signwarp.Gateway, fetches []view.Fetch, mutation *view.Mutation) tea.Cmd {
	return func() tea.Msg {
		if len(fetches) == 0 {
			return resultMsg{result: view.ExecuteMutation(ctx, gw, *mutation)}
		}
		return resultMsg{
			result:   view.Execute(ctx, gw, fetches[0]),
			rest:     fetches[1:],
			mutation: mutation,
		}
	}
}

func waitForEvent(events <-chan live.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return liveClosedMsg{}
		}
		return liveMsg(ev)
	}
}

func savePrefsCmd(path string, p prefs.Prefs) tea.Cmd {
	return func() tea.Msg {
		return prefsSavedMsg{err: prefs.Save(path, p)}
	}
}

// Run starts the Bubble Tea program and blocks until it exits or ctx is
// cancelled.
func Run(opts Options) error {
	m := New(opts)
	programOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Context != nil {
		programOpts = append(programOpts, tea.WithContext(opts.Context))
	}
	_, err := tea.NewProgram(m, programOpts...).Run()
	if errors.Is(err, tea.ErrProgramKilled) && opts.Context != nil && opts.Context.Err() != nil {
		return nil
	}
	return err
}
