package monitor

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/solprobe/internal/logger"
	"github.com/rileyhilliard/solprobe/internal/probe"
)

// Evaluator produces a full snapshot of the node. *probe.Evaluator satisfies it.
type Evaluator interface {
	Evaluate(ctx context.Context) probe.Snapshot
}

// DefaultPollInterval bounds how long the loop goes without checking
// whether a refresh is due.
const DefaultPollInterval = 100 * time.Millisecond

// Options configures a Model.
type Options struct {
	URL          string
	Interval     time.Duration
	PollInterval time.Duration
	StartTab     Tab
	Renderer     Renderer
	Logger       logger.Logger
	// Now overrides the wall clock, mainly for tests.
	Now func() time.Time
}

// Model is the Bubble Tea model for the dashboard.
type Model struct {
	state    State
	sched    *Scheduler
	eval     Evaluator
	renderer Renderer
	help     help.Model
	log      logger.Logger
	now      func() time.Time

	url          string
	pollInterval time.Duration
	width        int
	height       int
	lastUpdate   time.Time
	refreshing   bool
	refreshes    int
	frame        int
	showHelp     bool
	quitting     bool
}

// pollTickMsg drives the scheduler check.
type pollTickMsg time.Time

// refreshMsg carries a finished evaluation back into Update.
type refreshMsg struct {
	snapshot probe.Snapshot
}

// NewModel creates a dashboard model backed by eval.
func NewModel(eval Evaluator, opts Options) Model {
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	if opts.Renderer == nil {
		opts.Renderer = StyledRenderer{}
	}
	if opts.Logger == nil {
		opts.Logger = logger.Noop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return Model{
		state:        NewState(opts.StartTab),
		sched:        NewScheduler(opts.Interval),
		eval:         eval,
		renderer:     opts.Renderer,
		help:         help.New(),
		log:          opts.Logger,
		now:          opts.Now,
		url:          opts.URL,
		pollInterval: opts.PollInterval,
	}
}

// Init starts the poll loop. The first tick finds the scheduler due and
// kicks off the initial refresh.
func (m Model) Init() tea.Cmd {
	return m.pollCmd()
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if handled, cmd := m.HandleKeyMsg(msg); handled {
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case pollTickMsg:
		now := time.Time(msg)
		if m.refreshing {
			m.frame++
		}
		cmds := []tea.Cmd{m.pollCmd()}
		if m.sched.Due(now) {
			cmds = append(cmds, m.startRefresh(now))
		}
		return m, tea.Batch(cmds...)

	case refreshMsg:
		// The interval counts from when the refresh lands.
		m.sched.Mark(m.now())
		m.refreshing = false
		m.refreshes++
		m.state.Apply(msg.snapshot)
		m.lastUpdate = msg.snapshot.EvaluatedAt
		if m.lastUpdate.IsZero() {
			m.lastUpdate = m.now()
		}
		m.log.Debug("refresh %d applied (responsive=%t)", m.refreshes, msg.snapshot.Health.Responsive)
	}

	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showHelp {
		return m.renderHelpOverlay()
	}
	return m.renderer.Render(m.ViewModel()) + "\n" + FooterStyle.Render(m.help.View(keys))
}

// ViewModel builds the ViewModel for the current frame.
func (m Model) ViewModel() ViewModel {
	h := Header{
		URL:        m.url,
		LastUpdate: m.lastUpdate,
		Refreshing: m.refreshing,
		Frame:      m.frame,
	}
	if !m.lastUpdate.IsZero() {
		h.Age = m.now().Sub(m.lastUpdate)
	}

	vm := BuildViewModel(m.state, h)
	vm.Width = m.width
	vm.Height = m.height
	return vm
}

// State returns a copy of the current state.
func (m Model) State() State {
	return m.state
}

// Refreshing reports whether an evaluation is in flight.
func (m Model) Refreshing() bool {
	return m.refreshing
}

// Refreshes returns how many evaluations have been applied.
func (m Model) Refreshes() int {
	return m.refreshes
}

// Scheduler exposes the refresh scheduler.
func (m Model) Scheduler() *Scheduler {
	return m.sched
}

// pollCmd schedules the next poll tick.
func (m Model) pollCmd() tea.Cmd {
	return tea.Tick(m.pollInterval, func(t time.Time) tea.Msg {
		return pollTickMsg(t)
	})
}

// startRefresh marks the scheduler and returns the refresh command, or nil
// if a refresh is already in flight.
func (m *Model) startRefresh(now time.Time) tea.Cmd {
	if m.refreshing {
		return nil
	}
	m.sched.Mark(now)
	m.refreshing = true
	return refreshCmd(m.eval)
}

// refreshCmd runs one evaluation off the UI goroutine. There is no way to
// cancel it; per-request timeouts bound how long it can take.
func refreshCmd(eval Evaluator) tea.Cmd {
	return func() tea.Msg {
		return refreshMsg{snapshot: eval.Evaluate(context.Background())}
	}
}
