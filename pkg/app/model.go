package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"gitlab.com/tinyland/lab/feedtui/pkg/companion"
	"gitlab.com/tinyland/lab/feedtui/pkg/config"
	"gitlab.com/tinyland/lab/feedtui/pkg/scheduler"
	"gitlab.com/tinyland/lab/feedtui/pkg/state"
	"gitlab.com/tinyland/lab/feedtui/pkg/theme"
)

// StatusDuration is how long transient status messages stay visible.
const StatusDuration = 5 * time.Second

// Deps are the collaborators the model drives. Store, Scheduler and Engine
// are required.
type Deps struct {
	Config    *config.Config
	Store     *state.Store
	Scheduler *scheduler.Scheduler
	Engine    *companion.Engine
	Styles    theme.Styles

	// Context parents every fetch; canceling it aborts them.
	Context context.Context
	Logger  *slog.Logger
	Zones   *zone.Manager
	Watcher *ConfigWatcher
	Now     func() time.Time
}

// Model is the root bubbletea model. It is a value type, but the store,
// scheduler and engine it points at are shared by every copy; only Update
// mutates them.
type Model struct {
	cfg    *config.Config
	store  *state.Store
	sched  *scheduler.Scheduler
	engine *companion.Engine
	styles theme.Styles
	keys   KeyMap
	help   help.Model
	zones  *zone.Manager
	watch  *ConfigWatcher
	logger *slog.Logger
	now    func() time.Time

	ctx    context.Context
	cancel context.CancelFunc

	width, height int
	showHelp      bool
	quitting      bool

	greeting    string
	mood        companion.Mood
	status      string
	statusUntil time.Time
	notice      string

	companionTick time.Duration
	lastTick      time.Time
	frame         int
}

// New builds the model and records the start of a companion visit.
func New(d Deps) Model {
	if d.Config == nil {
		d.Config = config.DefaultConfig()
	}
	if d.Logger == nil {
		d.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Context == nil {
		d.Context = context.Background()
	}
	ctx, cancel := context.WithCancel(d.Context)

	h := help.New()
	h.Styles.ShortKey = d.Styles.HelpKey
	h.Styles.ShortDesc = d.Styles.HelpDesc
	h.Styles.FullKey = d.Styles.HelpKey
	h.Styles.FullDesc = d.Styles.HelpDesc

	m := Model{
		cfg:           d.Config,
		store:         d.Store,
		sched:         d.Scheduler,
		engine:        d.Engine,
		styles:        d.Styles,
		keys:          DefaultKeyMap,
		help:          h,
		zones:         d.Zones,
		watch:         d.Watcher,
		logger:        d.Logger,
		now:           d.Now,
		ctx:           ctx,
		cancel:        cancel,
		companionTick: d.Config.General.CompanionTick.Or(config.DefaultCompanionTick),
	}

	visit := m.engine.VisitStarted(m.now())
	m.greeting = visit.Greeting
	m.mood = visit.Mood
	if visit.SaveErr != nil {
		m.notice = "companion not saved: " + visit.SaveErr.Error()
	}
	m.sched.SetIntervalScale(m.engine.Companion().RefreshScale())
	return m
}

// Init fires the first tick immediately so never-fetched widgets start
// loading at once.
func (m Model) Init() tea.Cmd {
	first := func() tea.Msg { return TickEvent{Time: m.now()} }
	if m.watch != nil {
		return tea.Batch(first, m.watch.Next())
	}
	return first
}

// Update is the only place state changes.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickEvent:
		if m.quitting {
			return m, nil
		}
		cmds := m.onTick(msg.Time)
		cmds = append(cmds, TickCmd(TickInterval))
		return m, tea.Batch(cmds...)

	case FetchDoneEvent:
		if !m.store.ApplyFetchResult(msg.ID, msg.Result) {
			m.logger.Debug("discarded stale fetch result", "widget", msg.ID, "attempt", msg.Result.Attempt)
		}
		return m, nil

	case ConfigChangedEvent:
		m.notice = "config changed on disk, restart to apply"
		m.logger.Info("config file changed", "path", msg.Path)
		if m.watch != nil {
			return m, m.watch.Next()
		}
		return m, nil

	case tea.MouseMsg:
		m.onMouse(msg)
		return m, nil

	case tea.KeyMsg:
		m.greeting = ""
		return m.handleKey(msg)
	}
	return m, nil
}

// onTick expires overdue fetches, starts due ones and advances the
// companion clock. It returns the fetch commands to run.
func (m *Model) onTick(now time.Time) []tea.Cmd {
	for _, id := range m.store.ExpireOverdue(now, m.sched.Timeout()) {
		m.logger.Warn("fetch timed out", "widget", id, "timeout", m.sched.Timeout())
	}

	var cmds []tea.Cmd
	for _, id := range m.sched.Due(m.store, now) {
		if attempt, ok := m.store.BeginFetch(id, now); ok {
			cmds = append(cmds, FetchCmd(m.ctx, m.sched, id, attempt))
		}
	}

	switch {
	case m.lastTick.IsZero():
		m.lastTick = now
	case now.Sub(m.lastTick) >= m.companionTick:
		m.grant(m.engine.Tick(now.Sub(m.lastTick)), now)
		m.lastTick = now
		m.frame++
	}

	if !m.statusUntil.IsZero() && !now.Before(m.statusUntil) {
		m.status = ""
		m.statusUntil = time.Time{}
	}
	return cmds
}

// grant reports level ups and persistence failures from a companion event.
func (m *Model) grant(out companion.Outcome, now time.Time) {
	if out.SaveErr != nil {
		m.setStatus("companion not saved: "+out.SaveErr.Error(), now)
		return
	}
	if out.LevelsGained > 0 {
		c := m.engine.Companion()
		m.setStatus(fmt.Sprintf("%s reached level %d!", c.Name, c.Level), now)
	}
}

func (m *Model) setStatus(s string, now time.Time) {
	m.status = s
	m.statusUntil = now.Add(StatusDuration)
}

// refresh starts a manual fetch of widget id.
func (m *Model) refresh(id string) tea.Cmd {
	w, ok := m.store.Widget(id)
	if !ok || !w.Fetchable {
		return nil
	}
	now := m.now()
	if w.InFlight() {
		return nil
	}
	if !m.sched.AllowManual(now) {
		m.setStatus("slow down: refresh limit reached", now)
		return nil
	}
	attempt, ok := m.store.BeginFetch(id, now)
	if !ok {
		return nil
	}
	m.grant(m.engine.Action(companion.ActionRefresh), now)
	return FetchCmd(m.ctx, m.sched, id, attempt)
}

// refreshAll starts a fetch for every fetchable widget not already in
// flight.
func (m *Model) refreshAll() tea.Cmd {
	now := m.now()
	if !m.sched.AllowManual(now) {
		m.setStatus("slow down: refresh limit reached", now)
		return nil
	}
	var cmds []tea.Cmd
	for _, w := range m.store.Widgets() {
		if !w.Fetchable {
			continue
		}
		if attempt, ok := m.store.BeginFetch(w.ID, now); ok {
			cmds = append(cmds, FetchCmd(m.ctx, m.sched, w.ID, attempt))
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	m.store.MarkRefreshAll()
	m.grant(m.engine.Action(companion.ActionRefresh), now)
	return tea.Batch(cmds...)
}

// quit cancels outstanding fetches and writes the companion before the
// program exits.
func (m *Model) quit() tea.Cmd {
	m.quitting = true
	m.cancel()
	if ids := m.store.CancelAll(m.now()); len(ids) > 0 {
		m.logger.Debug("canceled in-flight fetches", "widgets", ids)
	}
	if err := m.engine.Save(); err != nil {
		m.logger.Error("final companion save failed", "error", err)
	}
	return tea.Quit
}

// purchaseOrEquip applies Enter inside the companion menu.
func (m *Model) purchaseOrEquip() {
	now := m.now()
	cursor := m.store.MenuCursor()
	var (
		out companion.Outcome
		err error
		msg string
	)
	switch m.store.CompanionTab() {
	case state.TabSkills:
		if cursor >= len(companion.Skills) {
			return
		}
		sk := companion.Skills[cursor]
		out, err = m.engine.PurchaseSkill(sk.ID)
		msg = "Unlocked " + sk.Name
		m.sched.SetIntervalScale(m.engine.Companion().RefreshScale())
	case state.TabOutfits:
		if cursor >= len(companion.Outfits) {
			return
		}
		o := companion.Outfits[cursor]
		out, err = m.engine.EquipOutfit(o.ID)
		msg = "Equipped " + o.Name
	default:
		return
	}

	switch {
	case errors.Is(err, companion.ErrAlreadyUnlocked):
		m.setStatus("already unlocked", now)
	case errors.Is(err, companion.ErrInsufficientPoints):
		m.setStatus("not enough skill points", now)
	case err != nil:
		m.setStatus(err.Error(), now)
	case out.SaveErr != nil:
		m.setStatus(msg+" (not saved: "+out.SaveErr.Error()+")", now)
	default:
		m.setStatus(msg, now)
	}
}

// Width returns the terminal width.
func (m Model) Width() int { return m.width }

// Height returns the terminal height.
func (m Model) Height() int { return m.height }

// Quitting reports whether quit was requested.
func (m Model) Quitting() bool { return m.quitting }

// HelpVisible reports whether the full help is shown.
func (m Model) HelpVisible() bool { return m.showHelp }

// FocusedWidgetID returns the focused widget id.
func (m Model) FocusedWidgetID() string { return m.store.Focus() }

// ExpandedWidgetID returns the fullscreen widget id, or "".
func (m Model) ExpandedWidgetID() string { return m.store.Expanded() }

// Status returns the transient status message.
func (m Model) Status() string { return m.status }

// Notice returns the persistent notice, such as a config change.
func (m Model) Notice() string { return m.notice }

// Greeting returns the companion's greeting until the first key press.
func (m Model) Greeting() string { return m.greeting }

// Mood returns the companion's mood for this session.
func (m Model) Mood() companion.Mood { return m.mood }

// Store returns the state store.
func (m Model) Store() *state.Store { return m.store }

// Engine returns the companion engine.
func (m Model) Engine() *companion.Engine { return m.engine }
