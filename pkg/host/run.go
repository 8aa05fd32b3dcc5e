package host

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"golang.org/x/sync/errgroup"

	"gitlab.com/tinyland/lab/feedtui/pkg/app"
	"gitlab.com/tinyland/lab/feedtui/pkg/companion"
	"gitlab.com/tinyland/lab/feedtui/pkg/config"
	"gitlab.com/tinyland/lab/feedtui/pkg/metrics"
	"gitlab.com/tinyland/lab/feedtui/pkg/scheduler"
	"gitlab.com/tinyland/lab/feedtui/pkg/sources"
	"gitlab.com/tinyland/lab/feedtui/pkg/state"
	"gitlab.com/tinyland/lab/feedtui/pkg/theme"
)

var errAlreadyRunning = errors.New("already running")

// Run takes over the terminal and blocks until the user quits, ctx is
// canceled or Shutdown is called. The companion is saved on every exit
// path and bubbletea restores the terminal before Run returns.
func (h *Handle) Run(ctx context.Context) (res Result) {
	if h == nil || h.cfg == nil || h.closed.Load() {
		if h != nil {
			return h.fail(InvalidHandle, errors.New("handle not initialized or already shut down"))
		}
		return InvalidHandle
	}
	if !h.running.CompareAndSwap(false, true) {
		return h.fail(AppError, errAlreadyRunning)
	}
	defer h.running.Store(false)

	defer func() {
		if r := recover(); r != nil {
			h.opts.logger.Error("panic", "value", r, "stack", string(debug.Stack()))
			res = h.fail(Panic, fmt.Errorf("%v", r))
		}
	}()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	h.mu.Lock()
	h.cancel = cancel
	h.mu.Unlock()
	defer func() {
		h.mu.Lock()
		h.cancel = nil
		h.mu.Unlock()
	}()

	d, err := h.assemble(runCtx)
	if err != nil {
		return h.fail(RuntimeError, err)
	}
	defer d.close()

	g, gctx := errgroup.WithContext(runCtx)
	if h.opts.metricsAddr != "" {
		g.Go(func() error {
			return d.metrics.Serve(gctx, h.opts.metricsAddr, h.opts.logger)
		})
	}
	g.Go(func() error {
		defer cancel()
		_, err := tea.NewProgram(d.model, h.programOptions(gctx)...).Run()
		return err
	})
	err = g.Wait()

	// A canceled program never saw the quit key, so save here as well.
	if saveErr := d.engine.Save(); saveErr != nil {
		h.opts.logger.Error("final companion save failed", "error", saveErr)
	}

	switch {
	case err == nil, errors.Is(err, tea.ErrProgramKilled), errors.Is(err, tea.ErrInterrupted):
		return Success
	case errors.Is(err, tea.ErrProgramPanic):
		return h.fail(Panic, err)
	default:
		return h.fail(AppError, err)
	}
}

func (h *Handle) programOptions(ctx context.Context) []tea.ProgramOption {
	opts := []tea.ProgramOption{tea.WithContext(ctx), tea.WithMouseCellMotion()}
	if h.opts.altScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	if h.opts.input != nil {
		opts = append(opts, tea.WithInput(h.opts.input))
	}
	if h.opts.output != nil {
		opts = append(opts, tea.WithOutput(h.opts.output))
	}
	return opts
}

// dashboard is everything one Run owns.
type dashboard struct {
	model   app.Model
	engine  *companion.Engine
	metrics *metrics.Metrics
	zones   *zone.Manager
	watcher *app.ConfigWatcher
}

func (d *dashboard) close() {
	if d.watcher != nil {
		_ = d.watcher.Close()
	}
	d.zones.Close()
}

// assemble wires configuration, sources, scheduler, companion, theme and
// model together.
func (h *Handle) assemble(ctx context.Context) (*dashboard, error) {
	cfg, log := h.cfg, h.opts.logger

	reg := h.opts.registry
	if reg == nil {
		reg = sources.DefaultRegistry()
	}
	widgets, srcs, err := scheduler.Plan(cfg, reg)
	if err != nil {
		return nil, fmt.Errorf("plan widgets: %w", err)
	}

	m := metrics.New()
	sched := scheduler.New(srcs,
		scheduler.WithTimeout(cfg.General.FetchTimeout.Or(config.DefaultFetchTimeout)),
		scheduler.WithMaxConcurrent(cfg.General.MaxConcurrentFetches),
		scheduler.WithRecorder(m),
		scheduler.WithLogger(log),
	)

	engine, err := h.loadCompanion(m)
	if err != nil {
		return nil, err
	}

	if h.opts.themeDir != "" {
		names, err := theme.LoadDir(h.opts.themeDir)
		if err != nil {
			log.Warn("some themes failed to load", "dir", h.opts.themeDir, "error", err)
		}
		if len(names) > 0 {
			log.Debug("loaded themes", "names", names)
		}
	}
	if _, ok := theme.Lookup(cfg.General.Theme); !ok {
		log.Warn("unknown theme, using default", "theme", cfg.General.Theme, "default", theme.DefaultName)
	}
	out := h.opts.output
	if out == nil {
		out = os.Stdout
	}
	styles := theme.ForProfile(cfg.General.Theme, theme.Detect(out))

	d := &dashboard{engine: engine, metrics: m, zones: zone.New()}
	if cfg.Path != "" {
		w, err := app.WatchConfig(cfg.Path, log)
		if err != nil {
			log.Warn("config watcher disabled", "error", err)
		} else {
			d.watcher = w
		}
	}

	d.model = app.New(app.Deps{
		Config:    cfg,
		Store:     state.New(widgets),
		Scheduler: sched,
		Engine:    engine,
		Styles:    styles,
		Context:   ctx,
		Logger:    log,
		Zones:     d.zones,
		Watcher:   d.watcher,
	})
	return d, nil
}

// loadCompanion reads the persisted companion. Unreadable or corrupt
// records fall back to a fresh companion; only an unusable path is fatal.
func (h *Handle) loadCompanion(m *metrics.Metrics) (*companion.Engine, error) {
	cfg, log := h.cfg, h.opts.logger

	path := cfg.General.CompanionPath
	if path == "" {
		path = config.DefaultCompanionPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("companion directory: %w", err)
	}

	var storeOpts []companion.StoreOption
	if sp, ok := companion.ParseSpecies(cfg.Companion.Species); ok {
		storeOpts = append(storeOpts, companion.WithSpecies(sp))
	}
	store := companion.NewFileStore(path, storeOpts...)
	c, err := store.Load()
	switch {
	case errors.Is(err, companion.ErrNotFound):
		log.Info("new companion", "path", path, "species", c.Species)
	case err != nil:
		log.Warn("companion record unreadable, starting fresh", "path", path, "error", err)
	}
	m.SetCompanionLevel(c.Level)

	return companion.NewEngine(c, store,
		companion.WithRules(companion.RulesFromConfig(cfg.Companion)),
		companion.WithLogger(log),
		companion.WithRecorder(m),
	), nil
}
