// Package scheduler decides when each widget is due for a refresh and runs
// its fetch with a timeout. It never mutates application state: Due reads
// the store, and Fetch returns a Completion for the event loop to apply.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	"gitlab.com/tinyland/lab/feedtui/pkg/config"
	"gitlab.com/tinyland/lab/feedtui/pkg/sources"
	"gitlab.com/tinyland/lab/feedtui/pkg/state"
)

// Manual refresh limiter defaults: a burst of three, then one every two
// seconds.
const (
	DefaultManualBurst = 3
	DefaultManualEvery = 2 * time.Second
)

// Recorder receives fetch observations. *metrics.Metrics implements it.
type Recorder interface {
	ObserveFetch(kind, outcome string, elapsed time.Duration)
}

// Completion is the result of one fetch, addressed to a widget.
type Completion struct {
	ID     string
	Kind   sources.Kind
	Result state.FetchResult
}

// Scheduler owns the widget sources and the fetch policy.
type Scheduler struct {
	sources map[string]sources.Source
	timeout time.Duration
	sem     *semaphore.Weighted
	manual  *rate.Limiter
	scale   float64

	recorder Recorder
	logger   *slog.Logger
	now      func() time.Time
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithTimeout sets the per-fetch timeout.
func WithTimeout(d time.Duration) Option {
	return func(s *Scheduler) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithMaxConcurrent caps fetches running at once. Zero means unbounded.
func WithMaxConcurrent(n int) Option {
	return func(s *Scheduler) {
		if n > 0 {
			s.sem = semaphore.NewWeighted(int64(n))
		} else {
			s.sem = nil
		}
	}
}

// WithManualLimit sets the manual refresh rate.
func WithManualLimit(every time.Duration, burst int) Option {
	return func(s *Scheduler) { s.manual = rate.NewLimiter(rate.Every(every), burst) }
}

// WithRecorder sets the fetch metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(s *Scheduler) { s.recorder = r }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scheduler) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) { s.now = now }
}

// New creates a scheduler over the given widget sources, keyed by widget id.
func New(srcs map[string]sources.Source, opts ...Option) *Scheduler {
	s := &Scheduler{
		sources: srcs,
		timeout: config.DefaultFetchTimeout,
		manual:  rate.NewLimiter(rate.Every(DefaultManualEvery), DefaultManualBurst),
		scale:   1,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:     time.Now,
	}
	if s.sources == nil {
		s.sources = make(map[string]sources.Source)
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Plan turns configuration into store widgets plus the sources that feed
// them. Widgets whose kind has no source (the companion pane) are kept but
// not fetchable.
func Plan(cfg *config.Config, reg *sources.Registry, opts ...sources.Option) ([]state.Widget, map[string]sources.Source, error) {
	widgets := make([]state.Widget, 0, len(cfg.Widgets))
	srcs := make(map[string]sources.Source, len(cfg.Widgets))

	for _, wc := range cfg.Widgets {
		kind, err := sources.ParseKind(wc.Type)
		if err != nil {
			return nil, nil, fmt.Errorf("widget %q: %w", wc.ID, err)
		}
		w := state.Widget{
			ID:       wc.ID,
			Kind:     kind,
			Title:    wc.Title,
			Row:      wc.Position.Row,
			Col:      wc.Position.Col,
			Interval: wc.Interval(cfg.General),
		}

		src, err := reg.Build(wc, opts...)
		switch {
		case errors.Is(err, sources.ErrNoSource):
		case err != nil:
			return nil, nil, err
		default:
			w.Fetchable = true
			srcs[wc.ID] = src
		}
		widgets = append(widgets, w)
	}
	return widgets, srcs, nil
}

// Timeout returns the per-fetch timeout.
func (s *Scheduler) Timeout() time.Duration { return s.timeout }

// SetIntervalScale multiplies every widget interval by f (the refresh-speed
// skill uses 0.75). Intervals never drop below config.MinRefreshInterval.
func (s *Scheduler) SetIntervalScale(f float64) {
	if f <= 0 {
		f = 1
	}
	s.scale = f
}

// EffectiveInterval returns w's interval after scaling and the floor.
func (s *Scheduler) EffectiveInterval(w state.Widget) time.Duration {
	d := time.Duration(float64(w.Interval) * s.scale)
	return max(d, config.MinRefreshInterval)
}

// Due returns the ids of widgets whose interval has elapsed since their
// last completed fetch. Widgets that never completed a fetch are due at
// once; widgets already fetching are skipped.
func (s *Scheduler) Due(st *state.Store, now time.Time) []string {
	var due []string
	for _, w := range st.Widgets() {
		if !w.Fetchable || w.InFlight() {
			continue
		}
		if _, ok := s.sources[w.ID]; !ok {
			continue
		}
		if w.LastCompleted.IsZero() || now.Sub(w.LastCompleted) >= s.EffectiveInterval(w) {
			due = append(due, w.ID)
		}
	}
	return due
}

// AllowManual reports whether a user-triggered refresh may run now.
func (s *Scheduler) AllowManual(now time.Time) bool {
	return s.manual.AllowN(now, 1)
}

// Fetch runs one fetch for widget id and blocks until it finishes, the
// timeout elapses, or ctx is canceled. A source that outlives its timeout
// is abandoned; its result is never delivered. A panicking source becomes
// an internal FetchError.
func (s *Scheduler) Fetch(ctx context.Context, id string, attempt uint64) Completion {
	c := Completion{ID: id, Result: state.FetchResult{Attempt: attempt}}

	src, ok := s.sources[id]
	if !ok {
		c.Result.Err = sources.Errorf(sources.CodeConfig, "no source for widget %q", id)
		c.Result.At = s.now()
		return c
	}
	c.Kind = src.Kind()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	start := s.now()

	if s.sem != nil {
		if err := s.sem.Acquire(ctx, 1); err != nil {
			return s.finish(c, start, nil, s.contextError(ctx))
		}
		defer s.sem.Release(1)
	}

	type outcome struct {
		payload sources.Payload
		err     error
	}
	done := make(chan outcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{err: sources.Errorf(sources.CodeInternal, "%s source panicked: %v", c.Kind, r)}
			}
		}()
		p, err := src.Fetch(ctx)
		done <- outcome{payload: p, err: err}
	}()

	select {
	case o := <-done:
		if o.err == nil && o.payload == nil {
			o.err = sources.Errorf(sources.CodeDecode, "empty payload")
		}
		if o.err != nil && ctx.Err() != nil {
			o.err = s.contextError(ctx)
		}
		return s.finish(c, start, o.payload, o.err)
	case <-ctx.Done():
		return s.finish(c, start, nil, s.contextError(ctx))
	}
}

func (s *Scheduler) contextError(ctx context.Context) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return sources.Errorf(sources.CodeTimeout, "no response after %s", s.timeout)
	}
	return sources.Errorf(sources.CodeCanceled, "canceled")
}

func (s *Scheduler) finish(c Completion, start time.Time, p sources.Payload, err error) Completion {
	c.Result.At = s.now()
	elapsed := c.Result.At.Sub(start)

	outcome := "ok"
	if err != nil {
		fe := sources.AsFetchError(err)
		c.Result.Err = fe
		outcome = string(fe.Code)
		if fe.Code != sources.CodeCanceled {
			s.logger.Warn("fetch failed", "widget", c.ID, "kind", c.Kind, "code", fe.Code, "error", fe.Message)
		}
	} else {
		c.Result.Payload = p
		s.logger.Debug("fetch ok", "widget", c.ID, "kind", c.Kind, "rows", p.Len(), "elapsed", elapsed)
	}

	if s.recorder != nil {
		s.recorder.ObserveFetch(string(c.Kind), outcome, elapsed)
	}
	return c
}
