// Package host exposes the dashboard to an embedding process through a
// small lifecycle handle: Init, Run (blocking, owns the terminal until
// quit), Shutdown. Every call reports a Result; after any non-success
// result the handle keeps a descriptive message for LastError.
package host

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"

	"gitlab.com/tinyland/lab/feedtui/pkg/config"
	"gitlab.com/tinyland/lab/feedtui/pkg/sources"
)

// Version is the dashboard version, set at build time with
// -ldflags "-X gitlab.com/tinyland/lab/feedtui/pkg/host.Version=...".
var Version = "0.1.0"

// Result is the outcome of a lifecycle call.
type Result int

const (
	Success Result = iota
	InvalidHandle
	InvalidConfigPath
	ConfigLoadError
	RuntimeError
	AppError
	Panic
)

func (r Result) String() string {
	switch r {
	case Success:
		return "success"
	case InvalidHandle:
		return "invalid handle"
	case InvalidConfigPath:
		return "invalid config path"
	case ConfigLoadError:
		return "config load error"
	case RuntimeError:
		return "runtime error"
	case AppError:
		return "app error"
	case Panic:
		return "panic"
	default:
		return fmt.Sprintf("result(%d)", int(r))
	}
}

// features are the optional capabilities compiled into this build.
var features = map[string]bool{
	"companion": true,
	"github":    true,
	"spotify":   true,
	"youtube":   true,
	"metrics":   true,
}

type options struct {
	logger      *slog.Logger
	metricsAddr string
	input       io.Reader
	output      io.Writer
	altScreen   bool
	registry    *sources.Registry
	themeDir    string
}

// Option configures a Handle.
type Option func(*options)

// WithLogger sets the logger. The dashboard owns the terminal while
// running, so it should write to a file.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetricsAddr serves /metrics and /healthz on addr while running.
func WithMetricsAddr(addr string) Option {
	return func(o *options) { o.metricsAddr = addr }
}

// WithIO replaces the terminal with in and out and disables the alternate
// screen. Used by tests and hosts that render into their own surface.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(o *options) {
		o.input = in
		o.output = out
		o.altScreen = false
	}
}

// WithRegistry replaces the source registry.
func WithRegistry(r *sources.Registry) Option {
	return func(o *options) { o.registry = r }
}

// WithThemeDir loads extra *.toml themes from dir before resolving the
// configured theme name.
func WithThemeDir(dir string) Option {
	return func(o *options) { o.themeDir = dir }
}

// Handle is one embeddable dashboard instance. Run may be active at most
// once at a time; the handle is not meant for concurrent use beyond
// Shutdown.
type Handle struct {
	cfg  *config.Config
	opts options

	running atomic.Bool
	closed  atomic.Bool

	mu      sync.Mutex
	lastErr string
	cancel  context.CancelFunc
}

// Init loads configuration from configPath, or from the standard search
// path when configPath is empty, and returns a ready handle. A
// structurally invalid configuration fails here, before the terminal is
// touched.
func Init(configPath string, opts ...Option) (*Handle, Result) {
	h := newHandle(opts)
	var (
		cfg *config.Config
		err error
	)
	if configPath == "" {
		cfg, err = config.Load()
	} else {
		if fi, statErr := os.Stat(configPath); statErr != nil || fi.IsDir() {
			if statErr == nil {
				statErr = errors.New("is a directory")
			}
			return h, h.fail(InvalidConfigPath, fmt.Errorf("config path %s: %w", configPath, statErr))
		}
		cfg, err = config.LoadFromFile(configPath)
	}
	if err != nil {
		return h, h.fail(ConfigLoadError, err)
	}
	return h, h.accept(cfg)
}

// InitWithConfig parses configuration from TOML text.
func InitWithConfig(text string, opts ...Option) (*Handle, Result) {
	h := newHandle(opts)
	cfg, err := config.LoadFromString(text)
	if err != nil {
		return h, h.fail(ConfigLoadError, err)
	}
	return h, h.accept(cfg)
}

func newHandle(opts []Option) *Handle {
	o := options{
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		altScreen: true,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Handle{opts: o}
}

func (h *Handle) accept(cfg *config.Config) Result {
	if err := cfg.Validate(); err != nil {
		return h.fail(ConfigLoadError, err)
	}
	for _, w := range cfg.Warnings {
		h.opts.logger.Warn("config", "warning", w)
	}
	h.cfg = cfg
	return Success
}

// SetLogger replaces the logger. Hosts that only learn the log location
// from the configuration call it between Init and Run.
func (h *Handle) SetLogger(l *slog.Logger) {
	if h != nil && l != nil && !h.running.Load() {
		h.opts.logger = l
	}
}

// Config returns the loaded configuration, nil if Init failed.
func (h *Handle) Config() *config.Config {
	if h == nil {
		return nil
	}
	return h.cfg
}

// LastError returns the message of the most recent non-success result.
func (h *Handle) LastError() string {
	if h == nil {
		return InvalidHandle.String()
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.lastErr
}

// Running reports whether Run is active.
func (h *Handle) Running() bool { return h != nil && h.running.Load() }

// Version returns the dashboard version.
func (h *Handle) Version() string { return Version }

// HasFeature reports whether an optional capability is available.
func (h *Handle) HasFeature(name string) bool { return features[name] }

// Shutdown stops a running dashboard and releases the handle. It is safe
// to call more than once, and on a nil handle.
func (h *Handle) Shutdown() {
	if h == nil {
		return
	}
	h.closed.Store(true)
	h.mu.Lock()
	cancel := h.cancel
	h.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

func (h *Handle) fail(r Result, err error) Result {
	h.mu.Lock()
	h.lastErr = fmt.Sprintf("%s: %v", r, err)
	h.mu.Unlock()
	h.opts.logger.Error("dashboard failed", "result", r.String(), "error", err)
	return r
}
