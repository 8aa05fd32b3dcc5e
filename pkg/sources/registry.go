package sources

import (
	"fmt"

	"gitlab.com/tinyland/lab/feedtui/pkg/config"
)

// Factory builds a Source from one widget's configuration.
type Factory func(w config.WidgetConfig, opts ...Option) (Source, error)

// Registry maps widget kinds to the factories that build their sources.
// It is filled before the dashboard starts and only read afterwards.
type Registry struct {
	factories map[Kind]Factory
}

// NewRegistry returns an empty registry ready for factory registration.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[Kind]Factory)}
}

// DefaultRegistry returns a registry holding every built-in adapter.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	_ = r.Register(KindHackerNews, func(w config.WidgetConfig, opts ...Option) (Source, error) {
		return NewHackerNews(w, opts...), nil
	})
	_ = r.Register(KindStocks, func(w config.WidgetConfig, opts ...Option) (Source, error) {
		return NewStocks(w, opts...), nil
	})
	_ = r.Register(KindRSS, func(w config.WidgetConfig, opts ...Option) (Source, error) {
		return NewRSS(w, opts...), nil
	})
	_ = r.Register(KindSports, func(w config.WidgetConfig, opts ...Option) (Source, error) {
		return NewSports(w, opts...), nil
	})
	_ = r.Register(KindGitHub, func(w config.WidgetConfig, opts ...Option) (Source, error) {
		return NewGitHub(w, opts...), nil
	})
	_ = r.Register(KindSpotify, func(w config.WidgetConfig, opts ...Option) (Source, error) {
		return NewSpotify(w, opts...), nil
	})
	_ = r.Register(KindYouTube, func(w config.WidgetConfig, opts ...Option) (Source, error) {
		return NewYouTube(w, opts...), nil
	})
	return r
}

// Register adds a factory for kind. It returns an error if one is already
// registered.
func (r *Registry) Register(kind Kind, f Factory) error {
	if _, exists := r.factories[kind]; exists {
		return fmt.Errorf("source kind %q already registered", kind)
	}
	r.factories[kind] = f
	return nil
}

// Get returns the factory for kind, or false if not found.
func (r *Registry) Get(kind Kind) (Factory, bool) {
	f, ok := r.factories[kind]
	return f, ok
}

// Build constructs the source for one widget. The creature pane has no
// source and yields ErrNoSource.
func (r *Registry) Build(w config.WidgetConfig, opts ...Option) (Source, error) {
	kind, err := ParseKind(w.Type)
	if err != nil {
		return nil, err
	}
	if kind == KindCreature {
		return nil, ErrNoSource
	}

	f, ok := r.Get(kind)
	if !ok {
		return nil, fmt.Errorf("no source registered for kind %q", kind)
	}
	src, err := f(w, opts...)
	if err != nil {
		return nil, fmt.Errorf("build %s source for %q: %w", kind, w.ID, err)
	}
	return src, nil
}
