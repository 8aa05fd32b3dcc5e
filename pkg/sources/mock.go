package sources

import (
	"context"
	"sync"
	"sync/atomic"
)

// MockSource implements Source for testing. It returns a configurable
// payload or error and tracks how many times Fetch has been called.
type MockSource struct {
	kind    Kind
	payload Payload
	err     error

	mu        sync.RWMutex
	callCount atomic.Int64

	// FetchFunc, if set, overrides the default Fetch behavior. Tests use it
	// to block until a signal or to panic.
	FetchFunc func(ctx context.Context) (Payload, error)
}

// MockOption configures a MockSource.
type MockOption func(*MockSource)

// WithPayload sets the payload returned by Fetch.
func WithPayload(p Payload) MockOption {
	return func(m *MockSource) { m.payload = p }
}

// WithError sets the error returned by Fetch.
func WithError(err error) MockOption {
	return func(m *MockSource) { m.err = err }
}

// WithFetchFunc sets a custom function for Fetch.
func WithFetchFunc(fn func(ctx context.Context) (Payload, error)) MockOption {
	return func(m *MockSource) { m.FetchFunc = fn }
}

// NewMockSource creates a mock source of the given kind.
func NewMockSource(kind Kind, opts ...MockOption) *MockSource {
	m := &MockSource{kind: kind}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Kind returns the configured kind.
func (m *MockSource) Kind() Kind { return m.kind }

// SetPayload updates the returned payload (thread-safe).
func (m *MockSource) SetPayload(p Payload) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payload = p
}

// SetError updates the returned error (thread-safe).
func (m *MockSource) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Fetch increments the call counter and returns the configured payload and
// error, or delegates to FetchFunc if set.
func (m *MockSource) Fetch(ctx context.Context) (Payload, error) {
	m.callCount.Add(1)

	if m.FetchFunc != nil {
		return m.FetchFunc(ctx)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.payload, m.err
}

// CallCount returns how many times Fetch has been called.
func (m *MockSource) CallCount() int64 {
	return m.callCount.Load()
}
