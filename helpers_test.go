package cellatlas

import (
	"context"
	"errors"
	"image"
	"sync"
	"testing"
	"time"
)

// gatedBuilder is a Builder whose builds block until released, so tests
// decide the order in which builds finish.
type gatedBuilder struct {
	mu      sync.Mutex
	calls   []CellMetrics
	gates   map[CellMetrics]chan error
	started chan CellMetrics
}

func newGatedBuilder() *gatedBuilder {
	return &gatedBuilder{
		gates:   make(map[CellMetrics]chan error),
		started: make(chan CellMetrics, 64),
	}
}

func (b *gatedBuilder) gate(m CellMetrics) chan error {
	b.mu.Lock()
	defer b.mu.Unlock()
	g, ok := b.gates[m]
	if !ok {
		g = make(chan error, 1)
		b.gates[m] = g
	}
	return g
}

func (b *gatedBuilder) Build(ctx context.Context, fd FontDescriptor, m CellMetrics) (*Atlas, error) {
	b.mu.Lock()
	b.calls = append(b.calls, m)
	b.mu.Unlock()
	g := b.gate(m)
	b.started <- m

	select {
	case err := <-g:
		if err != nil {
			return nil, &BuildError{Font: fd, Metrics: m, Err: err}
		}
	case <-ctx.Done():
		return nil, &BuildError{Font: fd, Metrics: m, Err: ctx.Err()}
	}
	cell := m.Cell()
	return &Atlas{
		img:     image.NewRGBA(image.Rect(0, 0, AtlasColumns*cell.Dx(), AtlasRows*cell.Dy())),
		cell:    cell,
		metrics: m,
		font:    fd,
	}, nil
}

// release lets the build for m finish, failing with err if non-nil.
func (b *gatedBuilder) release(m CellMetrics, err error) {
	b.gate(m) <- err
}

func (b *gatedBuilder) callCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.calls)
}

// waitStarted blocks until a build for m has called Build.
func (b *gatedBuilder) waitStarted(t *testing.T, m CellMetrics) {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case got := <-b.started:
			if got == m {
				return
			}
		case <-timeout:
			t.Fatalf("build for %v never started", m)
		}
	}
}

var errRasterize = errors.New("rasterizer exploded")

var testFont = FontDescriptor{Family: "gomono", Size: 14}

func testConfig() Config {
	cfg := NewConfig()
	cfg.Font = testFont
	return cfg
}

// newTestRegistry returns an isolated registry, optionally with its
// builder replaced.
func newTestRegistry(t *testing.T, b Builder) *Registry {
	t.Helper()
	reg, err := NewRegistry(testConfig())
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	if b != nil {
		reg.Builder = b
	}
	t.Cleanup(reg.Close)
	return reg
}
