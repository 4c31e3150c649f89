package orchestrator

import (
	"context"
	"sync"
	"testing"

	"github.com/shouni/go-fusion-kit/pkg/catalog"
	"github.com/shouni/go-fusion-kit/pkg/domain"
	"github.com/shouni/go-fusion-kit/pkg/generator"
	"github.com/shouni/go-fusion-kit/pkg/prompts"
	"github.com/stretchr/testify/require"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

// --- Mocks ---

type call struct {
	images int
	prompt string
}

type mockGenerator struct {
	mu         sync.Mutex
	calls      []call
	generateFn func(ctx context.Context, n int) (*domain.GeneratedImage, error)
}

func (m *mockGenerator) Generate(ctx context.Context, images []domain.Image, prompt string) (*domain.GeneratedImage, error) {
	m.mu.Lock()
	m.calls = append(m.calls, call{images: len(images), prompt: prompt})
	n := len(m.calls)
	m.mu.Unlock()
	if m.generateFn != nil {
		return m.generateFn(ctx, n)
	}
	return okImage(), nil
}

func (m *mockGenerator) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

func (m *mockGenerator) snapshot() []call {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]call(nil), m.calls...)
}

// gatedGenerator は release に値が送られるまで各呼び出しをブロックします。
type gatedGenerator struct {
	started chan struct{}
	release chan error
}

func newGatedGenerator() *gatedGenerator {
	return &gatedGenerator{started: make(chan struct{}, 16), release: make(chan error)}
}

func (g *gatedGenerator) Generate(ctx context.Context, images []domain.Image, prompt string) (*domain.GeneratedImage, error) {
	g.started <- struct{}{}
	select {
	case err := <-g.release:
		if err != nil {
			return nil, err
		}
		return okImage(), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (g *gatedGenerator) waitStarted(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		<-g.started
	}
}

func okImage() *domain.GeneratedImage {
	return &domain.GeneratedImage{MIMEType: "image/png", Data: []byte("result"), ResponseText: "ok"}
}

func testSubjects(t *testing.T, n int) []domain.Subject {
	t.Helper()
	subjects := make([]domain.Subject, n)
	for i := range subjects {
		img, err := domain.NewImage("subject.png", pngBytes)
		require.NoError(t, err)
		subjects[i] = domain.Subject{Image: img}
	}
	return subjects
}

func testBackground(t *testing.T) *domain.Image {
	t.Helper()
	img, err := domain.NewImage("background.png", pngBytes)
	require.NoError(t, err)
	return &img
}

func newTestOrchestrator(t *testing.T, gen generator.ImageGenerator, opts Options) *Orchestrator {
	t.Helper()
	pb, err := prompts.NewFusionPromptBuilder(catalog.Default())
	require.NoError(t, err)
	o, err := New(gen, pb, opts)
	require.NoError(t, err)
	t.Cleanup(o.Close)
	return o
}
