package generator

import (
	"context"
	"sync"
	"time"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"
)

// --- Mocks ---

type mockContentGenerator struct {
	mu          sync.Mutex
	calls       int
	lastModel   string
	lastContent []*genai.Content
	lastConfig  *genai.GenerateContentConfig
	generateFn  func(ctx context.Context) (*genai.GenerateContentResponse, error)
}

func (m *mockContentGenerator) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	m.mu.Lock()
	m.calls++
	m.lastModel = model
	m.lastContent = contents
	m.lastConfig = config
	m.mu.Unlock()
	if m.generateFn != nil {
		return m.generateFn(ctx)
	}
	return imageResponse("image/png", []byte("fake"), "here you go"), nil
}

type mockPartsGenerator struct {
	lastModel string
	lastParts []*genai.Part
	lastOpts  gemini.GenerateOptions
	resp      *gemini.Response
	err       error
}

func (m *mockPartsGenerator) GenerateWithParts(ctx context.Context, model string, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error) {
	m.lastModel = model
	m.lastParts = parts
	m.lastOpts = opts
	return m.resp, m.err
}

type mockCache struct {
	mu   sync.Mutex
	data map[string]any
	sets int
}

func newMockCache() *mockCache {
	return &mockCache{data: make(map[string]any)}
}

func (m *mockCache) Get(key string) (any, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.data[key]
	return val, ok
}

func (m *mockCache) Set(key string, value any, d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets++
	m.data[key] = value
}

func imageResponse(mime string, data []byte, text string) *genai.GenerateContentResponse {
	parts := []*genai.Part{{InlineData: &genai.Blob{MIMEType: mime, Data: data}}}
	if text != "" {
		parts = append(parts, &genai.Part{Text: text})
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content:      &genai.Content{Parts: parts},
			FinishReason: genai.FinishReasonStop,
		}},
	}
}
