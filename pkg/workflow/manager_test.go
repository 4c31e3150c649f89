package workflow

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/shouni/go-fusion-kit/pkg/config"
	"github.com/shouni/go-fusion-kit/pkg/domain"
	"github.com/shouni/go-fusion-kit/pkg/orchestrator"
	"github.com/shouni/go-fusion-kit/pkg/runner"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

type mockContentGenerator struct {
	mu    sync.Mutex
	calls int
	model string
}

func (m *mockContentGenerator) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	m.mu.Lock()
	m.calls++
	n := m.calls
	m.model = model
	m.mu.Unlock()

	if n == 1 {
		return &genai.GenerateContentResponse{
			PromptFeedback: &genai.GenerateContentResponsePromptFeedback{BlockReason: "SAFETY"},
		}, nil
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content:      &genai.Content{Parts: []*genai.Part{{InlineData: &genai.Blob{MIMEType: "image/png", Data: pngBytes}}}},
			FinishReason: genai.FinishReasonStop,
		}},
	}, nil
}

func subjects(t *testing.T, n int) []domain.Subject {
	t.Helper()
	out := make([]domain.Subject, n)
	for i := range out {
		img, err := domain.NewImage("s.png", pngBytes)
		require.NoError(t, err)
		out[i] = domain.Subject{Image: img}
	}
	return out
}

func TestNew(t *testing.T) {
	t.Run("API キーなしでもプロンプトは生成できること", func(t *testing.T) {
		m, err := New(ManagerArgs{Config: config.DefaultConfig()})
		require.NoError(t, err)

		compiled, err := m.BuildPromptRunner().Run(runner.PromptRequest{PersonaIDs: []string{"default", "male-endomorph"}})
		require.NoError(t, err)
		assert.NotEmpty(t, compiled.Prompt)
		assert.Equal(t, "group-photo", compiled.Scenario.ID)
		assert.NotEmpty(t, m.Catalog().ListScenarios())
	})

	t.Run("API キーが無い場合は FuseRunner を作成できないこと", func(t *testing.T) {
		m, err := New(ManagerArgs{Config: config.DefaultConfig()})
		require.NoError(t, err)

		_, err = m.BuildFuseRunner(context.Background())
		assert.Error(t, err)
	})

	t.Run("存在しないカタログファイルはエラーになること", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.CatalogFile = filepath.Join(t.TempDir(), "missing.yaml")
		_, err := New(ManagerArgs{Config: cfg})
		assert.Error(t, err)
	})
}

func TestManager_FuseEndToEnd(t *testing.T) {
	dir := t.TempDir()
	ai := &mockContentGenerator{}
	reg := prometheus.NewRegistry()

	cfg := config.DefaultConfig()
	cfg.ImageModel = "test-image-model"
	m, err := New(ManagerArgs{Config: cfg, AIClient: ai, Registerer: reg})
	require.NoError(t, err)

	fr, err := m.BuildFuseRunner(context.Background())
	require.NoError(t, err)

	res, err := fr.Run(context.Background(), runner.FuseRequest{
		Batch: orchestrator.BatchRequest{
			Subjects:   subjects(t, 2),
			ScenarioID: "photo-booth",
			Debug:      true,
		},
		RetryRounds: 1,
		OutputDir:   dir,
	})
	require.NoError(t, err)

	assert.Equal(t, 5, ai.calls)
	assert.Equal(t, "test-image-model", ai.model)
	assert.Len(t, res.Slots, 4)
	assert.Len(t, res.Debug, 4)
	assert.Equal(t, 4, res.Publish.Count)
	assert.Equal(t, filepath.Join(dir, "group-photo-fusion-collection.zip"), res.Publish.ArchivePath)
	assert.FileExists(t, res.DebugPath)

	zr, err := zip.OpenReader(res.Publish.ArchivePath)
	require.NoError(t, err)
	defer zr.Close()
	assert.Len(t, zr.File, 4)
	assert.Equal(t, "fusion_1.png", zr.File[0].Name)

	_, err = os.Stat(filepath.Join(dir, "debug_records.json"))
	assert.NoError(t, err)

	n, err := testutil.GatherAndCount(reg, "fusion_slot_retries_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
