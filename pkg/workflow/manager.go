package workflow

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/shouni/go-fusion-kit/pkg/catalog"
	"github.com/shouni/go-fusion-kit/pkg/config"
	"github.com/shouni/go-fusion-kit/pkg/generator"
	"github.com/shouni/go-fusion-kit/pkg/prompts"
	"github.com/shouni/go-fusion-kit/pkg/publisher"
)

// ManagerArgs は Manager の初期化に必要な依存関係です。
type ManagerArgs struct {
	Config config.Config
	// AIClient が nil の場合は Config.GeminiAPIKey から go-gemini-client を生成します。
	AIClient generator.ContentGenerator
	// Writer が nil の場合はローカルファイルシステムに書き出します。
	Writer publisher.OutputWriter
	// Registerer が nil の場合はメトリクスを記録しません。
	Registerer prometheus.Registerer
	Logger     *slog.Logger
}

// Manager は、ワークフローの各工程を担う Runner 群を構築・管理します。
type Manager struct {
	cfg        config.Config
	aiClient   generator.ContentGenerator
	writer     publisher.OutputWriter
	registerer prometheus.Registerer
	logger     *slog.Logger
	catalog    *catalog.Catalog
	prompts    *prompts.FusionPromptBuilder
}

var _ Workflow = (*Manager)(nil)

// New は、設定とカタログを基に新しい Manager を初期化します。
// AI クライアントは BuildFuseRunner まで生成しないため、プロンプトのドライランに API キーは不要です。
func New(args ManagerArgs) (*Manager, error) {
	if args.Logger == nil {
		args.Logger = slog.Default()
	}
	if args.Writer == nil {
		args.Writer = publisher.LocalWriter{}
	}

	cat, err := catalog.Load(args.Config.CatalogFile)
	if err != nil {
		return nil, fmt.Errorf("カタログの読み込みに失敗しました: %w", err)
	}

	pb, err := prompts.NewFusionPromptBuilder(cat)
	if err != nil {
		return nil, fmt.Errorf("FusionPromptBuilder の初期化に失敗しました: %w", err)
	}

	return &Manager{
		cfg:        args.Config,
		aiClient:   args.AIClient,
		writer:     args.Writer,
		registerer: args.Registerer,
		logger:     args.Logger,
		catalog:    cat,
		prompts:    pb,
	}, nil
}

// Catalog は読み込み済みのカタログを返します。
func (m *Manager) Catalog() *catalog.Catalog {
	return m.catalog
}

// initializeAIClient は注入済みのクライアントがあればそれを返し、無ければ go-gemini-client を初期化します。
func (m *Manager) initializeAIClient(ctx context.Context) (generator.ContentGenerator, error) {
	if m.aiClient != nil {
		return m.aiClient, nil
	}
	client, err := generator.NewGeminiClient(ctx, m.cfg.GeminiAPIKey)
	if err != nil {
		return nil, err
	}
	m.aiClient = client
	return m.aiClient, nil
}
