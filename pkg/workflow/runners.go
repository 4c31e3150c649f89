package workflow

import (
	"context"
	"fmt"

	"github.com/shouni/go-fusion-kit/pkg/orchestrator"
	"github.com/shouni/go-fusion-kit/pkg/publisher"
	"github.com/shouni/go-fusion-kit/pkg/runner"
)

// BuildFuseRunner は、画像生成からパッケージングまでを担当する Runner を作成します。
// 返される Runner は内部にオーケストレーターを1つ持ち、呼び出し側は ctx の終了でバッチを打ち切れます。
func (m *Manager) BuildFuseRunner(ctx context.Context) (FuseRunner, error) {
	aiClient, err := m.initializeAIClient(ctx)
	if err != nil {
		return nil, err
	}

	imgGen, err := initializeImageGenerator(m.cfg, aiClient, m.logger)
	if err != nil {
		return nil, fmt.Errorf("画像生成エンジンの初期化に失敗しました: %w", err)
	}

	var metrics *orchestrator.Metrics
	if m.registerer != nil {
		metrics = orchestrator.NewMetrics(m.registerer)
	}

	orc, err := orchestrator.New(imgGen, m.prompts, orchestrator.Options{
		Limiter: newLimiter(m.cfg.RateInterval),
		Policy:  policyFromConfig(m.cfg),
		Metrics: metrics,
		Logger:  m.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("オーケストレーターの初期化に失敗しました: %w", err)
	}

	pub := publisher.NewPublisher(m.writer, m.cfg.AppName)
	return runner.NewFuseRunner(orc, pub), nil
}

// BuildPromptRunner は、プロンプトのドライランを担当する Runner を作成します。
func (m *Manager) BuildPromptRunner() PromptRunner {
	return runner.NewPromptRunner(m.prompts)
}
