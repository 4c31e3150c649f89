package builder

import (
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/shouni/go-fusion-kit/internal/config"
	pkgconfig "github.com/shouni/go-fusion-kit/pkg/config"
	"github.com/shouni/go-fusion-kit/pkg/publisher"
	"github.com/shouni/go-fusion-kit/pkg/workflow"
)

// AppContext は、アプリケーション実行に必要な共通コンテキストを保持する
// これを各 Execute 関数に渡すことで、依存関係の注入を簡素化します。
type AppContext struct {
	Config    pkgconfig.Config    // Config は、環境変数から読み込まれたグローバルな設定です（APIキー、モデル名など）。
	Options   config.FuseOptions  // Options は、コマンドラインから渡された実行時の設定です。
	Workflow  workflow.Workflow   // Workflow は、各 Runner を構築するためのファクトリです。
	Publisher *publisher.Publisher // Publisher は、単体画像の保存に使用します。
	Metrics   *prometheus.Registry // Metrics は、実行中に記録されたメトリクスの集計先です。
}

// NewAppContext は AppContext の新しいインスタンスを生成する
func NewAppContext(cfg pkgconfig.Config, opts config.FuseOptions, logger *slog.Logger) (*AppContext, error) {
	reg := prometheus.NewRegistry()
	writer := publisher.LocalWriter{}

	wf, err := workflow.New(workflow.ManagerArgs{
		Config:     cfg,
		Writer:     writer,
		Registerer: reg,
		Logger:     logger,
	})
	if err != nil {
		return nil, fmt.Errorf("ワークフローの初期化に失敗しました: %w", err)
	}

	return &AppContext{
		Config:    cfg,
		Options:   opts,
		Workflow:  wf,
		Publisher: publisher.NewPublisher(writer, cfg.AppName),
		Metrics:   reg,
	}, nil
}
