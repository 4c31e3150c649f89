package workflow

import (
	"context"

	"github.com/shouni/go-fusion-kit/pkg/catalog"
	"github.com/shouni/go-fusion-kit/pkg/prompts"
	"github.com/shouni/go-fusion-kit/pkg/runner"
)

// Workflow は、合成ワークフローの各工程を担当する Runner を構築するためのインターフェースを定義します。
type Workflow interface {
	BuildFuseRunner(ctx context.Context) (FuseRunner, error)
	BuildPromptRunner() PromptRunner
	Catalog() *catalog.Catalog
}

// FuseRunner は、バッチの開始・リトライ・保存までを一括で実行する責務を持ちます。
type FuseRunner interface {
	Run(ctx context.Context, req runner.FuseRequest) (runner.FuseResult, error)
}

// PromptRunner は、API を呼び出さずにプロンプトを生成する責務を持ちます。
type PromptRunner interface {
	Run(req runner.PromptRequest) (prompts.Compiled, error)
}
