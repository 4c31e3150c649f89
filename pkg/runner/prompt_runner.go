package runner

import (
	"github.com/shouni/go-fusion-kit/pkg/domain"
	"github.com/shouni/go-fusion-kit/pkg/prompts"
)

// PromptBuilder はシナリオと被写体からプロンプトをコンパイルします。
type PromptBuilder interface {
	Build(scenarioID string, subjects []domain.Subject, quality domain.Quality, backgroundSupplied bool) (prompts.Compiled, error)
}

// PromptRequest はドライランの入力です。画像そのものは不要で、ペルソナの割り当てだけを使います。
type PromptRequest struct {
	ScenarioID         string
	PersonaIDs         []string
	Quality            domain.Quality
	BackgroundSupplied bool
}

// PromptRunner は API を呼び出さずにプロンプトだけを生成します。
type PromptRunner struct {
	builder PromptBuilder
}

// NewPromptRunner は、依存関係を注入して初期化します。
func NewPromptRunner(b PromptBuilder) *PromptRunner {
	return &PromptRunner{builder: b}
}

// Run はペルソナの割り当てからコンパイル済みのプロンプトを返します。
func (r *PromptRunner) Run(req PromptRequest) (prompts.Compiled, error) {
	subjects := make([]domain.Subject, len(req.PersonaIDs))
	for i, id := range req.PersonaIDs {
		subjects[i] = domain.Subject{PersonaID: id}
	}
	return r.builder.Build(req.ScenarioID, subjects, req.Quality, req.BackgroundSupplied)
}
