package prompts

import (
	"fmt"

	"github.com/shouni/go-fusion-kit/pkg/catalog"
	"github.com/shouni/go-fusion-kit/pkg/domain"
)

// Compiled はコンパイル済みのプロンプトと、その導出に使った値です。
type Compiled struct {
	Scenario domain.Scenario
	Options  Options
	// PersonaDescriptions は被写体の位置に揃えた体型記述です（空文字列は指示なし）。
	PersonaDescriptions []string
	Prompt              string
}

// FusionPromptBuilder はカタログを参照してシナリオ・ペルソナを解決し、プロンプトを生成します。
type FusionPromptBuilder struct {
	catalog *catalog.Catalog
}

// NewFusionPromptBuilder は新しい FusionPromptBuilder を生成します。
func NewFusionPromptBuilder(c *catalog.Catalog) (*FusionPromptBuilder, error) {
	if c == nil {
		return nil, fmt.Errorf("catalog は必須です")
	}
	return &FusionPromptBuilder{catalog: c}, nil
}

// Build はシナリオ ID と被写体から上書き適用済みのプロンプトを生成します。
// scenarioID が空の場合はカタログ先頭のシナリオを使います。
func (b *FusionPromptBuilder) Build(scenarioID string, subjects []domain.Subject, quality domain.Quality, backgroundSupplied bool) (Compiled, error) {
	scenario := b.catalog.DefaultScenario()
	if scenarioID != "" {
		s, ok := b.catalog.FindScenario(scenarioID)
		if !ok {
			return Compiled{}, domain.NewInputError(fmt.Sprintf("unknown scenario %q", scenarioID))
		}
		scenario = s
	}

	opts, err := Resolve(scenario, quality, backgroundSupplied, len(subjects))
	if err != nil {
		return Compiled{}, err
	}

	descs := b.catalog.PersonaDescriptions(subjects)
	return Compiled{
		Scenario:            scenario,
		Options:             opts,
		PersonaDescriptions: descs,
		Prompt:              Compile(scenario, descs, opts.Quality, opts.HasBackground),
	}, nil
}
