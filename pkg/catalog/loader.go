package catalog

import (
	"fmt"
	"os"

	"github.com/shouni/go-fusion-kit/pkg/domain"
	"gopkg.in/yaml.v3"
)

// File はカタログ上書きファイルのスキーマです。
type File struct {
	Personas  []domain.Persona  `yaml:"personas"`
	Scenarios []domain.Scenario `yaml:"scenarios"`
}

// Load は YAML ファイルからカタログを読み込みます。path が空の場合は組み込みカタログを返します。
// ファイル側でペルソナまたはシナリオを省略した場合、その区分は組み込み定義を使います。
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("カタログファイルの読み込みに失敗しました: %w", err)
	}
	return Parse(data)
}

// Parse は YAML バイト列からカタログを構築します。
func Parse(data []byte) (*Catalog, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("カタログのYAMLパースに失敗しました: %w", err)
	}

	personas := f.Personas
	if len(personas) == 0 {
		personas = builtinPersonas
	}
	scenarios := append([]domain.Scenario(nil), f.Scenarios...)
	if len(scenarios) == 0 {
		scenarios = append(scenarios, builtinScenarios...)
	}
	for i := range scenarios {
		if scenarios[i].Kind == "" {
			scenarios[i].Kind = domain.ScenarioKind(scenarios[i].ID)
		}
	}
	return New(personas, scenarios)
}
