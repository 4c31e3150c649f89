package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shouni/go-fusion-kit/pkg/domain"
)

// Catalog はペルソナとシナリオの読み取り専用レジストリです。
// 生成後に変更する API は持たず、複数のゴルーチンから安全に参照できます。
type Catalog struct {
	personas      []domain.Persona
	scenarios     []domain.Scenario
	personaIndex  map[string]int
	scenarioIndex map[string]int
}

// New は与えられた定義から Catalog を構築します。定義は表示順として保持されます。
func New(personas []domain.Persona, scenarios []domain.Scenario) (*Catalog, error) {
	if len(scenarios) == 0 {
		return nil, errors.New("シナリオが1件も定義されていません")
	}

	c := &Catalog{
		personas:      make([]domain.Persona, 0, len(personas)),
		scenarios:     make([]domain.Scenario, 0, len(scenarios)),
		personaIndex:  make(map[string]int, len(personas)),
		scenarioIndex: make(map[string]int, len(scenarios)),
	}

	defaults := 0
	for _, p := range personas {
		if strings.TrimSpace(p.ID) == "" {
			return nil, fmt.Errorf("persona %q: id is required", p.Name)
		}
		if _, dup := c.personaIndex[p.ID]; dup {
			return nil, fmt.Errorf("persona %q is defined twice", p.ID)
		}
		if p.IsDefault {
			defaults++
		}
		c.personaIndex[p.ID] = len(c.personas)
		c.personas = append(c.personas, p)
	}
	if defaults > 1 {
		return nil, fmt.Errorf("only one persona may be marked as default (got %d)", defaults)
	}

	for _, s := range scenarios {
		if err := validateScenario(s); err != nil {
			return nil, err
		}
		if _, dup := c.scenarioIndex[s.ID]; dup {
			return nil, fmt.Errorf("scenario %q is defined twice", s.ID)
		}
		c.scenarioIndex[s.ID] = len(c.scenarios)
		c.scenarios = append(c.scenarios, s)
	}
	return c, nil
}

func validateScenario(s domain.Scenario) error {
	switch {
	case strings.TrimSpace(s.ID) == "":
		return fmt.Errorf("scenario %q: id is required", s.Title)
	case strings.TrimSpace(s.PoseClause) == "":
		return fmt.Errorf("scenario %q: pose is required", s.ID)
	case strings.TrimSpace(s.Composition) == "":
		return fmt.Errorf("scenario %q: composition is required", s.ID)
	case s.ForcedQuality != "" && !s.ForcedQuality.Valid():
		return fmt.Errorf("scenario %q: unknown forced_quality %q", s.ID, s.ForcedQuality)
	case s.RequiredSubjects != 0 && (s.RequiredSubjects < domain.MinSubjects || s.RequiredSubjects > domain.MaxSubjects):
		return fmt.Errorf("scenario %q: required_subjects must be between %d and %d", s.ID, domain.MinSubjects, domain.MaxSubjects)
	}
	return nil
}

// Default は組み込みのペルソナ・シナリオからなる Catalog を返します。
func Default() *Catalog {
	c, err := New(builtinPersonas, builtinScenarios)
	if err != nil {
		// 組み込み定義は静的なので、ここに来るのはプログラミングミスのみです。
		panic(fmt.Sprintf("builtin catalog is invalid: %v", err))
	}
	return c
}

// ListPersonas は全ペルソナを表示順で返します。
func (c *Catalog) ListPersonas() []domain.Persona {
	out := make([]domain.Persona, len(c.personas))
	copy(out, c.personas)
	return out
}

// ListScenarios は全シナリオを表示順で返します。
func (c *Catalog) ListScenarios() []domain.Scenario {
	out := make([]domain.Scenario, len(c.scenarios))
	copy(out, c.scenarios)
	return out
}

// FindPersona は ID からペルソナを検索します。見つからない場合は false を返します。
func (c *Catalog) FindPersona(id string) (domain.Persona, bool) {
	i, ok := c.personaIndex[id]
	if !ok {
		i, ok = c.personaIndex[strings.ToLower(strings.TrimSpace(id))]
	}
	if !ok {
		return domain.Persona{}, false
	}
	return c.personas[i], true
}

// FindScenario は ID からシナリオを検索します。見つからない場合は false を返します。
func (c *Catalog) FindScenario(id string) (domain.Scenario, bool) {
	i, ok := c.scenarioIndex[id]
	if !ok {
		i, ok = c.scenarioIndex[strings.ToLower(strings.TrimSpace(id))]
	}
	if !ok {
		return domain.Scenario{}, false
	}
	return c.scenarios[i], true
}

// DefaultScenario は未選択時に使う先頭のシナリオを返します。
func (c *Catalog) DefaultScenario() domain.Scenario {
	return c.scenarios[0]
}

// PersonaDescription はプロンプトに注入する体型記述を返します。
// 未割り当て、未知の ID、デフォルトペルソナはいずれも空文字列です。
func (c *Catalog) PersonaDescription(id string) string {
	if id == "" {
		return ""
	}
	p, ok := c.FindPersona(id)
	if !ok {
		return ""
	}
	return p.BodyInstruction()
}

// PersonaDescriptions は被写体ごとのペルソナ ID を位置を保ったまま記述に変換します。
func (c *Catalog) PersonaDescriptions(subjects []domain.Subject) []string {
	out := make([]string, len(subjects))
	for i, s := range subjects {
		out[i] = c.PersonaDescription(s.PersonaID)
	}
	return out
}

// PersonaGroup は表示用にまとめたペルソナ群です。
type PersonaGroup struct {
	Group    domain.GenderGroup
	Personas []domain.Persona
}

// GroupedPersonas はグループなし（デフォルトを含む）、female、male の順にペルソナをまとめます。
func (c *Catalog) GroupedPersonas() []PersonaGroup {
	order := []domain.GenderGroup{domain.GroupNone, domain.GroupFemale, domain.GroupMale}
	buckets := make(map[domain.GenderGroup][]domain.Persona, len(order))
	for _, p := range c.personas {
		buckets[p.Group] = append(buckets[p.Group], p)
	}

	var out []PersonaGroup
	for _, g := range order {
		if len(buckets[g]) > 0 {
			out = append(out, PersonaGroup{Group: g, Personas: buckets[g]})
		}
		delete(buckets, g)
	}
	// 未知のグループは定義順を保てないため末尾にまとめます
	for _, p := range c.personas {
		if ps, ok := buckets[p.Group]; ok {
			out = append(out, PersonaGroup{Group: p.Group, Personas: ps})
			delete(buckets, p.Group)
		}
	}
	return out
}
