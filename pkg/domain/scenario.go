package domain

import "fmt"

// ScenarioKind はシナリオの分類を表す記述用のメタデータです。プロンプト構築はこの値を参照せず、Scenario のデータ項目だけを使います。
type ScenarioKind string

const (
	KindGroupPhoto        ScenarioKind = "group-photo"
	KindHug               ScenarioKind = "hug-pose"
	KindIntimate          ScenarioKind = "intimate-scene"
	KindCandid            ScenarioKind = "candid-moment"
	KindNightclub         ScenarioKind = "nightclub-photo"
	KindLyingDown         ScenarioKind = "lying-down"
	KindKissingBooth      ScenarioKind = "kissing-booth"
	KindPhotoBooth        ScenarioKind = "photo-booth"
	KindCinematicPortrait ScenarioKind = "cinematic-portrait"
	KindProfessionalBW    ScenarioKind = "professional-bw"
)

// Scenario はポーズ（シナリオ）のカタログ項目です。振る舞いは持たず、データのみを保持します。
type Scenario struct {
	ID          string       `yaml:"id" json:"id"`
	Kind        ScenarioKind `yaml:"kind" json:"kind"`
	Title       string       `yaml:"title" json:"title"`
	Description string       `yaml:"description" json:"description"`

	// PoseClause は冒頭文の "The subjects should be posed ..." に続く句です。
	PoseClause string `yaml:"pose" json:"pose"`
	// Composition は構図指示の共通部分です。
	Composition string `yaml:"composition" json:"composition"`
	// WithBackground / WithoutBackground は背景の有無で Composition の後ろに連結される補足です。
	WithBackground    string `yaml:"with_background,omitempty" json:"with_background,omitempty"`
	WithoutBackground string `yaml:"without_background,omitempty" json:"without_background,omitempty"`

	// ForcedQuality が空でなければ、呼び出し側が選んだ品質より優先されます。
	ForcedQuality Quality `yaml:"forced_quality,omitempty" json:"forced_quality,omitempty"`
	// NoBackground が true のシナリオは背景画像を受け付けません。
	NoBackground bool `yaml:"no_background,omitempty" json:"no_background,omitempty"`
	// RequiredSubjects が 0 より大きい場合、被写体数はちょうどその数でなければなりません。
	RequiredSubjects int `yaml:"required_subjects,omitempty" json:"required_subjects,omitempty"`
}

// AllowsBackground は背景画像を受け付けるシナリオかどうかを返します。
func (s Scenario) AllowsBackground() bool {
	return !s.NoBackground
}

// AcceptsSubjects は被写体数がシナリオの制約を満たすかどうかを返します。
func (s Scenario) AcceptsSubjects(n int) bool {
	if s.RequiredSubjects > 0 {
		return n == s.RequiredSubjects
	}
	return n >= MinSubjects && n <= MaxSubjects
}

func (s Scenario) String() string {
	return fmt.Sprintf("%s (%s)", s.Title, s.ID)
}
