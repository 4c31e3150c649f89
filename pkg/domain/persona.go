package domain

import "fmt"

// GenderGroup はペルソナの表示グルーピング用の区分です。振る舞いには一切影響しません。
type GenderGroup string

const (
	GroupNone   GenderGroup = ""
	GroupFemale GenderGroup = "female"
	GroupMale   GenderGroup = "male"
)

// Persona は被写体に割り当てる体型の定義です。
type Persona struct {
	ID          string      `yaml:"id" json:"id"`
	Name        string      `yaml:"name" json:"name"`
	Description string      `yaml:"description" json:"description"`
	Group       GenderGroup `yaml:"group,omitempty" json:"group,omitempty"`
	// IsDefault が true のペルソナは「元画像の体型のまま」を意味し、プロンプトに何も注入しません。
	IsDefault bool `yaml:"is_default,omitempty" json:"is_default,omitempty"`
}

// BodyInstruction はプロンプトへ注入すべき体型記述を返します。デフォルトペルソナは空文字列です。
func (p Persona) BodyInstruction() string {
	if p.IsDefault {
		return ""
	}
	return p.Description
}

// String はペルソナの情報を文字列で返します。
func (p Persona) String() string {
	return fmt.Sprintf("%s (%s)", p.Name, p.ID)
}
