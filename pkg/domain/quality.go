package domain

import (
	"fmt"
	"strings"
)

// Quality は出力画像の品質ティアです。数値パラメータではなく、プロンプトに注入する説明句を選ぶためだけに使います。
type Quality string

const (
	QualityStandard  Quality = "Standard"
	QualityHigh      Quality = "High"
	QualityUltraHigh Quality = "Ultra High"

	// DefaultQuality は UI の初期選択と同じ High です。
	DefaultQuality = QualityHigh
)

var qualityTexts = map[Quality]string{
	QualityStandard:  "a clear, photorealistic image.",
	QualityHigh:      "a very detailed, photorealistic, high-resolution image.",
	QualityUltraHigh: "a hyper-realistic, professional-grade photograph with maximum detail.",
}

// Qualities は選択可能な品質ティアを表示順で返します。
func Qualities() []Quality {
	return []Quality{QualityStandard, QualityHigh, QualityUltraHigh}
}

// Text は品質ティアに対応する固定の説明句を返します。
func (q Quality) Text() string {
	return qualityTexts[q]
}

// Valid は既知のティアかどうかを返します。
func (q Quality) Valid() bool {
	_, ok := qualityTexts[q]
	return ok
}

// ParseQuality は大文字小文字やハイフン表記の揺れを吸収してティアを解決します。
// 空文字列は DefaultQuality として扱います。
func ParseQuality(s string) (Quality, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("-", " ", "_", " ").Replace(key)
	switch key {
	case "":
		return DefaultQuality, nil
	case "standard":
		return QualityStandard, nil
	case "high":
		return QualityHigh, nil
	case "ultra high", "ultrahigh", "ultra":
		return QualityUltraHigh, nil
	}
	return "", NewInputError(fmt.Sprintf("unknown quality %q (want Standard, High or Ultra High)", s))
}
