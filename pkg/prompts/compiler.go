package prompts

import (
	"fmt"
	"strings"

	"github.com/shouni/go-fusion-kit/pkg/domain"
)

// Compile は1バッチ分の指示文を組み立てます。
// 同じ引数からは常にバイト単位で同一の文字列を返します（乱数・時刻に依存しません）。
// シナリオ単位の品質・背景の上書きは呼び出し側が Resolve で適用してから渡してください。
func Compile(scenario domain.Scenario, personaDescriptions []string, quality domain.Quality, hasBackground bool) string {
	var sb strings.Builder

	writeOpening(&sb, scenario.PoseClause, len(personaDescriptions), hasBackground)
	writeBodyModifications(&sb, personaDescriptions)
	writeCriticalInstructions(&sb, composition(scenario, hasBackground), quality)
	writeRealismMandate(&sb, hasBackground)
	sb.WriteString(SafetyInstruction)

	return sb.String()
}

// SubjectName は 0 始まりの位置に対応する被写体の呼び名を返します。
func SubjectName(index int) string {
	return fmt.Sprintf("Subject %d", index+1)
}

// subjectList は "Subject 1, Subject 2 and Subject 3" の形式で被写体を列挙します。
func subjectList(n int) string {
	names := make([]string, n)
	for i := range names {
		names[i] = SubjectName(i)
	}
	if n < 2 {
		return strings.Join(names, "")
	}
	return strings.Join(names[:n-1], ", ") + " and " + names[n-1]
}

func writeOpening(sb *strings.Builder, pose string, subjects int, hasBackground bool) {
	sb.WriteString("Take ")
	sb.WriteString(subjectList(subjects))
	if hasBackground {
		sb.WriteString(backgroundPlacementClause)
	}
	sb.WriteString(" The subjects should be posed ")
	sb.WriteString(pose)
	sb.WriteString(".")
}

// defaultDescriptionPrefix は「画像の体型をそのまま使う」系の記述に共通する書き出しです。
const defaultDescriptionPrefix = "Use the body characteristics"

// isTrivialDescription は体型指示を出す必要がない記述かどうかを判定します。
// 通常はペルソナの IsDefault で空文字列に解決済みですが、デフォルト相当の説明文がそのまま渡された場合も除外します。
func isTrivialDescription(desc string) bool {
	d := strings.TrimSpace(desc)
	return d == "" || strings.HasPrefix(d, defaultDescriptionPrefix)
}

func writeBodyModifications(sb *strings.Builder, descriptions []string) {
	var lines strings.Builder
	for i, desc := range descriptions {
		if isTrivialDescription(desc) {
			continue
		}
		fmt.Fprintf(&lines, bodyModificationLine, SubjectName(i), desc)
	}
	if lines.Len() == 0 {
		return
	}
	sb.WriteString(bodyModificationsHeader)
	sb.WriteString(lines.String())
}

func writeCriticalInstructions(sb *strings.Builder, composition string, quality domain.Quality) {
	sb.WriteString(criticalInstructionsHeader)
	sb.WriteString(identityDirective)
	sb.WriteString(clothingDirective)
	fmt.Fprintf(sb, compositionDirective, composition)
	fmt.Fprintf(sb, qualityDirective, quality.Text())
}

func writeRealismMandate(sb *strings.Builder, hasBackground bool) {
	if !hasBackground {
		sb.WriteString(PhotorealismDirective)
		return
	}
	sb.WriteString("\n\n")
	sb.WriteString(BackgroundMandateA)
	sb.WriteString("\n\n")
	sb.WriteString(BackgroundMandateB)
}

// composition はシナリオの構図指示を背景の有無に応じて解決します。
func composition(s domain.Scenario, hasBackground bool) string {
	if hasBackground {
		return s.Composition + s.WithBackground
	}
	return s.Composition + s.WithoutBackground
}
