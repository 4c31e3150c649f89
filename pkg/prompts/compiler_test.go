package prompts

import (
	"strings"
	"testing"

	"github.com/shouni/go-fusion-kit/pkg/catalog"
	"github.com/shouni/go-fusion-kit/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenario(t *testing.T, id string) domain.Scenario {
	t.Helper()
	s, ok := catalog.Default().FindScenario(id)
	require.True(t, ok, id)
	return s
}

func TestCompile_Determinism(t *testing.T) {
	s := scenario(t, "nightclub-photo")
	descs := []string{"Athletic build.", "", "Rounder body."}

	first := Compile(s, descs, domain.QualityHigh, true)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Compile(s, descs, domain.QualityHigh, true))
	}
}

func TestCompile_SafetyClauseIsLast(t *testing.T) {
	for _, s := range catalog.Default().ListScenarios() {
		for _, bg := range []bool{true, false} {
			for _, q := range domain.Qualities() {
				p := Compile(s, []string{"", "x"}, q, bg)
				assert.True(t, strings.HasSuffix(p, SafetyInstruction), "%s bg=%v q=%s", s.ID, bg, q)
				assert.Equal(t, 1, strings.Count(p, "**Safety Constraint:**"))
			}
		}
	}
}

func TestCompile_BackgroundMandates(t *testing.T) {
	s := scenario(t, "group-photo")

	t.Run("背景ありなら MANDATE #A/#B のみ", func(t *testing.T) {
		p := Compile(s, []string{"", ""}, domain.QualityStandard, true)
		assert.Contains(t, p, "### MANDATE #A: BACKGROUND & PHOTOREALISM")
		assert.Contains(t, p, "### MANDATE #B: SCALE & COMPOSITION")
		assert.NotContains(t, p, "**PHOTOREALISM:**")
		assert.Contains(t, p, " and place them in the background image.")
	})

	t.Run("背景なしなら PHOTOREALISM のみ", func(t *testing.T) {
		p := Compile(s, []string{"", ""}, domain.QualityStandard, false)
		assert.NotContains(t, p, "MANDATE #A")
		assert.NotContains(t, p, "MANDATE #B")
		assert.Contains(t, p, PhotorealismDirective)
		assert.NotContains(t, p, "place them in the background image")
	})
}

func TestCompile_BodyModifications(t *testing.T) {
	s := scenario(t, "group-photo")

	t.Run("デフォルト記述と空文字列は行を出さないこと", func(t *testing.T) {
		p := Compile(s, []string{"", catalog.DefaultPersonaDescription, "   "}, domain.QualityHigh, false)
		assert.NotContains(t, p, "**Subject Body Modifications:**")
		assert.NotContains(t, p, "Reshape their body")
	})

	t.Run("言い回しの異なるデフォルト相当の記述も行を出さないこと", func(t *testing.T) {
		reworded := []string{
			"Use the body characteristics shown in the photo.",
			"  Use the body characteristics of the subject as-is",
		}
		p := Compile(s, reworded, domain.QualityHigh, false)
		assert.NotContains(t, p, "**Subject Body Modifications:**")
		assert.NotContains(t, p, "Reshape their body")
	})

	t.Run("非自明な記述は正しい被写体名で1行だけ出すこと", func(t *testing.T) {
		p := Compile(s, []string{"", "Lean and slender.", "", "Rounder body."}, domain.QualityHigh, false)
		assert.Contains(t, p, "**Subject Body Modifications:**")
		assert.Equal(t, 2, strings.Count(p, "Reshape their body"))
		assert.Contains(t, p, "\n- **For Subject 2**: Reshape their body to match the following description: \"Lean and slender.\". This instruction applies ONLY to the body shape.")
		assert.Contains(t, p, "\n- **For Subject 4**: Reshape their body to match the following description: \"Rounder body.\".")
		assert.NotContains(t, p, "**For Subject 1**")
		assert.NotContains(t, p, "**For Subject 3**")
	})
}

func TestCompile_SectionOrder(t *testing.T) {
	s := scenario(t, "hug-pose")
	p := Compile(s, []string{"Athletic build.", ""}, domain.QualityHigh, true)

	order := []string{
		"Take Subject 1 and Subject 2",
		"**Subject Body Modifications:**",
		"**Critical Instructions:**",
		"**Absolute Identity Preservation:**",
		"**Clothing Preservation & Failsafe:**",
		"**Composition & Realism:** This should be a close up photo.",
		"**Quality:** The final result must be a very detailed, photorealistic, high-resolution image.",
		"### MANDATE #A",
		"### MANDATE #B",
		"**Safety Constraint:**",
	}
	last := -1
	for _, marker := range order {
		idx := strings.Index(p, marker)
		require.GreaterOrEqual(t, idx, 0, marker)
		assert.Greater(t, idx, last, marker)
		last = idx
	}
}

func TestCompile_OpeningSentence(t *testing.T) {
	s := scenario(t, "group-photo")

	p := Compile(s, []string{"", "", "", ""}, domain.QualityStandard, true)
	assert.True(t, strings.HasPrefix(p, "Take Subject 1, Subject 2, Subject 3 and Subject 4 and place them in the background image. The subjects should be posed in a classic group photo layout, smiling and looking at the camera."))
	assert.Contains(t, p, "a clear, photorealistic image.")

	assert.Equal(t, "Subject 1", subjectList(1))
	assert.Equal(t, "Subject 1 and Subject 2", subjectList(2))
	assert.Equal(t, "Subject 1, Subject 2 and Subject 3", subjectList(3))
}

func TestCompile_CompositionVariants(t *testing.T) {
	s := scenario(t, "lying-down")

	withBg := Compile(s, []string{"", ""}, domain.QualityHigh, true)
	assert.Contains(t, withBg, "matching top-down view.")
	assert.NotContains(t, withBg, "cozy, dimly lit room")

	withoutBg := Compile(s, []string{"", ""}, domain.QualityHigh, false)
	assert.Contains(t, withoutBg, "The setting is a cozy, dimly lit room.")
}

func TestResolve(t *testing.T) {
	t.Run("Kissing Booth は Ultra High を強制し2人のみ", func(t *testing.T) {
		s := scenario(t, "kissing-booth")
		opts, err := Resolve(s, domain.QualityStandard, false, 2)
		require.NoError(t, err)
		assert.Equal(t, domain.QualityUltraHigh, opts.Quality)
		assert.False(t, opts.HasBackground)

		_, err = Resolve(s, domain.QualityStandard, false, 3)
		assert.ErrorIs(t, err, domain.ErrInputValidation)
	})

	t.Run("背景非対応シナリオは背景を除外すること", func(t *testing.T) {
		for _, id := range []string{"cinematic-portrait", "professional-bw"} {
			opts, err := Resolve(scenario(t, id), domain.QualityHigh, true, 3)
			require.NoError(t, err)
			assert.False(t, opts.HasBackground, id)
			assert.True(t, opts.BackgroundDropped, id)
		}
	})

	t.Run("通常シナリオは選択値をそのまま使うこと", func(t *testing.T) {
		opts, err := Resolve(scenario(t, "group-photo"), domain.QualityStandard, true, 4)
		require.NoError(t, err)
		assert.Equal(t, domain.QualityStandard, opts.Quality)
		assert.True(t, opts.HasBackground)
		assert.False(t, opts.BackgroundDropped)
	})

	t.Run("被写体数が範囲外", func(t *testing.T) {
		_, err := Resolve(scenario(t, "group-photo"), domain.QualityHigh, false, 1)
		assert.ErrorIs(t, err, domain.ErrInputValidation)
		_, err = Resolve(scenario(t, "group-photo"), domain.QualityHigh, false, 5)
		assert.ErrorIs(t, err, domain.ErrInputValidation)
	})
}

func TestFusionPromptBuilder_Build(t *testing.T) {
	b, err := NewFusionPromptBuilder(catalog.Default())
	require.NoError(t, err)

	t.Run("Kissing Booth 2人・背景なし", func(t *testing.T) {
		c, err := b.Build("kissing-booth", make([]domain.Subject, 2), domain.QualityStandard, false)
		require.NoError(t, err)
		assert.Contains(t, c.Prompt, domain.QualityUltraHigh.Text())
		assert.NotContains(t, c.Prompt, domain.QualityStandard.Text())
		assert.NotContains(t, c.Prompt, "MANDATE #A")
		assert.NotContains(t, c.Prompt, "MANDATE #B")
	})

	t.Run("ペルソナ解決", func(t *testing.T) {
		subjects := []domain.Subject{{PersonaID: "default"}, {PersonaID: "male-endomorph"}, {PersonaID: "missing"}}
		c, err := b.Build("", subjects, domain.QualityHigh, false)
		require.NoError(t, err)
		assert.Equal(t, "group-photo", c.Scenario.ID)
		assert.Equal(t, 1, strings.Count(c.Prompt, "Reshape their body"))
		assert.Contains(t, c.Prompt, "**For Subject 2**")
	})

	t.Run("未知のシナリオ", func(t *testing.T) {
		_, err := b.Build("nope", make([]domain.Subject, 2), domain.QualityHigh, false)
		assert.ErrorIs(t, err, domain.ErrInputValidation)
	})

	t.Run("catalog 未指定", func(t *testing.T) {
		_, err := NewFusionPromptBuilder(nil)
		assert.Error(t, err)
	})
}

func TestCompile_IgnoresScenarioKind(t *testing.T) {
	s := scenario(t, "hug-pose")
	relabeled := s
	relabeled.Kind = domain.KindProfessionalBW

	descs := []string{"", "Lean and slender."}
	for _, bg := range []bool{false, true} {
		assert.Equal(t,
			Compile(s, descs, domain.QualityHigh, bg),
			Compile(relabeled, descs, domain.QualityHigh, bg))
	}
}
