package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuality(t *testing.T) {
	tests := []struct {
		in   string
		want Quality
	}{
		{"", QualityHigh},
		{"Standard", QualityStandard},
		{"high", QualityHigh},
		{"Ultra High", QualityUltraHigh},
		{"ultra-high", QualityUltraHigh},
		{"ULTRA_HIGH", QualityUltraHigh},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseQuality(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("未知の値は入力検証エラーになること", func(t *testing.T) {
		_, err := ParseQuality("medium")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInputValidation)
		assert.Equal(t, KindInputValidation, KindOf(err))
	})
}

func TestQuality_Text(t *testing.T) {
	assert.Equal(t, "a clear, photorealistic image.", QualityStandard.Text())
	assert.Equal(t, "a very detailed, photorealistic, high-resolution image.", QualityHigh.Text())
	assert.Equal(t, "a hyper-realistic, professional-grade photograph with maximum detail.", QualityUltraHigh.Text())
	assert.False(t, Quality("Low").Valid())
}

func TestNewImage(t *testing.T) {
	t.Run("PNG/JPEG/WEBPを受け付けること", func(t *testing.T) {
		for name, data := range map[string][]byte{"a.png": pngBytes, "b.jpg": jpegBytes, "c.webp": webpBytes} {
			img, err := NewImage(name, data)
			require.NoError(t, err, name)
			assert.NotEmpty(t, img.ID)
			assert.True(t, IsAcceptedMIMEType(img.MIMEType))
		}
	})

	t.Run("同じ内容でもIDは異なること", func(t *testing.T) {
		a, err := NewImage("a.png", pngBytes)
		require.NoError(t, err)
		b, err := NewImage("a.png", pngBytes)
		require.NoError(t, err)
		assert.NotEqual(t, a.ID, b.ID)
	})

	t.Run("未対応の形式は拒否すること", func(t *testing.T) {
		_, err := NewImage("d.gif", gifBytes)
		assert.ErrorIs(t, err, ErrInputValidation)
	})

	t.Run("空データは拒否すること", func(t *testing.T) {
		_, err := NewImage("empty.png", nil)
		assert.ErrorIs(t, err, ErrInputValidation)
	})
}

func TestValidateSubjects(t *testing.T) {
	subject := func() Subject {
		img, err := NewImage("s.png", pngBytes)
		require.NoError(t, err)
		return Subject{Image: img}
	}

	for n := 0; n <= 5; n++ {
		subjects := make([]Subject, n)
		for i := range subjects {
			subjects[i] = subject()
		}
		err := ValidateSubjects(subjects)
		if n >= MinSubjects && n <= MaxSubjects {
			assert.NoError(t, err, "n=%d", n)
		} else {
			assert.ErrorIs(t, err, ErrInputValidation, "n=%d", n)
		}
	}
}

func TestScenario_AcceptsSubjects(t *testing.T) {
	kissing := Scenario{ID: "kissing-booth", RequiredSubjects: 2}
	assert.True(t, kissing.AcceptsSubjects(2))
	assert.False(t, kissing.AcceptsSubjects(3))

	group := Scenario{ID: "group-photo"}
	assert.True(t, group.AcceptsSubjects(4))
	assert.False(t, group.AcceptsSubjects(5))
	assert.True(t, group.AllowsBackground())
}

func TestKindOf(t *testing.T) {
	blocked := NewError(KindContentBlocked, "SAFETY", "Request was blocked due to SAFETY.")

	assert.Equal(t, KindContentBlocked, KindOf(blocked))
	assert.Equal(t, KindContentBlocked, KindOf(fmt.Errorf("slot 1: %w", blocked)))
	assert.True(t, errors.Is(blocked, ErrContentBlocked))
	assert.Equal(t, KindTransportOrUnknown, KindOf(errors.New("connection reset")))
	assert.Equal(t, KindPackagingFailure, KindOf(fmt.Errorf("zip: %w", ErrPackagingFailure)))
	assert.Equal(t, ErrorKind(""), KindOf(nil))

	t.Run("包んだ下位エラーにも到達できること", func(t *testing.T) {
		cause := errors.New("dial tcp: timeout")
		err := WrapError(KindTransportOrUnknown, "Gemini API Error", cause)
		assert.ErrorIs(t, err, cause)
		assert.ErrorIs(t, err, ErrTransportOrUnknown)
		assert.True(t, IsTransient(err))
		assert.False(t, IsTransient(blocked))
	})
}

func TestPersona_BodyInstruction(t *testing.T) {
	def := Persona{ID: "default", Description: "Use the body characteristics as depicted.", IsDefault: true}
	assert.Empty(t, def.BodyInstruction())

	meso := Persona{ID: "male-mesomorph", Description: "Athletic build."}
	assert.Equal(t, "Athletic build.", meso.BodyInstruction())
}

func TestSuccessfulSlots(t *testing.T) {
	slots := []Slot{
		{Index: 0, Status: StatusSuccess, Result: &GeneratedImage{Data: []byte("a")}},
		{Index: 1, Status: StatusError},
		{Index: 2, Status: StatusGenerating},
		{Index: 3, Status: StatusSuccess, Result: &GeneratedImage{Data: []byte("b")}},
	}
	got := SuccessfulSlots(slots)
	require.Len(t, got, 2)
	assert.Equal(t, 0, got[0].Index)
	assert.Equal(t, 3, got[1].Index)
}
