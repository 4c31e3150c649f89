package generator

import (
	"testing"

	"github.com/shouni/go-fusion-kit/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestParseResponse(t *testing.T) {
	t.Run("画像とテキストを取り出すこと", func(t *testing.T) {
		out, err := ParseResponse(imageResponse("image/jpeg", []byte("img"), "caption"))
		require.NoError(t, err)
		assert.Equal(t, "image/jpeg", out.MIMEType)
		assert.Equal(t, []byte("img"), out.Data)
		assert.Equal(t, "caption", out.ResponseText)
	})

	t.Run("テキストが無ければ既定文言", func(t *testing.T) {
		out, err := ParseResponse(imageResponse("image/png", []byte("img"), ""))
		require.NoError(t, err)
		assert.Equal(t, DefaultResponseText, out.ResponseText)
	})

	t.Run("候補なし＋ブロック理由はContentBlocked", func(t *testing.T) {
		_, err := ParseResponse(&genai.GenerateContentResponse{
			PromptFeedback: &genai.GenerateContentResponsePromptFeedback{BlockReason: "SAFETY"},
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrContentBlocked)
		assert.Equal(t, "Request was blocked due to SAFETY.", err.Error())
	})

	t.Run("候補なし・理由なしはNoContentReturned", func(t *testing.T) {
		_, err := ParseResponse(&genai.GenerateContentResponse{})
		assert.ErrorIs(t, err, domain.ErrNoContentReturned)
		_, err = ParseResponse(nil)
		assert.ErrorIs(t, err, domain.ErrNoContentReturned)
	})

	t.Run("画像なし＋異常なFinishReasonはAbnormalFinish", func(t *testing.T) {
		_, err := ParseResponse(&genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonMaxTokens}},
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrAbnormalFinish)
		assert.Equal(t, "Image generation failed. Reason: MAX_TOKENS.", err.Error())
	})

	t.Run("画像なし＋SAFETYはContentBlocked", func(t *testing.T) {
		_, err := ParseResponse(&genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonSafety}},
		})
		assert.ErrorIs(t, err, domain.ErrContentBlocked)
	})

	t.Run("画像なし＋正常終了は拒否扱い", func(t *testing.T) {
		_, err := ParseResponse(&genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{
				Content:      &genai.Content{Parts: []*genai.Part{{Text: "I can't do that"}}},
				FinishReason: genai.FinishReasonStop,
			}},
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrNoContentReturned)
		assert.Equal(t, "No image was generated. The model may have refused the request.", err.Error())
	})
}
