package generator

import (
	"fmt"
	"strings"

	"github.com/shouni/go-fusion-kit/pkg/domain"
	"google.golang.org/genai"
)

const (
	// DefaultResponseText はモデルがテキストを返さなかった場合の既定値です。
	DefaultResponseText = "No text response from model."

	msgNoContent = "The model did not return any content. This could be due to a safety filter."
	msgRefused   = "No image was generated. The model may have refused the request."

	blockedReasonUnspecified = "BLOCKED_REASON_UNSPECIFIED"
	finishReasonStop         = "STOP"
	finishReasonUnspecified  = "FINISH_REASON_UNSPECIFIED"
)

// safetyFinishReasons はコンテンツポリシーによる停止を表す FinishReason です。
var safetyFinishReasons = map[string]bool{
	"SAFETY":             true,
	"PROHIBITED_CONTENT": true,
	"IMAGE_SAFETY":       true,
	"BLOCKLIST":          true,
	"SPII":               true,
}

// ParseResponse は Gemini のレスポンスを解析して GeneratedImage に変換します。
// 候補が無い、画像が無い、異常終了のいずれも分類済みの GenerationError を返します。
func ParseResponse(resp *genai.GenerateContentResponse) (*domain.GeneratedImage, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		if reason := blockReason(resp); reason != "" {
			return nil, domain.NewError(domain.KindContentBlocked, reason,
				fmt.Sprintf("Request was blocked due to %s.", reason))
		}
		return nil, domain.NewError(domain.KindNoContentReturned, "", msgNoContent)
	}

	// 最初の候補 (Candidate) のみを利用します。
	candidate := resp.Candidates[0]
	responseText := DefaultResponseText
	var image *genai.Blob

	if candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			if image == nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
				image = part.InlineData
			}
			if responseText == DefaultResponseText && part.Text != "" && !part.Thought {
				responseText = part.Text
			}
		}
	}

	if image != nil {
		mimeType := image.MIMEType
		if mimeType == "" {
			mimeType = domain.DetectMIMEType(image.Data)
		}
		return &domain.GeneratedImage{
			MIMEType:     mimeType,
			Data:         image.Data,
			ResponseText: responseText,
		}, nil
	}

	reason := string(candidate.FinishReason)
	switch {
	case safetyFinishReasons[reason]:
		return nil, domain.NewError(domain.KindContentBlocked, reason,
			fmt.Sprintf("Image generation failed. Reason: %s.", reason))
	case reason != "" && reason != finishReasonStop && reason != finishReasonUnspecified:
		return nil, domain.NewError(domain.KindAbnormalFinish, reason,
			fmt.Sprintf("Image generation failed. Reason: %s.", reason))
	}
	return nil, domain.NewError(domain.KindNoContentReturned, reason, msgRefused)
}

func blockReason(resp *genai.GenerateContentResponse) string {
	if resp == nil || resp.PromptFeedback == nil {
		return ""
	}
	reason := string(resp.PromptFeedback.BlockReason)
	if reason == "" || reason == blockedReasonUnspecified {
		return ""
	}
	return reason
}

// classifyCallError は SDK 呼び出し自体の失敗を分類します。
// メッセージはそのまま残し、診断に使えるようにします。
func classifyCallError(err error) error {
	msg := err.Error()
	if strings.Contains(msg, "SAFETY") || strings.Contains(msg, "blocked") {
		return &domain.GenerationError{Kind: domain.KindContentBlocked, Message: msg, Err: err}
	}
	return &domain.GenerationError{
		Kind:    domain.KindTransportOrUnknown,
		Message: "Gemini API Error: " + msg,
		Err:     err,
	}
}
