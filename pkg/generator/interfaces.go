package generator

import (
	"context"
	"time"

	"github.com/shouni/go-fusion-kit/pkg/domain"
	"google.golang.org/genai"
)

// ContentGenerator は Gemini の generateContent 呼び出しを抽象化します。*genai.Models がこれを満たします。
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// ImageGenerator は画像群とプロンプトから1枚の合成画像を生成します。
// 実装はリトライを行いません。リトライはオーケストレーター側の責務です。
type ImageGenerator interface {
	Generate(ctx context.Context, images []domain.Image, prompt string) (*domain.GeneratedImage, error)
}

// PartCacher は変換済み Part のキャッシュ操作を抽象化するインターフェースです。
type PartCacher interface {
	Get(key string) (interface{}, bool)
	Set(key string, value interface{}, d time.Duration)
}
