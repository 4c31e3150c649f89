package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shouni/go-fusion-kit/pkg/domain"

	"golang.org/x/sync/errgroup"
	"google.golang.org/genai"
)

// DefaultImageModel は Nano Banana として知られる画像生成モデルです。
const DefaultImageModel = "gemini-2.5-flash-image"

// GeminiGenerator は Gemini の画像モデルを呼び出して合成画像を生成します。
type GeminiGenerator struct {
	core   *ImageCore
	client ContentGenerator
	model  string
	logger *slog.Logger
}

// NewGeminiGenerator は GeminiGenerator の新しいインスタンスを生成します。
func NewGeminiGenerator(core *ImageCore, client ContentGenerator, model string, logger *slog.Logger) (*GeminiGenerator, error) {
	if core == nil {
		return nil, fmt.Errorf("core は必須です")
	}
	if client == nil {
		return nil, fmt.Errorf("aiClient は必須です")
	}
	if model == "" {
		model = DefaultImageModel
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &GeminiGenerator{core: core, client: client, model: model, logger: logger}, nil
}

// Model は利用するモデル名を返します。
func (g *GeminiGenerator) Model() string {
	return g.model
}

// Generate は画像群（被写体＋任意の背景）をインライン Part として添付し、最後にプロンプトを付けて1回だけ呼び出します。
func (g *GeminiGenerator) Generate(ctx context.Context, images []domain.Image, prompt string) (*domain.GeneratedImage, error) {
	if n := len(images); n < domain.MinImages || n > domain.MaxImages {
		return nil, domain.NewInputError("Please provide 2 to 4 subject images, with an optional background.")
	}

	parts, err := g.buildParts(ctx, images)
	if err != nil {
		return nil, err
	}
	parts = append(parts, genai.NewPartFromText(prompt))

	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{"IMAGE"},
	}

	start := time.Now()
	resp, err := g.client.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, domain.WrapError(domain.KindTransportOrUnknown, "Gemini API Error: request timed out", err)
		}
		return nil, classifyCallError(err)
	}

	out, err := ParseResponse(resp)
	if err != nil {
		g.logger.WarnContext(ctx, "Gemini returned no image",
			"model", g.model, "kind", domain.KindOf(err), "error", err)
		return nil, err
	}

	g.logger.DebugContext(ctx, "Gemini call completed",
		"model", g.model, "images", len(images), "bytes", len(out.Data),
		"duration", time.Since(start).Round(time.Millisecond))
	return out, nil
}

// buildParts は各画像を並列に Part へ変換します。順序は入力のまま保たれます。
func (g *GeminiGenerator) buildParts(ctx context.Context, images []domain.Image) ([]*genai.Part, error) {
	parts := make([]*genai.Part, len(images), len(images)+1)
	eg, egCtx := errgroup.WithContext(ctx)
	for i, img := range images {
		eg.Go(func() error {
			part, err := g.core.ToPart(egCtx, img)
			if err != nil {
				return err
			}
			parts[i] = part
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return parts, nil
}
