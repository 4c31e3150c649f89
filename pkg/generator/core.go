package generator

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"github.com/shouni/go-fusion-kit/pkg/domain"
	"github.com/shouni/go-fusion-kit/pkg/imgutil"

	"golang.org/x/sync/singleflight"
	"google.golang.org/genai"
)

// ImageCore は入力画像を genai.Part へ変換し、変換結果をキャッシュします。
// 1バッチの4スロットとリトライは同じ画像セットを使うため、変換は画像ごとに1回で済みます。
type ImageCore struct {
	cache          PartCacher
	cacheTTL       time.Duration
	maxInlineBytes int
	logger         *slog.Logger
	group          singleflight.Group
}

// NewImageCore は依存関係を注入して ImageCore のインスタンスを生成します。
// logger が nil の場合は slog.Default() を使います。
func NewImageCore(cache PartCacher, cacheTTL time.Duration, maxInlineBytes int, logger *slog.Logger) (*ImageCore, error) {
	if cache == nil {
		return nil, fmt.Errorf("cache は必須です")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ImageCore{
		cache:          cache,
		cacheTTL:       cacheTTL,
		maxInlineBytes: maxInlineBytes,
		logger:         logger,
	}, nil
}

// ToPart は画像を InlineData の Part に変換します。
func (c *ImageCore) ToPart(ctx context.Context, img domain.Image) (*genai.Part, error) {
	key := partCacheKey(img)
	if cached, found := c.cache.Get(key); found {
		if part, ok := cached.(*genai.Part); ok {
			return part, nil
		}
		c.logger.WarnContext(ctx, "キャッシュデータが不正な型です", "image_id", img.ID, "type", fmt.Sprintf("%T", cached))
	}

	val, err, _ := c.group.Do(key, func() (interface{}, error) {
		if cached, found := c.cache.Get(key); found {
			if part, ok := cached.(*genai.Part); ok {
				return part, nil
			}
		}

		mimeType := img.MIMEType
		if mimeType == "" {
			mimeType = domain.DetectMIMEType(img.Data)
		}
		if !domain.IsAcceptedMIMEType(mimeType) {
			return nil, domain.NewInputError(fmt.Sprintf("%s: unsupported file type %q", img.Name, mimeType))
		}

		data, mimeType, compressed := imgutil.FitInline(img.Data, mimeType, c.maxInlineBytes)
		if compressed {
			c.logger.InfoContext(ctx, "Recompressed oversized image for inline upload",
				"image_id", img.ID, "original_bytes", len(img.Data), "compressed_bytes", len(data))
		}

		part := &genai.Part{InlineData: &genai.Blob{MIMEType: mimeType, Data: data}}
		c.cache.Set(key, part, c.cacheTTL)
		return part, nil
	})
	if err != nil {
		return nil, err
	}

	part, ok := val.(*genai.Part)
	if !ok {
		return nil, fmt.Errorf("unexpected return type from singleflight: %T", val)
	}
	return part, nil
}

func partCacheKey(img domain.Image) string {
	sum := sha256.Sum256(img.Data)
	return img.MIMEType + ":" + hex.EncodeToString(sum[:])
}
