package workflow

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/shouni/go-fusion-kit/pkg/config"
	"github.com/shouni/go-fusion-kit/pkg/generator"
	"github.com/shouni/go-fusion-kit/pkg/orchestrator"
)

// initializeImageGenerator は Part キャッシュ付きの ImageGenerator を初期化します。
func initializeImageGenerator(cfg config.Config, aiClient generator.ContentGenerator, logger *slog.Logger) (*generator.GeminiGenerator, error) {
	partCache := cache.New(cfg.CacheExpiration, cfg.CacheCleanup)

	core, err := generator.NewImageCore(partCache, cfg.CacheExpiration, cfg.MaxInlineBytes, logger)
	if err != nil {
		return nil, fmt.Errorf("ImageCore の初期化に失敗しました: %w", err)
	}

	imgGen, err := generator.NewGeminiGenerator(core, aiClient, cfg.ImageModel, logger)
	if err != nil {
		return nil, fmt.Errorf("GeminiGenerator の初期化に失敗しました: %w", err)
	}
	return imgGen, nil
}

// newLimiter は呼び出し間隔から Limiter を生成します。間隔が 0 以下なら nil（無制限）です。
func newLimiter(interval time.Duration) *rate.Limiter {
	if interval <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Every(interval), 1)
}

// policyFromConfig は設定値から呼び出しポリシーを組み立てます。
func policyFromConfig(cfg config.Config) orchestrator.Policy {
	return orchestrator.Policy{
		CallTimeout:    cfg.CallTimeout,
		MaxAutoRetries: cfg.MaxAutoRetries,
		InitialBackoff: cfg.InitialBackoff,
		MaxBackoff:     cfg.MaxBackoff,
	}
}
