package config

import (
	"time"
)

// デフォルト値の定義
const (
	DefaultImageModel      = "gemini-2.5-flash-image"
	DefaultCallTimeout     = 3 * time.Minute
	DefaultMaxAutoRetries  = 0
	DefaultInitialBackoff  = 2 * time.Second
	DefaultMaxBackoff      = 30 * time.Second
	DefaultRateInterval    = 0 // 0 は無制限
	DefaultCacheExpiration = 30 * time.Minute
	DefaultCacheCleanup    = 10 * time.Minute
	DefaultMaxInlineBytes  = 4 << 20
	DefaultAppName         = "Group Photo Fusion"
	DefaultVersion         = "1.0.0"
)

// Config は Fusion Kit の各コンポーネントを動作させるための基本設定です。
type Config struct {
	// --- Google AI (Gemini API) Settings ---
	GeminiAPIKey string
	ImageModel   string

	// --- Timeout & Retries ---
	CallTimeout    time.Duration
	MaxAutoRetries int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	// RateInterval は外部呼び出しの最小間隔です。0 以下なら制限しません。
	RateInterval time.Duration

	// --- Part Cache ---
	CacheExpiration time.Duration
	CacheCleanup    time.Duration
	// MaxInlineBytes を超える画像は JPEG に再圧縮してから送信します。
	MaxInlineBytes int

	// --- Application ---
	AppName     string
	Version     string
	CatalogFile string // 空ならビルトインのカタログ
	Debug       bool
}

// DefaultConfig は推奨されるデフォルト設定を返すヘルパー関数です。
func DefaultConfig() Config {
	return Config{
		ImageModel:      DefaultImageModel,
		CallTimeout:     DefaultCallTimeout,
		MaxAutoRetries:  DefaultMaxAutoRetries,
		InitialBackoff:  DefaultInitialBackoff,
		MaxBackoff:      DefaultMaxBackoff,
		RateInterval:    DefaultRateInterval,
		CacheExpiration: DefaultCacheExpiration,
		CacheCleanup:    DefaultCacheCleanup,
		MaxInlineBytes:  DefaultMaxInlineBytes,
		AppName:         DefaultAppName,
		Version:         DefaultVersion,
	}
}
