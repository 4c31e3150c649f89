package config

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shouni/go-utils/envutil"

	"github.com/shouni/go-fusion-kit/pkg/config"
)

// LoadConfig は環境変数から設定を読み込み、デフォルト値に上書きした Config を返すのだ。
// 数値や期間の形式が不正な場合はエラーにするのだ。
func LoadConfig() (config.Config, error) {
	cfg := config.DefaultConfig()

	cfg.GeminiAPIKey = envutil.GetEnv("GEMINI_API_KEY", "")
	cfg.ImageModel = envutil.GetEnv("GEMINI_IMAGE_MODEL", cfg.ImageModel)
	cfg.AppName = envutil.GetEnv("FUSION_APP_NAME", cfg.AppName)
	cfg.CatalogFile = envutil.GetEnv("FUSION_CATALOG_FILE", "")

	var err error
	if cfg.CallTimeout, err = durationEnv("FUSION_CALL_TIMEOUT", cfg.CallTimeout); err != nil {
		return cfg, err
	}
	if cfg.RateInterval, err = durationEnv("FUSION_RATE_INTERVAL", cfg.RateInterval); err != nil {
		return cfg, err
	}
	if cfg.MaxAutoRetries, err = intEnv("FUSION_MAX_AUTO_RETRIES", cfg.MaxAutoRetries); err != nil {
		return cfg, err
	}
	if cfg.Debug, err = boolEnv("FUSION_DEBUG", cfg.Debug); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	raw := envutil.GetEnv(key, "")
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return def, fmt.Errorf("%s の形式が不正です (%q): %w", key, raw, err)
	}
	return d, nil
}

func intEnv(key string, def int) (int, error) {
	raw := envutil.GetEnv(key, "")
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return def, fmt.Errorf("%s は 0 以上の整数で指定してください (%q)", key, raw)
	}
	return n, nil
}

func boolEnv(key string, def bool) (bool, error) {
	raw := envutil.GetEnv(key, "")
	if raw == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return def, fmt.Errorf("%s の形式が不正です (%q): %w", key, raw, err)
	}
	return b, nil
}

// FuseOptions は CLI フラグから渡される実行時のパラメータなのだ。
type FuseOptions struct {
	// 入力関連
	Subjects   []string // --subject: path[:personaID] を2〜4回
	Background string   // --background
	Personas   []string // --persona: prompt コマンドで画像なしに割り当てるペルソナ

	// 生成関連
	Scenario string // --scenario
	Quality  string // --quality
	Debug    bool   // --debug

	// 出力・実行制御
	OutputDir   string // --output-dir
	RetryRounds int    // --retry-failed
	SaveImages  bool   // --save-images: zip とは別に1枚ずつ保存する
}
