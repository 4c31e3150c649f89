package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/shouni/go-fusion-kit/internal/builder"
	"github.com/shouni/go-fusion-kit/internal/config"
)

var (
	opts      config.FuseOptions
	verbose   bool
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:           "fusion",
	Short:         "2〜4枚の人物写真を1枚の集合写真に合成するのだ。",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env は任意なので、無くてもエラーにしないのだ
		_ = godotenv.Load()
		setupLogger()
		return nil
	},
}

// addAppFlags は、アプリケーション全般に適用されるグローバルフラグを定義するのだ。
func addAppFlags(rootCmd *cobra.Command) {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "デバッグログを出力するのだ。")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "ログの形式（text または json）なのだ。")
}

// addBatchFlags は、合成の入力を指定するフラグを定義するのだ。fuse と prompt で共有するのだ。
func addBatchFlags(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(&opts.Subjects, "subject", "s", nil, "被写体画像のパスなのだ。'path:personaID' でペルソナも指定できるのだ（2〜4回）。")
	cmd.Flags().StringVarP(&opts.Background, "background", "b", "", "背景画像のパスなのだ（任意）。")
	cmd.Flags().StringVarP(&opts.Scenario, "scenario", "p", "", "シナリオ ID なのだ（省略時は先頭のシナリオ）。")
	cmd.Flags().StringVarP(&opts.Quality, "quality", "q", "", "品質（Standard / High / Ultra High）なのだ。")
}

func setupLogger() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handlerOpts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler = slog.NewTextHandler(os.Stderr, handlerOpts)
	if logFormat == "json" {
		handler = slog.NewJSONHandler(os.Stderr, handlerOpts)
	}
	slog.SetDefault(slog.New(handler))
}

// preRunAppE は、Gemini API を呼び出すコマンドの実行前に必須の環境変数をチェックするのだ。
func preRunAppE(cmd *cobra.Command, args []string) error {
	if os.Getenv("GEMINI_API_KEY") == "" {
		return fmt.Errorf("エラー: 環境変数 GEMINI_API_KEY が設定されていません。Gemini APIの利用には必須なのだ")
	}
	return nil
}

// newAppContext は環境変数と CLI オプションから AppContext を構築するのだ。
func newAppContext() (*builder.AppContext, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	return builder.NewAppContext(cfg, opts, slog.Default())
}

// Execute は、アプリケーションのメインエントリポイントなのだ。
// main.go から呼び出されて、cobra のコマンドライン解析を開始するのだよ。
func Execute() {
	addAppFlags(rootCmd)
	rootCmd.AddCommand(fuseCmd, promptCmd, catalogCmd, versionCmd)

	// Ctrl+C で実行中のバッチを打ち切るのだ
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
