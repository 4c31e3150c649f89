package cmd

import (
	"github.com/spf13/cobra"

	"github.com/shouni/go-fusion-kit/internal/pipeline"
)

// fuseCmd は、被写体画像から4枚の合成写真を生成して zip に保存するサブコマンドなのだ。
var fuseCmd = &cobra.Command{
	Use:   "fuse",
	Short: "被写体画像から4枚の合成写真を生成するのだ。",
	Long: `2〜4枚の被写体画像と任意の背景画像から、同じプロンプトで4枚の合成写真を並列に生成するのだ。
失敗したスロットは --retry-failed で指定した回数まで個別にリトライし、成功した画像を zip にまとめて保存するのだ。`,
	PreRunE: preRunAppE,
	RunE:    fuseCommand,
}

func init() {
	addBatchFlags(fuseCmd)
	fuseCmd.Flags().BoolVar(&opts.Debug, "debug", false, "成功した呼び出しごとにデバッグ記録を保存するのだ。")
	fuseCmd.Flags().StringVarP(&opts.OutputDir, "output-dir", "o", "output", "成果物を保存するディレクトリなのだ。")
	fuseCmd.Flags().IntVar(&opts.RetryRounds, "retry-failed", 0, "失敗したスロットを手動リトライする最大ラウンド数なのだ。")
	fuseCmd.Flags().BoolVar(&opts.SaveImages, "save-images", false, "zip とは別に画像を1枚ずつ保存するのだ。")
}

// fuseCommand は、fuse サブコマンドの実行ロジック本体なのだ。
func fuseCommand(cmd *cobra.Command, args []string) error {
	appCtx, err := newAppContext()
	if err != nil {
		return err
	}
	return pipeline.ExecuteFuse(cmd.Context(), appCtx, cmd.OutOrStdout())
}
