package cmd

import (
	"github.com/spf13/cobra"

	"github.com/shouni/go-fusion-kit/internal/pipeline"
)

// promptCmd は、API を呼ばずに合成用のプロンプトだけを表示するサブコマンドなのだ。
var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "API を呼ばずにプロンプトを表示するのだ（ドライラン）。",
	Long: `シナリオとペルソナの割り当てから、実際に送信されるプロンプトを表示するのだ。
画像ファイルは読み込まないので、--persona でペルソナ ID を並べるだけでも確認できるのだ。`,
	RunE: func(cmd *cobra.Command, args []string) error {
		appCtx, err := newAppContext()
		if err != nil {
			return err
		}
		return pipeline.ExecutePrompt(appCtx, cmd.OutOrStdout())
	},
}

func init() {
	addBatchFlags(promptCmd)
	promptCmd.Flags().StringSliceVar(&opts.Personas, "persona", nil, "被写体ごとのペルソナ ID なのだ（カンマ区切り、空なら default）。")
}
