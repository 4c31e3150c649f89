package cmd

import (
	"github.com/spf13/cobra"

	"github.com/shouni/go-fusion-kit/internal/pipeline"
)

// catalogCmd は、利用できるペルソナとシナリオを一覧表示するサブコマンドなのだ。
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "ペルソナとシナリオの一覧を表示するのだ。",
	RunE: func(cmd *cobra.Command, args []string) error {
		appCtx, err := newAppContext()
		if err != nil {
			return err
		}
		pipeline.ExecuteCatalog(appCtx, cmd.OutOrStdout())
		return nil
	},
}
