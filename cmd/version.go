package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shouni/go-fusion-kit/internal/config"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "アプリ名とバージョンを表示するのだ。",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", cfg.AppName, cfg.Version)
		return nil
	},
}
