package cmd

import (
	"github.com/shouni/go-cinema-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

// stylesCmd は、選択できるスタイルとフォーマットを一覧表示するのだ。
var stylesCmd = &cobra.Command{
	Use:   "styles",
	Short: "選択できるスタイルとフォーマットを一覧表示するのだ。",
	Long:  `* の付いた項目は、--style や --format を省略したときに使われるデフォルトなのだ。`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return pipeline.ExecuteListCatalog(loadConfig(), cmd.OutOrStdout())
	},
}
