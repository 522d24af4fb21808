package cmd

import (
	"fmt"

	"github.com/shouni/go-cinema-kit/internal/config"
	"github.com/shouni/go-cinema-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

// playCmd は、保存済みの物語を端末のプレイヤーで上映するのだ！
var playCmd = &cobra.Command{
	Use:   "play",
	Short: "保存済みの物語 JSON を端末で上映するのだ。",
	Long: `generate または script で出力した物語 JSON を読み込み、シーンごとに上映するのだ。
n で次へ、p で前へ、Enter で再生と一時停止、f で出典となる事実を表示、q で終了なのだ。`,
	Example: "  cinema-kit play --story-file output/story.json",
	RunE:    playCommand,
}

func init() {
	playCmd.Flags().StringVar(&opts.StoryFile, "story-file", config.DefaultStoryFile, "上映する物語 JSON のパスなのだ。")
}

func playCommand(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if err := pipeline.ExecutePlay(cmd.Context(), cfg); err != nil {
		return fmt.Errorf("上映に失敗したのだ: %w", err)
	}
	return nil
}
