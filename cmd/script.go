package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-cinema-kit/internal/config"
	"github.com/shouni/go-cinema-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

// scriptCmd は、物語の構造（JSON出力）のみを生成するのだ。
var scriptCmd = &cobra.Command{
	Use:   "script",
	Short: "物語の構造（JSON）のみを生成して保存するのだ。",
	Long: `ソースとなる文章を解析し、物語のタイトル、登場人物、シーン、台詞、出典となる事実を
JSON形式で出力するのだ。画像と音声の生成は行わないのだよ。`,
	PreRunE: preRunAppE,
	RunE:    scriptCommand,
}

func init() {
	scriptCmd.Flags().StringVar(&opts.OutputFile, "output-file", config.DefaultStoryFile, "物語 JSON の保存パスなのだ。")
	scriptCmd.Flags().StringVar(&opts.StoryboardFile, "storyboard", "", "Markdown の絵コンテも保存するならそのパスなのだ。")
}

func scriptCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if opts.SourceFile == "" && !isStdin() {
		return fmt.Errorf("ソース（--source-file または標準入力）を指定してほしいのだ")
	}

	cfg := loadConfig()

	slog.Info("台本生成モードを起動するのだ！",
		"style", opts.Style,
		"format", opts.Format,
		"text_model", cfg.GeminiModel,
		"output", cfg.Options.OutputFile)

	if err := pipeline.ExecuteScriptOnly(ctx, cfg); err != nil {
		return fmt.Errorf("台本生成中にエラーが発生したのだ: %w", err)
	}

	slog.Info("台本の生成が完了したのだ！")
	return nil
}
