package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-cinema-kit/internal/config"
	"github.com/shouni/go-cinema-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

// generateCmd は、物語の構造生成からシーン音声までを一気に実行するのだ。
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "歴史の文章から、画像と音声つきの物語を生成するのだ。",
	Long: `ソースとなる文章を解析し、物語の構造、登場人物のポートレート、シーン画像、
シーン音声を順番に生成するのだ。出力は story.json、絵コンテ、メディアファイルになるのだよ。`,
	Example: "  cinema-kit generate -f bastille.txt --style doc --format movie --html",
	PreRunE: preRunAppE,
	RunE:    generateCommand,
}

func init() {
	generateCmd.Flags().StringVarP(&opts.OutputDir, "output-dir", "o", config.DefaultOutputDir, "成果物を保存するディレクトリなのだ。")
	generateCmd.Flags().BoolVar(&opts.HTML, "html", false, "HTML の絵コンテも出力するのだ。")
}

func generateCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// 1. 必須チェック
	if opts.SourceFile == "" && !isStdin() {
		return fmt.Errorf("ソース（--source-file または標準入力）を指定してほしいのだ")
	}

	// 2. 環境変数等から基本設定をロードしてフラグを反映するのだ
	cfg := loadConfig()

	slog.Info("映画生成パイプラインを起動するのだ！",
		"style", opts.Style,
		"format", opts.Format,
		"text_model", cfg.GeminiModel,
		"image_model", cfg.GeminiImageModel,
		"tts_model", cfg.GeminiTTSModel,
		"output", opts.OutputDir)

	if err := pipeline.Execute(ctx, cfg); err != nil {
		return fmt.Errorf("パイプライン実行中にエラーが発生したのだ: %w", err)
	}

	slog.Info("すべての生成工程が完了したのだ！")
	return nil
}
