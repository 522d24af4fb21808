package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/shouni/go-cinema-kit/internal/config"

	"github.com/spf13/cobra"
)

// appName はコマンド名なのだ。
const appName = "cinema-kit"

// opts は全サブコマンドで共有するフラグの値なのだ。
var (
	opts    config.GenerateOptions
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   appName,
	Short: "歴史の文章から、事実に忠実な短編映画を生成するのだ。",
	Long: `ソースとなる歴史の文章を解析し、登場人物、シーン、台詞を持つ物語を組み立て、
ポートレート、シーン画像、複数話者の音声を生成するのだ。
台詞は文章にある事実だけを使う（Truth Lock）のだよ。`,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogger,
}

// addAppFlags は、アプリケーション全般に適用されるグローバルフラグを定義するのだ。
func addAppFlags(rootCmd *cobra.Command) {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "デバッグログを出力するのだ。")

	// --- ソース入力関連 ---
	rootCmd.PersistentFlags().StringVarP(&opts.SourceFile, "source-file", "f", "", "入力ファイルのパス（'-'で標準入力なのだ）。")

	// --- 物語の演出 ---
	rootCmd.PersistentFlags().StringVarP(&opts.Style, "style", "s", "", "物語のスタイル ID なのだ（styles コマンドで一覧を確認できるのだ）。")
	rootCmd.PersistentFlags().StringVar(&opts.Format, "format", "", "物語のフォーマット ID なのだ。")
	rootCmd.PersistentFlags().StringVar(&opts.CatalogFile, "catalog", "", "スタイルとフォーマットを定義した YAML のパスなのだ（省略時は組み込みのカタログなのだ）。")

	// --- AIモデル・挙動設定 ---
	rootCmd.PersistentFlags().StringVar(&opts.AIModel, "model", "", "構造生成に使う Gemini モデル名なのだ。")
	rootCmd.PersistentFlags().StringVar(&opts.ImageModel, "image-model", "", "画像生成に使う Gemini モデル名なのだ。")
	rootCmd.PersistentFlags().StringVar(&opts.TTSModel, "tts-model", "", "音声合成に使う Gemini モデル名なのだ。")
	rootCmd.PersistentFlags().DurationVar(&opts.HTTPTimeout, "http-timeout", config.DefaultHTTPTimeout, "Gemini へのリクエストのタイムアウトなのだ。")
	rootCmd.PersistentFlags().DurationVar(&opts.RateInterval, "rate-interval", 0, "ステージ内のリクエスト間隔なのだ（0 なら環境変数 RATE_INTERVAL を使うのだ）。")
	rootCmd.PersistentFlags().IntVar(&opts.MaxConcurrency, "max-concurrency", config.DefaultMaxConcurrency, "ステージ内の同時リクエスト数の上限なのだ。")
}

// setupLogger は --verbose に応じてログレベルを切り替えるのだ。
func setupLogger(cmd *cobra.Command, args []string) error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

// preRunAppE は、バックエンドを使うコマンドの実行前に環境変数などの必須チェックを行うのだ。
func preRunAppE(cmd *cobra.Command, args []string) error {
	// Gemini APIを利用するため、APIキーの存在チェックは欠かせないのだ！
	if config.LoadConfig().GeminiAPIKey == "" {
		return fmt.Errorf("エラー: 環境変数 GEMINI_API_KEY が設定されていません。Gemini APIの利用には必須なのだ")
	}
	return nil
}

// loadConfig は環境変数の設定にフラグの値を重ねるのだ。
func loadConfig() *config.Config {
	cfg := config.LoadConfig()
	cfg.ApplyOptions(opts)
	return cfg
}

// Execute は、アプリケーションのメインエントリポイントなのだ。
// main.go から呼び出されて、cobra のコマンドライン解析を開始するのだよ。
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	addAppFlags(rootCmd)
	rootCmd.AddCommand(generateCmd, scriptCmd, playCmd, stylesCmd)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		slog.Error("コマンドの実行に失敗したのだ", "error", err)
		stop()
		os.Exit(1)
	}
}

func isStdin() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}
