package config

import (
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"github.com/shouni/go-utils/envutil"

	"github.com/shouni/go-cinema-kit/pkg/generator"
)

// デフォルト値の定義なのだ
const (
	DefaultModel          = generator.DefaultStoryModel
	DefaultImageModel     = generator.DefaultImageModel
	DefaultTTSModel       = generator.DefaultSpeechModel
	DefaultHTTPTimeout    = 120 * time.Second
	DefaultRateInterval   = 0 * time.Second
	DefaultMaxConcurrency = 4
	DefaultStoryFile      = "output/story.json" // play コマンドが読み込むデフォルトの物語なのだ
	DefaultOutputDir      = "output"            // パブリッシャーで使用するデフォルト保存先なのだ
)

// Config はアプリケーション全体の環境設定（APIキーやモデル名）を保持する構造体なのだ。
type Config struct {
	GeminiAPIKey     string
	GeminiModel      string
	GeminiImageModel string
	GeminiTTSModel   string
	GeminiBaseURL    string
	RateInterval     time.Duration
	CatalogFile      string

	Options GenerateOptions
}

// LoadConfig は .env と環境変数から設定を読み込み、構造体を返すのだ！
// .env がなくてもエラーにはしないのだ。
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug(".env ファイルは読み込まれなかったのだ", "error", err)
	}

	cfg := &Config{
		GeminiAPIKey:     envutil.GetEnv("GEMINI_API_KEY", ""),
		GeminiModel:      envutil.GetEnv("GEMINI_MODEL", DefaultModel),
		GeminiImageModel: envutil.GetEnv("IMAGE_GEMINI_MODEL", DefaultImageModel),
		GeminiTTSModel:   envutil.GetEnv("TTS_GEMINI_MODEL", DefaultTTSModel),
		GeminiBaseURL:    envutil.GetEnv("GEMINI_BASE_URL", ""),
		RateInterval:     parseDuration("RATE_INTERVAL", DefaultRateInterval),
		CatalogFile:      envutil.GetEnv("CATALOG_FILE", ""),
	}
	return cfg
}

func parseDuration(key string, def time.Duration) time.Duration {
	raw := envutil.GetEnv(key, "")
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		slog.Warn("期間の形式が不正なのでデフォルト値を使うのだ", "key", key, "value", raw, "error", err)
		return def
	}
	return d
}

// GenerateOptions は CLI フラグから渡される実行時のパラメータなのだ。
type GenerateOptions struct {
	// ソース入力関連
	SourceFile string // --source-file
	StoryFile  string // --story-file (play)

	// 出力関連
	OutputFile     string // --output-file
	StoryboardFile string // --storyboard
	OutputDir      string // --output-dir
	HTML           bool   // --html

	// 物語の演出
	Style       string // --style
	Format      string // --format
	CatalogFile string // --catalog

	// AI挙動設定
	AIModel    string // --model: 構造生成用のGeminiモデル
	ImageModel string // --image-model: 画像生成用のGeminiモデル
	TTSModel   string // --tts-model: 音声合成用のGeminiモデル

	// 実行制御
	HTTPTimeout    time.Duration // --http-timeout
	RateInterval   time.Duration // --rate-interval
	MaxConcurrency int           // --max-concurrency
}

// ApplyOptions はフラグで指定された値を設定に上書きするのだ。空の値は無視するのだ。
func (c *Config) ApplyOptions(opts GenerateOptions) {
	c.Options = opts
	if opts.AIModel != "" {
		c.GeminiModel = opts.AIModel
	}
	if opts.ImageModel != "" {
		c.GeminiImageModel = opts.ImageModel
	}
	if opts.TTSModel != "" {
		c.GeminiTTSModel = opts.TTSModel
	}
	if opts.CatalogFile != "" {
		c.CatalogFile = opts.CatalogFile
	}
	if opts.RateInterval > 0 {
		c.RateInterval = opts.RateInterval
	}
}
