package builder

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/shouni/go-cinema-kit/internal/config"
	"github.com/shouni/go-cinema-kit/pkg/catalog"
	"github.com/shouni/go-cinema-kit/pkg/domain"
	"github.com/shouni/go-cinema-kit/pkg/gemini"
	"github.com/shouni/go-cinema-kit/pkg/generator"
	"github.com/shouni/go-cinema-kit/pkg/pipeline"
	"github.com/shouni/go-cinema-kit/pkg/presenter"
	"github.com/shouni/go-cinema-kit/pkg/publisher"
)

// InitializeAIClient は gemini クライアントを初期化するのだ。
// 温度は gemini.DefaultTemperature に任せるのだ。
func InitializeAIClient(ctx context.Context, cfg *config.Config) (*gemini.Client, error) {
	clientConfig := gemini.Config{
		APIKey:      cfg.GeminiAPIKey,
		BaseURL:     cfg.GeminiBaseURL,
		HTTPTimeout: cfg.Options.HTTPTimeout,
	}
	aiClient, err := gemini.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("AIクライアントの初期化に失敗しました: %w", err)
	}
	return aiClient, nil
}

// LoadCatalog は設定されたカタログファイル、なければ組み込みのカタログを読み込むのだ。
func LoadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	if cfg.CatalogFile == "" {
		return catalog.Load()
	}
	cat, err := catalog.LoadFile(cfg.CatalogFile)
	if err != nil {
		return nil, fmt.Errorf("カタログ '%s' の読み込みに失敗したのだ: %w", cfg.CatalogFile, err)
	}
	return cat, nil
}

// BuildStoryGenerator は4つのステージを実行する StoryGenerator を構築するのだ。
// 一度構築したら AppContext で使い回すのだ。
func BuildStoryGenerator(appCtx *AppContext) (*generator.StoryGenerator, error) {
	if appCtx.generator != nil {
		return appCtx.generator, nil
	}
	if appCtx.aiClient == nil {
		return nil, fmt.Errorf("AIクライアントが初期化されていないのだ")
	}

	models := generator.Models{
		Story:  appCtx.Config.GeminiModel,
		Image:  appCtx.Config.GeminiImageModel,
		Speech: appCtx.Config.GeminiTTSModel,
	}
	opts := []generator.Option{generator.WithInterval(appCtx.Config.RateInterval)}
	if appCtx.Options.MaxConcurrency > 0 {
		opts = append(opts, generator.WithMaxConcurrency(appCtx.Options.MaxConcurrency))
	}

	gen, err := generator.NewStoryGenerator(appCtx.aiClient, models, opts...)
	if err != nil {
		return nil, fmt.Errorf("StoryGeneratorの初期化に失敗したのだ: %w", err)
	}
	appCtx.generator = gen
	return gen, nil
}

// BuildOrchestrator は生成パイプラインのオーケストレーターを構築するのだ。
// 状態が変わるたびに進捗を progress に描画するのだ。
func BuildOrchestrator(ctx context.Context, appCtx *AppContext, progress io.Writer) (*pipeline.Orchestrator, error) {
	gen, err := BuildStoryGenerator(appCtx)
	if err != nil {
		return nil, err
	}

	onChange := func(st pipeline.State, _ *domain.Story) {
		if progress == nil {
			return
		}
		if err := presenter.RenderProgress(progress, st); err != nil {
			slog.WarnContext(ctx, "進捗の描画に失敗したのだ", "error", err)
		}
	}
	return pipeline.NewOrchestrator(gen, appCtx.Catalog, pipeline.WithOnChange(onChange)), nil
}

// BuildPublisher は成果物の保存を担当する CinemaPublisher を構築するのだ。
func BuildPublisher(appCtx *AppContext) *publisher.CinemaPublisher {
	w := appCtx.Writer
	if w == nil {
		w = publisher.LocalWriter{}
	}
	return publisher.NewCinemaPublisher(w)
}
