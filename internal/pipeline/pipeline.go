package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/shouni/go-cinema-kit/internal/builder"
	"github.com/shouni/go-cinema-kit/internal/config"
	"github.com/shouni/go-cinema-kit/internal/runner"
	"github.com/shouni/go-cinema-kit/pkg/domain"
	cinema "github.com/shouni/go-cinema-kit/pkg/pipeline"
	"github.com/shouni/go-cinema-kit/pkg/presenter"
	"github.com/shouni/go-cinema-kit/pkg/publisher"
)

const (
	jsonContentType     = "application/json"
	markdownContentType = "text/markdown; charset=utf-8"
)

// Execute は、ソース文章から物語の構造、アバター、シーン画像、シーン音声までを一気に生成し、
// 成果物を出力ディレクトリに保存するのだ。
func Execute(ctx context.Context, cfg *config.Config) error {
	appCtx, err := setupAppContext(ctx, cfg)
	if err != nil {
		return err
	}

	text, err := runner.ReadSource(cfg.Options.SourceFile, os.Stdin)
	if err != nil {
		return err
	}

	orch, err := builder.BuildOrchestrator(ctx, appCtx, os.Stderr)
	if err != nil {
		return fmt.Errorf("オーケストレーターの構築に失敗したのだ: %w", err)
	}

	story, result, err := generateAndPublish(ctx, orch,
		runner.NewPublisherRunner(cfg.Options, builder.BuildPublisher(appCtx)),
		cinema.Request{
			Text:   text,
			Style:  cfg.Options.Style,
			Format: cfg.Options.Format,
		})
	if err != nil {
		return err
	}

	slog.Info("成果物を保存したのだ",
		"story", result.StoryPath,
		"storyboard", result.MarkdownPath,
		"html", result.HTMLPath,
		"media", len(result.MediaPaths))
	return presenter.RenderSummary(os.Stdout, story)
}

// storyRunner は4つのステージを順に実行するオーケストレーターなのだ。
type storyRunner interface {
	Run(ctx context.Context, req cinema.Request) (*domain.Story, error)
}

// generateAndPublish は物語を生成して保存するのだ。
// 途中のステージで失敗しても、完了済みのステージまでの物語があればそれを保存してからエラーを返すのだ。
func generateAndPublish(ctx context.Context, orch storyRunner, pub *runner.PublisherRunner, req cinema.Request) (*domain.Story, publisher.PublishResult, error) {
	// --- Phase 1: 構造生成からシーン音声までの4ステージ ---
	story, runErr := orch.Run(ctx, req)
	if runErr != nil && story == nil {
		return nil, publisher.PublishResult{}, fmt.Errorf("物語の生成に失敗したのだ: %w", runErr)
	}

	// --- Phase 2: Publish Phase (公開/保存) ---
	// キャンセル後でも途中までの成果物は書き出すのだ
	pubCtx := ctx
	if runErr != nil {
		slog.WarnContext(ctx, "途中までの物語を保存するのだ", "title", story.Title, "error", runErr)
		pubCtx = context.WithoutCancel(ctx)
	}
	result, err := pub.Run(pubCtx, story)
	if err != nil {
		if runErr != nil {
			return story, result, fmt.Errorf("物語の生成に失敗したのだ: %w", errors.Join(runErr, err))
		}
		return story, result, fmt.Errorf("公開処理に失敗したのだ: %w", err)
	}
	if runErr != nil {
		return story, result, fmt.Errorf("物語の生成に失敗したのだ (途中までを %s に保存したのだ): %w", result.StoryPath, runErr)
	}
	return story, result, nil
}

// ExecuteScriptOnly は、メディアを作らずに物語の構造だけを生成して JSON で保存するのだ。
// 台本を確認してから generate し直したいときに使うのだ。
func ExecuteScriptOnly(ctx context.Context, cfg *config.Config) error {
	appCtx, err := setupAppContext(ctx, cfg)
	if err != nil {
		return err
	}

	text, err := runner.ReadSource(cfg.Options.SourceFile, os.Stdin)
	if err != nil {
		return err
	}

	gen, err := builder.BuildStoryGenerator(appCtx)
	if err != nil {
		return err
	}
	orch := cinema.NewOrchestrator(gen, appCtx.Catalog)

	story, err := runner.NewScriptRunner(orch, gen).Run(ctx, cinema.Request{
		Text:   text,
		Style:  cfg.Options.Style,
		Format: cfg.Options.Format,
	})
	if err != nil {
		return err
	}

	if err := saveStory(ctx, appCtx.Writer, cfg.Options, story); err != nil {
		return err
	}
	return presenter.RenderCharacters(os.Stdout, story)
}

// ExecutePlay は、保存済みの物語 JSON を読み込んで端末のプレイヤーで上映するのだ。
// バックエンドには一切アクセスしないのだ。
func ExecutePlay(ctx context.Context, cfg *config.Config) error {
	path := cfg.Options.StoryFile
	if path == "" {
		path = config.DefaultStoryFile
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("物語ファイル '%s' の読み込みに失敗したのだ: %w", path, err)
	}
	defer f.Close()

	story, err := publisher.Import(f)
	if err != nil {
		return fmt.Errorf("物語ファイル '%s' のデコードに失敗したのだ: %w", path, err)
	}

	slog.Info("上映を開始するのだ！", "title", story.Title, "scenes", len(story.Scenes))
	return runner.NewPlayRunner(os.Stdin, os.Stdout).Run(ctx, story)
}

// ExecuteListCatalog は、選択できるスタイルとフォーマットを一覧表示するのだ。
func ExecuteListCatalog(cfg *config.Config, w io.Writer) error {
	cat, err := builder.LoadCatalog(cfg)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "STYLES")
	for _, e := range cat.Styles {
		marker := " "
		if e.ID == cat.DefaultStyle {
			marker = "*"
		}
		fmt.Fprintf(w, " %s %-12s %s\n", marker, e.ID, e.PromptLabel())
	}
	fmt.Fprintln(w, "FORMATS")
	for _, e := range cat.Formats {
		marker := " "
		if e.ID == cat.DefaultFormat {
			marker = "*"
		}
		fmt.Fprintf(w, " %s %-12s %s\n", marker, e.ID, e.PromptLabel())
	}
	return nil
}

// saveStory は物語を JSON で保存し、指定があれば Markdown の絵コンテも保存するのだ。
func saveStory(ctx context.Context, w publisher.OutputWriter, opts config.GenerateOptions, story *domain.Story) error {
	outputPath := opts.OutputFile
	if outputPath == "" {
		outputPath = config.DefaultStoryFile
	}

	var buf bytes.Buffer
	if err := publisher.Export(&buf, story); err != nil {
		return err
	}
	if err := w.Write(ctx, outputPath, &buf, jsonContentType); err != nil {
		return fmt.Errorf("台本の保存に失敗したのだ: %w", err)
	}
	slog.Info("台本を保存したのだ", "path", outputPath)

	if opts.StoryboardFile == "" {
		return nil
	}
	buf.Reset()
	if err := publisher.Storyboard(&buf, story); err != nil {
		return err
	}
	if err := w.Write(ctx, opts.StoryboardFile, &buf, markdownContentType); err != nil {
		return fmt.Errorf("絵コンテの保存に失敗したのだ: %w", err)
	}
	slog.Info("絵コンテを保存したのだ", "path", opts.StoryboardFile)
	return nil
}

// setupAppContext は、提供された設定を使用してアプリケーションコンテキストを初期化して返すのだ。
func setupAppContext(ctx context.Context, cfg *config.Config) (*builder.AppContext, error) {
	aiClient, err := builder.InitializeAIClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create ai client: %w", err)
	}

	cat, err := builder.LoadCatalog(cfg)
	if err != nil {
		return nil, err
	}

	appCtx := builder.NewAppContext(cfg, cat, aiClient, publisher.LocalWriter{})
	return &appCtx, nil
}
