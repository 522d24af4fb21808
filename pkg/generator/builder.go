package generator

import (
	"errors"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/shouni/go-cinema-kit/pkg/prompts"
)

const (
	defaultCacheExpiration = 1 * time.Hour
	defaultCacheCleanup    = 30 * time.Minute
)

// Option は StoryGenerator の設定を変更します。
type Option func(*StoryGenerator)

// WithInterval はステージ内のリクエスト間隔を設定します。0 なら制限しません。
func WithInterval(d time.Duration) Option {
	return func(g *StoryGenerator) { g.interval = d }
}

// WithMaxConcurrency はステージ内の同時リクエスト数の上限を設定します。0 なら無制限です。
func WithMaxConcurrency(n int) Option {
	return func(g *StoryGenerator) { g.maxConcurrency = n }
}

// WithCache は画像キャッシュを差し替えます。
func WithCache(c *cache.Cache) Option {
	return func(g *StoryGenerator) { g.images = newImageCache(c) }
}

// WithScriptPrompt は構造生成プロンプトのビルダーを差し替えます。
func WithScriptPrompt(p prompts.ScriptPrompt) Option {
	return func(g *StoryGenerator) { g.scriptPrompt = p }
}

// WithMediaPrompt は画像と音声のプロンプトを差し替えます。
func WithMediaPrompt(p prompts.MediaPrompt) Option {
	return func(g *StoryGenerator) { g.mediaPrompt = p }
}

// NewStoryGenerator は StoryGenerator を初期化します。
func NewStoryGenerator(model ContentModel, models Models, opts ...Option) (*StoryGenerator, error) {
	if model == nil {
		return nil, errors.New("ContentModel が nil です")
	}

	g := &StoryGenerator{
		model:       model,
		models:      models.withDefaults(),
		mediaPrompt: prompts.NewCinemaPrompt(),
	}
	for _, opt := range opts {
		opt(g)
	}

	if g.scriptPrompt == nil {
		pb, err := prompts.NewTextPromptBuilder()
		if err != nil {
			return nil, fmt.Errorf("プロンプトビルダーの初期化に失敗しました: %w", err)
		}
		g.scriptPrompt = pb
	}
	if g.images == nil {
		g.images = newImageCache(cache.New(defaultCacheExpiration, defaultCacheCleanup))
	}

	return g, nil
}
