package runner

import (
	"context"

	"github.com/shouni/go-cinema-kit/internal/config"
	"github.com/shouni/go-cinema-kit/pkg/domain"
	"github.com/shouni/go-cinema-kit/pkg/publisher"
)

// Publisher は物語と付属メディアを保存する処理なのだ。
type Publisher interface {
	Publish(ctx context.Context, story *domain.Story, opts publisher.Options) (publisher.PublishResult, error)
}

// PublisherRunner は pkg/publisher を利用した標準実装なのだ。
type PublisherRunner struct {
	options   config.GenerateOptions
	publisher Publisher
}

func NewPublisherRunner(options config.GenerateOptions, pub Publisher) *PublisherRunner {
	return &PublisherRunner{
		options:   options,
		publisher: pub,
	}
}

func (pr *PublisherRunner) Run(ctx context.Context, story *domain.Story) (publisher.PublishResult, error) {
	// internal/config の値を pkg/publisher 用の構造体に詰め替えるのだ。
	outputDir := pr.options.OutputDir
	if outputDir == "" {
		outputDir = config.DefaultOutputDir
	}
	opts := publisher.Options{
		OutputDir: outputDir,
		HTML:      pr.options.HTML,
	}
	return pr.publisher.Publish(ctx, story, opts)
}
