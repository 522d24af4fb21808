package pipeline

import (
	"context"

	"github.com/shouni/go-cinema-kit/pkg/catalog"
	"github.com/shouni/go-cinema-kit/pkg/domain"
)

// Stages は物語生成の4つのステージです。generator.StoryGenerator が実装します。
type Stages interface {
	GenerateStructure(ctx context.Context, text, style, format string) (*domain.Story, error)
	GenerateAvatars(ctx context.Context, story *domain.Story) (*domain.Story, error)
	GenerateSceneImages(ctx context.Context, story *domain.Story) (*domain.Story, error)
	GenerateSceneAudio(ctx context.Context, story *domain.Story) (*domain.Story, error)
}

// Catalog はスタイルとフォーマットの ID を解決します。*catalog.Catalog が実装します。
type Catalog interface {
	Style(id string) (catalog.Entry, error)
	Format(id string) (catalog.Entry, error)
}

// ChangeFunc は状態が遷移するたびに呼ばれます。story はその時点のスナップショットです。
type ChangeFunc func(state State, story *domain.Story)
