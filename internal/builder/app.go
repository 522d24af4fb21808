package builder

import (
	"github.com/shouni/go-cinema-kit/internal/config"
	"github.com/shouni/go-cinema-kit/pkg/catalog"
	"github.com/shouni/go-cinema-kit/pkg/generator"
	"github.com/shouni/go-cinema-kit/pkg/publisher"
)

// AppContext は、アプリケーション実行に必要な共通コンテキストを保持するのだ。
// これを各Build関数に渡すことで、依存関係の注入を簡素化するのだ。
type AppContext struct {
	Config    *config.Config         // Configは、環境変数から読み込まれたグローバルな設定です（APIキー、モデル名など）。
	Options   config.GenerateOptions // Optionsは、コマンドラインから渡された実行時の設定です（スタイル、フォーマット、出力先など）。
	Catalog   *catalog.Catalog       // Catalogは、選択可能なスタイルとフォーマットの一覧です。
	Writer    publisher.OutputWriter // Writerは、生成された内容を保存するための出力先です。
	aiClient  generator.ContentModel // aiClient はGeminiの通信に使う共通クライアント
	generator *generator.StoryGenerator
}

// NewAppContext は AppContext の新しいインスタンスを生成するのだ。
func NewAppContext(
	cfg *config.Config,
	cat *catalog.Catalog,
	aiClient generator.ContentModel,
	writer publisher.OutputWriter,
) AppContext {
	return AppContext{
		Config:   cfg,
		Options:  cfg.Options,
		Catalog:  cat,
		Writer:   writer,
		aiClient: aiClient,
	}
}
