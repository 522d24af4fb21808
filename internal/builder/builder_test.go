package builder

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/shouni/go-cinema-kit/internal/config"
	"github.com/shouni/go-cinema-kit/pkg/generator"
)

type nopModel struct{}

func (nopModel) GenerateStructured(context.Context, string, string, *genai.Schema) (string, error) {
	return "", nil
}

func (nopModel) GenerateImage(context.Context, generator.ImageRequest) (*generator.ImageResponse, error) {
	return &generator.ImageResponse{}, nil
}

func (nopModel) GenerateSpeech(context.Context, generator.SpeechRequest) (*generator.SpeechResponse, error) {
	return &generator.SpeechResponse{}, nil
}

func TestBuildStoryGenerator(t *testing.T) {
	cfg := &config.Config{Options: config.GenerateOptions{MaxConcurrency: 2}}

	t.Run("一度構築したジェネレーターを使い回すこと", func(t *testing.T) {
		appCtx := NewAppContext(cfg, nil, nopModel{}, nil)
		first, err := BuildStoryGenerator(&appCtx)
		require.NoError(t, err)
		second, err := BuildStoryGenerator(&appCtx)
		require.NoError(t, err)
		assert.Same(t, first, second)
	})

	t.Run("AIクライアントがなければエラーになること", func(t *testing.T) {
		appCtx := NewAppContext(cfg, nil, nil, nil)
		_, err := BuildStoryGenerator(&appCtx)
		assert.Error(t, err)
	})
}

func TestLoadCatalog(t *testing.T) {
	t.Run("指定がなければ組み込みのカタログを使うこと", func(t *testing.T) {
		cat, err := LoadCatalog(&config.Config{})
		require.NoError(t, err)
		assert.NotEmpty(t, cat.Styles)
	})

	t.Run("指定されたファイルを読み込むこと", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.yaml")
		data := []byte("default_style: calm\ndefault_format: short\nstyles:\n  - id: calm\n    label: Calme\nformats:\n  - id: short\n    label: Court\n")
		require.NoError(t, os.WriteFile(path, data, 0o644))

		cat, err := LoadCatalog(&config.Config{CatalogFile: path})
		require.NoError(t, err)
		entry, err := cat.Style("")
		require.NoError(t, err)
		assert.Equal(t, "Calme", entry.Label)
	})

	t.Run("存在しないファイルはエラーになること", func(t *testing.T) {
		_, err := LoadCatalog(&config.Config{CatalogFile: filepath.Join(t.TempDir(), "none.yaml")})
		assert.Error(t, err)
	})
}

func TestInitializeAIClient(t *testing.T) {
	_, err := InitializeAIClient(context.Background(), &config.Config{})
	assert.Error(t, err, "APIキーがなければエラーになるはずなのだ")
}
