package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shouni/go-cinema-kit/internal/config"
	"github.com/shouni/go-cinema-kit/internal/runner"
	"github.com/shouni/go-cinema-kit/pkg/domain"
	cinema "github.com/shouni/go-cinema-kit/pkg/pipeline"
	"github.com/shouni/go-cinema-kit/pkg/publisher"
)

func TestExecuteListCatalog(t *testing.T) {
	var out strings.Builder
	require.NoError(t, ExecuteListCatalog(&config.Config{}, &out))

	s := out.String()
	assert.Contains(t, s, "STYLES")
	assert.Contains(t, s, "FORMATS")
	assert.Contains(t, s, "* epic", "デフォルトのスタイルに印が付くはずなのだ")
	assert.Contains(t, s, "* movie", "デフォルトのフォーマットに印が付くはずなのだ")
}

func TestSaveStory(t *testing.T) {
	story := &domain.Story{
		Title:      "Austerlitz",
		Characters: []domain.Character{{ID: "c1", Name: "Soult", Voice: domain.VoiceCharon, Gender: domain.GenderMale}},
		Scenes:     []domain.Scene{{ID: 1, Title: "Le soleil", FactsUsed: []string{"2 décembre 1805"}}},
	}
	dir := t.TempDir()
	opts := config.GenerateOptions{
		OutputFile:     filepath.Join(dir, "out", "story.json"),
		StoryboardFile: filepath.Join(dir, "out", "storyboard.md"),
	}

	require.NoError(t, saveStory(context.Background(), publisher.LocalWriter{}, opts, story))

	f, err := os.Open(opts.OutputFile)
	require.NoError(t, err)
	defer f.Close()
	got, err := publisher.Import(f)
	require.NoError(t, err)
	assert.Equal(t, story.Title, got.Title)

	md, err := os.ReadFile(opts.StoryboardFile)
	require.NoError(t, err)
	assert.Contains(t, string(md), "Austerlitz")
}

type stubRunner struct {
	story *domain.Story
	err   error
}

func (s stubRunner) Run(context.Context, cinema.Request) (*domain.Story, error) {
	return s.story, s.err
}

func TestGenerateAndPublish(t *testing.T) {
	partial := &domain.Story{
		Title:      "Varennes",
		Characters: []domain.Character{{ID: "c1", Name: "Drouet", Voice: domain.VoicePuck, Gender: domain.GenderMale}},
		Scenes:     []domain.Scene{{ID: 1, Title: "La fuite", FactsUsed: []string{"21 juin 1791"}}},
	}
	newPublisher := func(dir string) *runner.PublisherRunner {
		return runner.NewPublisherRunner(config.GenerateOptions{OutputDir: dir}, publisher.NewCinemaPublisher(publisher.LocalWriter{}))
	}

	t.Run("途中で失敗しても完了済みの物語を保存すること", func(t *testing.T) {
		dir := t.TempDir()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		story, result, err := generateAndPublish(ctx, stubRunner{story: partial, err: context.Canceled}, newPublisher(dir), cinema.Request{})
		require.Error(t, err)
		assert.True(t, errors.Is(err, context.Canceled))
		assert.Same(t, partial, story)
		assert.Equal(t, filepath.Join(dir, "story.json"), result.StoryPath)

		data, err := os.ReadFile(result.StoryPath)
		require.NoError(t, err)
		assert.Contains(t, string(data), "Varennes")
	})

	t.Run("構造生成で失敗したら何も保存しないこと", func(t *testing.T) {
		dir := t.TempDir()
		boom := errors.New("boom")

		story, _, err := generateAndPublish(context.Background(), stubRunner{err: boom}, newPublisher(dir), cinema.Request{})
		assert.ErrorIs(t, err, boom)
		assert.Nil(t, story)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("成功したら保存結果を返すこと", func(t *testing.T) {
		dir := t.TempDir()
		_, result, err := generateAndPublish(context.Background(), stubRunner{story: partial}, newPublisher(dir), cinema.Request{})
		require.NoError(t, err)
		assert.FileExists(t, result.StoryPath)
		assert.FileExists(t, result.MarkdownPath)
	})
}
