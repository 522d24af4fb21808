package runner

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shouni/go-cinema-kit/examples"
	"github.com/shouni/go-cinema-kit/internal/config"
	"github.com/shouni/go-cinema-kit/pkg/domain"
	"github.com/shouni/go-cinema-kit/pkg/pipeline"
	"github.com/shouni/go-cinema-kit/pkg/publisher"
)

func testStory() *domain.Story {
	return &domain.Story{
		Title:   "Valmy",
		Summary: "Septembre 1792.",
		Characters: []domain.Character{
			{ID: "c1", Name: "Kellermann", Voice: domain.VoiceFenrir, Gender: domain.GenderMale},
		},
		Scenes: []domain.Scene{
			{
				ID:        1,
				Title:     "Le brouillard",
				Dialogues: []domain.DialogueLine{{CharacterID: "c1", Text: "Vive la Nation !"}},
				AudioURL:  "data:audio/wav;base64,UklGRg==",
				FactsUsed: []string{"20 septembre 1792"},
			},
			{ID: 2, Title: "La canonnade", FactsUsed: []string{"Victoire française"}},
		},
	}
}

func TestReadSource(t *testing.T) {
	t.Run("ファイルから読み込むこと", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "source.txt")
		require.NoError(t, os.WriteFile(path, []byte("  Texte historique.\n"), 0o644))

		got, err := ReadSource(path, nil)
		require.NoError(t, err)
		assert.Equal(t, "Texte historique.", got)
	})

	t.Run("- は標準入力から読み込むこと", func(t *testing.T) {
		got, err := ReadSource("-", strings.NewReader("depuis stdin\n"))
		require.NoError(t, err)
		assert.Equal(t, "depuis stdin", got)
	})

	t.Run("存在しないファイルはエラーになること", func(t *testing.T) {
		_, err := ReadSource(filepath.Join(t.TempDir(), "missing.txt"), nil)
		assert.Error(t, err)
	})
}

func TestPlayRunner_Run(t *testing.T) {
	t.Run("コマンドに従ってシーンを切り替えること", func(t *testing.T) {
		var out strings.Builder
		in := strings.NewReader("space\nn\nf\n1\nq\nn\n")

		err := NewPlayRunner(in, &out).Run(context.Background(), testStory())
		require.NoError(t, err)

		s := out.String()
		assert.Contains(t, s, "KELLERMANN")
		assert.Contains(t, s, "SCÈNE 2 / 2")
		assert.Contains(t, s, "Sources de Vérité")
		assert.Contains(t, s, "Victoire française")
		assert.NotContains(t, s, "\n> ", "端末でない入力ではプロンプトを出さないのだ")
	})

	t.Run("音声のないシーンでは再生できないこと", func(t *testing.T) {
		var out strings.Builder
		in := strings.NewReader("n\nplay\n")

		require.NoError(t, NewPlayRunner(in, &out).Run(context.Background(), testStory()))
		assert.Contains(t, out.String(), "pas d'audio")
	})

	t.Run("未知のコマンドを知らせること", func(t *testing.T) {
		var out strings.Builder
		require.NoError(t, NewPlayRunner(strings.NewReader("zz\n"), &out).Run(context.Background(), testStory()))
		assert.Contains(t, out.String(), "commande inconnue")
	})

	t.Run("サンプルの物語を最後まで送れること", func(t *testing.T) {
		story, err := examples.LoadStory()
		require.NoError(t, err)

		var out strings.Builder
		require.NoError(t, NewPlayRunner(strings.NewReader("n\nn\nf\n"), &out).Run(context.Background(), story))
		assert.Contains(t, out.String(), "Sept prisonniers")
	})

	t.Run("nil の物語はエラーになること", func(t *testing.T) {
		err := NewPlayRunner(strings.NewReader(""), &strings.Builder{}).Run(context.Background(), nil)
		assert.ErrorIs(t, err, domain.ErrInvalidStory)
	})
}

type stubValidator struct{ err error }

func (s stubValidator) Validate(req pipeline.Request) (string, string, error) {
	if s.err != nil {
		return "", "", s.err
	}
	return "Épique", "Film", nil
}

type stubStructure struct {
	gotStyle, gotFormat string
}

func (s *stubStructure) GenerateStructure(_ context.Context, _, style, format string) (*domain.Story, error) {
	s.gotStyle, s.gotFormat = style, format
	return testStory(), nil
}

func TestScriptRunner_Run(t *testing.T) {
	t.Run("検証済みのラベルで構造を生成すること", func(t *testing.T) {
		gen := &stubStructure{}
		story, err := NewScriptRunner(stubValidator{}, gen).Run(context.Background(), pipeline.Request{Text: "x"})
		require.NoError(t, err)
		assert.Equal(t, "Valmy", story.Title)
		assert.Equal(t, "Épique", gen.gotStyle)
		assert.Equal(t, "Film", gen.gotFormat)
	})

	t.Run("検証エラーでは生成しないこと", func(t *testing.T) {
		gen := &stubStructure{}
		_, err := NewScriptRunner(stubValidator{err: pipeline.ErrInputTooShort}, gen).Run(context.Background(), pipeline.Request{})
		assert.True(t, errors.Is(err, pipeline.ErrInputTooShort))
		assert.Empty(t, gen.gotStyle)
	})
}

type stubPublisher struct{ got publisher.Options }

func (s *stubPublisher) Publish(_ context.Context, _ *domain.Story, opts publisher.Options) (publisher.PublishResult, error) {
	s.got = opts
	return publisher.PublishResult{}, nil
}

func TestPublisherRunner_Run(t *testing.T) {
	pub := &stubPublisher{}
	_, err := NewPublisherRunner(config.GenerateOptions{HTML: true}, pub).Run(context.Background(), testStory())
	require.NoError(t, err)
	assert.Equal(t, config.DefaultOutputDir, pub.got.OutputDir)
	assert.True(t, pub.got.HTML)
}
