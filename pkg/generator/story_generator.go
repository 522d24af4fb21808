package generator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/shouni/go-cinema-kit/pkg/audio"
	"github.com/shouni/go-cinema-kit/pkg/domain"
	"github.com/shouni/go-cinema-kit/pkg/prompts"
)

// StoryGenerator は物語の構造生成とメディア付与の4つのステージを提供します。
// メディア系のステージは項目ごとに並列実行し、個々の失敗は握りつぶして元の項目を残します。
type StoryGenerator struct {
	model          ContentModel
	models         Models
	scriptPrompt   prompts.ScriptPrompt
	mediaPrompt    prompts.MediaPrompt
	images         *imageCache
	interval       time.Duration
	maxConcurrency int
}

// GenerateStructure はソーステキストから物語の構造を生成します。
func (g *StoryGenerator) GenerateStructure(ctx context.Context, text, style, format string) (*domain.Story, error) {
	finalPrompt, err := g.scriptPrompt.Build(prompts.ModeCinematic, prompts.NewTemplateData(text, style, format))
	if err != nil {
		return nil, fmt.Errorf("プロンプト生成に失敗: %w", err)
	}

	slog.InfoContext(ctx, "構造生成を開始します", "model", g.models.Story, "style", style, "format", format)
	raw, err := g.model.GenerateStructured(ctx, g.models.Story, finalPrompt, prompts.StorySchema())
	if err != nil {
		return nil, fmt.Errorf("構造生成の呼び出しに失敗しました: %w", err)
	}
	if strings.TrimSpace(raw) == "" {
		return nil, ErrEmptyResponse
	}

	story, err := parseStory(raw)
	if err != nil {
		return nil, err
	}
	if story.NarrativeStyle == "" {
		story.NarrativeStyle = style
	}

	slog.InfoContext(ctx, "構造生成が完了しました",
		"title", story.Title, "characters", len(story.Characters), "scenes", len(story.Scenes))
	return story, nil
}

// GenerateAvatars は登場人物ごとにポートレートを生成し、アバターを付与した新しい Story を返します。
func (g *StoryGenerator) GenerateAvatars(ctx context.Context, story *domain.Story) (*domain.Story, error) {
	if story == nil {
		return nil, fmt.Errorf("%w: story が nil です", domain.ErrInvalidStory)
	}
	chars := make([]domain.Character, len(story.Characters))
	copy(chars, story.Characters)

	err := g.fanOut(ctx, len(chars), func(ctx context.Context, i int) {
		c := story.Characters[i]
		url, err := g.images.getOrGenerate(ctx, ImageRequest{
			Model:  g.models.Image,
			Prompt: g.mediaPrompt.Avatar(c),
		}, g.model.GenerateImage)
		if err != nil {
			slog.WarnContext(ctx, "アバター生成に失敗しました", "character", c.ID, "error", err)
			return
		}
		chars[i] = c.WithAvatar(url)
	})
	if err != nil {
		return nil, fmt.Errorf("アバター生成が中断されました: %w", err)
	}

	out := story.WithCharacters(chars)
	slog.InfoContext(ctx, "アバター生成が完了しました", "avatars", out.MediaStats().Avatars, "characters", len(chars))
	return out, nil
}

// GenerateSceneImages はシーンごとに 16:9 の画像を生成します。
func (g *StoryGenerator) GenerateSceneImages(ctx context.Context, story *domain.Story) (*domain.Story, error) {
	if story == nil {
		return nil, fmt.Errorf("%w: story が nil です", domain.ErrInvalidStory)
	}
	scenes := make([]domain.Scene, len(story.Scenes))
	copy(scenes, story.Scenes)

	err := g.fanOut(ctx, len(scenes), func(ctx context.Context, i int) {
		sc := story.Scenes[i]
		url, err := g.images.getOrGenerate(ctx, ImageRequest{
			Model:       g.models.Image,
			Prompt:      g.mediaPrompt.Scene(sc),
			AspectRatio: prompts.SceneAspectRatio,
		}, g.model.GenerateImage)
		if err != nil {
			slog.WarnContext(ctx, "シーン画像の生成に失敗しました", "scene", sc.ID, "error", err)
			return
		}
		scenes[i] = sc.WithImage(url)
	})
	if err != nil {
		return nil, fmt.Errorf("シーン画像の生成が中断されました: %w", err)
	}

	out := story.WithScenes(scenes)
	slog.InfoContext(ctx, "シーン画像の生成が完了しました", "images", out.MediaStats().Images, "scenes", len(scenes))
	return out, nil
}

// GenerateSceneAudio はシーンごとに複数話者の音声を生成し、WAV のデータURLとして付与します。
func (g *StoryGenerator) GenerateSceneAudio(ctx context.Context, story *domain.Story) (*domain.Story, error) {
	if story == nil {
		return nil, fmt.Errorf("%w: story が nil です", domain.ErrInvalidStory)
	}
	scenes := make([]domain.Scene, len(story.Scenes))
	copy(scenes, story.Scenes)
	speakers := g.mediaPrompt.SpeakerVoices(story)

	err := g.fanOut(ctx, len(scenes), func(ctx context.Context, i int) {
		sc := story.Scenes[i]
		if len(sc.Dialogues) == 0 {
			slog.DebugContext(ctx, "台詞のないシーンは音声を生成しません", "scene", sc.ID)
			return
		}

		resp, err := g.model.GenerateSpeech(ctx, SpeechRequest{
			Model:    g.models.Speech,
			Script:   g.mediaPrompt.SpeechScript(story, sc),
			Speakers: speakers,
		})
		if err != nil {
			slog.WarnContext(ctx, "シーン音声の生成に失敗しました", "scene", sc.ID, "error", err)
			return
		}
		if resp == nil || len(resp.PCM) == 0 {
			slog.WarnContext(ctx, "シーン音声が空です", "scene", sc.ID)
			return
		}
		scenes[i] = sc.WithAudio(audio.WAVFromPCM(resp.PCM))
	})
	if err != nil {
		return nil, fmt.Errorf("シーン音声の生成が中断されました: %w", err)
	}

	out := story.WithScenes(scenes)
	slog.InfoContext(ctx, "シーン音声の生成が完了しました", "audio", out.MediaStats().Audio, "scenes", len(scenes))
	return out, nil
}

// fanOut は n 個の項目に work を並列で適用します。結果は呼び出し側が位置で書き込みます。
// 項目の失敗は work の中で処理し、ここではコンテキストの中断だけをエラーとして返します。
func (g *StoryGenerator) fanOut(ctx context.Context, n int, work func(ctx context.Context, i int)) error {
	eg, egCtx := errgroup.WithContext(ctx)
	if g.maxConcurrency > 0 {
		eg.SetLimit(g.maxConcurrency)
	}

	var limiter *rate.Limiter
	if g.interval > 0 {
		limiter = rate.NewLimiter(rate.Every(g.interval), 2)
	}

	for i := 0; i < n; i++ {
		eg.Go(func() error {
			if limiter != nil {
				if err := limiter.Wait(egCtx); err != nil {
					return err
				}
			}
			work(egCtx, i)
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
