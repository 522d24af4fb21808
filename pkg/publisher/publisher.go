package publisher

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/yuin/goldmark"

	"github.com/shouni/go-cinema-kit/pkg/audio"
	"github.com/shouni/go-cinema-kit/pkg/domain"
)

const (
	defaultStoryName      = "story.json"
	defaultStoryboardName = "storyboard.md"
	defaultMediaDirName   = "media"
)

// Options はパブリッシュ動作を制御する設定項目です。
type Options struct {
	OutputDir string
	HTML      bool
}

// PublishResult はパブリッシュ処理の結果として生成されたファイルの情報を保持します。
type PublishResult struct {
	StoryPath    string   // 物語ドキュメント (JSON) のパス
	MarkdownPath string   // 絵コンテ (Markdown) のパス
	HTMLPath     string   // 絵コンテ (HTML) のパス
	MediaPaths   []string // 書き出したアバター、シーン画像、シーン音声のパス
}

// CinemaPublisher は物語ドキュメント、絵コンテ、メディアファイルの書き出しを担います。
type CinemaPublisher struct {
	writer OutputWriter
	md     goldmark.Markdown
}

// NewCinemaPublisher は CinemaPublisher を生成します。
func NewCinemaPublisher(writer OutputWriter) *CinemaPublisher {
	return &CinemaPublisher{writer: writer, md: newMarkdown()}
}

// Publish はメディアの保存、JSON と Markdown の書き出し、HTML 変換を一括して実行します。
func (p *CinemaPublisher) Publish(ctx context.Context, story *domain.Story, opts Options) (PublishResult, error) {
	result := PublishResult{}
	if story == nil {
		return result, fmt.Errorf("publisher: 物語が空です")
	}

	refs, paths, err := p.saveMedia(ctx, story, ResolveOutputPath(opts.OutputDir, defaultMediaDirName))
	if err != nil {
		return result, err
	}
	result.MediaPaths = paths

	var doc bytes.Buffer
	if err := Export(&doc, story); err != nil {
		return result, err
	}
	result.StoryPath = ResolveOutputPath(opts.OutputDir, defaultStoryName)
	if err := p.writer.Write(ctx, result.StoryPath, &doc, "application/json"); err != nil {
		return result, fmt.Errorf("JSONファイルの書き込みに失敗しました: %w", err)
	}

	content := buildMarkdown(story, refs)
	result.MarkdownPath = ResolveOutputPath(opts.OutputDir, defaultStoryboardName)
	if err := p.writer.Write(ctx, result.MarkdownPath, strings.NewReader(content), "text/markdown; charset=utf-8"); err != nil {
		return result, fmt.Errorf("markdownファイルの書き込みに失敗しました: %w", err)
	}

	if opts.HTML {
		slog.InfoContext(ctx, "絵コンテを HTML に変換します", "title", story.Title)
		var page bytes.Buffer
		if err := renderHTML(&page, p.md, story.Title, content); err != nil {
			return result, err
		}
		result.HTMLPath = ReplaceExt(result.MarkdownPath, ".html")
		if err := p.writer.Write(ctx, result.HTMLPath, &page, "text/html; charset=utf-8"); err != nil {
			return result, fmt.Errorf("HTMLファイルの書き込みに失敗しました: %w", err)
		}
	}

	slog.InfoContext(ctx, "パブリッシュが完了しました",
		"story", result.StoryPath, "storyboard", result.MarkdownPath, "media", len(result.MediaPaths))
	return result, nil
}

// saveMedia はデータURLのメディアをファイルに書き出し、Markdown から参照する相対パスを返します。
// デコードできないハンドルは警告を出して読み飛ばします。
func (p *CinemaPublisher) saveMedia(ctx context.Context, story *domain.Story, mediaDir string) (mediaRefs, []string, error) {
	refs := mediaRefs{
		avatars: make(map[string]string),
		images:  make(map[int]string),
		audio:   make(map[int]string),
	}
	var paths []string
	used := make(map[string]struct{})

	save := func(url, baseName string) (string, bool, error) {
		if url == "" {
			return "", false, nil
		}
		mime, data, err := audio.DecodeDataURL(url)
		if err != nil {
			slog.WarnContext(ctx, "メディアのデコードに失敗しました", "name", baseName, "error", err)
			return "", false, nil
		}
		name := baseName + extensionFor(mime, data)
		fullPath := ResolveOutputPath(mediaDir, name)
		if err := ensureWithin(mediaDir, fullPath); err != nil {
			return "", false, err
		}
		if err := p.writer.Write(ctx, fullPath, bytes.NewReader(data), mime); err != nil {
			return "", false, fmt.Errorf("メディアの書き込みに失敗しました %s: %w", fullPath, err)
		}
		paths = append(paths, fullPath)
		return path.Join(defaultMediaDirName, name), true, nil
	}

	for i, c := range story.Characters {
		// ID はバックエンド由来なのでファイル名に使える文字だけを残す
		base := "avatar_" + SafeFileName(c.ID)
		if _, dup := used[base]; dup {
			base = fmt.Sprintf("%s_%d", base, i+1)
		}
		used[base] = struct{}{}

		rel, ok, err := save(c.AvatarURL, base)
		if err != nil {
			return refs, paths, err
		}
		if ok {
			refs.avatars[c.ID] = rel
		}
	}
	for _, sc := range story.Scenes {
		rel, ok, err := save(sc.ImageURL, fmt.Sprintf("scene_%d", sc.ID))
		if err != nil {
			return refs, paths, err
		}
		if ok {
			refs.images[sc.ID] = rel
		}
		rel, ok, err = save(sc.AudioURL, fmt.Sprintf("scene_%d", sc.ID))
		if err != nil {
			return refs, paths, err
		}
		if ok {
			refs.audio[sc.ID] = rel
		}
	}
	return refs, paths, nil
}

// extensionFor は MIME タイプ、なければ中身から拡張子を決めます。
func extensionFor(mime string, data []byte) string {
	if m := mimetype.Lookup(mime); m != nil && m.Extension() != "" {
		return m.Extension()
	}
	if ext := mimetype.Detect(data).Extension(); ext != "" {
		return ext
	}
	return ".bin"
}
