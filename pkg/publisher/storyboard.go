package publisher

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/shouni/go-cinema-kit/pkg/domain"
)

// mediaRefs は Markdown から参照するメディアファイルの相対パスです。
type mediaRefs struct {
	avatars map[string]string // CharacterID -> path
	images  map[int]string    // SceneID -> path
	audio   map[int]string    // SceneID -> path
}

// Storyboard は物語を Markdown の絵コンテとして書き出します。
func Storyboard(w io.Writer, story *domain.Story) error {
	if story == nil {
		return fmt.Errorf("publisher: 物語が空です")
	}
	_, err := io.WriteString(w, buildMarkdown(story, mediaRefs{}))
	return err
}

func buildMarkdown(story *domain.Story, refs mediaRefs) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", story.Title)
	if story.NarrativeStyle != "" {
		fmt.Fprintf(&sb, "*%s*\n\n", story.NarrativeStyle)
	}
	if story.Summary != "" {
		fmt.Fprintf(&sb, "%s\n\n", story.Summary)
	}

	sb.WriteString("## Personnages\n\n")
	for _, c := range story.Characters {
		fmt.Fprintf(&sb, "- **%s** (%s, voix %s)", c.Name, c.Role, c.Voice)
		if c.Bio != "" {
			fmt.Fprintf(&sb, ": %s", c.Bio)
		}
		sb.WriteString("\n")
		if p, ok := refs.avatars[c.ID]; ok {
			fmt.Fprintf(&sb, "  ![%s](%s)\n", c.Name, p)
		}
	}
	sb.WriteString("\n")

	for i, sc := range story.Scenes {
		fmt.Fprintf(&sb, "## Scène %d / %d : %s\n\n", i+1, len(story.Scenes), sc.Title)
		fmt.Fprintf(&sb, "- Lieu : %s\n- Époque : %s\n\n", sc.Location, sc.Time)
		if p, ok := refs.images[sc.ID]; ok {
			fmt.Fprintf(&sb, "![%s](%s)\n\n", sc.Title, p)
		}
		if sc.Description != "" {
			fmt.Fprintf(&sb, "%s\n\n", sc.Description)
		}
		for _, line := range sc.Dialogues {
			fmt.Fprintf(&sb, "> **%s** : %s\n>\n", story.SpeakerName(line), strings.TrimSpace(line.Text))
		}
		if len(sc.Dialogues) > 0 {
			sb.WriteString("\n")
		}
		if p, ok := refs.audio[sc.ID]; ok {
			fmt.Fprintf(&sb, "[Audio](%s)\n\n", p)
		}
		if len(sc.FactsUsed) > 0 {
			sb.WriteString("### Sources de Vérité\n\n")
			for j, fact := range sc.FactsUsed {
				fmt.Fprintf(&sb, "%d. %s\n", j+1, fact)
			}
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="fr">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { background: #0b1120; color: #e2e8f0; font-family: Georgia, serif; max-width: 860px; margin: 2rem auto; padding: 0 1rem; }
h1, h2, h3 { color: #f59e0b; }
img { max-width: 100%; border-radius: 12px; }
blockquote { border-left: 3px solid #f59e0b; margin-left: 0; padding-left: 1rem; }
</style>
</head>
<body>
{{.Body}}
</body>
</html>
`))

func newMarkdown() goldmark.Markdown {
	return goldmark.New(goldmark.WithExtensions(extension.GFM))
}

// renderHTML は Markdown を HTML ページに変換します。
func renderHTML(w io.Writer, md goldmark.Markdown, title, markdown string) error {
	var body bytes.Buffer
	if err := md.Convert([]byte(markdown), &body); err != nil {
		return fmt.Errorf("publisher: HTMLの変換に失敗しました: %w", err)
	}
	return pageTemplate.Execute(w, struct {
		Title string
		Body  template.HTML
	}{Title: title, Body: template.HTML(body.String())})
}

// StoryboardHTML は絵コンテを単一の HTML ページとして書き出します。
func StoryboardHTML(w io.Writer, story *domain.Story) error {
	if story == nil {
		return fmt.Errorf("publisher: 物語が空です")
	}
	return renderHTML(w, newMarkdown(), story.Title, buildMarkdown(story, mediaRefs{}))
}
