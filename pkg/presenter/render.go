package presenter

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"github.com/shouni/go-cinema-kit/pkg/audio"
	"github.com/shouni/go-cinema-kit/pkg/domain"
	"github.com/shouni/go-cinema-kit/pkg/pipeline"
	"github.com/shouni/go-cinema-kit/pkg/player"
)

const (
	barWidth   = 40
	cardWidth  = 72
	nameWidth  = 18
	roleWidth  = 22
	truthBadge = "[Truth Lock: Factuel]"
)

// RenderProgress は生成中の進捗を描画します。idle と ready では何も描画しません。
func RenderProgress(w io.Writer, st pipeline.State) error {
	if !st.Busy() {
		if st.Failed() {
			_, err := fmt.Fprintf(w, "ERREUR: %s\n", st.Error)
			return err
		}
		return nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s  %s\n", StatusHeadline(st.Status), bar(float64(st.Progress), barWidth))
	fmt.Fprintf(&sb, "%s\n", OrchestrationLine(st.Progress))
	for _, s := range Steps(st) {
		mark := "[ ]"
		switch {
		case s.Done:
			mark = "[x]"
		case s.Active:
			mark = "[>]"
		}
		fmt.Fprintf(&sb, "  %s Étape: %s\n", mark, s.Label)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// RenderCharacters は登場人物のギャラリーを描画します。アバターがない人物はプレースホルダーになります。
func RenderCharacters(w io.Writer, story *domain.Story) error {
	if story == nil {
		return nil
	}

	var sb strings.Builder
	sb.WriteString("DRAMATIC PERSONA\n")
	for _, c := range story.Characters {
		avatar := "[ ? ]"
		if c.AvatarURL != "" {
			avatar = "[img " + mediaSize(c.AvatarURL) + "]"
		}
		fmt.Fprintf(&sb, "  %s %s %s (%s)\n",
			runewidth.FillRight(runewidth.Truncate(c.Name, nameWidth, "…"), nameWidth),
			runewidth.FillRight(runewidth.Truncate(strings.ToUpper(c.Role), roleWidth, "…"), roleWidth),
			avatar,
			c.Voice,
		)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// RenderScene はプレイヤーの現在のシーンを描画します。
// 一時停止中はタイトルカード、再生中は台詞、事実オーバーレイ表示中は出典の一覧を描画します。
func RenderScene(w io.Writer, p *player.Player) error {
	sc, ok := p.Scene()
	if !ok {
		_, err := io.WriteString(w, "(aucune scène)\n")
		return err
	}
	story := p.Story()

	var sb strings.Builder
	sb.WriteString(truthBadge + "\n")
	sb.WriteString(strings.Repeat("=", cardWidth) + "\n")

	switch {
	case p.FactsVisible():
		sb.WriteString("Sources de Vérité\n")
		for i, fact := range sc.FactsUsed {
			fmt.Fprintf(&sb, "  [%d] %s\n", i+1, fact)
		}
		sb.WriteString("  (f) Retour au film\n")
	case p.Playing():
		for _, line := range sc.Dialogues {
			fmt.Fprintf(&sb, "  %s\n    \"%s\"\n", strings.ToUpper(story.SpeakerName(line)), line.Text)
		}
	default:
		fmt.Fprintf(&sb, "SCÈNE %d / %d\n", p.Index()+1, p.Len())
		fmt.Fprintf(&sb, "%s\n", strings.ToUpper(sc.Title))
		if sc.Description != "" {
			fmt.Fprintf(&sb, "%s\n", wrap(sc.Description, cardWidth))
		}
		fmt.Fprintf(&sb, "Lieu: %s   Époque: %s\n", orDash(sc.Location), orDash(sc.Time))
		fmt.Fprintf(&sb, "Image: %s   Audio: %s\n", imageInfo(sc.ImageURL), audioInfo(sc.AudioURL))
	}

	sb.WriteString(strings.Repeat("=", cardWidth) + "\n")
	playLabel := "lecture"
	if p.Playing() {
		playLabel = "pause"
	}
	fmt.Fprintf(&sb, "%s  %d // %d\n", bar(p.Progress(), barWidth), p.Index()+1, p.Len())
	fmt.Fprintf(&sb, "(p) précédent  (space) %s  (n) suivant  (f) vérifier les faits  (q) quitter\n", playLabel)

	_, err := io.WriteString(w, sb.String())
	return err
}

// RenderSummary は完成した物語の概要とメディアの付与状況を描画します。
func RenderSummary(w io.Writer, story *domain.Story) error {
	if story == nil {
		return nil
	}
	m := story.MediaStats()
	_, err := fmt.Fprintf(w, "%s\n%s\nPersonnages: %d (avatars %d)  Scènes: %d (images %d, audio %d)\n",
		strings.ToUpper(story.Title), wrap(story.Summary, cardWidth),
		len(story.Characters), m.Avatars, len(story.Scenes), m.Images, m.Audio)
	return err
}

func bar(percent float64, width int) string {
	percent = max(0, min(percent, 100))
	filled := int(percent / 100 * float64(width))
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", width-filled) + fmt.Sprintf("] %3.0f%%", percent)
}

// wrap は表示幅で単語単位に折り返します。
func wrap(s string, width int) string {
	var lines []string
	var cur string
	for _, word := range strings.Fields(s) {
		if cur != "" && runewidth.StringWidth(cur)+1+runewidth.StringWidth(word) > width {
			lines = append(lines, cur)
			cur = ""
		}
		if cur == "" {
			cur = word
		} else {
			cur += " " + word
		}
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	return strings.Join(lines, "\n")
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func mediaSize(url string) string {
	_, data, err := audio.DecodeDataURL(url)
	if err != nil {
		return "?"
	}
	return humanize.Bytes(uint64(len(data)))
}

func imageInfo(url string) string {
	if url == "" {
		return "aucune"
	}
	return "16:9 " + mediaSize(url)
}

func audioInfo(url string) string {
	if url == "" {
		return "aucun"
	}
	d, err := audio.DurationOf(url)
	if err != nil {
		return mediaSize(url)
	}
	return fmt.Sprintf("%.1fs, %s", d.Seconds(), mediaSize(url))
}
