package prompts

import (
	"fmt"
	"strings"

	"github.com/shouni/go-cinema-kit/pkg/domain"
)

const (
	// PortraitTags は人物ポートレートの画質タグです。
	PortraitTags = "Dramatic rim lighting, shallow depth of field, high detail, masterpiece."
	// SceneTags はシーン画像の画質タグです。
	SceneTags = "Dynamic composition, atmosphere, 8k resolution, photorealistic."
	// SceneAspectRatio はシーン画像のアスペクト比です。
	SceneAspectRatio = "16:9"
	// SpeechHeader は TTS 台本の先頭行です。
	SpeechHeader = "Génère l'audio TTS pour cette scène en FRANÇAIS:"
)

// SpeakerVoice は話者名とボイスの割り当てです。
type SpeakerVoice struct {
	Speaker string
	Voice   domain.Voice
}

// CinemaPrompt は MediaPrompt の既定実装です。
type CinemaPrompt struct{}

// NewCinemaPrompt は CinemaPrompt を返します。
func NewCinemaPrompt() CinemaPrompt { return CinemaPrompt{} }

func (CinemaPrompt) Avatar(c domain.Character) string { return AvatarPrompt(c) }

func (CinemaPrompt) Scene(s domain.Scene) string { return ScenePrompt(s) }

func (CinemaPrompt) SpeechScript(story *domain.Story, scene domain.Scene) string {
	return SpeechScript(story, scene)
}

func (CinemaPrompt) SpeakerVoices(story *domain.Story) []SpeakerVoice {
	return SpeakerVoices(story)
}

// AvatarPrompt は登場人物のポートレート用プロンプトを組み立てます。
func AvatarPrompt(c domain.Character) string {
	return fmt.Sprintf("Cinematic professional character portrait of %s, %s. %s",
		c.Name, strings.TrimSpace(c.AvatarPrompt), PortraitTags)
}

// ScenePrompt はシーン画像用のプロンプトを組み立てます。
func ScenePrompt(s domain.Scene) string {
	return fmt.Sprintf("Masterpiece cinematic wide shot: %s. %s",
		strings.TrimSpace(s.VisualPrompt), SceneTags)
}

// SpeechScript はシーンの台詞を「話者: 台詞」の行に並べた TTS 台本を返します。
// 話者が解決できない行はナレーターの名前で出力します。
func SpeechScript(story *domain.Story, scene domain.Scene) string {
	var sb strings.Builder
	sb.WriteString(SpeechHeader)
	for _, line := range scene.Dialogues {
		sb.WriteString("\n")
		sb.WriteString(story.SpeakerName(line))
		sb.WriteString(": ")
		sb.WriteString(strings.TrimSpace(line.Text))
	}
	return sb.String()
}

// SpeakerVoices は登場人物ごとのボイス割り当てを返します。
// ナレーターと同名の登場人物がいなければ、ナレーター用の割り当てを末尾に追加します。
func SpeakerVoices(story *domain.Story) []SpeakerVoice {
	out := make([]SpeakerVoice, 0, len(story.Characters)+1)
	hasNarrator := false
	for _, c := range story.Characters {
		out = append(out, SpeakerVoice{Speaker: c.Name, Voice: c.Voice})
		if c.Name == domain.NarratorName {
			hasNarrator = true
		}
	}
	if !hasNarrator {
		out = append(out, SpeakerVoice{Speaker: domain.NarratorName, Voice: domain.DefaultNarratorVoice})
	}
	return out
}
