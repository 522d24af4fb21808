package prompts

import "github.com/shouni/go-cinema-kit/pkg/domain"

// ScriptPrompt は、構造生成プロンプトを構築する契約です。
type ScriptPrompt interface {
	// Build は、指定されたモード（例: "cinematic"）とデータに基づいてプロンプト文字列を生成します。
	Build(mode string, data TemplateData) (string, error)
}

// MediaPrompt は、画像と音声の生成リクエストを構築する契約です。
type MediaPrompt interface {
	Avatar(c domain.Character) string
	Scene(s domain.Scene) string
	SpeechScript(story *domain.Story, scene domain.Scene) string
	SpeakerVoices(story *domain.Story) []SpeakerVoice
}
