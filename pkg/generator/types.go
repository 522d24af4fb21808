package generator

import "errors"

const (
	// DefaultStoryModel は構造生成に使うモデルです。
	DefaultStoryModel = "gemini-3-pro-preview"
	// DefaultImageModel はポートレートとシーン画像に使うモデルです。
	DefaultImageModel = "gemini-2.5-flash-image"
	// DefaultSpeechModel は複数話者 TTS に使うモデルです。
	DefaultSpeechModel = "gemini-2.5-flash-preview-tts"

	// defaultImageMimeType は応答に MIME タイプがないときに使います。
	defaultImageMimeType = "image/png"
)

var (
	// ErrEmptyResponse はバックエンドが空の応答を返したことを表します。
	ErrEmptyResponse = errors.New("バックエンドの応答が空です")
	// ErrMalformedStory は応答を Story として解釈できなかったことを表します。
	ErrMalformedStory = errors.New("構造生成に失敗しました: 物語データが不正です")
)

// Models はステージごとに使うモデル名です。
type Models struct {
	Story  string
	Image  string
	Speech string
}

func (m Models) withDefaults() Models {
	if m.Story == "" {
		m.Story = DefaultStoryModel
	}
	if m.Image == "" {
		m.Image = DefaultImageModel
	}
	if m.Speech == "" {
		m.Speech = DefaultSpeechModel
	}
	return m
}
