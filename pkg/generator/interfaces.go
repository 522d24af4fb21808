package generator

import (
	"context"

	"google.golang.org/genai"

	"github.com/shouni/go-cinema-kit/pkg/prompts"
)

// ContentModel は生成バックエンドとの契約です。pkg/gemini が実装します。
type ContentModel interface {
	// GenerateStructured はスキーマに従った JSON テキストを返します。
	GenerateStructured(ctx context.Context, model, prompt string, schema *genai.Schema) (string, error)
	// GenerateImage は画像を1枚生成します。
	GenerateImage(ctx context.Context, req ImageRequest) (*ImageResponse, error)
	// GenerateSpeech は複数話者の音声を生 PCM で返します。
	GenerateSpeech(ctx context.Context, req SpeechRequest) (*SpeechResponse, error)
}

// ImageRequest は画像生成リクエストです。AspectRatio が空ならモデルの既定値を使います。
type ImageRequest struct {
	Model       string
	Prompt      string
	AspectRatio string
}

// ImageResponse は生成された画像のバイナリです。
type ImageResponse struct {
	Data     []byte
	MimeType string
}

// SpeechRequest は複数話者 TTS のリクエストです。
type SpeechRequest struct {
	Model    string
	Script   string
	Speakers []prompts.SpeakerVoice
}

// SpeechResponse は 24kHz / 16bit / モノラルの生 PCM です。
type SpeechResponse struct {
	PCM      []byte
	MimeType string
}
