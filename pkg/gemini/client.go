// Package gemini は google.golang.org/genai を使って generator.ContentModel を実装します。
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"google.golang.org/genai"

	"github.com/shouni/go-cinema-kit/pkg/generator"
)

const (
	// DefaultTemperature は構造生成に使う温度です。
	DefaultTemperature = float32(0.2)
	// DefaultHTTPTimeout は1リクエストあたりのタイムアウトです。
	DefaultHTTPTimeout = 120 * time.Second

	jsonMimeType = "application/json"
)

var (
	// ErrNoCandidates は応答に候補が含まれていないことを表します。
	ErrNoCandidates = errors.New("応答に候補がありません")
	// ErrNoInlineData は応答にバイナリデータが含まれていないことを表します。
	ErrNoInlineData = errors.New("応答にインラインデータがありません")
)

// Config は Client の設定です。
type Config struct {
	APIKey      string
	BaseURL     string
	HTTPTimeout time.Duration
	Temperature *float32
}

// Client は genai.Client をラップし、物語生成に必要な3種類の呼び出しを提供します。
type Client struct {
	client      *genai.Client
	temperature *float32
}

var _ generator.ContentModel = (*Client)(nil)

// NewClient は Gemini API バックエンドのクライアントを初期化します。
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("APIキーが設定されていません")
	}
	timeout := cfg.HTTPTimeout
	if timeout <= 0 {
		timeout = DefaultHTTPTimeout
	}
	temperature := cfg.Temperature
	if temperature == nil {
		temperature = genai.Ptr(DefaultTemperature)
	}

	cc := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: timeout},
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	c, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("Geminiクライアントの初期化に失敗しました: %w", err)
	}
	return &Client{client: c, temperature: temperature}, nil
}

// GenerateStructured はスキーマ付きで JSON を要求し、応答テキストを返します。
func (c *Client) GenerateStructured(ctx context.Context, model, prompt string, schema *genai.Schema) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature:      c.temperature,
		ResponseMIMEType: jsonMimeType,
		ResponseSchema:   schema,
	})
	if err != nil {
		return "", fmt.Errorf("構造生成リクエストに失敗しました (model: %s): %w", model, err)
	}
	if len(resp.Candidates) == 0 {
		return "", ErrNoCandidates
	}
	return resp.Text(), nil
}

// GenerateImage は画像を生成し、最初のインラインデータを返します。
func (c *Client) GenerateImage(ctx context.Context, req generator.ImageRequest) (*generator.ImageResponse, error) {
	cfg := &genai.GenerateContentConfig{}
	if req.AspectRatio != "" {
		cfg.ImageConfig = &genai.ImageConfig{AspectRatio: req.AspectRatio}
	}

	resp, err := c.client.Models.GenerateContent(ctx, req.Model, genai.Text(req.Prompt), cfg)
	if err != nil {
		return nil, fmt.Errorf("画像生成リクエストに失敗しました (model: %s): %w", req.Model, err)
	}
	blob, err := firstInlineData(resp)
	if err != nil {
		return nil, err
	}
	return &generator.ImageResponse{Data: blob.Data, MimeType: blob.MIMEType}, nil
}

// GenerateSpeech は話者ごとのボイス設定で音声を生成し、生 PCM を返します。
func (c *Client) GenerateSpeech(ctx context.Context, req generator.SpeechRequest) (*generator.SpeechResponse, error) {
	speakers := make([]*genai.SpeakerVoiceConfig, 0, len(req.Speakers))
	for _, s := range req.Speakers {
		speakers = append(speakers, &genai.SpeakerVoiceConfig{
			Speaker: s.Speaker,
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: string(s.Voice)},
			},
		})
	}

	resp, err := c.client.Models.GenerateContent(ctx, req.Model, genai.Text(req.Script), &genai.GenerateContentConfig{
		ResponseModalities: []string{string(genai.ModalityAudio)},
		SpeechConfig: &genai.SpeechConfig{
			MultiSpeakerVoiceConfig: &genai.MultiSpeakerVoiceConfig{SpeakerVoiceConfigs: speakers},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("音声生成リクエストに失敗しました (model: %s): %w", req.Model, err)
	}
	blob, err := firstInlineData(resp)
	if err != nil {
		return nil, err
	}
	return &generator.SpeechResponse{PCM: blob.Data, MimeType: blob.MIMEType}, nil
}

func firstInlineData(resp *genai.GenerateContentResponse) (*genai.Blob, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, ErrNoCandidates
	}
	cand := resp.Candidates[0]
	if cand.Content == nil {
		return nil, fmt.Errorf("%w (finishReason: %s)", ErrNoInlineData, cand.FinishReason)
	}
	for _, part := range cand.Content.Parts {
		if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
			return part.InlineData, nil
		}
	}
	return nil, fmt.Errorf("%w (finishReason: %s)", ErrNoInlineData, cand.FinishReason)
}
