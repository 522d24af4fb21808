package prompts

import (
	_ "embed"

	"github.com/shouni/go-cinema-kit/pkg/domain"
)

const (
	// ModeCinematic は事実に基づいた映画的ストーリーボードを生成するモードです。
	ModeCinematic = "cinematic"
)

// TemplateData は構造生成プロンプトのテンプレートに渡すデータ構造です。
type TemplateData struct {
	SourceText    string
	Style         string
	Format        string
	MinScenes     int
	MaxScenes     int
	MinCharacters int
	MaxCharacters int
	Voices        []string
	FemaleVoice   string
	NarratorID    string
}

// NewTemplateData は既定のシーン数、人数、ボイス一覧を埋めた TemplateData を返します。
func NewTemplateData(sourceText, style, format string) TemplateData {
	voices := make([]string, len(domain.Voices))
	for i, v := range domain.Voices {
		voices[i] = string(v)
	}
	return TemplateData{
		SourceText:    sourceText,
		Style:         style,
		Format:        format,
		MinScenes:     3,
		MaxScenes:     5,
		MinCharacters: 2,
		MaxCharacters: 3,
		Voices:        voices,
		FemaleVoice:   string(domain.VoiceKore),
		NarratorID:    domain.NarratorID,
	}
}

var (
	//go:embed structure.md
	StructurePrompt string
)

// allTemplates はモードとテンプレート文字列を紐づけるマップです。
var allTemplates = map[string]string{
	ModeCinematic: StructurePrompt,
}
