package prompts

import (
	"errors"
	"fmt"
	"strings"
	"text/template"
)

// ErrUnknownMode は登録されていないテンプレートモードを表します。
var ErrUnknownMode = errors.New("不明なプロンプトモードです")

var funcs = template.FuncMap{
	"join": strings.Join,
}

// TextPromptBuilder は go:embed したテンプレートをモード単位で保持します。
// 未定義のフィールド参照は実行時エラーになります。
type TextPromptBuilder struct {
	byMode map[string]*template.Template
}

// NewTextPromptBuilder は埋め込みテンプレートをすべて解析して TextPromptBuilder を初期化します。
func NewTextPromptBuilder() (*TextPromptBuilder, error) {
	byMode := make(map[string]*template.Template, len(allTemplates))
	for mode, src := range allTemplates {
		if strings.TrimSpace(src) == "" {
			return nil, fmt.Errorf("テンプレート %q が空です (go:embed)", mode)
		}
		t, err := template.New(mode).Funcs(funcs).Option("missingkey=error").Parse(src)
		if err != nil {
			return nil, fmt.Errorf("テンプレート %q の解析に失敗しました: %w", mode, err)
		}
		byMode[mode] = t
	}
	return &TextPromptBuilder{byMode: byMode}, nil
}

// Build は mode のテンプレートに data を流し込んだ構造生成プロンプトを返します。
func (b *TextPromptBuilder) Build(mode string, data TemplateData) (string, error) {
	t, ok := b.byMode[mode]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
	if strings.TrimSpace(data.SourceText) == "" {
		return "", errors.New("ソーステキストが空です")
	}
	if data.MinScenes > data.MaxScenes || data.MinCharacters > data.MaxCharacters {
		return "", fmt.Errorf("シーン数または登場人物数の範囲が不正です: %d..%d, %d..%d",
			data.MinScenes, data.MaxScenes, data.MinCharacters, data.MaxCharacters)
	}

	var sb strings.Builder
	if err := t.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("テンプレート %q の実行に失敗しました: %w", mode, err)
	}
	return strings.TrimSpace(sb.String()), nil
}
