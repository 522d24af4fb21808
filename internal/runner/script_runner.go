package runner

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/go-cinema-kit/pkg/domain"
	"github.com/shouni/go-cinema-kit/pkg/pipeline"
)

// StructureGenerator は物語の構造だけを生成するステージなのだ。
type StructureGenerator interface {
	GenerateStructure(ctx context.Context, text, style, format string) (*domain.Story, error)
}

// Validator は入力を検証し、プロンプト用のスタイルとフォーマットを返すのだ。
type Validator interface {
	Validate(req pipeline.Request) (style, format string, err error)
}

// ScriptRunner は、メディアを作らずに物語の構成（台本）だけを生成する Runner なのだ。
type ScriptRunner struct {
	validator Validator
	generator StructureGenerator
}

// NewScriptRunner は、ScriptRunnerの新しいインスタンスを生成して返すのだ。
func NewScriptRunner(v Validator, g StructureGenerator) *ScriptRunner {
	return &ScriptRunner{validator: v, generator: g}
}

// Run は、入力の検証と構造生成を一気に行うのだ。
func (sr *ScriptRunner) Run(ctx context.Context, req pipeline.Request) (*domain.Story, error) {
	style, format, err := sr.validator.Validate(req)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "物語の構成を生成するのだ...", "style", style, "format", format)
	story, err := sr.generator.GenerateStructure(ctx, req.Text, style, format)
	if err != nil {
		return nil, fmt.Errorf("台本の生成に失敗したのだ: %w", err)
	}
	return story, nil
}
