package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/shouni/go-cinema-kit/pkg/domain"
)

// MinInputLength は前後の空白を除いた入力テキストの最小文字数です。
const MinInputLength = 50

var (
	// ErrInputTooShort は入力テキストが短すぎることを表します。
	ErrInputTooShort = errors.New("入力テキストが短すぎます")
	// ErrRunInProgress は実行中に Run が呼ばれたことを表します。
	ErrRunInProgress = errors.New("生成処理はすでに実行中です")
)

// Request は1回の生成の入力です。
type Request struct {
	Text   string
	Style  string
	Format string
}

// Orchestrator は4つのステージを順番に実行し、状態と物語のスナップショットを管理します。
type Orchestrator struct {
	stages   Stages
	catalog  Catalog
	onChange ChangeFunc

	mu    sync.Mutex
	state State
	story *domain.Story
}

// Option は Orchestrator の設定を変更します。
type Option func(*Orchestrator)

// WithOnChange は状態遷移の通知先を設定します。
func WithOnChange(fn ChangeFunc) Option {
	return func(o *Orchestrator) { o.onChange = fn }
}

// NewOrchestrator は Orchestrator を初期化します。
func NewOrchestrator(stages Stages, cat Catalog, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		stages:  stages,
		catalog: cat,
		state:   State{Status: StatusIdle},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Snapshot は現在の状態と物語を返します。
func (o *Orchestrator) Snapshot() (State, *domain.Story) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state, o.story
}

// Reset は物語を破棄して初期状態に戻します。
func (o *Orchestrator) Reset() {
	o.mu.Lock()
	o.story = nil
	o.state = State{Status: StatusIdle}
	st := o.state
	o.mu.Unlock()
	o.notify(st, nil)
}

// Validate はリクエストを検証し、プロンプトに渡すスタイルとフォーマットの表記を返します。
func (o *Orchestrator) Validate(req Request) (style, format string, err error) {
	if n := utf8.RuneCountInString(strings.TrimSpace(req.Text)); n < MinInputLength {
		return "", "", fmt.Errorf("%w: %d 文字 (最低 %d 文字)", ErrInputTooShort, n, MinInputLength)
	}
	if o.catalog == nil {
		return req.Style, req.Format, nil
	}
	s, err := o.catalog.Style(req.Style)
	if err != nil {
		return "", "", err
	}
	f, err := o.catalog.Format(req.Format)
	if err != nil {
		return "", "", err
	}
	return s.PromptLabel(), f.PromptLabel(), nil
}

// Run は構造生成、アバター、シーン画像、シーン音声の順にステージを実行します。
// 失敗した場合は状態を idle に戻してエラーメッセージを記録し、最後に完了したステージの物語を返します。
func (o *Orchestrator) Run(ctx context.Context, req Request) (*domain.Story, error) {
	style, format, err := o.Validate(req)
	if err != nil {
		return nil, err
	}

	o.mu.Lock()
	if o.state.Busy() {
		o.mu.Unlock()
		return nil, ErrRunInProgress
	}
	runID := uuid.NewString()
	o.story = nil
	o.state = State{RunID: runID, Status: StatusAnalyzing, Progress: ProgressAnalyzing}
	o.mu.Unlock()
	o.notify(State{RunID: runID, Status: StatusAnalyzing, Progress: ProgressAnalyzing}, nil)

	logger := slog.With("run_id", runID)
	logger.InfoContext(ctx, "物語の生成を開始します", "style", style, "format", format)

	story, err := o.stages.GenerateStructure(ctx, strings.TrimSpace(req.Text), style, format)
	if err != nil {
		return o.fail(ctx, logger, err)
	}
	o.advance(story, StatusCasting, ProgressCasting)

	if story, err = o.stages.GenerateAvatars(ctx, story); err != nil {
		return o.fail(ctx, logger, err)
	}
	o.advance(story, StatusGeneratingMedia, ProgressGeneratingMedia)

	if story, err = o.stages.GenerateSceneImages(ctx, story); err != nil {
		return o.fail(ctx, logger, err)
	}
	o.advance(story, StatusGeneratingMedia, ProgressImagesDone)

	if story, err = o.stages.GenerateSceneAudio(ctx, story); err != nil {
		return o.fail(ctx, logger, err)
	}
	o.advance(story, StatusReady, ProgressReady)

	m := story.MediaStats()
	logger.InfoContext(ctx, "物語の生成が完了しました",
		"title", story.Title, "avatars", m.Avatars, "images", m.Images, "audio", m.Audio)
	return story, nil
}

// advance は物語のスナップショットを差し替えて次の状態へ進めます。進捗は減りません。
func (o *Orchestrator) advance(story *domain.Story, status Status, progress int) {
	o.mu.Lock()
	o.story = story
	o.state.Status = status
	if progress > o.state.Progress {
		o.state.Progress = progress
	}
	st := o.state
	o.mu.Unlock()
	o.notify(st, story)
}

func (o *Orchestrator) fail(ctx context.Context, logger *slog.Logger, err error) (*domain.Story, error) {
	msg := err.Error()
	if msg == "" {
		msg = DefaultErrorMessage
	}

	o.mu.Lock()
	o.state.Status = StatusIdle
	o.state.Error = msg
	st, story := o.state, o.story
	o.mu.Unlock()

	logger.ErrorContext(ctx, "物語の生成に失敗しました", "progress", st.Progress, "error", err)
	o.notify(st, story)
	return story, err
}

func (o *Orchestrator) notify(st State, story *domain.Story) {
	if o.onChange != nil {
		o.onChange(st, story)
	}
}
