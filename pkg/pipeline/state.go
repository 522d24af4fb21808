package pipeline

// Status はパイプラインの状態です。
type Status string

const (
	StatusIdle            Status = "idle"
	StatusAnalyzing       Status = "analyzing"
	StatusCasting         Status = "casting"
	StatusGeneratingMedia Status = "generating_media"
	StatusReady           Status = "ready"

	// StatusStoryboarding は進捗表示のステップ名にだけ使うラベルで、遷移先にはなりません。
	StatusStoryboarding Status = "storyboarding"
)

// 各ステージ境界での進捗率です。
const (
	ProgressAnalyzing       = 10
	ProgressCasting         = 30
	ProgressGeneratingMedia = 60
	ProgressImagesDone      = 85
	ProgressReady           = 100
)

// DefaultErrorMessage はエラーにメッセージがないときに表示する文言です。
const DefaultErrorMessage = "Une erreur est survenue lors de la conversion cinématographique."

// State はパイプラインの観測可能な状態です。
type State struct {
	RunID    string
	Status   Status
	Progress int
	Error    string
}

// Busy は生成処理の実行中かどうかを返します。
func (s State) Busy() bool {
	switch s.Status {
	case StatusAnalyzing, StatusCasting, StatusGeneratingMedia:
		return true
	}
	return false
}

// Failed は直前の実行が失敗したかどうかを返します。
func (s State) Failed() bool {
	return s.Status == StatusIdle && s.Error != ""
}
