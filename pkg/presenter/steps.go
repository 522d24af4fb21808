// Package presenter は生成の進捗と完成した物語をターミナルに描画します。
package presenter

import (
	"fmt"

	"github.com/shouni/go-cinema-kit/pkg/pipeline"
)

// Step は進捗表示の1ステップです。
type Step struct {
	Label  string
	Active bool
	Done   bool
}

type stepDef struct {
	label     string
	status    pipeline.Status
	threshold int
}

var stepDefs = []stepDef{
	{label: "Vérification des faits", status: pipeline.StatusAnalyzing, threshold: 15},
	{label: "Écriture du script", status: pipeline.StatusStoryboarding, threshold: 35},
	{label: "Casting Personnages", status: pipeline.StatusCasting, threshold: 55},
	{label: "Rendu Cinématique", status: pipeline.StatusGeneratingMedia, threshold: 85},
}

// Steps は状態から4つのステップの表示状態を計算します。
// 完了判定は進捗率がしきい値を超えたかどうかだけで決まります。
func Steps(st pipeline.State) []Step {
	steps := make([]Step, len(stepDefs))
	for i, d := range stepDefs {
		steps[i] = Step{
			Label:  d.label,
			Active: st.Status == d.status,
			Done:   st.Progress > d.threshold,
		}
	}
	return steps
}

// StatusHeadline は状態ごとの見出しです。
func StatusHeadline(s pipeline.Status) string {
	switch s {
	case pipeline.StatusAnalyzing:
		return "ANALYSE DES FAITS"
	case pipeline.StatusCasting:
		return "CASTING DES VOIX"
	case pipeline.StatusGeneratingMedia:
		return "RENDU VISUEL ET AUDIO"
	default:
		return "PROCESSUS EN COURS"
	}
}

// OrchestrationLine は進捗率から「何番目のシーンを処理中か」の表示を作ります。
func OrchestrationLine(progress int) string {
	return fmt.Sprintf("Orchestration de la scène %d...", progress/20+1)
}
