// Package player は完成した物語をシーン単位で再生するための状態を管理します。
package player

import (
	"fmt"

	"github.com/shouni/go-cinema-kit/pkg/domain"
)

// Player はシーン位置、再生中フラグ、事実オーバーレイの表示フラグを保持します。
// シーンのない物語ではすべての操作が何もしません。
type Player struct {
	story     *domain.Story
	index     int
	playing   bool
	showFacts bool
}

// New は最初のシーンを選択した Player を返します。
func New(story *domain.Story) *Player {
	return &Player{story: story}
}

// Story は再生中の物語を返します。
func (p *Player) Story() *domain.Story { return p.story }

// Len はシーン数です。
func (p *Player) Len() int {
	if p.story == nil {
		return 0
	}
	return len(p.story.Scenes)
}

// Index は現在のシーン位置（0始まり）です。
func (p *Player) Index() int { return p.index }

// Playing は音声の再生中かどうかを返します。
func (p *Player) Playing() bool { return p.playing }

// FactsVisible は事実オーバーレイが表示中かどうかを返します。
func (p *Player) FactsVisible() bool { return p.showFacts }

// Scene は現在のシーンを返します。シーンがなければ false です。
func (p *Player) Scene() (domain.Scene, bool) {
	if p.Len() == 0 {
		return domain.Scene{}, false
	}
	return p.story.Scenes[p.index], true
}

// Next は次のシーンへ進みます。最後のシーンでは何もしません。
func (p *Player) Next() bool {
	if p.index >= p.Len()-1 {
		return false
	}
	p.moveTo(p.index + 1)
	return true
}

// Prev は前のシーンへ戻ります。最初のシーンでは何もしません。
func (p *Player) Prev() bool {
	if p.index <= 0 {
		return false
	}
	p.moveTo(p.index - 1)
	return true
}

// Goto は i 番目のシーンへ移動します。範囲外の値は両端に丸めます。
func (p *Player) Goto(i int) bool {
	n := p.Len()
	if n == 0 {
		return false
	}
	i = max(0, min(i, n-1))
	if i == p.index {
		return false
	}
	p.moveTo(i)
	return true
}

func (p *Player) moveTo(i int) {
	p.index = i
	p.playing = false
	p.showFacts = false
}

// TogglePlay は再生と一時停止を切り替えます。現在のシーンに音声がなければ何もしません。
func (p *Player) TogglePlay() bool {
	sc, ok := p.Scene()
	if !ok || sc.AudioURL == "" {
		return false
	}
	p.playing = !p.playing
	return true
}

// AudioEnded は音声の再生終了を通知します。
func (p *Player) AudioEnded() {
	p.playing = false
}

// ToggleFacts は事実オーバーレイの表示を切り替えます。
func (p *Player) ToggleFacts() {
	if p.Len() == 0 {
		return
	}
	p.showFacts = !p.showFacts
}

// HideFacts は事実オーバーレイを閉じます。
func (p *Player) HideFacts() {
	p.showFacts = false
}

// Progress は (index+1)/n*100 の進捗率です。シーンがなければ 0 です。
func (p *Player) Progress() float64 {
	n := p.Len()
	if n == 0 {
		return 0
	}
	return float64(p.index+1) / float64(n) * 100
}

// Position は "i / n" 形式の位置表示です。
func (p *Player) Position() string {
	n := p.Len()
	if n == 0 {
		return "0 / 0"
	}
	return fmt.Sprintf("%d / %d", p.index+1, n)
}
