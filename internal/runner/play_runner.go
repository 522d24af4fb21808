package runner

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/shouni/go-cinema-kit/pkg/domain"
	"github.com/shouni/go-cinema-kit/pkg/player"
	"github.com/shouni/go-cinema-kit/pkg/presenter"
)

// PlayRunner は、完成した物語を端末上のプレイヤーで上映する Runner なのだ。
// 1行に1コマンドを読み、そのたびに現在のシーンを描き直すのだ。
type PlayRunner struct {
	in          io.Reader
	out         io.Writer
	interactive bool
}

// NewPlayRunner は、PlayRunnerの新しいインスタンスを生成するのだ。
// 入力が端末のときだけプロンプトを表示するのだ。
func NewPlayRunner(in io.Reader, out io.Writer) *PlayRunner {
	return &PlayRunner{in: in, out: out, interactive: isTerminal(in)}
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Run は入力が尽きるか q が入力されるまでプレイヤーを操作するのだ。
func (pr *PlayRunner) Run(ctx context.Context, story *domain.Story) error {
	if story == nil {
		return fmt.Errorf("上映する物語がないのだ: %w", domain.ErrInvalidStory)
	}
	p := player.New(story)

	if err := presenter.RenderSummary(pr.out, story); err != nil {
		return err
	}
	if err := presenter.RenderCharacters(pr.out, story); err != nil {
		return err
	}
	if err := presenter.RenderScene(pr.out, p); err != nil {
		return err
	}

	scanner := bufio.NewScanner(pr.in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if pr.interactive {
			fmt.Fprint(pr.out, "> ")
		}
		if !scanner.Scan() {
			return scanner.Err()
		}

		quit, msg := apply(p, scanner.Text())
		if quit {
			return nil
		}
		if msg != "" {
			fmt.Fprintln(pr.out, msg)
		}
		if err := presenter.RenderScene(pr.out, p); err != nil {
			return err
		}
	}
}

// apply は1行分のコマンドをプレイヤーに適用するのだ。
// 数字はそのシーン番号（1始まり）へ移動するのだ。
func apply(p *player.Player, line string) (quit bool, msg string) {
	cmd := strings.ToLower(strings.TrimSpace(line))
	switch cmd {
	case "q", "quit":
		return true, ""
	case "n", "next":
		p.Next()
	case "p", "prev":
		p.Prev()
	case "", "space", "play":
		if !p.TogglePlay() {
			return false, "(pas d'audio pour cette scène)"
		}
	case "e", "end":
		p.AudioEnded()
	case "f", "facts":
		p.ToggleFacts()
	case "esc":
		p.HideFacts()
	default:
		n, err := strconv.Atoi(cmd)
		if err != nil {
			return false, fmt.Sprintf("commande inconnue: %q", line)
		}
		p.Goto(n - 1)
	}
	return false, ""
}
