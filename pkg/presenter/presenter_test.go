package presenter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shouni/go-cinema-kit/pkg/audio"
	"github.com/shouni/go-cinema-kit/pkg/domain"
	"github.com/shouni/go-cinema-kit/pkg/pipeline"
	"github.com/shouni/go-cinema-kit/pkg/player"
)

func TestSteps(t *testing.T) {
	tests := []struct {
		name       string
		state      pipeline.State
		wantDone   []bool
		wantActive int
	}{
		{
			name:       "分析中",
			state:      pipeline.State{Status: pipeline.StatusAnalyzing, Progress: 10},
			wantDone:   []bool{false, false, false, false},
			wantActive: 0,
		},
		{
			name:       "キャスティング中",
			state:      pipeline.State{Status: pipeline.StatusCasting, Progress: 30},
			wantDone:   []bool{true, false, false, false},
			wantActive: 2,
		},
		{
			name:       "画像生成後",
			state:      pipeline.State{Status: pipeline.StatusGeneratingMedia, Progress: 85},
			wantDone:   []bool{true, true, true, false},
			wantActive: 3,
		},
		{
			name:       "完了",
			state:      pipeline.State{Status: pipeline.StatusReady, Progress: 100},
			wantDone:   []bool{true, true, true, true},
			wantActive: -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			steps := Steps(tt.state)
			if len(steps) != 4 {
				t.Fatalf("ステップ数 期待値 4, 実際の値 %d", len(steps))
			}
			for i, s := range steps {
				if s.Done != tt.wantDone[i] {
					t.Errorf("%s: done 期待値 %v, 実際の値 %v", s.Label, tt.wantDone[i], s.Done)
				}
				if s.Active != (i == tt.wantActive) {
					t.Errorf("%s: active が不正です", s.Label)
				}
			}
		})
	}
}

func TestStatusHeadline(t *testing.T) {
	tests := map[pipeline.Status]string{
		pipeline.StatusAnalyzing:       "ANALYSE DES FAITS",
		pipeline.StatusCasting:         "CASTING DES VOIX",
		pipeline.StatusGeneratingMedia: "RENDU VISUEL ET AUDIO",
		pipeline.StatusStoryboarding:   "PROCESSUS EN COURS",
	}
	for status, want := range tests {
		if got := StatusHeadline(status); got != want {
			t.Errorf("%s: 期待値 %s, 実際の値 %s", status, want, got)
		}
	}
	if got := OrchestrationLine(60); got != "Orchestration de la scène 4..." {
		t.Errorf("予期しない表示: %s", got)
	}
}

func TestRenderProgress(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderProgress(&buf, pipeline.State{Status: pipeline.StatusCasting, Progress: 30}); err != nil {
		t.Fatalf("予期しないエラー: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"CASTING DES VOIX", "[x] Étape: Vérification des faits", "[>] Étape: Casting Personnages", " 30%"} {
		if !strings.Contains(out, want) {
			t.Errorf("出力に %q が含まれていません:\n%s", want, out)
		}
	}

	buf.Reset()
	_ = RenderProgress(&buf, pipeline.State{Status: pipeline.StatusIdle, Error: "quota"})
	if !strings.Contains(buf.String(), "quota") {
		t.Errorf("エラーが表示されていません: %s", buf.String())
	}
}

func sceneStory() *domain.Story {
	return &domain.Story{
		Title: "Titre",
		Characters: []domain.Character{
			{ID: "c1", Name: "Gabrielle", Role: "Témoin", Voice: domain.VoiceKore, AvatarURL: "data:image/png;base64,AAAA"},
			{ID: "c2", Name: "Maximilien", Role: "Orateur", Voice: domain.VoicePuck},
		},
		Scenes: []domain.Scene{{
			ID:          1,
			Title:       "La Bastille",
			Location:    "Paris",
			Time:        "1789",
			Description: "La foule s'amasse devant la forteresse.",
			ImageURL:    "data:image/png;base64,AAAA",
			AudioURL:    audio.WAVFromPCM(make([]byte, 48000)),
			Dialogues: []domain.DialogueLine{
				{CharacterID: "c1", Text: "Ils arrivent !"},
				{CharacterID: domain.NarratorID, Text: "Le canon tonne."},
			},
			FactsUsed: []string{"14 juillet 1789"},
		}, {ID: 2, Title: "Fin"}},
	}
}

func TestRenderScene(t *testing.T) {
	p := player.New(sceneStory())

	render := func() string {
		var buf bytes.Buffer
		if err := RenderScene(&buf, p); err != nil {
			t.Fatalf("予期しないエラー: %v", err)
		}
		return buf.String()
	}

	t.Run("一時停止中はタイトルカード", func(t *testing.T) {
		out := render()
		for _, want := range []string{"Truth Lock: Factuel", "SCÈNE 1 / 2", "LA BASTILLE", "Lieu: Paris", "Époque: 1789", "1.0s", "1 // 2"} {
			if !strings.Contains(out, want) {
				t.Errorf("出力に %q が含まれていません:\n%s", want, out)
			}
		}
	})

	t.Run("再生中は台詞", func(t *testing.T) {
		p.TogglePlay()
		out := render()
		if !strings.Contains(out, "GABRIELLE") || !strings.Contains(out, "NARRATEUR") || !strings.Contains(out, `"Le canon tonne."`) {
			t.Errorf("台詞が描画されていません:\n%s", out)
		}
		p.AudioEnded()
	})

	t.Run("事実オーバーレイ", func(t *testing.T) {
		p.ToggleFacts()
		out := render()
		if !strings.Contains(out, "Sources de Vérité") || !strings.Contains(out, "[1] 14 juillet 1789") {
			t.Errorf("事実が描画されていません:\n%s", out)
		}
	})

	t.Run("空の物語", func(t *testing.T) {
		var buf bytes.Buffer
		_ = RenderScene(&buf, player.New(nil))
		if !strings.Contains(buf.String(), "aucune scène") {
			t.Errorf("予期しない出力: %s", buf.String())
		}
	})
}

func TestRenderCharacters(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderCharacters(&buf, sceneStory()); err != nil {
		t.Fatalf("予期しないエラー: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("行数 期待値 3, 実際の値 %d:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[1], "[img 3 B]") || !strings.Contains(lines[1], "Kore") {
		t.Errorf("アバター付きの行が不正です: %s", lines[1])
	}
	if !strings.Contains(lines[2], "[ ? ]") {
		t.Errorf("アバターなしはプレースホルダーのはずです: %s", lines[2])
	}
}

func TestWrap(t *testing.T) {
	got := wrap("un deux trois quatre", 9)
	if got != "un deux\ntrois\nquatre" {
		t.Errorf("予期しない折り返し: %q", got)
	}
}
