package domain

import (
	"encoding/json"
	"testing"
)

func TestParseVoice(t *testing.T) {
	tests := []struct {
		in      string
		want    Voice
		wantErr bool
	}{
		{in: "Puck", want: VoicePuck},
		{in: "charon", want: VoiceCharon},
		{in: " KORE ", want: VoiceKore},
		{in: "Fenrir", want: VoiceFenrir},
		{in: "Zephyr", want: VoiceZephyr},
		{in: "Aoede", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseVoice(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("エラーを期待しましたが nil でした (got %q)", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("予期しないエラー: %v", err)
			}
			if got != tt.want {
				t.Errorf("期待値 %q, 実際の値 %q", tt.want, got)
			}
		})
	}
}

func TestVoice_IsFemale(t *testing.T) {
	for _, v := range Voices {
		if v.IsFemale() != (v == VoiceKore) {
			t.Errorf("%s の女性判定が不正です", v)
		}
	}
}

func TestCharacter_JSON(t *testing.T) {
	t.Run("列挙内のボイスはデコードできること", func(t *testing.T) {
		var c Character
		err := json.Unmarshal([]byte(`{"id":"c1","name":"Jeanne","voice":"kore","gender":"Female"}`), &c)
		if err != nil {
			t.Fatalf("デコードに失敗しました: %v", err)
		}
		if c.Voice != VoiceKore {
			t.Errorf("期待値 Kore, 実際の値 %q", c.Voice)
		}
		if c.Gender != GenderFemale {
			t.Errorf("期待値 female, 実際の値 %q", c.Gender)
		}
	})

	t.Run("列挙外のボイスは拒否されること", func(t *testing.T) {
		var c Character
		if err := json.Unmarshal([]byte(`{"id":"c1","voice":"Alloy"}`), &c); err == nil {
			t.Error("列挙外のボイスでエラーが発生しませんでした")
		}
	})

	t.Run("アバター未設定ならフィールドが出力されないこと", func(t *testing.T) {
		data, err := json.Marshal(Character{ID: "c1", Voice: VoicePuck})
		if err != nil {
			t.Fatalf("Marshal失敗: %v", err)
		}
		var raw map[string]any
		if err := json.Unmarshal(data, &raw); err != nil {
			t.Fatalf("Unmarshal失敗: %v", err)
		}
		if _, ok := raw["avatarUrl"]; ok {
			t.Error("avatarUrl が出力されています")
		}
	})
}

func TestCharacter_WithAvatar(t *testing.T) {
	orig := Character{ID: "c1", Name: "Napoléon", Role: "Empereur", Voice: VoiceFenrir}

	t.Run("元のレコードを変更しないこと", func(t *testing.T) {
		got := orig.WithAvatar("data:image/png;base64,AAA")
		if orig.AvatarURL != "" {
			t.Error("元のレコードが変更されています")
		}
		if got.AvatarURL != "data:image/png;base64,AAA" {
			t.Errorf("アバターが設定されていません: %q", got.AvatarURL)
		}
		if got.ID != orig.ID || got.Name != orig.Name || got.Role != orig.Role || got.Voice != orig.Voice {
			t.Errorf("アバター以外のフィールドが変わっています: %+v", got)
		}
	})

	t.Run("空のハンドルでは既存のアバターが消えないこと", func(t *testing.T) {
		withAvatar := orig.WithAvatar("data:image/png;base64,AAA")
		got := withAvatar.WithAvatar("")
		if got.AvatarURL != withAvatar.AvatarURL {
			t.Errorf("アバターが消えています: %q", got.AvatarURL)
		}
	})
}

func TestCharacter_String(t *testing.T) {
	c := Character{ID: "c1", Name: "Marie"}
	if c.String() != "Marie (c1)" {
		t.Errorf("期待値 'Marie (c1)', 実際の値 '%s'", c.String())
	}
}
