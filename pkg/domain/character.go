package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Voice は音声合成で使用できるプリセットボイスです。
// 値は Puck, Charon, Kore, Fenrir, Zephyr の5つに限られます。
type Voice string

const (
	VoicePuck   Voice = "Puck"
	VoiceCharon Voice = "Charon"
	VoiceKore   Voice = "Kore"
	VoiceFenrir Voice = "Fenrir"
	VoiceZephyr Voice = "Zephyr"

	// DefaultNarratorVoice はナレーターに割り当てるボイスです。
	DefaultNarratorVoice = VoiceCharon
)

// Voices は使用可能なボイスの一覧です。
var Voices = []Voice{VoicePuck, VoiceCharon, VoiceKore, VoiceFenrir, VoiceZephyr}

const (
	// NarratorID は登場人物に紐づかない台詞の話者を表す予約IDです。
	NarratorID = "narrator"
	// NarratorName はナレーターの表示名で、音声合成の話者名にも使います。
	NarratorName = "Narrateur"
)

// Gender は登場人物の性別タグです。
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Character は物語の登場人物です。
type Character struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	Bio          string `json:"bio"`
	Voice        Voice  `json:"voice"`
	Gender       Gender `json:"gender"`
	AvatarPrompt string `json:"avatarPrompt"`
	AvatarURL    string `json:"avatarUrl,omitempty"`
}

// ParseVoice は文字列をボイスに変換します。大文字小文字は区別しません。
func ParseVoice(s string) (Voice, error) {
	v := strings.TrimSpace(s)
	for _, known := range Voices {
		if strings.EqualFold(v, string(known)) {
			return known, nil
		}
	}
	return "", fmt.Errorf("未対応のボイスです: %q", s)
}

// IsValid はボイスが列挙値のいずれかであるかを返します。
func (v Voice) IsValid() bool {
	for _, known := range Voices {
		if v == known {
			return true
		}
	}
	return false
}

// IsFemale は女性ボイスかどうかを返します。女性ボイスは Kore のみです。
func (v Voice) IsFemale() bool {
	return v == VoiceKore
}

// UnmarshalJSON は列挙外のボイスを拒否します。
func (v *Voice) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("ボイスは文字列である必要があります: %w", err)
	}
	parsed, err := ParseVoice(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// UnmarshalJSON は "Male" のような表記揺れを小文字に揃えます。
func (g *Gender) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("性別は文字列である必要があります: %w", err)
	}
	*g = Gender(strings.ToLower(strings.TrimSpace(s)))
	return nil
}

// String はキャラクターの情報を文字列で返します。
func (c Character) String() string {
	return fmt.Sprintf("%s (%s)", c.Name, c.ID)
}

// WithAvatar はアバターのハンドルを付与した新しい Character を返します。
// 空のハンドルは無視されます。
func (c Character) WithAvatar(url string) Character {
	out := c
	if url != "" {
		out.AvatarURL = url
	}
	return out
}
