package domain

import "strings"

// CharactersMap はIDをキーとしたキャラクターの検索用マップです。
type CharactersMap map[string]Character

// CharactersMap は Story の登場人物をマップ形式に変換します。
func (st *Story) CharactersMap() CharactersMap {
	m := make(CharactersMap, len(st.Characters))
	for _, c := range st.Characters {
		m[c.ID] = c
	}
	return m
}

// FindCharacter は IDからキャラクター情報を特定します。
func (m CharactersMap) FindCharacter(id string) *Character {
	if m == nil {
		return nil
	}
	if char, ok := m[id]; ok {
		res := char
		return &res
	}
	return nil
}

// FindCharacter は Story 内で ID に一致する登場人物を返します。見つからなければ nil です。
func (st *Story) FindCharacter(id string) *Character {
	for _, c := range st.Characters {
		if c.ID == id {
			res := c
			return &res
		}
	}
	return nil
}

// SpeakerName は台詞の話者名を返します。解決できない話者はナレーターになります。
func (st *Story) SpeakerName(line DialogueLine) string {
	if c := st.FindCharacter(line.CharacterID); c != nil && c.Name != "" {
		return c.Name
	}
	return NarratorName
}

// IsNarrator は ID がナレーターの予約IDかどうかを返します。
func IsNarrator(id string) bool {
	return strings.EqualFold(strings.TrimSpace(id), NarratorID)
}
