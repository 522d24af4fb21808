package domain

// Story は構造生成ステージが返す物語ドキュメント全体です。
// 以降のステージは画像や音声のハンドルを追加するだけで、構造は変更しません。
type Story struct {
	Title          string      `json:"title"`
	NarrativeStyle string      `json:"narrativeStyle"`
	Summary        string      `json:"summary"`
	Characters     []Character `json:"characters"`
	Scenes         []Scene     `json:"scenes"`
}

// Scene は物語の1シーンです。ID は並び順のキーになります。
// VisualPrompt は物語の言語に関係なく常に英語で書かれます。
type Scene struct {
	ID           int            `json:"id"`
	Title        string         `json:"title"`
	Location     string         `json:"location"`
	Time         string         `json:"time"`
	Description  string         `json:"description"`
	VisualPrompt string         `json:"visualPrompt"`
	ImageURL     string         `json:"imageUrl,omitempty"`
	Dialogues    []DialogueLine `json:"dialogues"`
	AudioURL     string         `json:"audioUrl,omitempty"`
	FactsUsed    []string       `json:"factsUsed"`
}

// DialogueLine はシーン内の台詞1行です。
// CharacterID が登場人物に解決できない場合はナレーターの台詞として扱います。
type DialogueLine struct {
	CharacterID string `json:"characterId"`
	Text        string `json:"text"`
	Emotion     string `json:"emotion,omitempty"`
}

// MediaStats は物語に付与済みのメディアの数です。
type MediaStats struct {
	Avatars int
	Images  int
	Audio   int
}

// WithImage は画像ハンドルを付与した新しい Scene を返します。
// 空のハンドルは無視され、既存のハンドルが消えることはありません。
func (s Scene) WithImage(url string) Scene {
	out := s.clone()
	if url != "" {
		out.ImageURL = url
	}
	return out
}

// WithAudio は音声ハンドルを付与した新しい Scene を返します。
func (s Scene) WithAudio(url string) Scene {
	out := s.clone()
	if url != "" {
		out.AudioURL = url
	}
	return out
}

func (s Scene) clone() Scene {
	out := s
	if s.Dialogues != nil {
		out.Dialogues = make([]DialogueLine, len(s.Dialogues))
		copy(out.Dialogues, s.Dialogues)
	}
	if s.FactsUsed != nil {
		out.FactsUsed = make([]string, len(s.FactsUsed))
		copy(out.FactsUsed, s.FactsUsed)
	}
	return out
}

// Clone は Story のディープコピーを返します。
func (st *Story) Clone() *Story {
	if st == nil {
		return nil
	}
	out := *st
	if st.Characters != nil {
		out.Characters = make([]Character, len(st.Characters))
		copy(out.Characters, st.Characters)
	}
	if st.Scenes != nil {
		out.Scenes = make([]Scene, len(st.Scenes))
		for i, sc := range st.Scenes {
			out.Scenes[i] = sc.clone()
		}
	}
	return &out
}

// WithCharacters は登場人物を差し替えた新しい Story を返します。
func (st *Story) WithCharacters(chars []Character) *Story {
	out := st.Clone()
	out.Characters = make([]Character, len(chars))
	copy(out.Characters, chars)
	return out
}

// WithScenes はシーンを差し替えた新しい Story を返します。
func (st *Story) WithScenes(scenes []Scene) *Story {
	out := st.Clone()
	out.Scenes = make([]Scene, len(scenes))
	for i, sc := range scenes {
		out.Scenes[i] = sc.clone()
	}
	return out
}

// MediaStats は付与済みのアバター、シーン画像、シーン音声を数えます。
func (st *Story) MediaStats() MediaStats {
	var m MediaStats
	if st == nil {
		return m
	}
	for _, c := range st.Characters {
		if c.AvatarURL != "" {
			m.Avatars++
		}
	}
	for _, sc := range st.Scenes {
		if sc.ImageURL != "" {
			m.Images++
		}
		if sc.AudioURL != "" {
			m.Audio++
		}
	}
	return m
}
