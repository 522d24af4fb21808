package prompts

import (
	"strings"

	"google.golang.org/genai"

	"github.com/shouni/go-cinema-kit/pkg/domain"
)

func str() *genai.Schema { return &genai.Schema{Type: genai.TypeString} }

// StorySchema はバックエンドに要求する Story の JSON スキーマを返します。
// 呼び出しごとに新しい値を返すので、呼び出し側が変更しても構いません。
func StorySchema() *genai.Schema {
	voices := make([]string, len(domain.Voices))
	for i, v := range domain.Voices {
		voices[i] = string(v)
	}

	character := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"id":   str(),
			"name": str(),
			"role": str(),
			"bio":  str(),
			"voice": {
				Type:        genai.TypeString,
				Description: strings.Join(voices, ", "),
				Enum:        voices,
			},
			"gender":       {Type: genai.TypeString, Enum: []string{string(domain.GenderMale), string(domain.GenderFemale)}},
			"avatarPrompt": str(),
		},
		Required: []string{"id", "name", "role", "voice", "gender", "avatarPrompt"},
	}

	dialogue := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"characterId": str(),
			"text":        str(),
			"emotion":     str(),
		},
		Required: []string{"characterId", "text"},
	}

	scene := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"id":           {Type: genai.TypeInteger},
			"title":        str(),
			"location":     str(),
			"time":         str(),
			"description":  str(),
			"visualPrompt": str(),
			"factsUsed":    {Type: genai.TypeArray, Items: str()},
			"dialogues":    {Type: genai.TypeArray, Items: dialogue},
		},
		Required: []string{"id", "title", "description", "visualPrompt", "dialogues", "factsUsed"},
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"title":          str(),
			"narrativeStyle": str(),
			"summary":        str(),
			"characters":     {Type: genai.TypeArray, Items: character},
			"scenes":         {Type: genai.TypeArray, Items: scene},
		},
		Required: []string{"title", "summary", "characters", "scenes"},
	}
}
