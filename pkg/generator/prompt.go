package generator

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"github.com/shouni/go-cinema-kit/pkg/domain"
)

var jsonBlockRegex = regexp.MustCompile("(?s)```(?:json)?\\s*(.*\\S)\\s*```")

// extractJSON は応答からコードフェンスを取り除き、JSON 部分を取り出します。
func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)

	if matches := jsonBlockRegex.FindStringSubmatch(raw); len(matches) > 1 {
		return matches[1]
	}
	first := strings.Index(raw, "{")
	last := strings.LastIndex(raw, "}")
	if first != -1 && last > first {
		return raw[first : last+1]
	}
	return raw
}

// parseStory は応答を Story に変換し、話者の正規化と検証を行います。
func parseStory(raw string) (*domain.Story, error) {
	rawJSON := extractJSON(raw)
	if rawJSON == "" {
		return nil, ErrEmptyResponse
	}

	var story domain.Story
	if err := json.Unmarshal([]byte(rawJSON), &story); err != nil {
		return nil, fmt.Errorf("%w (応答抜粋: %q): %w", ErrMalformedStory, truncateString(raw, 200), err)
	}
	if story.Title == "" && len(story.Scenes) == 0 && len(story.Characters) == 0 {
		return nil, fmt.Errorf("%w: title / characters / scenes がありません", ErrMalformedStory)
	}

	normalizeSpeakers(&story)
	sort.SliceStable(story.Scenes, func(i, j int) bool { return story.Scenes[i].ID < story.Scenes[j].ID })

	if err := story.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedStory, err)
	}
	return &story, nil
}

// normalizeSpeakers は登場人物に解決できない話者をナレーターに置き換えます。
func normalizeSpeakers(story *domain.Story) {
	chars := story.CharactersMap()
	for i := range story.Scenes {
		for j := range story.Scenes[i].Dialogues {
			line := &story.Scenes[i].Dialogues[j]
			if domain.IsNarrator(line.CharacterID) {
				line.CharacterID = domain.NarratorID
				continue
			}
			if chars.FindCharacter(line.CharacterID) == nil {
				slog.Warn("未知の話者をナレーターとして扱います",
					"scene", story.Scenes[i].ID, "characterId", line.CharacterID)
				line.CharacterID = domain.NarratorID
			}
		}
	}
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
