package publisher

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/shouni/go-cinema-kit/pkg/domain"
)

// Export は物語ドキュメントをインデント付き JSON で書き出します。
func Export(w io.Writer, story *domain.Story) error {
	if story == nil {
		return fmt.Errorf("publisher: 物語が空です")
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(story); err != nil {
		return fmt.Errorf("publisher: JSON の書き出しに失敗しました: %w", err)
	}
	return nil
}

// Import は Export で書き出した JSON を読み込み、不変条件を検証します。
func Import(r io.Reader) (*domain.Story, error) {
	var story domain.Story
	if err := json.NewDecoder(r).Decode(&story); err != nil {
		return nil, fmt.Errorf("publisher: JSON の読み込みに失敗しました: %w", err)
	}
	if err := story.Validate(); err != nil {
		return nil, err
	}
	return &story, nil
}
