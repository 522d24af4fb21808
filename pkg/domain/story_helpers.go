package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidStory は Story の不変条件違反を表します。
var ErrInvalidStory = errors.New("物語データが不正です")

// Validate は Story の不変条件を検証し、違反をまとめて返します。
//   - 登場人物の ID は物語内で一意
//   - ボイスは列挙値のいずれか
//   - 台詞の CharacterID は登場人物かナレーターに解決できる
//
// 事実に基づいているか（Truth Lock）は検証しません。
func (st *Story) Validate() error {
	if st == nil {
		return fmt.Errorf("%w: story が nil です", ErrInvalidStory)
	}

	var errs []error
	seen := make(map[string]struct{}, len(st.Characters))
	for i, c := range st.Characters {
		if c.ID == "" {
			errs = append(errs, fmt.Errorf("登場人物 %d の ID が空です", i+1))
			continue
		}
		if IsNarrator(c.ID) {
			errs = append(errs, fmt.Errorf("登場人物 %s の ID はナレーター用に予約されています", c.ID))
		}
		if _, dup := seen[c.ID]; dup {
			errs = append(errs, fmt.Errorf("登場人物の ID が重複しています: %s", c.ID))
		}
		seen[c.ID] = struct{}{}
		if !c.Voice.IsValid() {
			errs = append(errs, fmt.Errorf("登場人物 %s のボイスが不正です: %q", c.ID, c.Voice))
		}
	}

	for _, sc := range st.Scenes {
		for j, line := range sc.Dialogues {
			if IsNarrator(line.CharacterID) {
				continue
			}
			if _, ok := seen[line.CharacterID]; !ok {
				errs = append(errs, fmt.Errorf("シーン %d の台詞 %d が未知の話者を参照しています: %q", sc.ID, j+1, line.CharacterID))
			}
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidStory, errors.Join(errs...))
}
