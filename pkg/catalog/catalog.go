// Package catalog は入力フォームで選べる語り口（スタイル）と形式（フォーマット）の一覧を提供します。
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

var (
	// ErrUnknownStyle は一覧にないスタイルIDを指定したときのエラーです。
	ErrUnknownStyle = errors.New("不明なスタイルです")
	// ErrUnknownFormat は一覧にないフォーマットIDを指定したときのエラーです。
	ErrUnknownFormat = errors.New("不明なフォーマットです")
)

// Entry はスタイルまたはフォーマットの1項目です。
type Entry struct {
	ID          string `yaml:"id"`
	Label       string `yaml:"label"`
	Description string `yaml:"description,omitempty"`
}

// PromptLabel は構造生成プロンプトに埋め込む表記を返します。
func (e Entry) PromptLabel() string {
	if e.Description == "" {
		return e.Label
	}
	return fmt.Sprintf("%s (%s)", e.Label, e.Description)
}

// Catalog はスタイルとフォーマットの一覧です。
type Catalog struct {
	DefaultStyle  string  `yaml:"default_style"`
	DefaultFormat string  `yaml:"default_format"`
	Styles        []Entry `yaml:"styles"`
	Formats       []Entry `yaml:"formats"`
}

// Load は埋め込みの既定カタログを読み込みます。
func Load() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// LoadFile は YAML ファイルからカタログを読み込みます。
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("カタログファイルの読み込みに失敗しました: %w", err)
	}
	return Parse(data)
}

// Parse は YAML を解析し、ID の重複と既定値の存在を検証します。
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("カタログの解析に失敗しました: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	if len(c.Styles) == 0 || len(c.Formats) == 0 {
		return errors.New("カタログにスタイルまたはフォーマットがありません")
	}
	for kind, entries := range map[string][]Entry{"スタイル": c.Styles, "フォーマット": c.Formats} {
		seen := make(map[string]struct{}, len(entries))
		for _, e := range entries {
			if e.ID == "" {
				return fmt.Errorf("%s の ID が空です", kind)
			}
			if _, dup := seen[e.ID]; dup {
				return fmt.Errorf("%s の ID が重複しています: %s", kind, e.ID)
			}
			seen[e.ID] = struct{}{}
		}
	}
	if _, err := c.Style(c.DefaultStyle); err != nil {
		return fmt.Errorf("既定のスタイル: %w", err)
	}
	if _, err := c.Format(c.DefaultFormat); err != nil {
		return fmt.Errorf("既定のフォーマット: %w", err)
	}
	return nil
}

// Style は ID に一致するスタイルを返します。空の ID は既定のスタイルになります。
func (c *Catalog) Style(id string) (Entry, error) {
	if strings.TrimSpace(id) == "" {
		id = c.DefaultStyle
	}
	return find(c.Styles, id, ErrUnknownStyle)
}

// Format は ID に一致するフォーマットを返します。空の ID は既定のフォーマットになります。
func (c *Catalog) Format(id string) (Entry, error) {
	if strings.TrimSpace(id) == "" {
		id = c.DefaultFormat
	}
	return find(c.Formats, id, ErrUnknownFormat)
}

func find(entries []Entry, id string, notFound error) (Entry, error) {
	id = strings.ToLower(strings.TrimSpace(id))
	for _, e := range entries {
		if e.ID == id {
			return e, nil
		}
	}
	return Entry{}, fmt.Errorf("%w: '%s'", notFound, id)
}
