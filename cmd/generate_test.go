package cmd

import (
	"strings"
	"testing"

	"github.com/shouni/go-cinema-kit/pkg/catalog"
)

func TestGenerateExample_UsesCatalogIDs(t *testing.T) {
	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("カタログの読み込みに失敗したのだ: %v", err)
	}

	args := strings.Fields(generateCmd.Example)
	flagValue := func(name string) string {
		for i, a := range args {
			if a == name && i+1 < len(args) {
				return args[i+1]
			}
		}
		return ""
	}

	style, format := flagValue("--style"), flagValue("--format")
	if style == "" || format == "" {
		t.Fatalf("使用例に --style と --format が必要なのだ: %q", generateCmd.Example)
	}
	if _, err := cat.Style(style); err != nil {
		t.Errorf("使用例のスタイル %q がカタログにないのだ: %v", style, err)
	}
	if _, err := cat.Format(format); err != nil {
		t.Errorf("使用例のフォーマット %q がカタログにないのだ: %v", format, err)
	}
}
