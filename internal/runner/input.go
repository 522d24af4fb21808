package runner

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// stdinPath は標準入力を表すパスなのだ。
const stdinPath = "-"

// ReadSource は入力ファイル、または標準入力からソース文章を読み込むのだ。
// path が空か "-" のときは stdin を使うのだ。
func ReadSource(path string, stdin io.Reader) (string, error) {
	if path == "" || path == stdinPath {
		if stdin == nil {
			return "", fmt.Errorf("標準入力が利用できないのだ")
		}
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("標準入力の読み込みに失敗したのだ: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("入力ファイル '%s' の読み込みに失敗したのだ: %w", path, err)
	}
	return strings.TrimSpace(string(data)), nil
}
