package publisher

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrPathEscape は出力先ディレクトリの外を指すパスを表します。
var ErrPathEscape = errors.New("出力先ディレクトリの外を指すパスです")

// ResolveOutputPath は、ベースとなるディレクトリパスとファイル名から最終的な出力パスを生成します。
// baseDir が空ならカレントディレクトリを基準にします。
func ResolveOutputPath(baseDir, fileName string) string {
	if strings.TrimSpace(baseDir) == "" {
		baseDir = "."
	}
	return filepath.Join(baseDir, fileName)
}

// ReplaceExt は path の拡張子を ext に置き換えます。
func ReplaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

// SafeFileName は英数字、'_'、'-' 以外の文字を '_' に置き換えたファイル名の部品を返します。
// 空になる場合は "unnamed" を返します。
func SafeFileName(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			sb.WriteRune(r)
		default:
			sb.WriteByte('_')
		}
	}
	if sb.Len() == 0 {
		return "unnamed"
	}
	return sb.String()
}

// ensureWithin は p が baseDir の内側にあることを確認します。
func ensureWithin(baseDir, p string) error {
	if strings.TrimSpace(baseDir) == "" {
		baseDir = "."
	}
	rel, err := filepath.Rel(baseDir, p)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrPathEscape, p, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel) {
		return fmt.Errorf("%w: %s", ErrPathEscape, p)
	}
	return nil
}
