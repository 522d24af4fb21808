package audio

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

// DecodeDataURL はデータURLから MIME タイプと本体を取り出します。
func DecodeDataURL(url string) (mimeType string, data []byte, err error) {
	rest, ok := strings.CutPrefix(url, "data:")
	if !ok {
		return "", nil, fmt.Errorf("データURLではありません: %.32q", url)
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, fmt.Errorf("データURLの形式が不正です")
	}
	mimeType, isBase64 := strings.CutSuffix(meta, ";base64")
	if !isBase64 {
		return "", nil, fmt.Errorf("base64 以外のデータURLには対応していません: %s", meta)
	}
	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("データURLのデコードに失敗しました: %w", err)
	}
	return mimeType, data, nil
}

// Duration は data チャンクの長さから再生時間を求めます。
func (h Header) Duration() time.Duration {
	if h.ByteRate == 0 {
		return 0
	}
	return time.Duration(h.DataSize) * time.Second / time.Duration(h.ByteRate)
}

// DurationOf は WAV のデータURLから再生時間を求めます。
func DurationOf(url string) (time.Duration, error) {
	_, wav, err := DecodeDataURL(url)
	if err != nil {
		return 0, err
	}
	h, err := ParseHeader(wav)
	if err != nil {
		return 0, err
	}
	return h.Duration(), nil
}
