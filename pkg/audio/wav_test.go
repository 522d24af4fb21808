package audio

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"testing"
	"time"
)

func TestEncodeWAV_Layout(t *testing.T) {
	for _, n := range []int{0, 1, 2, 480, 48000} {
		pcm := bytes.Repeat([]byte{0x01, 0x80}, n/2)
		if n%2 == 1 {
			pcm = append(pcm, 0x7f)
		}

		wav := EncodeWAV(pcm)

		if len(wav) != HeaderSize+n {
			t.Fatalf("N=%d: 長さ 期待値 %d, 実際の値 %d", n, HeaderSize+n, len(wav))
		}

		want := make([]byte, 0, HeaderSize)
		want = append(want, "RIFF"...)
		want = binary.LittleEndian.AppendUint32(want, uint32(n+36))
		want = append(want, "WAVEfmt "...)
		want = binary.LittleEndian.AppendUint32(want, 16)
		want = binary.LittleEndian.AppendUint16(want, 1)
		want = binary.LittleEndian.AppendUint16(want, 1)
		want = binary.LittleEndian.AppendUint32(want, 24000)
		want = binary.LittleEndian.AppendUint32(want, 48000)
		want = binary.LittleEndian.AppendUint16(want, 2)
		want = binary.LittleEndian.AppendUint16(want, 16)
		want = append(want, "data"...)
		want = binary.LittleEndian.AppendUint32(want, uint32(n))

		if !bytes.Equal(wav[:HeaderSize], want) {
			t.Errorf("N=%d: ヘッダーが一致しません\n期待値 % x\n実際の値 % x", n, want, wav[:HeaderSize])
		}
		if !bytes.Equal(wav[HeaderSize:], pcm) {
			t.Errorf("N=%d: PCMペイロードが一致しません", n)
		}
	}
}

func TestParseHeader(t *testing.T) {
	t.Run("EncodeWAVの出力を読み戻せること", func(t *testing.T) {
		h, err := ParseHeader(EncodeWAV(make([]byte, 96000)))
		if err != nil {
			t.Fatalf("予期しないエラー: %v", err)
		}
		if h.RIFFSize != 96036 || h.DataSize != 96000 {
			t.Errorf("サイズが不正です: %+v", h)
		}
		if h.AudioFormat != 1 || h.Channels != 1 || h.SampleRate != 24000 || h.ByteRate != 48000 ||
			h.BlockAlign != 2 || h.BitsPerSample != 16 {
			t.Errorf("フォーマットが不正です: %+v", h)
		}
		if h.Duration() != 2*time.Second {
			t.Errorf("再生時間 期待値 2s, 実際の値 %s", h.Duration())
		}
	})

	t.Run("短いデータはエラーになること", func(t *testing.T) {
		if _, err := ParseHeader(make([]byte, 10)); !errors.Is(err, ErrShortHeader) {
			t.Errorf("ErrShortHeader を期待しましたが %v でした", err)
		}
	})

	t.Run("マジックが違えばエラーになること", func(t *testing.T) {
		wav := EncodeWAV(nil)
		copy(wav[0:4], "RIFX")
		if _, err := ParseHeader(wav); !errors.Is(err, ErrNotWAV) {
			t.Errorf("ErrNotWAV を期待しましたが %v でした", err)
		}
	})
}

func TestWAVFromBase64PCM(t *testing.T) {
	pcm := []byte{1, 2, 3, 4}

	url, err := WAVFromBase64PCM(base64.StdEncoding.EncodeToString(pcm))
	if err != nil {
		t.Fatalf("予期しないエラー: %v", err)
	}

	mime, data, err := DecodeDataURL(url)
	if err != nil {
		t.Fatalf("データURLのデコードに失敗しました: %v", err)
	}
	if mime != MimeType {
		t.Errorf("MIMEタイプ 期待値 %s, 実際の値 %s", MimeType, mime)
	}
	if !bytes.Equal(data, EncodeWAV(pcm)) {
		t.Error("データURLの中身が EncodeWAV の結果と一致しません")
	}

	if _, err := WAVFromBase64PCM("***"); err == nil {
		t.Error("不正な base64 でエラーが発生しませんでした")
	}
}

func TestDurationOf(t *testing.T) {
	d, err := DurationOf(WAVFromPCM(make([]byte, 24000)))
	if err != nil {
		t.Fatalf("予期しないエラー: %v", err)
	}
	if d != 500*time.Millisecond {
		t.Errorf("期待値 500ms, 実際の値 %s", d)
	}

	if _, err := DurationOf("https://example.com/a.wav"); err == nil {
		t.Error("データURL以外でエラーが発生しませんでした")
	}
}
