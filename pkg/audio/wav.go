// Package audio は音声合成が返す生の PCM を再生可能な WAV コンテナに変換します。
package audio

import (
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
)

const (
	// SampleRate は音声合成が返す PCM のサンプルレートです。
	SampleRate = 24000
	// Channels はチャンネル数です（モノラル）。
	Channels = 1
	// BitsPerSample はサンプルあたりのビット数です。
	BitsPerSample = 16
	// HeaderSize は WAV ヘッダーのバイト数です。
	HeaderSize = 44

	blockAlign = Channels * BitsPerSample / 8
	byteRate   = SampleRate * blockAlign

	// MimeType は WAV コンテナの MIME タイプです。
	MimeType = "audio/wav"
)

var (
	// ErrShortHeader はヘッダーが44バイトに満たない場合のエラーです。
	ErrShortHeader = errors.New("WAVヘッダーが短すぎます")
	// ErrNotWAV はマジックナンバーが一致しない場合のエラーです。
	ErrNotWAV = errors.New("WAVコンテナではありません")
)

// Header は WAV ヘッダーの主要フィールドです。
type Header struct {
	RIFFSize      uint32
	AudioFormat   uint16
	Channels      uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
	DataSize      uint32
}

// EncodeWAV は 24kHz / 16bit / モノラルの PCM に44バイトのヘッダーを付けて返します。
func EncodeWAV(pcm []byte) []byte {
	out := make([]byte, HeaderSize+len(pcm))
	le := binary.LittleEndian

	copy(out[0:4], "RIFF")
	le.PutUint32(out[4:8], uint32(36+len(pcm)))
	copy(out[8:12], "WAVE")
	copy(out[12:16], "fmt ")
	le.PutUint32(out[16:20], 16)
	le.PutUint16(out[20:22], 1)
	le.PutUint16(out[22:24], Channels)
	le.PutUint32(out[24:28], SampleRate)
	le.PutUint32(out[28:32], byteRate)
	le.PutUint16(out[32:34], blockAlign)
	le.PutUint16(out[34:36], BitsPerSample)
	copy(out[36:40], "data")
	le.PutUint32(out[40:44], uint32(len(pcm)))
	copy(out[HeaderSize:], pcm)

	return out
}

// DecodeBase64PCM は base64 文字列を PCM バイト列に戻します。
func DecodeBase64PCM(b64 string) ([]byte, error) {
	pcm, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, fmt.Errorf("PCMデータのbase64デコードに失敗しました: %w", err)
	}
	return pcm, nil
}

// ToDataURL は WAV バイト列を参照可能なデータURLに変換します。
func ToDataURL(wav []byte) string {
	return "data:" + MimeType + ";base64," + base64.StdEncoding.EncodeToString(wav)
}

// WAVFromPCM は PCM を WAV に包み、データURLとして返します。
func WAVFromPCM(pcm []byte) string {
	return ToDataURL(EncodeWAV(pcm))
}

// WAVFromBase64PCM は base64 の PCM を WAV のデータURLに変換します。
func WAVFromBase64PCM(b64 string) (string, error) {
	pcm, err := DecodeBase64PCM(b64)
	if err != nil {
		return "", err
	}
	return WAVFromPCM(pcm), nil
}

// ParseHeader は WAV の先頭44バイトを読み取ります。
func ParseHeader(wav []byte) (Header, error) {
	if len(wav) < HeaderSize {
		return Header{}, ErrShortHeader
	}
	if string(wav[0:4]) != "RIFF" || string(wav[8:12]) != "WAVE" ||
		string(wav[12:16]) != "fmt " || string(wav[36:40]) != "data" {
		return Header{}, ErrNotWAV
	}

	le := binary.LittleEndian
	return Header{
		RIFFSize:      le.Uint32(wav[4:8]),
		AudioFormat:   le.Uint16(wav[20:22]),
		Channels:      le.Uint16(wav[22:24]),
		SampleRate:    le.Uint32(wav[24:28]),
		ByteRate:      le.Uint32(wav[28:32]),
		BlockAlign:    le.Uint16(wav[32:34]),
		BitsPerSample: le.Uint16(wav[34:36]),
		DataSize:      le.Uint32(wav[40:44]),
	}, nil
}
