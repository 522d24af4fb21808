package generator

import (
	"strings"
	"testing"
)

func TestToImageDataURL(t *testing.T) {
	jpeg := []byte{0xff, 0xd8, 0xff, 0xe0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}

	tests := []struct {
		name string
		resp *ImageResponse
		want string
	}{
		{name: "応答の MIME タイプを優先すること", resp: &ImageResponse{Data: []byte("x"), MimeType: "image/webp"}, want: "data:image/webp;base64,"},
		{name: "MIME タイプがなければ中身から判定すること", resp: &ImageResponse{Data: jpeg}, want: "data:image/jpeg;base64,"},
		{name: "判定できなければ PNG とみなすこと", resp: &ImageResponse{Data: []byte("plain")}, want: "data:image/png;base64,"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := toImageDataURL(tt.resp)
			if !strings.HasPrefix(got, tt.want) {
				t.Errorf("期待値 %s..., 実際の値 %s", tt.want, got)
			}
		})
	}
}

func TestExtractJSON(t *testing.T) {
	tests := []struct{ in, want string }{
		{in: "```json\n{\"a\":1}\n```", want: `{"a":1}`},
		{in: "```\n{\"a\":1}\n```", want: `{"a":1}`},
		{in: "Voici: {\"a\":1} fin", want: `{"a":1}`},
		{in: "  {\"a\":{\"b\":2}}  ", want: `{"a":{"b":2}}`},
		{in: "", want: ""},
	}
	for _, tt := range tests {
		if got := extractJSON(tt.in); got != tt.want {
			t.Errorf("入力 %q: 期待値 %q, 実際の値 %q", tt.in, tt.want, got)
		}
	}
}
