package generator

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
)

// imageCache は生成済み画像のハンドルをプロンプト単位で保持します。
// 同じキーへの同時リクエストは singleflight で1回にまとめます。
type imageCache struct {
	store *cache.Cache
	group singleflight.Group
}

func newImageCache(c *cache.Cache) *imageCache {
	return &imageCache{store: c}
}

func imageCacheKey(req ImageRequest) string {
	sum := sha256.Sum256([]byte(req.Model + "\x00" + req.AspectRatio + "\x00" + req.Prompt))
	return hex.EncodeToString(sum[:])
}

// getOrGenerate はキャッシュにあればそれを返し、なければ generate を1回だけ呼びます。
func (c *imageCache) getOrGenerate(ctx context.Context, req ImageRequest, generate func(context.Context, ImageRequest) (*ImageResponse, error)) (string, error) {
	key := imageCacheKey(req)
	if v, ok := c.store.Get(key); ok {
		if url, ok := v.(string); ok {
			return url, nil
		}
	}

	val, err, _ := c.group.Do(key, func() (interface{}, error) {
		// 待機中に他のゴルーチンが生成を終えている可能性があるため再確認
		if v, ok := c.store.Get(key); ok {
			return v, nil
		}

		resp, err := generate(ctx, req)
		if err != nil {
			return nil, err
		}
		if resp == nil || len(resp.Data) == 0 {
			return nil, fmt.Errorf("画像データが空です: %w", ErrEmptyResponse)
		}

		url := toImageDataURL(resp)
		c.store.Set(key, url, cache.DefaultExpiration)
		return url, nil
	})
	if err != nil {
		return "", err
	}

	url, ok := val.(string)
	if !ok {
		return "", fmt.Errorf("unexpected return type from singleflight: %T", val)
	}
	return url, nil
}

// toImageDataURL は画像をデータURLに変換します。MIME タイプがなければ中身から判定します。
func toImageDataURL(resp *ImageResponse) string {
	mime := resp.MimeType
	if mime == "" {
		if detected := mimetype.Detect(resp.Data); strings.HasPrefix(detected.String(), "image/") {
			mime = detected.String()
		} else {
			mime = defaultImageMimeType
		}
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(resp.Data)
}
