package imgutil

import (
	kitimg "github.com/shouni/gemini-image-kit/pkg/imgutil"
)

// DefaultJPEGQuality はインライン送信用に再圧縮する際の既定品質です。
const DefaultJPEGQuality = 90

// FitInline は data が limit バイトを超える場合に JPEG へ再圧縮します。
// 再圧縮できない形式（WEBP など）や、圧縮しても小さくならない場合は元のデータを返します。
// 戻り値の bool は再圧縮したかどうかです。
func FitInline(data []byte, mimeType string, limit int) ([]byte, string, bool) {
	if limit <= 0 || len(data) <= limit {
		return data, mimeType, false
	}
	if mimeType != "image/png" && mimeType != "image/jpeg" {
		return data, mimeType, false
	}
	compressed, err := kitimg.CompressToJPEG(data, DefaultJPEGQuality)
	if err != nil || len(compressed) >= len(data) {
		return data, mimeType, false
	}
	return compressed, "image/jpeg", true
}
