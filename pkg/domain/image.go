package domain

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const (
	// MinSubjects / MaxSubjects はバッチ開始に必要な被写体数の範囲です。
	MinSubjects = 2
	MaxSubjects = 4
	// MinImages / MaxImages は1回の生成呼び出しに添付できる画像数（被写体＋背景）の範囲です。
	MinImages = 2
	MaxImages = 5
	// SlotsPerBatch は1バッチあたりのスロット数です。
	SlotsPerBatch = 4
)

var acceptedMIMETypes = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpg",
	"image/webp": "webp",
}

// Image はアップロードされた被写体または背景の画像です。ID はファイル内容から導出しません。
type Image struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	MIMEType string `json:"mime_type"`
	Data     []byte `json:"-"`
}

// Subject は被写体画像と割り当てられたペルソナの組です。
type Subject struct {
	Image     Image  `json:"image"`
	PersonaID string `json:"persona_id,omitempty"`
}

// NewImage はバイト列から MIME タイプを判定し、受け付け可能な形式であれば新しい ID を付与して返します。
func NewImage(name string, data []byte) (Image, error) {
	if len(data) == 0 {
		return Image{}, NewInputError(fmt.Sprintf("%s: image is empty", name))
	}
	mimeType := DetectMIMEType(data)
	if _, ok := acceptedMIMETypes[mimeType]; !ok {
		return Image{}, NewInputError(fmt.Sprintf("%s: unsupported file type %q (want PNG, JPEG or WEBP)", name, mimeType))
	}
	return Image{
		ID:       uuid.NewString(),
		Name:     name,
		MIMEType: mimeType,
		Data:     data,
	}, nil
}

// LoadImage はローカルファイルを読み込んで Image を生成します。
func LoadImage(path string) (Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Image{}, fmt.Errorf("画像ファイルの読み込みに失敗しました: %w", err)
	}
	return NewImage(filepath.Base(path), data)
}

// DetectMIMEType は http.DetectContentType の結果からパラメータ部分を除いた MIME タイプを返します。
func DetectMIMEType(data []byte) string {
	mimeType := http.DetectContentType(data)
	if i := strings.Index(mimeType, ";"); i >= 0 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}
	return mimeType
}

// ExtensionFor は MIME タイプに対応する拡張子を返します。未知の形式は png とみなします。
func ExtensionFor(mimeType string) string {
	if ext, ok := acceptedMIMETypes[mimeType]; ok {
		return ext
	}
	return "png"
}

// IsAcceptedMIMEType は被写体・背景として受け付ける形式かどうかを返します。
func IsAcceptedMIMEType(mimeType string) bool {
	_, ok := acceptedMIMETypes[mimeType]
	return ok
}

// ValidateSubjects はバッチ開始前の被写体セットを検証します。
func ValidateSubjects(subjects []Subject) error {
	if n := len(subjects); n < MinSubjects || n > MaxSubjects {
		return NewInputError(fmt.Sprintf("please upload between %d and %d subject images (got %d)", MinSubjects, MaxSubjects, n))
	}
	for i, s := range subjects {
		if len(s.Image.Data) == 0 {
			return NewInputError(fmt.Sprintf("subject %d has no image data", i+1))
		}
		if !IsAcceptedMIMEType(s.Image.MIMEType) {
			return NewInputError(fmt.Sprintf("subject %d: unsupported file type %q", i+1, s.Image.MIMEType))
		}
	}
	return nil
}
