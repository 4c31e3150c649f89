package publisher

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ResolveOutputPath は出力ディレクトリとファイル名から書き出し先のパスを生成します。
// ファイル名にディレクトリ区切りを含めることはできません。
func ResolveOutputPath(baseDir, fileName string) (string, error) {
	if fileName == "" || strings.ContainsAny(fileName, `/\`) || fileName == "." || fileName == ".." {
		return "", fmt.Errorf("無効なファイル名です: %q", fileName)
	}
	if baseDir == "" {
		baseDir = "."
	}
	return filepath.Join(baseDir, fileName), nil
}
