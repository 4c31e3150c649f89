package publisher

import (
	"archive/zip"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/shouni/go-fusion-kit/pkg/domain"
)

const archiveSuffix = "-collection.zip"

var whitespaceRun = regexp.MustCompile(`\s+`)

// EntryName は成功スロット内の位置（1始まり）と MIME タイプからファイル名を返します。
func EntryName(n int, mimeType string) string {
	return fmt.Sprintf("fusion_%d.%s", n, domain.ExtensionFor(mimeType))
}

// ArchiveName はアプリ名から zip のファイル名を生成します。
// 例: "Group Photo Fusion" -> "group-photo-fusion-collection.zip"
func ArchiveName(appName string) string {
	name := whitespaceRun.ReplaceAllString(strings.TrimSpace(strings.ToLower(appName)), "-")
	return name + archiveSuffix
}

// Archive は成功したスロットの画像だけをスロット順に zip として w に書き出し、格納した件数を返します。
// スロットの状態は読み取るだけで変更しません。
func Archive(w io.Writer, slots []domain.Slot) (int, error) {
	successes := domain.SuccessfulSlots(slots)
	if len(successes) == 0 {
		return 0, domain.NewError(domain.KindPackagingFailure, "", "nothing to package: no successful images")
	}

	zw := zip.NewWriter(w)
	for i, slot := range successes {
		name := EntryName(i+1, slot.Result.MIMEType)
		f, err := zw.Create(name)
		if err != nil {
			return 0, domain.WrapError(domain.KindPackagingFailure, "failed to create zip entry "+name, err)
		}
		if _, err := f.Write(slot.Result.Data); err != nil {
			return 0, domain.WrapError(domain.KindPackagingFailure, "failed to write zip entry "+name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return 0, domain.WrapError(domain.KindPackagingFailure, "failed to finalize zip", err)
	}
	return len(successes), nil
}
