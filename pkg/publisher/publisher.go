package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/shouni/go-fusion-kit/pkg/domain"
)

const debugRecordsName = "debug_records.json"

// PublishResult は書き出したファイルの情報を保持します。
type PublishResult struct {
	ArchivePath string
	Count       int
}

// Publisher はバッチの成果物を保存します。
type Publisher struct {
	writer  OutputWriter
	appName string
}

// NewPublisher は新しい Publisher を生成します。writer が nil の場合はローカルに書き出します。
func NewPublisher(writer OutputWriter, appName string) *Publisher {
	if writer == nil {
		writer = LocalWriter{}
	}
	return &Publisher{writer: writer, appName: appName}
}

// Publish は成功した画像を zip にまとめて dir に書き出します。
func (p *Publisher) Publish(ctx context.Context, slots []domain.Slot, dir string) (PublishResult, error) {
	var buf bytes.Buffer
	n, err := Archive(&buf, slots)
	if err != nil {
		slog.Error("Packaging failed", "error", err)
		return PublishResult{}, err
	}

	archivePath, err := ResolveOutputPath(dir, ArchiveName(p.appName))
	if err != nil {
		return PublishResult{}, domain.WrapError(domain.KindPackagingFailure, "出力パスの解決に失敗しました", err)
	}
	if err := p.writer.Write(ctx, archivePath, &buf, "application/zip"); err != nil {
		slog.Error("Packaging failed", "path", archivePath, "error", err)
		return PublishResult{}, domain.WrapError(domain.KindPackagingFailure, "zip の書き込みに失敗しました", err)
	}

	slog.Info("Archive written", "path", archivePath, "images", n)
	return PublishResult{ArchivePath: archivePath, Count: n}, nil
}

// SaveImages は成功した画像を1枚ずつ fusion_<n>.<ext> として dir に書き出し、そのパスを返します。
func (p *Publisher) SaveImages(ctx context.Context, slots []domain.Slot, dir string) ([]string, error) {
	var paths []string
	for i, slot := range domain.SuccessfulSlots(slots) {
		fullPath, err := ResolveOutputPath(dir, EntryName(i+1, slot.Result.MIMEType))
		if err != nil {
			return nil, fmt.Errorf("出力パスの解決に失敗しました: %w", err)
		}
		if err := p.writer.Write(ctx, fullPath, bytes.NewReader(slot.Result.Data), slot.Result.MIMEType); err != nil {
			return nil, fmt.Errorf("画像の書き込みに失敗しました %s: %w", fullPath, err)
		}
		paths = append(paths, fullPath)
	}
	return paths, nil
}

// SaveDebugRecords はデバッグ記録を JSON として dir に書き出します。記録が無い場合は何もせず空文字列を返します。
func (p *Publisher) SaveDebugRecords(ctx context.Context, records []domain.DebugRecord, dir string) (string, error) {
	if len(records) == 0 {
		return "", nil
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return "", fmt.Errorf("デバッグ記録のエンコードに失敗しました: %w", err)
	}

	fullPath, err := ResolveOutputPath(dir, debugRecordsName)
	if err != nil {
		return "", err
	}
	if err := p.writer.Write(ctx, fullPath, bytes.NewReader(data), "application/json"); err != nil {
		return "", fmt.Errorf("デバッグ記録の書き込みに失敗しました: %w", err)
	}
	return fullPath, nil
}
