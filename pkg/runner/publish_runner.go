package runner

import (
	"context"

	"github.com/shouni/go-fusion-kit/pkg/domain"
	"github.com/shouni/go-fusion-kit/pkg/publisher"
)

// ResultPublisher は確定したスロットの保存を担います。
type ResultPublisher interface {
	Publish(ctx context.Context, slots []domain.Slot, dir string) (publisher.PublishResult, error)
	SaveDebugRecords(ctx context.Context, records []domain.DebugRecord, dir string) (string, error)
}

var _ ResultPublisher = (*publisher.Publisher)(nil)
