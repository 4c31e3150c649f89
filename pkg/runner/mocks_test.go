package runner

import (
	"context"

	"github.com/shouni/go-fusion-kit/pkg/domain"
	"github.com/shouni/go-fusion-kit/pkg/orchestrator"
	"github.com/shouni/go-fusion-kit/pkg/publisher"
)

// --- Mocks ---

type mockOrchestrator struct {
	startFn func(ctx context.Context, req orchestrator.BatchRequest) (string, error)
	retryFn func(slotID string) error
	waitFn  func(ctx context.Context) (orchestrator.State, error)

	retried []string
}

func (m *mockOrchestrator) StartBatch(ctx context.Context, req orchestrator.BatchRequest) (string, error) {
	return m.startFn(ctx, req)
}

func (m *mockOrchestrator) RetrySlot(slotID string) error {
	m.retried = append(m.retried, slotID)
	if m.retryFn != nil {
		return m.retryFn(slotID)
	}
	return nil
}

func (m *mockOrchestrator) Wait(ctx context.Context) (orchestrator.State, error) {
	return m.waitFn(ctx)
}

type mockPublisher struct {
	publishFn func(slots []domain.Slot, dir string) (publisher.PublishResult, error)
	debugFn   func(records []domain.DebugRecord, dir string) (string, error)
}

func (m *mockPublisher) Publish(ctx context.Context, slots []domain.Slot, dir string) (publisher.PublishResult, error) {
	return m.publishFn(slots, dir)
}

func (m *mockPublisher) SaveDebugRecords(ctx context.Context, records []domain.DebugRecord, dir string) (string, error) {
	if m.debugFn != nil {
		return m.debugFn(records, dir)
	}
	return "", nil
}
