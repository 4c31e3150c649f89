package runner

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/go-fusion-kit/pkg/domain"
	"github.com/shouni/go-fusion-kit/pkg/orchestrator"
	"github.com/shouni/go-fusion-kit/pkg/publisher"
)

// BatchOrchestrator は FuseRunner が利用するオーケストレーターの操作です。
type BatchOrchestrator interface {
	StartBatch(ctx context.Context, req orchestrator.BatchRequest) (string, error)
	RetrySlot(slotID string) error
	Wait(ctx context.Context) (orchestrator.State, error)
}

// FuseRequest は1回の合成実行の入力です。
type FuseRequest struct {
	Batch orchestrator.BatchRequest
	// RetryRounds は error のスロットを手動リトライする最大ラウンド数です。
	RetryRounds int
	OutputDir   string
}

// FuseResult は合成実行の結果です。Publish はパッケージングに失敗した場合はゼロ値です。
type FuseResult struct {
	BatchID   string
	Slots     []domain.Slot
	Debug     []domain.DebugRecord
	Publish   publisher.PublishResult
	DebugPath string
}

// FuseRunner はバッチの開始から保存までを一通り実行します。
type FuseRunner struct {
	orchestrator BatchOrchestrator
	publisher    ResultPublisher
}

// NewFuseRunner は、依存関係を注入して初期化します。
func NewFuseRunner(o BatchOrchestrator, pub ResultPublisher) *FuseRunner {
	return &FuseRunner{orchestrator: o, publisher: pub}
}

// Run はバッチを開始して全スロットの確定を待ち、失敗したスロットを指定回数までリトライしてから成果物を保存するのだ。
func (r *FuseRunner) Run(ctx context.Context, req FuseRequest) (FuseResult, error) {
	batchID, err := r.orchestrator.StartBatch(ctx, req.Batch)
	if err != nil {
		return FuseResult{}, err
	}

	state, err := r.orchestrator.Wait(ctx)
	if err != nil {
		return FuseResult{BatchID: batchID}, fmt.Errorf("バッチの完了待ちに失敗しました: %w", err)
	}

	for round := 1; round <= req.RetryRounds; round++ {
		failed := failedSlots(state.Slots)
		if len(failed) == 0 {
			break
		}
		slog.Info("Retrying failed slots", "round", round, "count", len(failed))
		for _, slot := range failed {
			if err := r.orchestrator.RetrySlot(slot.ID); err != nil {
				return FuseResult{BatchID: batchID}, fmt.Errorf("スロット %d のリトライに失敗しました: %w", slot.Index+1, err)
			}
		}
		if state, err = r.orchestrator.Wait(ctx); err != nil {
			return FuseResult{BatchID: batchID}, fmt.Errorf("リトライの完了待ちに失敗しました: %w", err)
		}
	}

	result := FuseResult{BatchID: batchID, Slots: state.Slots, Debug: state.Debug}
	for _, slot := range failedSlots(state.Slots) {
		slog.Warn("Slot ended with error",
			"slot_index", slot.Index+1,
			"kind", slot.ErrKind,
			"error", slot.Err,
			"guidance", domain.Guidance(slot.ErrKind))
	}

	if len(state.Debug) > 0 {
		path, err := r.publisher.SaveDebugRecords(ctx, state.Debug, req.OutputDir)
		if err != nil {
			return result, err
		}
		result.DebugPath = path
	}

	pub, err := r.publisher.Publish(ctx, state.Slots, req.OutputDir)
	if err != nil {
		return result, err
	}
	result.Publish = pub
	return result, nil
}

func failedSlots(slots []domain.Slot) []domain.Slot {
	var out []domain.Slot
	for _, s := range slots {
		if s.Status == domain.StatusError {
			out = append(out, s)
		}
	}
	return out
}
