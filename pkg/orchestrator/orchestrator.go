package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/shouni/go-fusion-kit/pkg/domain"
	"github.com/shouni/go-fusion-kit/pkg/generator"
	"github.com/shouni/go-fusion-kit/pkg/prompts"
)

var (
	// ErrNoBatch は操作対象のバッチが存在しないことを示します。
	ErrNoBatch = errors.New("no active batch")
	// ErrSlotNotFound は現在のバッチに該当するスロットが無いことを示します。
	ErrSlotNotFound = errors.New("slot not found")
	// ErrSlotNotRetryable は error 状態以外のスロットをリトライしようとしたことを示します。
	ErrSlotNotRetryable = errors.New("slot is not in error state")
)

// BatchRequest はバッチ開始の入力です。
type BatchRequest struct {
	Subjects   []domain.Subject
	Background *domain.Image
	// ScenarioID が空の場合はカタログ先頭のシナリオを使います。
	ScenarioID string
	Quality    domain.Quality
	Debug      bool
}

// Options は Orchestrator の任意設定です。
type Options struct {
	// Limiter は外部呼び出しの間隔を制御します。nil なら制限しません。
	Limiter *rate.Limiter
	Policy  Policy
	Metrics *Metrics
	Logger  *slog.Logger
}

// Orchestrator は1バッチ4スロットの並列生成と、スロット単位のリトライを管理します。
type Orchestrator struct {
	generator generator.ImageGenerator
	prompts   *prompts.FusionPromptBuilder
	limiter   *rate.Limiter
	policy    Policy
	metrics   *Metrics
	logger    *slog.Logger
	store     *Store

	mu          sync.Mutex
	batchCtx    context.Context
	cancelBatch context.CancelFunc
	wg          sync.WaitGroup
}

// New は Orchestrator の新しいインスタンスを生成します。
func New(gen generator.ImageGenerator, pb *prompts.FusionPromptBuilder, opts Options) (*Orchestrator, error) {
	if gen == nil {
		return nil, fmt.Errorf("ImageGenerator は必須です")
	}
	if pb == nil {
		return nil, fmt.Errorf("PromptBuilder は必須です")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Orchestrator{
		generator: gen,
		prompts:   pb,
		limiter:   opts.Limiter,
		policy:    opts.Policy,
		metrics:   opts.Metrics,
		logger:    opts.Logger,
		store:     NewStore(),
	}, nil
}

// StartBatch はプロンプトを1つだけコンパイルし、4スロットを generating で作成して並列に生成を開始します。
// 入力検証に失敗した場合は何も開始せず、現在の状態も変更しません。
// 実行中のバッチがあれば破棄され、その結果は反映されません。
func (o *Orchestrator) StartBatch(ctx context.Context, req BatchRequest) (string, error) {
	batch, err := o.prepare(req)
	if err != nil {
		return "", err
	}

	slotIDs := make([]string, domain.SlotsPerBatch)
	for i := range slotIDs {
		slotIDs[i] = uuid.NewString()
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.cancelBatch != nil {
		o.cancelBatch()
	}
	o.batchCtx, o.cancelBatch = context.WithCancel(ctx)
	o.store.Dispatch(BatchStarted{Batch: batch, SlotIDs: slotIDs})

	o.logger.Info("Starting batch",
		"batch_id", batch.ID,
		"scenario", batch.Scenario.ID,
		"quality", batch.Quality,
		"subjects", len(batch.Subjects),
		"images", len(batch.Images),
		"debug", batch.Debug)

	for i, id := range slotIDs {
		o.launch(o.batchCtx, batch, id, i, "initial")
	}
	return batch.ID, nil
}

func (o *Orchestrator) prepare(req BatchRequest) (*Batch, error) {
	if err := domain.ValidateSubjects(req.Subjects); err != nil {
		return nil, err
	}
	if bg := req.Background; bg != nil {
		if len(bg.Data) == 0 || !domain.IsAcceptedMIMEType(bg.MIMEType) {
			return nil, domain.NewInputError(fmt.Sprintf("background: unsupported file type %q", bg.MIMEType))
		}
	}

	compiled, err := o.prompts.Build(req.ScenarioID, req.Subjects, req.Quality, req.Background != nil)
	if err != nil {
		return nil, err
	}

	images := make([]domain.Image, 0, len(req.Subjects)+1)
	for _, s := range req.Subjects {
		images = append(images, s.Image)
	}
	if compiled.Options.HasBackground {
		images = append(images, *req.Background)
	}
	if compiled.Options.BackgroundDropped {
		o.logger.Info("Background is not used by this scenario", "scenario", compiled.Scenario.ID)
	}

	return &Batch{
		ID:         uuid.NewString(),
		Scenario:   compiled.Scenario,
		Quality:    compiled.Options.Quality,
		Subjects:   append([]domain.Subject(nil), req.Subjects...),
		Background: req.Background,
		Images:     images,
		Prompt:     compiled.Prompt,
		Debug:      req.Debug,
	}, nil
}

// RetrySlot は error 状態のスロットを、同じプロンプト・同じ画像で再実行します。
// 他のスロットの状態には一切触れず、他のスロットの処理を待つこともありません。
func (o *Orchestrator) RetrySlot(slotID string) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	state := o.store.Snapshot()
	if state.Batch == nil {
		return ErrNoBatch
	}
	slot, ok := state.Slot(slotID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrSlotNotFound, slotID)
	}
	if slot.Status != domain.StatusError {
		return fmt.Errorf("%w: %s is %s", ErrSlotNotRetryable, slotID, slot.Status)
	}

	o.store.Dispatch(SlotRetrying{BatchID: state.Batch.ID, SlotID: slotID})
	o.metrics.observeRetry("manual")
	o.launch(o.batchCtx, state.Batch, slotID, slot.Index, "retry")
	return nil
}

// DiscardBatch は現在のバッチを破棄します。実行中の呼び出しはキャンセルされ、後から届いた結果は無視されます。
func (o *Orchestrator) DiscardBatch() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.cancelBatch != nil {
		o.cancelBatch()
		o.cancelBatch = nil
	}
	o.store.Dispatch(BatchDiscarded{})
	o.logger.Info("Batch discarded")
}

// ClearDebug は入力が変更されたときにデバッグ記録を消去します。
func (o *Orchestrator) ClearDebug() {
	o.store.Dispatch(DebugCleared{})
}

// Snapshot は現在の状態を返します。
func (o *Orchestrator) Snapshot() State {
	return o.store.Snapshot()
}

// Changed は次の状態変化で close されるチャネルを返します。
func (o *Orchestrator) Changed() <-chan struct{} {
	return o.store.Changed()
}

// Wait は全スロットが確定するまで待ち、その時点の状態を返します。
func (o *Orchestrator) Wait(ctx context.Context) (State, error) {
	for {
		changed := o.store.Changed()
		state := o.store.Snapshot()
		if !state.Generating() {
			return state, nil
		}
		select {
		case <-ctx.Done():
			return state, ctx.Err()
		case <-changed:
		}
	}
}

// Close は現在のバッチを破棄し、実行中のゴルーチンの終了を待ちます。
func (o *Orchestrator) Close() {
	o.DiscardBatch()
	o.wg.Wait()
}

// launch は1スロット分の生成を別ゴルーチンで開始します。呼び出し側は o.mu を保持していること。
func (o *Orchestrator) launch(ctx context.Context, b *Batch, slotID string, index int, trigger string) {
	logger := o.logger.With("batch_id", b.ID, "slot_index", index+1, "slot_id", slotID, "trigger", trigger)

	o.wg.Add(1)
	go func() {
		defer o.wg.Done()

		logger.Info("Starting slot generation")
		startTime := time.Now()
		result, err := o.call(ctx, b, logger)

		state := o.store.Dispatch(SlotSettled{
			BatchID: b.ID,
			SlotID:  slotID,
			Result:  result,
			Err:     err,
			At:      time.Now(),
		})
		if state.BatchID() != b.ID {
			o.metrics.observeOrphan()
			logger.Debug("Discarding result of an abandoned batch", "error", err)
			return
		}

		o.metrics.observeSettled(b.Scenario.ID, err)
		duration := time.Since(startTime).Round(time.Millisecond)
		if err != nil {
			logger.Warn("Slot generation failed", "kind", domain.KindOf(err), "error", err, "duration", duration)
			return
		}
		logger.Info("Slot generation completed", "duration", duration)
	}()
}

// call はポリシーに従って外部呼び出しを行います。
func (o *Orchestrator) call(ctx context.Context, b *Batch, logger *slog.Logger) (*domain.GeneratedImage, error) {
	var out *domain.GeneratedImage
	attempt := 0

	operation := func() error {
		attempt++
		if attempt > 1 {
			o.metrics.observeRetry("auto")
		}
		if o.limiter != nil {
			if err := o.limiter.Wait(ctx); err != nil {
				return backoff.Permanent(err)
			}
		}

		callCtx, cancel := o.policy.callContext(ctx)
		defer cancel()

		start := time.Now()
		res, err := o.generator.Generate(callCtx, b.Images, b.Prompt)
		o.metrics.observeCall(time.Since(start))
		if err != nil {
			if ctx.Err() != nil || !domain.IsTransient(err) {
				return backoff.Permanent(err)
			}
			return err
		}
		out = res
		return nil
	}

	notify := func(err error, wait time.Duration) {
		logger.Warn("Transient failure, retrying", "attempt", attempt, "wait", wait, "error", err)
	}

	if err := backoff.RetryNotify(operation, o.policy.backOff(ctx), notify); err != nil {
		return nil, err
	}
	return out, nil
}
