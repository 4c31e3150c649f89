package orchestrator

import (
	"time"

	"github.com/shouni/go-fusion-kit/pkg/domain"
)

// Batch は1回のバッチ開始時に確定した不変の入力です。リトライでも同じ値を再利用します。
type Batch struct {
	ID         string
	Scenario   domain.Scenario
	Quality    domain.Quality
	Subjects   []domain.Subject
	Background *domain.Image
	// Images は実際にモデルへ送る画像（被写体＋背景）です。非対応シナリオでは背景を含みません。
	Images []domain.Image
	Prompt string
	Debug  bool
}

// State はオーケストレーターの状態全体です。Reduce 以外で変更してはいけません。
type State struct {
	Batch *Batch
	Slots []domain.Slot
	Debug []domain.DebugRecord
}

// BatchID は現在のバッチ ID を返します。バッチが無い場合は空文字列です。
func (s State) BatchID() string {
	if s.Batch == nil {
		return ""
	}
	return s.Batch.ID
}

// Generating はいずれかのスロットが生成中であれば true を返します。
// 全スロットが確定するまで true のままです。
func (s State) Generating() bool {
	for _, slot := range s.Slots {
		if slot.Status == domain.StatusGenerating {
			return true
		}
	}
	return false
}

// Slot は ID でスロットを検索します。
func (s State) Slot(id string) (domain.Slot, bool) {
	for _, slot := range s.Slots {
		if slot.ID == id {
			return slot, true
		}
	}
	return domain.Slot{}, false
}

// Counts はステータスごとのスロット数を返します。
func (s State) Counts() map[domain.SlotStatus]int {
	counts := make(map[domain.SlotStatus]int, 3)
	for _, slot := range s.Slots {
		counts[slot.Status]++
	}
	return counts
}

// Action は状態遷移を表すイベントです。
type Action interface {
	isAction()
}

// BatchStarted は新しいバッチを開始し、全スロットを generating で作成します。以前のバッチは破棄されます。
type BatchStarted struct {
	Batch   *Batch
	SlotIDs []string
}

// SlotSettled は1スロットの呼び出し結果です。Result と Err のどちらか一方だけが設定されます。
type SlotSettled struct {
	BatchID string
	SlotID  string
	Result  *domain.GeneratedImage
	Err     error
	At      time.Time
}

// SlotRetrying は error 状態のスロットを generating に戻します。
type SlotRetrying struct {
	BatchID string
	SlotID  string
}

// BatchDiscarded は現在のバッチを破棄します（やり直し）。
type BatchDiscarded struct{}

// DebugCleared は入力変更に伴いデバッグ記録を消去します。
type DebugCleared struct{}

func (BatchStarted) isAction()   {}
func (SlotSettled) isAction()    {}
func (SlotRetrying) isAction()   {}
func (BatchDiscarded) isAction() {}
func (DebugCleared) isAction()   {}

// Reduce は純粋な状態遷移関数です。引数の State は変更せず、変更が必要なスライスはコピーします。
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case BatchStarted:
		slots := make([]domain.Slot, len(a.SlotIDs))
		for i, id := range a.SlotIDs {
			slots[i] = domain.Slot{ID: id, Index: i, Status: domain.StatusGenerating, Attempts: 1}
		}
		return State{Batch: a.Batch, Slots: slots}

	case SlotSettled:
		i := slotIndex(s, a.BatchID, a.SlotID)
		if i < 0 || s.Slots[i].Status != domain.StatusGenerating {
			return s
		}
		slots := append([]domain.Slot(nil), s.Slots...)
		slot := slots[i]
		if a.Err != nil {
			slot.Status = domain.StatusError
			slot.Result = nil
			slot.Err = a.Err.Error()
			slot.ErrKind = domain.KindOf(a.Err)
		} else {
			slot.Status = domain.StatusSuccess
			slot.Result = a.Result
			slot.Err = ""
			slot.ErrKind = ""
		}
		slots[i] = slot
		next := State{Batch: s.Batch, Slots: slots, Debug: s.Debug}
		if a.Err == nil && s.Batch.Debug && a.Result != nil {
			next.Debug = appendDebug(s.Debug, s.Batch, slot.ID, a.Result, a.At)
		}
		return next

	case SlotRetrying:
		i := slotIndex(s, a.BatchID, a.SlotID)
		if i < 0 || s.Slots[i].Status != domain.StatusError {
			return s
		}
		slots := append([]domain.Slot(nil), s.Slots...)
		slots[i].Status = domain.StatusGenerating
		slots[i].Err = ""
		slots[i].ErrKind = ""
		slots[i].Attempts++
		return State{Batch: s.Batch, Slots: slots, Debug: s.Debug}

	case BatchDiscarded:
		return State{}

	case DebugCleared:
		return State{Batch: s.Batch, Slots: s.Slots}
	}
	return s
}

// slotIndex は現在のバッチに属するスロットの位置を返します。別バッチ宛て（孤立した結果）は -1 です。
func slotIndex(s State, batchID, slotID string) int {
	if s.Batch == nil || s.Batch.ID != batchID {
		return -1
	}
	for i, slot := range s.Slots {
		if slot.ID == slotID {
			return i
		}
	}
	return -1
}

func appendDebug(records []domain.DebugRecord, b *Batch, slotID string, result *domain.GeneratedImage, at time.Time) []domain.DebugRecord {
	out := make([]domain.DebugRecord, len(records), len(records)+1)
	copy(out, records)
	return append(out, domain.DebugRecord{
		BatchID:      b.ID,
		SlotID:       slotID,
		Prompt:       b.Prompt,
		Subjects:     b.Subjects,
		Background:   debugBackground(b),
		Quality:      b.Quality,
		ResponseText: result.ResponseText,
		ImageMIME:    result.MIMEType,
		ImageData:    result.Data,
		RecordedAt:   at,
	})
}

// debugBackground は実際に送信した背景だけを記録します。
func debugBackground(b *Batch) *domain.Image {
	if b.Background == nil || len(b.Images) <= len(b.Subjects) {
		return nil
	}
	return b.Background
}
