package domain

import "time"

// SlotStatus はスロットのライフサイクル状態です。
type SlotStatus string

const (
	StatusGenerating SlotStatus = "generating"
	StatusSuccess    SlotStatus = "success"
	StatusError      SlotStatus = "error"
)

// GeneratedImage はモデルが返した画像と付随テキストです。
type GeneratedImage struct {
	MIMEType     string `json:"mime_type"`
	Data         []byte `json:"-"`
	ResponseText string `json:"response_text"`
}

// Slot はバッチ内の1つの生成試行です。
type Slot struct {
	ID      string          `json:"id"`
	Index   int             `json:"index"`
	Status  SlotStatus      `json:"status"`
	Result  *GeneratedImage `json:"result,omitempty"`
	Err     string          `json:"error,omitempty"`
	ErrKind ErrorKind       `json:"error_kind,omitempty"`
	// Attempts はこのスロットで外部呼び出しを開始した回数です（手動リトライを含む）。
	Attempts int `json:"attempts"`
}

// Settled は生成中でないことを返します。
func (s Slot) Settled() bool {
	return s.Status != StatusGenerating
}

// DebugRecord は1回の成功した生成呼び出しの監査記録です。
type DebugRecord struct {
	BatchID      string    `json:"batch_id"`
	SlotID       string    `json:"slot_id"`
	Prompt       string    `json:"prompt"`
	Subjects     []Subject `json:"subjects"`
	Background   *Image    `json:"background,omitempty"`
	Quality      Quality   `json:"quality"`
	ResponseText string    `json:"response_text"`
	ImageMIME    string    `json:"image_mime_type"`
	ImageData    []byte    `json:"image_data"`
	RecordedAt   time.Time `json:"recorded_at"`
}

// SuccessfulSlots はスロット順を保ったまま成功したスロットだけを返します。
func SuccessfulSlots(slots []Slot) []Slot {
	var out []Slot
	for _, s := range slots {
		if s.Status == StatusSuccess && s.Result != nil && len(s.Result.Data) > 0 {
			out = append(out, s)
		}
	}
	return out
}
