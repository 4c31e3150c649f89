package domain

import (
	"context"
	"errors"
	"fmt"
)

// ErrorKind は失敗の分類です。呼び出し側はこれを見て表示するガイダンスを切り替えます。
type ErrorKind string

const (
	KindInputValidation    ErrorKind = "input_validation"
	KindContentBlocked     ErrorKind = "content_blocked"
	KindNoContentReturned  ErrorKind = "no_content_returned"
	KindAbnormalFinish     ErrorKind = "abnormal_finish"
	KindTransportOrUnknown ErrorKind = "transport_or_unknown"
	KindPackagingFailure   ErrorKind = "packaging_failure"
)

var (
	ErrInputValidation    = errors.New("input validation failed")
	ErrContentBlocked     = errors.New("content blocked")
	ErrNoContentReturned  = errors.New("no content returned")
	ErrAbnormalFinish     = errors.New("abnormal finish")
	ErrTransportOrUnknown = errors.New("transport or unknown error")
	ErrPackagingFailure   = errors.New("packaging failure")
)

var sentinels = map[ErrorKind]error{
	KindInputValidation:    ErrInputValidation,
	KindContentBlocked:     ErrContentBlocked,
	KindNoContentReturned:  ErrNoContentReturned,
	KindAbnormalFinish:     ErrAbnormalFinish,
	KindTransportOrUnknown: ErrTransportOrUnknown,
	KindPackagingFailure:   ErrPackagingFailure,
}

const safetyGuidance = "Image generation failed due to safety filters. Please try different images or a less sensitive scenario."

// GenerationError は分類済みのエラーです。errors.Is で対応するセンチネルと一致します。
type GenerationError struct {
	Kind ErrorKind
	// Reason はブロック理由や FinishReason など、モデル側の生の理由コードです。
	Reason  string
	Message string
	Err     error
}

func (e *GenerationError) Error() string {
	if e.Err != nil && e.Message == "" {
		return e.Err.Error()
	}
	return e.Message
}

func (e *GenerationError) Unwrap() []error {
	errs := []error{sentinels[e.Kind]}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// NewInputError は入力検証エラーを生成します。
func NewInputError(msg string) error {
	return &GenerationError{Kind: KindInputValidation, Message: msg}
}

// NewError は任意の分類のエラーを生成します。
func NewError(kind ErrorKind, reason, msg string) *GenerationError {
	return &GenerationError{Kind: kind, Reason: reason, Message: msg}
}

// WrapError は下位のエラーを分類付きで包みます。
func WrapError(kind ErrorKind, msg string, err error) *GenerationError {
	return &GenerationError{Kind: kind, Message: fmt.Sprintf("%s: %v", msg, err), Err: err}
}

// KindOf はエラーを分類します。分類されていないエラーは TransportOrUnknown です。
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	var ge *GenerationError
	if errors.As(err, &ge) {
		return ge.Kind
	}
	for kind, sentinel := range sentinels {
		if errors.Is(err, sentinel) {
			return kind
		}
	}
	return KindTransportOrUnknown
}

// IsTransient は自動リトライの対象になり得るエラーかどうかを返します。
// コンテンツブロックや入力検証、呼び出し元のキャンセルは対象外です。
func IsTransient(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	return KindOf(err) == KindTransportOrUnknown
}

// Guidance は分類ごとの利用者向けメッセージを返します。
func Guidance(kind ErrorKind) string {
	switch kind {
	case KindInputValidation:
		return "Please check the uploaded images and the selected scenario."
	case KindContentBlocked:
		return safetyGuidance
	case KindNoContentReturned, KindAbnormalFinish, KindTransportOrUnknown:
		return "This image could not be generated. You can retry it."
	case KindPackagingFailure:
		return "Failed to create the zip file. Please try again."
	}
	return ""
}
