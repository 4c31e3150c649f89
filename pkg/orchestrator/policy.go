package orchestrator

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	DefaultCallTimeout    = 3 * time.Minute
	DefaultInitialBackoff = 2 * time.Second
	DefaultMaxBackoff     = 30 * time.Second
)

// Policy は1回の外部呼び出しに対するタイムアウトと自動リトライの方針です。
// MaxAutoRetries が 0 の場合、自動リトライは行わず手動の RetrySlot のみになります。
// 自動リトライの対象は通信・不明エラーだけで、コンテンツブロックや入力検証エラーは対象外です。
type Policy struct {
	CallTimeout    time.Duration
	MaxAutoRetries int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// DefaultPolicy は推奨されるデフォルトの方針を返します。
func DefaultPolicy() Policy {
	return Policy{
		CallTimeout:    DefaultCallTimeout,
		InitialBackoff: DefaultInitialBackoff,
		MaxBackoff:     DefaultMaxBackoff,
	}
}

// callContext は1回の呼び出し用のコンテキストを返します。CallTimeout が 0 以下なら期限を設けません。
func (p Policy) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.CallTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, p.CallTimeout)
}

func (p Policy) backOff(ctx context.Context) backoff.BackOff {
	eb := backoff.NewExponentialBackOff()
	if p.InitialBackoff > 0 {
		eb.InitialInterval = p.InitialBackoff
	}
	if p.MaxBackoff > 0 {
		eb.MaxInterval = p.MaxBackoff
	}
	eb.MaxElapsedTime = 0

	retries := p.MaxAutoRetries
	if retries < 0 {
		retries = 0
	}
	return backoff.WithContext(backoff.WithMaxRetries(eb, uint64(retries)), ctx)
}
