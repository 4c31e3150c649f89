package orchestrator

import "sync"

// Store は State を保持し、Action を1つずつ直列に適用する唯一の更新キューです。
type Store struct {
	mu      sync.Mutex
	state   State
	changed chan struct{}
}

// NewStore は空の Store を生成します。
func NewStore() *Store {
	return &Store{changed: make(chan struct{})}
}

// Dispatch は Action を適用し、適用後の State を返します。
func (s *Store) Dispatch(a Action) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = Reduce(s.state, a)
	close(s.changed)
	s.changed = make(chan struct{})
	return s.state
}

// Snapshot は現在の State を返します。Reduce はスライスをコピーオンライトで扱うため、返り値は共有しても安全です。
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Changed は次の Dispatch で close されるチャネルを返します。
func (s *Store) Changed() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.changed
}
