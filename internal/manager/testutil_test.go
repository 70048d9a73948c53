package manager

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

// fakeAdapter is a lightweight in-memory adapter used for tests.
type fakeAdapter struct {
	startErr error
	genErr   error
	out      string
	// block, when set, is waited on inside Generate.
	block chan struct{}

	mu       sync.Mutex
	starts   int
	spec     ModelSpec
	prompts  []string
	params   []InferParams
	inflight atomic.Int32
	maxSeen  atomic.Int32
	closed   atomic.Bool
}

func (f *fakeAdapter) Start(ctx context.Context, spec ModelSpec) (InferSession, error) {
	f.mu.Lock()
	f.starts++
	f.spec = spec
	f.mu.Unlock()
	if f.startErr != nil {
		return nil, f.startErr
	}
	return &fakeSession{f: f}, nil
}

type fakeSession struct{ f *fakeAdapter }

func (s *fakeSession) Generate(ctx context.Context, prompt string, params InferParams) (FinalResult, error) {
	n := s.f.inflight.Add(1)
	defer s.f.inflight.Add(-1)
	for {
		cur := s.f.maxSeen.Load()
		if n <= cur || s.f.maxSeen.CompareAndSwap(cur, n) {
			break
		}
	}
	s.f.mu.Lock()
	s.f.prompts = append(s.f.prompts, prompt)
	s.f.params = append(s.f.params, params)
	s.f.mu.Unlock()
	if s.f.block != nil {
		select {
		case <-s.f.block:
		case <-ctx.Done():
			return FinalResult{}, ctx.Err()
		}
	}
	if s.f.genErr != nil {
		return FinalResult{}, s.f.genErr
	}
	return FinalResult{Content: s.f.out, FinishReason: "stop"}, nil
}

func (s *fakeSession) Close() error {
	s.f.closed.Store(true)
	return nil
}

type fakeResolver struct {
	path string
	err  error
}

func (r fakeResolver) Resolve(ctx context.Context, id, source string) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	return r.path, nil
}

// wordTruncator keeps the first n bytes; enough to observe truncation.
type wordTruncator struct{}

func (wordTruncator) Truncate(text string, n int) string {
	if len(text) <= n {
		return text
	}
	return text[:n]
}

var errBoom = errors.New("boom")

func loaded(f *fakeAdapter, cfg Config, opts ...Option) *Manager {
	if cfg.ModelID == "" {
		cfg.ModelID = "google/flan-t5-base"
	}
	m := New(cfg, f, opts...)
	if err := m.Load(context.Background()); err != nil {
		panic(err)
	}
	return m
}
