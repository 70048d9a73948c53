package manager

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"mailgen/pkg/types"
)

// Manager is the process-wide model handle. It is loaded once, shared by all
// requests, and serializes generation through a single in-flight slot.
type Manager struct {
	mu       sync.RWMutex
	state    State
	err      string
	model    types.Model
	sess     InferSession
	loadOnce sync.Once
	loadErr  error

	cfg       Config
	adapter   InferenceAdapter
	resolver  Resolver
	truncator Truncator
	log       zerolog.Logger

	genCh   chan struct{} // size 1: single in-flight generation
	waiting atomic.Int64

	generations atomic.Uint64
	failures    atomic.Uint64
	startTime   time.Time
}

// Option customizes a Manager.
type Option func(*Manager)

// WithResolver sets how in-process model artifacts are located.
func WithResolver(r Resolver) Option { return func(m *Manager) { m.resolver = r } }

// WithTruncator sets the prompt truncator.
func WithTruncator(t Truncator) Option { return func(m *Manager) { m.truncator = t } }

// WithLogger installs a structured logger.
func WithLogger(l zerolog.Logger) Option { return func(m *Manager) { m.log = l } }

// New constructs an unloaded Manager. Call Load before Generate.
func New(cfg Config, adapter InferenceAdapter, opts ...Option) *Manager {
	m := &Manager{
		state:     StateUnloaded,
		cfg:       cfg,
		adapter:   adapter,
		log:       zerolog.Nop(),
		genCh:     make(chan struct{}, 1),
		startTime: time.Now(),
	}
	for _, o := range opts {
		o(m)
	}
	m.model = types.Model{ID: cfg.ModelID, Backend: cfg.Backend}
	return m
}

// Load resolves, places and starts the model. Only the first call does any work;
// later calls return the first result.
func (m *Manager) Load(ctx context.Context) error {
	m.loadOnce.Do(func() { m.loadErr = m.load(ctx) })
	return m.loadErr
}

func (m *Manager) load(ctx context.Context) error {
	m.setState(StateLoading, "")
	if m.adapter == nil {
		return m.fail(loadError{modelID: m.cfg.ModelID, err: ErrDependencyUnavailable("inference adapter not configured")})
	}
	spec := ModelSpec{ID: m.cfg.ModelID, Device: DeviceRemote}
	if m.cfg.Local {
		spec.Device = DetectDevice(m.cfg.Device)
		spec.Path = m.cfg.ModelID
		if m.resolver != nil {
			p, err := m.resolver.Resolve(ctx, m.cfg.ModelID, m.cfg.Source)
			if err != nil {
				return m.fail(loadError{modelID: m.cfg.ModelID, err: err})
			}
			spec.Path = p
		}
	}
	m.log.Info().Str("model", spec.ID).Str("backend", m.cfg.Backend).Str("path", spec.Path).Msg("loading model")
	start := time.Now()
	sess, err := m.adapter.Start(ctx, spec)
	if err != nil {
		return m.fail(loadError{modelID: m.cfg.ModelID, err: err})
	}
	m.mu.Lock()
	m.sess = sess
	m.model = types.Model{ID: spec.ID, Backend: m.cfg.Backend, Device: spec.Device, Path: spec.Path}
	m.state = StateReady
	m.err = ""
	m.mu.Unlock()
	modelLoadSeconds.Set(time.Since(start).Seconds())
	m.log.Info().Str("model", spec.ID).Str("device", spec.Device).Dur("dur", time.Since(start)).Msg("model loaded")
	return nil
}

func (m *Manager) fail(err error) error {
	m.setState(StateError, err.Error())
	m.log.Error().Err(err).Msg("model load failed")
	return err
}

func (m *Manager) setState(s State, errMsg string) {
	m.mu.Lock()
	m.state = s
	m.err = errMsg
	m.mu.Unlock()
}

// Generate runs one generation on the shared model. Calls are serialized.
func (m *Manager) Generate(ctx context.Context, prompt string, params InferParams) (string, error) {
	m.mu.RLock()
	state, sess := m.state, m.sess
	m.mu.RUnlock()
	if state != StateReady || sess == nil {
		return "", notReadyError{state: state}
	}

	release, err := m.beginGeneration(ctx)
	if err != nil {
		return "", err
	}
	defer release()

	if m.truncator != nil && params.MaxInputTokens > 0 {
		prompt = m.truncator.Truncate(prompt, params.MaxInputTokens)
	}

	label := params.Label
	if label == "" {
		label = "unlabeled"
	}
	start := time.Now()
	res, err := sess.Generate(ctx, prompt, params)
	dur := time.Since(start)
	if err != nil {
		m.failures.Add(1)
		generationsTotal.WithLabelValues(label, "error").Inc()
		m.mu.Lock()
		m.err = err.Error()
		m.mu.Unlock()
		return "", err
	}
	m.generations.Add(1)
	generationsTotal.WithLabelValues(label, "ok").Inc()
	generationDuration.WithLabelValues(label).Observe(dur.Seconds())
	m.log.Debug().Str("task", label).Dur("dur", dur).Int("chars", len(res.Content)).Str("finish_reason", res.FinishReason).Msg("generation done")
	return strings.TrimSpace(res.Content), nil
}

// Ready reports whether the model is loaded.
func (m *Manager) Ready() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state == StateReady && m.sess != nil
}

// Model returns the loaded model description.
func (m *Manager) Model() types.Model {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.model
}

// Status builds a status response for /status.
func (m *Manager) Status() types.StatusResponse {
	m.mu.RLock()
	defer m.mu.RUnlock()
	now := time.Now()
	return types.StatusResponse{
		Model:            m.model,
		State:            string(m.state),
		LastError:        m.err,
		Inflight:         len(m.genCh),
		Waiting:          int(m.waiting.Load()),
		GenerationsTotal: m.generations.Load(),
		FailuresTotal:    m.failures.Load(),
		UptimeSeconds:    int64(now.Sub(m.startTime).Seconds()),
		ServerTimeUnix:   now.Unix(),
	}
}

// Close releases the session. The Manager cannot be reloaded afterwards.
func (m *Manager) Close() error {
	m.mu.Lock()
	sess := m.sess
	m.sess = nil
	m.state = StateUnloaded
	m.mu.Unlock()
	if sess == nil {
		return nil
	}
	return sess.Close()
}
