package manager

import (
	"context"
	"time"
)

// State represents lifecycle state of the model handle.
type State string

const (
	StateUnloaded State = "unloaded"
	StateLoading  State = "loading"
	StateReady    State = "ready"
	StateError    State = "error"
)

// Device names.
const (
	DeviceCPU    = "cpu"
	DeviceCUDA   = "cuda"
	DeviceRemote = "remote"
)

// Config encapsulates all tunables for Manager construction.
type Config struct {
	ModelID string
	// Backend names the adapter in use; only reported in status.
	Backend string
	// Source is where an uncached in-process model is fetched from.
	Source string
	// Device is auto, cpu or cuda; ignored for remote backends.
	Device string
	// Local is true when the adapter runs the model in this process.
	Local bool
	// MaxWait bounds how long Generate waits for the model slot; 0 waits until ctx is done.
	MaxWait time.Duration
}

// Resolver maps a model identifier to a local artifact path.
type Resolver interface {
	Resolve(ctx context.Context, id, source string) (string, error)
}

// Truncator clips a prompt to a token budget.
type Truncator interface {
	Truncate(text string, maxTokens int) string
}
