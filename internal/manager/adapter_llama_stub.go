//go:build !llama

package manager

// No-CGO stub for the in-process adapter, compiled when the 'llama' build tag is not set.
// The real adapter lives in adapter_llama.go.

import "context"

// llamaBuilt indicates this binary was compiled without llama support.
var llamaBuilt = false

type llamaAdapter struct{}

// NewLlamaAdapter returns an adapter whose Start always fails with a dependency error.
func NewLlamaAdapter(ctxSize, threads, gpuLayers int) InferenceAdapter { return llamaAdapter{} }

func (llamaAdapter) Start(ctx context.Context, spec ModelSpec) (InferSession, error) {
	return nil, ErrDependencyUnavailable("llama backend not built: rebuild with -tags=llama")
}

// LlamaBuilt reports whether the in-process backend is compiled in.
func LlamaBuilt() bool { return llamaBuilt }
