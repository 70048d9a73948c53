package manager

import "context"

// InferenceAdapter abstracts the model runtime used by the Manager.
// Concrete implementations (HF text2text endpoint, llama.cpp server, OpenAI-compatible
// completions, in-process llama.cpp) satisfy this interface.
type InferenceAdapter interface {
	// Start loads (or connects to) the model described by spec. It is called once per process.
	Start(ctx context.Context, spec ModelSpec) (InferSession, error)
}

// InferSession is a loaded model: tokenize, generate and decode happen behind Generate.
type InferSession interface {
	// Generate runs one blocking generation for prompt with the given decoding parameters.
	// Implementations must return when the context is canceled.
	Generate(ctx context.Context, prompt string, params InferParams) (FinalResult, error)
	// Close releases any resources associated with the session.
	Close() error
}

// ModelSpec identifies what to load and where.
type ModelSpec struct {
	// ID is the pretrained model identifier, e.g. google/flan-t5-base.
	ID string
	// Path is the local artifact for in-process backends; empty for remote ones.
	Path string
	// Device is cpu or cuda.
	Device string
}

// InferParams is a decoding configuration.
type InferParams struct {
	// Label names the task for logs and metrics (reply, summary).
	Label string
	// MaxInputTokens truncates the prompt before generation; 0 disables truncation.
	MaxInputTokens    int
	MaxLength         int
	MinLength         int
	NumBeams          int
	LengthPenalty     float32
	NoRepeatNgramSize int
	EarlyStopping     bool
	DoSample          bool
	Temperature       float32
	TopK              int
	TopP              float32
	RepetitionPenalty float32
	Seed              int
}

// FinalResult summarizes a generation.
type FinalResult struct {
	Content      string
	Usage        Usage
	FinishReason string
}

// Usage contains token accounting when the backend reports it.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}
