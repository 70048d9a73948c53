package types

// Model describes the pretrained model the service was started with.
type Model struct {
	// Pretrained model identifier.
	// example: google/flan-t5-base
	ID string `json:"id" example:"google/flan-t5-base"`
	// Inference backend serving the model (hf, llama-server, openai, llama).
	// example: hf
	Backend string `json:"backend" example:"hf"`
	// Compute device the model is bound to (cpu, cuda, remote).
	// example: cpu
	Device string `json:"device" example:"cpu"`
	// Local artifact path when the backend runs in-process.
	Path string `json:"path,omitempty"`
}
