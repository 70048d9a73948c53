package types

// GenerationRequest is the payload accepted by POST /reply and POST /summary.
type GenerationRequest struct {
	// Raw email text. Trimmed length must be between 10 and 5000 characters.
	// example: Hi team, please confirm you can attend Friday's planning session at 10am.
	Content *string `json:"content" example:"Hi team, please confirm you can attend Friday's planning session at 10am."`
}

// ReplyResponse is returned by POST /reply.
type ReplyResponse struct {
	// Formatted reply email.
	Reply string `json:"reply"`
}

// SummaryResponse is returned by POST /summary.
type SummaryResponse struct {
	// Model generated summary.
	Summary string `json:"summary"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: input too short
	Error string `json:"error" example:"input too short"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	// Model served by this process.
	Model Model `json:"model"`
	// Lifecycle state of the model handle (loading, ready, error).
	// example: ready
	State string `json:"state" example:"ready"`
	// Last load or generation error observed, if any.
	LastError string `json:"last_error,omitempty"`
	// Number of generations currently running (0 or 1).
	// example: 0
	Inflight int `json:"inflight" example:"0"`
	// Number of requests waiting for the model.
	// example: 0
	Waiting int `json:"waiting" example:"0"`
	// Total completed generations.
	// example: 42
	GenerationsTotal uint64 `json:"generations_total" example:"42"`
	// Total failed generations.
	// example: 1
	FailuresTotal uint64 `json:"failures_total" example:"1"`
	// Uptime of the server in seconds.
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds" example:"3600"`
	// Server time in unix seconds.
	// example: 1700000000
	ServerTimeUnix int64 `json:"server_time_unix" example:"1700000000"`
}
