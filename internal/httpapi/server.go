package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"mailgen/internal/mail"
	"mailgen/internal/manager"
	"mailgen/pkg/types"
)

// StatusProvider reports on the shared model handle. *manager.Manager satisfies it.
type StatusProvider interface {
	Ready() bool
	Status() types.StatusResponse
}

// NewMux builds the HTTP API: POST /reply, POST /summary and the operational endpoints.
func NewMux(svc mail.Service, st StatusProvider) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(MetricsMiddleware)
	// Compression for JSON endpoints
	r.Use(middleware.Compress(5))
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})
	if len(corsAllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"*"},
			MaxAge:         300,
			// preflights still reach the OPTIONS handlers below
			OptionsPassthrough: true,
		}))
	}

	r.Post("/reply", replyHandler(svc))
	r.Options("/reply", preflight)
	r.Post("/summary", summaryHandler(svc))
	r.Options("/summary", preflight)

	r.Get("/status", statusHandler(st))
	r.Get("/healthz", healthz)
	r.Get("/readyz", readyzHandler(st))

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)
	return r
}

// replyHandler godoc
//
//	@Summary		Generate a reply to an email
//	@Description	Generates a professional reply. The content is trimmed and must be 10 to 5000 characters long.
//	@Tags			generation
//	@Accept			json
//	@Produce		json
//	@Param			request	body		types.GenerationRequest	true	"Email text"
//	@Success		200		{object}	types.ReplyResponse
//	@Failure		400		{object}	types.ErrorResponse	"missing content, input too short or input exceeds limit"
//	@Failure		500		{object}	types.ErrorResponse	"processing failed"
//	@Failure		503		{object}	types.ErrorResponse	"model busy or not ready"
//	@Router			/reply [post]
func replyHandler(svc mail.Service) http.HandlerFunc {
	return generationHandler(svc.GenerateReply, func(s string) any { return types.ReplyResponse{Reply: s} })
}

// summaryHandler godoc
//
//	@Summary		Summarize an email
//	@Description	Summarizes the content as a concise list of key points.
//	@Tags			generation
//	@Accept			json
//	@Produce		json
//	@Param			request	body		types.GenerationRequest	true	"Email text"
//	@Success		200		{object}	types.SummaryResponse
//	@Failure		400		{object}	types.ErrorResponse	"missing content, input too short or input exceeds limit"
//	@Failure		500		{object}	types.ErrorResponse	"processing failed"
//	@Failure		503		{object}	types.ErrorResponse	"model busy or not ready"
//	@Router			/summary [post]
func summaryHandler(svc mail.Service) http.HandlerFunc {
	return generationHandler(svc.GenerateSummary, func(s string) any { return types.SummaryResponse{Summary: s} })
}

// statusHandler godoc
//
//	@Summary	Model and generation status
//	@Tags		ops
//	@Produce	json
//	@Success	200	{object}	types.StatusResponse
//	@Router		/status [get]
func statusHandler(st StatusProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, st.Status())
	}
}

// healthz godoc
//
//	@Summary	Liveness
//	@Tags		ops
//	@Produce	plain
//	@Success	200	{string}	string	"ok"
//	@Router		/healthz [get]
func healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// readyzHandler godoc
//
//	@Summary	Readiness
//	@Tags		ops
//	@Produce	plain
//	@Success	200	{string}	string	"ready"
//	@Failure	503	{string}	string	"loading"
//	@Router		/readyz [get]
func readyzHandler(st StatusProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if st.Ready() {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("loading"))
	}
}

// preflight answers OPTIONS with an empty 204 whatever the body.
//
//	@Summary	CORS preflight
//	@Tags		generation
//	@Success	204
//	@Router		/reply [options]
//	@Router		/summary [options]
func preflight(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

type generateFunc func(ctx context.Context, content string) (string, error)

// generationHandler decodes {"content": "..."}, validates it and runs gen.
func generationHandler(gen generateFunc, wrap func(string) any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		var req types.GenerationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				writeJSONError(w, http.StatusBadRequest, mail.MsgTooLong)
				return
			}
			writeJSONError(w, http.StatusBadRequest, mail.MsgMissingContent)
			return
		}
		content, err := mail.ValidateContent(req.Content)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		// Join server base context with request context so shutdown cancels work too.
		ctx, cancel := joinContexts(shutdownCtx, r.Context())
		defer cancel()
		out, err := gen(ctx, content)
		if err != nil {
			// Client went away; nobody is left to answer.
			if r.Context().Err() != nil {
				return
			}
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, wrap(out))
	}
}

// writeServiceError maps mail and manager errors to status codes. Only public
// messages reach the client; causes are logged by the service.
func writeServiceError(w http.ResponseWriter, err error) {
	if mail.IsValidation(err) {
		writeJSONError(w, http.StatusBadRequest, mail.PublicMessage(err))
		return
	}
	if manager.IsTooBusy(err) {
		IncrementBackpressure("too_busy")
		writeJSONError(w, http.StatusServiceUnavailable, "processing failed: model busy")
		return
	}
	if manager.IsNotReady(err) {
		writeJSONError(w, http.StatusServiceUnavailable, "processing failed: model not ready")
		return
	}
	status := http.StatusInternalServerError
	var he HTTPError
	if errors.As(err, &he) && he.StatusCode() >= 500 {
		status = he.StatusCode()
	}
	writeJSONError(w, status, "processing failed: "+mail.PublicMessage(err))
}
