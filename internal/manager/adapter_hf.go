package manager

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// hfAdapter implements InferenceAdapter against a Hugging Face text2text-generation
// endpoint (hosted Inference API or a self-hosted server exposing POST /models/{id}).
type hfAdapter struct {
	baseURL    string
	apiKey     string
	reqTimeout time.Duration
	httpClient *http.Client
}

// NewHFAdapter constructs an HF-backed adapter.
func NewHFAdapter(baseURL, apiKey string, reqTimeout, connectTimeout time.Duration) InferenceAdapter {
	tr := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   connectTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        16,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	// Timeout stays 0: every request carries a context deadline instead.
	return &hfAdapter{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		reqTimeout: reqTimeout,
		httpClient: &http.Client{Transport: tr},
	}
}

type hfSession struct {
	adapter  *hfAdapter
	endpoint string
}

func (a *hfAdapter) Start(ctx context.Context, spec ModelSpec) (InferSession, error) {
	id := strings.Trim(strings.TrimSpace(spec.ID), "/")
	if id == "" {
		return nil, errors.New("model id is empty")
	}
	if _, err := url.Parse(a.baseURL); err != nil || a.baseURL == "" {
		return nil, fmt.Errorf("invalid base url %q", a.baseURL)
	}
	return &hfSession{adapter: a, endpoint: a.baseURL + "/models/" + id}, nil
}

// hfRequest is the text2text-generation payload; parameters are forwarded to generate().
type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
	Options    hfOptions    `json:"options"`
}

type hfParameters struct {
	MaxLength         int      `json:"max_length,omitempty"`
	MinLength         int      `json:"min_length,omitempty"`
	NumBeams          int      `json:"num_beams,omitempty"`
	LengthPenalty     float32  `json:"length_penalty,omitempty"`
	NoRepeatNgramSize int      `json:"no_repeat_ngram_size,omitempty"`
	EarlyStopping     bool     `json:"early_stopping,omitempty"`
	DoSample          bool     `json:"do_sample"`
	Temperature       *float32 `json:"temperature,omitempty"`
	TopK              *int     `json:"top_k,omitempty"`
	TopP              *float32 `json:"top_p,omitempty"`
	RepetitionPenalty float32  `json:"repetition_penalty,omitempty"`
}

type hfOptions struct {
	WaitForModel bool `json:"wait_for_model"`
	UseCache     bool `json:"use_cache"`
}

type hfGenerated struct {
	GeneratedText string `json:"generated_text"`
}

type hfError struct {
	Error string `json:"error"`
}

func toHFParameters(p InferParams) hfParameters {
	out := hfParameters{
		MaxLength:         p.MaxLength,
		MinLength:         p.MinLength,
		NumBeams:          p.NumBeams,
		LengthPenalty:     p.LengthPenalty,
		NoRepeatNgramSize: p.NoRepeatNgramSize,
		EarlyStopping:     p.EarlyStopping,
		DoSample:          p.DoSample,
		RepetitionPenalty: p.RepetitionPenalty,
	}
	// sampling knobs only mean something when sampling
	if p.DoSample {
		if p.Temperature > 0 {
			t := p.Temperature
			out.Temperature = &t
		}
		if p.TopK > 0 {
			k := p.TopK
			out.TopK = &k
		}
		if p.TopP > 0 {
			tp := p.TopP
			out.TopP = &tp
		}
	}
	return out
}

func (s *hfSession) Generate(ctx context.Context, prompt string, params InferParams) (FinalResult, error) {
	if s.adapter == nil || s.adapter.httpClient == nil {
		return FinalResult{}, errors.New("hf adapter not initialized")
	}
	if s.adapter.reqTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.adapter.reqTimeout)
		defer cancel()
	}
	body, err := json.Marshal(hfRequest{
		Inputs:     prompt,
		Parameters: toHFParameters(params),
		Options:    hfOptions{WaitForModel: true, UseCache: false},
	})
	if err != nil {
		return FinalResult{}, fmt.Errorf("encode hf request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return FinalResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.adapter.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.adapter.apiKey)
	}
	resp, err := s.adapter.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return FinalResult{}, ctx.Err()
		}
		return FinalResult{}, err
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return FinalResult{}, fmt.Errorf("read hf response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var he hfError
		if json.Unmarshal(raw, &he) == nil && he.Error != "" {
			return FinalResult{}, fmt.Errorf("hf http error: %s: %s", resp.Status, he.Error)
		}
		return FinalResult{}, fmt.Errorf("hf http error: %s: %s", resp.Status, truncateBody(raw))
	}
	// The API answers with a list; some servers return a single object.
	var list []hfGenerated
	if err := json.Unmarshal(raw, &list); err == nil {
		if len(list) == 0 {
			return FinalResult{}, errors.New("hf returned no generations")
		}
		return FinalResult{Content: list[0].GeneratedText, FinishReason: "stop"}, nil
	}
	var one hfGenerated
	if err := json.Unmarshal(raw, &one); err != nil {
		return FinalResult{}, fmt.Errorf("decode hf response: %w", err)
	}
	return FinalResult{Content: one.GeneratedText, FinishReason: "stop"}, nil
}

func (s *hfSession) Close() error {
	s.adapter.httpClient.CloseIdleConnections()
	return nil
}

func truncateBody(b []byte) string {
	const limit = 512
	if len(b) > limit {
		return string(b[:limit]) + "..."
	}
	return string(b)
}
