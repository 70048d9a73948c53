package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"mailgen/internal/httpapi"
	"mailgen/internal/mail"
	"mailgen/internal/manager"
)

// fakeHF mimics a text2text-generation endpoint.
type fakeHF struct {
	output string
	status int
	delay  time.Duration
	calls  atomic.Int32
	last   atomic.Value // string: last inputs
}

func (f *fakeHF) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.calls.Add(1)
	var req struct {
		Inputs string `json:"inputs"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)
	f.last.Store(req.Inputs)
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-r.Context().Done():
			return
		}
	}
	w.Header().Set("Content-Type", "application/json")
	if f.status != 0 && f.status != http.StatusOK {
		w.WriteHeader(f.status)
		_, _ = w.Write([]byte(`{"error":"backend exploded"}`))
		return
	}
	_ = json.NewEncoder(w).Encode([]map[string]string{{"generated_text": f.output}})
}

// newStack starts a fake model server and the full HTTP stack in front of it.
func newStack(t *testing.T, hf *fakeHF, maxWait time.Duration) *httptest.Server {
	t.Helper()
	model := httptest.NewServer(hf)
	t.Cleanup(model.Close)

	mgr := manager.New(manager.Config{ModelID: "google/flan-t5-base", Backend: "hf", MaxWait: maxWait},
		manager.NewHFAdapter(model.URL, "", 5*time.Second, time.Second),
		manager.WithLogger(zerolog.Nop()))
	if err := mgr.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	t.Cleanup(func() { _ = mgr.Close() })

	srv := httptest.NewServer(httpapi.NewMux(mail.NewService(mgr, nil, zerolog.Nop()), mgr))
	t.Cleanup(srv.Close)
	return srv
}

func httpGet(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return resp, b
}

func httpPostJSON(t *testing.T, url, body string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Post(url, "application/json", bytes.NewBufferString(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return resp, b
}

func content(s string) string {
	b, _ := json.Marshal(map[string]string{"content": s})
	return string(b)
}

func endsSentence(s string) bool {
	s = strings.TrimSpace(s)
	return strings.HasSuffix(s, ".") || strings.HasSuffix(s, "!") || strings.HasSuffix(s, "?")
}
