package registry

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// HTTPFetcher downloads artifacts over http(s).
type HTTPFetcher struct {
	Client *http.Client
	// Token, if set, is sent as a bearer token (e.g. a Hugging Face access token).
	// It only goes out over https.
	Token string
}

func (h HTTPFetcher) Fetch(ctx context.Context, src *url.URL, w io.Writer) error {
	cli := h.Client
	if cli == nil {
		cli = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.String(), nil)
	if err != nil {
		return err
	}
	if h.Token != "" && src.Scheme == "https" {
		req.Header.Set("Authorization", "Bearer "+h.Token)
	}
	resp, err := cli.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("http status %s", resp.Status)
	}
	_, err = io.Copy(w, resp.Body)
	return err
}
