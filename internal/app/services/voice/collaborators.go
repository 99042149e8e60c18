package voice

import (
	"context"

	"github.com/palisadeengineering/goal-achievement-dashboard/internal/config"
	"github.com/palisadeengineering/goal-achievement-dashboard/internal/httputil"
)

// HTTPBlobStore uploads audio payloads to the blob-storage collaborator. The
// object key becomes the request path under /objects/.
type HTTPBlobStore struct {
	client *httputil.Client
}

var _ BlobStore = (*HTTPBlobStore)(nil)

// NewHTTPBlobStore builds a blob store from collaborator config.
func NewHTTPBlobStore(cfg config.BlobStoreConfig) *HTTPBlobStore {
	return &HTTPBlobStore{client: httputil.NewClient(httputil.ClientConfig{BaseURL: cfg.URL, APIKey: cfg.APIKey})}
}

// Put uploads the payload and returns the stored object's public URL.
func (b *HTTPBlobStore) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	var resp struct {
		URL string `json:"url"`
	}
	if err := b.client.PutBytes(ctx, "/objects/"+key, contentType, data, &resp); err != nil {
		return "", err
	}
	return resp.URL, nil
}

// HTTPTranscriber asks the transcription collaborator to convert an uploaded
// audio URL to text.
type HTTPTranscriber struct {
	client *httputil.Client
}

var _ Transcriber = (*HTTPTranscriber)(nil)

// NewHTTPTranscriber builds a transcriber from collaborator config.
func NewHTTPTranscriber(cfg config.TranscriberConfig) *HTTPTranscriber {
	return &HTTPTranscriber{client: httputil.NewClient(httputil.ClientConfig{BaseURL: cfg.URL, APIKey: cfg.APIKey})}
}

// Transcribe returns the text of the audio at the given URL.
func (t *HTTPTranscriber) Transcribe(ctx context.Context, audioURL string) (string, error) {
	req := struct {
		AudioURL string `json:"audioUrl"`
	}{AudioURL: audioURL}

	var resp struct {
		Text string `json:"text"`
	}
	if err := t.client.PostJSON(ctx, "/v1/transcriptions", req, &resp); err != nil {
		return "", err
	}
	return resp.Text, nil
}
