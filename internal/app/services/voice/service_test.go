package voice

import (
	"context"
	"encoding/base64"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/palisadeengineering/goal-achievement-dashboard/internal/app/storage/memory"
	"github.com/palisadeengineering/goal-achievement-dashboard/internal/config"
	"github.com/palisadeengineering/goal-achievement-dashboard/internal/errors"
)

type fakeBlobs struct {
	key  string
	data []byte
	err  error
}

func (f *fakeBlobs) Put(_ context.Context, key, _ string, data []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.key, f.data = key, data
	return "https://blobs.example/" + key, nil
}

type fakeTranscriber struct {
	text string
	err  error
}

func (f *fakeTranscriber) Transcribe(context.Context, string) (string, error) {
	return f.text, f.err
}

func TestUploadStoresAndTranscribes(t *testing.T) {
	store := memory.New()
	blobs := &fakeBlobs{}
	svc := New(store, blobs, &fakeTranscriber{text: "remember to call Alex"}, nil)
	ctx := context.Background()

	audio := []byte{0x1a, 0x45, 0xdf, 0xa3}
	rec, err := svc.Upload(ctx, 7, UploadInput{
		AudioData:     base64.StdEncoding.EncodeToString(audio),
		RecordingType: "note",
	})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	if !strings.HasPrefix(blobs.key, "7/voice/") || !strings.HasSuffix(blobs.key, ".webm") {
		t.Fatalf("blob key = %q, want 7/voice/<id>.webm", blobs.key)
	}
	if string(blobs.data) != string(audio) {
		t.Fatal("decoded audio payload not forwarded to blob store")
	}
	if !rec.Processed || rec.Transcription != "remember to call Alex" {
		t.Fatalf("recording = %+v, want processed with transcription", rec)
	}
	if rec.AudioURL != "https://blobs.example/"+blobs.key {
		t.Fatalf("audio url = %q", rec.AudioURL)
	}

	list, err := svc.List(ctx, 7)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || !list[0].Processed {
		t.Fatalf("list = %v, want one processed recording", list)
	}
}

func TestUploadToleratesTranscriptionFailure(t *testing.T) {
	store := memory.New()
	svc := New(store, &fakeBlobs{}, &fakeTranscriber{err: stderrors.New("service down")}, nil)
	ctx := context.Background()

	rec, err := svc.Upload(ctx, 1, UploadInput{AudioData: base64.StdEncoding.EncodeToString([]byte("x"))})
	if err != nil {
		t.Fatalf("upload should survive transcriber outage: %v", err)
	}
	if rec.Processed || rec.Transcription != "" {
		t.Fatalf("recording = %+v, want unprocessed", rec)
	}

	list, _ := svc.List(ctx, 1)
	if len(list) != 1 {
		t.Fatalf("recording not persisted: %v", list)
	}
}

func TestUploadFailsWhenBlobStoreFails(t *testing.T) {
	store := memory.New()
	svc := New(store, &fakeBlobs{err: stderrors.New("bucket gone")}, &fakeTranscriber{}, nil)
	ctx := context.Background()

	_, err := svc.Upload(ctx, 1, UploadInput{AudioData: base64.StdEncoding.EncodeToString([]byte("x"))})
	if !errors.IsCode(err, errors.CodeUpstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
	list, _ := svc.List(ctx, 1)
	if len(list) != 0 {
		t.Fatalf("nothing should be recorded when the blob upload fails, got %v", list)
	}
}

func TestUploadValidation(t *testing.T) {
	svc := New(memory.New(), &fakeBlobs{}, &fakeTranscriber{}, nil)
	ctx := context.Background()

	if _, err := svc.Upload(ctx, 1, UploadInput{}); !errors.IsCode(err, errors.CodeValidation) {
		t.Fatalf("expected validation error for missing audio, got %v", err)
	}
	if _, err := svc.Upload(ctx, 1, UploadInput{AudioData: "not base64!!"}); !errors.IsCode(err, errors.CodeValidation) {
		t.Fatalf("expected validation error for bad base64, got %v", err)
	}
}

func TestHTTPCollaborators(t *testing.T) {
	blobSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || !strings.HasPrefix(r.URL.Path, "/objects/") {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Write([]byte(`{"url":"https://blobs.example/obj"}`))
	}))
	defer blobSrv.Close()

	url, err := NewHTTPBlobStore(config.BlobStoreConfig{URL: blobSrv.URL, APIKey: "k"}).
		Put(context.Background(), "1/voice/a.webm", "audio/webm", []byte("x"))
	if err != nil {
		t.Fatalf("blob put: %v", err)
	}
	if url != "https://blobs.example/obj" {
		t.Fatalf("url = %q", url)
	}

	transSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/transcriptions" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Write([]byte(`{"text":"hello"}`))
	}))
	defer transSrv.Close()

	text, err := NewHTTPTranscriber(config.TranscriberConfig{URL: transSrv.URL, APIKey: "k"}).
		Transcribe(context.Background(), "https://blobs.example/obj")
	if err != nil {
		t.Fatalf("transcribe: %v", err)
	}
	if text != "hello" {
		t.Fatalf("text = %q", text)
	}
}
