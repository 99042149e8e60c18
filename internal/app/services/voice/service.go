// Package voice is the procedure layer for captured audio notes: upload to
// blob storage, best-effort transcription, and history listing.
package voice

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/google/uuid"

	domain "github.com/palisadeengineering/goal-achievement-dashboard/internal/app/domain/voice"
	"github.com/palisadeengineering/goal-achievement-dashboard/internal/app/storage"
	"github.com/palisadeengineering/goal-achievement-dashboard/internal/app/validate"
	"github.com/palisadeengineering/goal-achievement-dashboard/internal/errors"
	"github.com/palisadeengineering/goal-achievement-dashboard/pkg/logger"
)

// BlobStore persists raw audio payloads and returns a public URL.
type BlobStore interface {
	Put(ctx context.Context, key, contentType string, data []byte) (url string, err error)
}

// Transcriber converts an uploaded audio URL to text.
type Transcriber interface {
	Transcribe(ctx context.Context, audioURL string) (string, error)
}

// Service handles voice note uploads.
type Service struct {
	store       storage.VoiceStore
	blobs       BlobStore
	transcriber Transcriber
	log         *logger.Logger
	newKey      func(userID int64) string
}

// New constructs a voice service.
func New(store storage.VoiceStore, blobs BlobStore, transcriber Transcriber, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("voice")
	}
	return &Service{
		store:       store,
		blobs:       blobs,
		transcriber: transcriber,
		log:         log,
		newKey: func(userID int64) string {
			return fmt.Sprintf("%d/voice/%s.webm", userID, uuid.NewString())
		},
	}
}

// UploadInput is the accepted shape for an upload: base64-encoded webm audio.
type UploadInput struct {
	AudioData     string `json:"audioData"`
	RecordingType string `json:"recordingType,omitempty"`
}

// Upload stores the audio blob, records it, and attempts transcription. Blob
// storage failure aborts the upload; transcription failure does not, the
// recording is returned unprocessed and can be transcribed later.
func (s *Service) Upload(ctx context.Context, userID int64, in UploadInput) (domain.Recording, error) {
	if err := validate.Caller(userID); err != nil {
		return domain.Recording{}, err
	}
	if in.AudioData == "" {
		return domain.Recording{}, errors.Validation("audioData", "audioData is required")
	}
	audio, err := base64.StdEncoding.DecodeString(in.AudioData)
	if err != nil {
		return domain.Recording{}, errors.Validation("audioData", "audioData must be base64 encoded")
	}

	key := s.newKey(userID)
	url, err := s.blobs.Put(ctx, key, "audio/webm", audio)
	if err != nil {
		return domain.Recording{}, errors.Upstream("blob storage", err)
	}

	rec, err := s.store.CreateRecording(ctx, domain.Recording{
		UserID:        userID,
		AudioURL:      url,
		AudioKey:      key,
		RecordingType: in.RecordingType,
	})
	if err != nil {
		return domain.Recording{}, validate.StoreWrite(err)
	}

	transcription, err := s.transcriber.Transcribe(ctx, url)
	if err != nil {
		s.log.WithField("recording_id", rec.ID).WithError(err).Warn("transcription failed, recording kept unprocessed")
		return rec, nil
	}

	if err := s.store.SetRecordingTranscription(ctx, rec.ID, userID, transcription); err != nil {
		s.log.WithField("recording_id", rec.ID).WithError(err).Warn("could not persist transcription")
		return rec, nil
	}
	rec.Transcription = transcription
	rec.Processed = true

	s.log.WithField("recording_id", rec.ID).WithField("user_id", userID).Info("voice note uploaded and transcribed")
	return rec, nil
}

// List returns the caller's recordings, most recent first.
func (s *Service) List(ctx context.Context, userID int64) ([]domain.Recording, error) {
	if err := validate.Caller(userID); err != nil {
		return nil, err
	}
	return s.store.ListRecordings(ctx, userID)
}
