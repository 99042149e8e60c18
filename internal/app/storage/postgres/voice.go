package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/palisadeengineering/goal-achievement-dashboard/internal/app/domain/voice"
)

// --- VoiceStore -------------------------------------------------------------

const recordingColumns = `id, user_id, audio_url, audio_key, transcription, recording_type, processed, created_at, updated_at`

func (s *Store) CreateRecording(ctx context.Context, r voice.Recording) (voice.Recording, error) {
	db, err := s.h.DB(ctx)
	if err != nil {
		return voice.Recording{}, err
	}

	now := time.Now().UTC()
	var id int64
	err = db.QueryRowContext(ctx, `
		INSERT INTO voice_recordings (user_id, audio_url, audio_key, transcription, recording_type, processed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, r.UserID, r.AudioURL, r.AudioKey, nullStr(r.Transcription), nullStr(r.RecordingType), r.Processed, now, now).Scan(&id)
	if err != nil {
		return voice.Recording{}, err
	}

	row := db.QueryRowContext(ctx, `
		SELECT `+recordingColumns+`
		FROM voice_recordings
		WHERE id = $1
	`, id)
	return scanRecording(row)
}

func scanRecording(row rowScanner) (voice.Recording, error) {
	var (
		r             voice.Recording
		transcription sql.NullString
		recordingType sql.NullString
	)
	if err := row.Scan(&r.ID, &r.UserID, &r.AudioURL, &r.AudioKey, &transcription, &recordingType, &r.Processed, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return voice.Recording{}, err
	}
	r.Transcription = transcription.String
	r.RecordingType = recordingType.String
	return r, nil
}

func (s *Store) ListRecordings(ctx context.Context, userID int64) ([]voice.Recording, error) {
	db, err := s.h.DB(ctx)
	if err != nil {
		return []voice.Recording{}, nil
	}

	rows, err := db.QueryContext(ctx, `
		SELECT `+recordingColumns+`
		FROM voice_recordings
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]voice.Recording, 0)
	for rows.Next() {
		r, err := scanRecording(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

func (s *Store) SetRecordingTranscription(ctx context.Context, id, userID int64, transcription string) error {
	db, err := s.h.DB(ctx)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		UPDATE voice_recordings
		SET transcription = $3, processed = TRUE, updated_at = $4
		WHERE id = $1 AND user_id = $2
	`, id, userID, transcription, time.Now().UTC())
	return err
}
