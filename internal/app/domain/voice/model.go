// Package voice models captured audio notes and their transcriptions.
package voice

import "time"

// Recording is one uploaded audio note. Transcription is empty when the
// transcriber was unavailable at upload time; Processed records whether the
// transcription attempt succeeded.
type Recording struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"userId"`
	AudioURL      string    `json:"audioUrl"`
	AudioKey      string    `json:"audioKey"`
	Transcription string    `json:"transcription,omitempty"`
	RecordingType string    `json:"recordingType,omitempty"`
	Processed     bool      `json:"processed"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
