package models

import "time"

// Transcript represents the persisted result of a completed transcription job.
// Rows are immutable after insert; they are only removed by explicit delete
// or a bulk purge.
type Transcript struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	Text       string    `gorm:"type:text;not null" json:"text"`
	Duration   float64   `json:"duration"`
	Confidence float64   `json:"confidence"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName specifies the table name for Transcript
func (Transcript) TableName() string {
	return "transcripts"
}
