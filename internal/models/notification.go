package models

import "time"

// Notification categories used by the core pipeline. The category set is
// open ended; these are the two the system itself emits.
const (
	NotificationCategoryTranscription = "transcription"
	NotificationCategorySystem        = "system"
)

// Notification is a lightweight user-visible event record. The only field
// that ever changes after insert is the Read flag.
type Notification struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Message   string    `gorm:"not null" json:"message"`
	Category  string    `gorm:"default:system" json:"category"`
	Read      bool      `gorm:"default:false" json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for Notification
func (Notification) TableName() string {
	return "notifications"
}
