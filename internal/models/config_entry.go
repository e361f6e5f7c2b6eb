package models

import "time"

// Well-known setting keys carried over from the mobile client.
const (
	SettingVolume               = "volume"
	SettingNotificationsEnabled = "notifications_enabled"
)

// ConfigEntry is a singleton-per-key application setting. Writes are upserts;
// the unique index on Key is the invariant that keeps them singleton.
type ConfigEntry struct {
	Key        string    `gorm:"primarykey" json:"key"`
	Value      string    `json:"value"`
	ModifiedAt time.Time `gorm:"autoUpdateTime" json:"modified_at"`
}

// TableName specifies the table name for ConfigEntry
func (ConfigEntry) TableName() string {
	return "config_entries"
}
