package models

import "time"

// Snapshot is one stored standings payload. Payload holds the records exactly as fetched.
type Snapshot struct {
	ID        string    `gorm:"primaryKey"`
	Season    string    `gorm:"index"`
	FetchedAt time.Time `gorm:"index"`
	Records   int
	Payload   string `gorm:"type:jsonb"`
}
