package models

import "time"

// Contribution is an append-only record of a single deposit toward a
// dream. The dream's saved_amount is the authoritative running total;
// contributions exist for history and auditing.
type Contribution struct {
	Base
	DreamID    uint      `gorm:"not null;index" json:"dream_id"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	Amount     float64   `gorm:"not null" json:"amount"`
	RecordedAt time.Time `gorm:"not null" json:"recorded_at"`
}
