package models

import "time"

// TimeUnit represents the unit of a dream's savings horizon.
type TimeUnit string

const (
	TimeUnitDays   TimeUnit = "days"
	TimeUnitMonths TimeUnit = "months"
	TimeUnitYears  TimeUnit = "years"
)

// Dream represents a user's single savings goal. The unique index on
// user_id is what enforces the one-dream-per-user rule; application code
// relies on the constraint, not on in-memory checks.
type Dream struct {
	Base
	UserID        uint       `gorm:"not null;uniqueIndex" json:"user_id"`
	Name          string     `gorm:"column:dream_name;not null" json:"dream_name"`
	ImageURL      string     `gorm:"column:image_url" json:"image_url"`
	TargetAmount  float64    `gorm:"not null" json:"target_amount"`
	TimeValue     int        `gorm:"not null" json:"time_value"`
	TimeUnit      TimeUnit   `gorm:"not null" json:"time_unit"`
	SavedAmount   float64    `gorm:"not null;default:0" json:"saved_amount"`
	StartDate     time.Time  `gorm:"not null" json:"start_date"`
	LastSavedDate *time.Time `json:"last_saved_date,omitempty"`

	// Relationships
	Contributions []Contribution `gorm:"foreignKey:DreamID" json:"contributions,omitempty"`
}

// Deadline returns the target date: start_date advanced by time_value
// units. Month and year arithmetic follows calendar rollover rules
// (AddDate), so Jan 31 + 1 month normalizes rather than clamping.
func (d *Dream) Deadline() time.Time {
	switch d.TimeUnit {
	case TimeUnitDays:
		return d.StartDate.AddDate(0, 0, d.TimeValue)
	case TimeUnitMonths:
		return d.StartDate.AddDate(0, d.TimeValue, 0)
	case TimeUnitYears:
		return d.StartDate.AddDate(d.TimeValue, 0, 0)
	}
	return d.StartDate
}
