// Package progress derives display metrics for a dream: days remaining,
// the amount still to save, recommended savings rates, and percentage
// complete. Compute is a pure function of the record and a reference
// time, so the dashboard can re-derive everything on each request.
package progress

import (
	"math"
	"time"

	"dreamfund/internal/models"
)

// Report holds the derived metrics for a dream at a point in time.
type Report struct {
	Deadline        time.Time `json:"deadline"`
	DaysLeft        int       `json:"days_left"`
	AmountRemaining float64   `json:"amount_remaining"`
	DailyRate       float64   `json:"daily_rate"`
	WeeklyRate      float64   `json:"weekly_rate"`
	MonthlyRate     float64   `json:"monthly_rate"`
	YearlyRate      float64   `json:"yearly_rate"`
	Percent         float64   `json:"percent"`
}

// Compute derives a Report for the dream as of the given time.
//
// DaysLeft is the ceiling of the remaining interval in 24h days,
// floored at zero. When DaysLeft is zero the daily rate is zero rather
// than a division by zero; the deadline has passed or is today.
//
// Weekly, monthly, and yearly rates are the daily rate times 7, 30,
// and 365. The linear approximation is intentional: the recommendation
// is a rule of thumb, not a calendar-accurate amortization.
//
// Percent is capped at 100 for display even when saved_amount has
// overshot the target.
func Compute(d *models.Dream, asOf time.Time) Report {
	deadline := d.Deadline()

	daysLeft := 0
	if remaining := deadline.Sub(asOf); remaining > 0 {
		daysLeft = int(math.Ceil(remaining.Hours() / 24))
	}

	amountRemaining := d.TargetAmount - d.SavedAmount
	if amountRemaining < 0 {
		amountRemaining = 0
	}

	var dailyRate float64
	if daysLeft > 0 {
		dailyRate = amountRemaining / float64(daysLeft)
	}

	var percent float64
	if d.TargetAmount > 0 {
		percent = d.SavedAmount / d.TargetAmount * 100
	}
	if percent > 100 {
		percent = 100
	}

	return Report{
		Deadline:        deadline,
		DaysLeft:        daysLeft,
		AmountRemaining: amountRemaining,
		DailyRate:       dailyRate,
		WeeklyRate:      dailyRate * 7,
		MonthlyRate:     dailyRate * 30,
		YearlyRate:      dailyRate * 365,
		Percent:         percent,
	}
}
