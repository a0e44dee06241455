package pantry

import (
	"kitchenpal/domain"
	"time"
)

const expiryDateLayout = "2006-01-02"

// DaysUntilExpiry counts whole calendar days from today to the expiry date.
// Time-of-day is ignored on both sides.
func DaysUntilExpiry(today, expiry time.Time) int {
	t := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(expiry.Year(), expiry.Month(), expiry.Day(), 0, 0, 0, 0, time.UTC)
	return int(e.Sub(t).Hours() / 24)
}

// Classify derives an item's status from its expiry date. The three classes
// are mutually exclusive and exhaustive: expired strictly before today,
// near-expiry within the next 0-3 days inclusive, fresh otherwise. The
// status is recomputed on every read and never stored.
func Classify(today, expiry time.Time) string {
	days := DaysUntilExpiry(today, expiry)
	if days < 0 {
		return domain.ItemStatusExpired
	}
	if days <= 3 {
		return domain.ItemStatusNearExpiry
	}
	return domain.ItemStatusFresh
}
