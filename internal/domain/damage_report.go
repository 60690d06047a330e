package domain

import "time"

// DamageReport is one-to-one with a booking and may only be filed by the
// item owner or the renter once the rental is ACTIVE or COMPLETED.
type DamageReport struct {
	ID          int64     `json:"id"`
	BookingID   int64     `gorm:"uniqueIndex;not null" json:"booking_id"`
	ReportedBy  int64     `gorm:"not null" json:"reported_by"`
	Description string    `gorm:"type:text" json:"description"`
	ReportedAt  time.Time `json:"reported_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
