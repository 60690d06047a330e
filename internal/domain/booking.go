package domain

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingApproved  BookingStatus = "APPROVED"
	BookingRejected  BookingStatus = "REJECTED"
	BookingActive    BookingStatus = "ACTIVE"
	BookingCompleted BookingStatus = "COMPLETED"
)

// Terminal reports whether no further transition is possible.
func (s BookingStatus) Terminal() bool {
	return s == BookingRejected || s == BookingCompleted
}

type Booking struct {
	ID              int64         `json:"id"`
	ItemID          int64         `json:"item_id" validate:"required"`
	RenterID        int64         `json:"renter_id" validate:"required"`
	StartDate       time.Time     `json:"start_date" validate:"required"`
	EndDate         time.Time     `json:"end_date" validate:"required"`
	TotalPrice      float64       `json:"total_price"`
	Status          BookingStatus `json:"status"`
	RejectionReason string        `json:"rejection_reason,omitempty" gorm:"type:text"`
	PickedUpAt      *time.Time    `json:"picked_up_at,omitempty"`
	ReturnedAt      *time.Time    `json:"returned_at,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`

	Item   *Item `json:"item,omitempty" gorm:"foreignKey:ItemID"`
	Renter *User `json:"renter,omitempty" gorm:"foreignKey:RenterID"`
}

// Days returns the inclusive number of rental days.
func (b *Booking) Days() int {
	return int(b.EndDate.Sub(b.StartDate).Hours()/24) + 1
}

// Overlaps reports whether two inclusive date ranges intersect.
func Overlaps(start1, end1, start2, end2 time.Time) bool {
	return !start1.After(end2) && !start2.After(end1)
}
