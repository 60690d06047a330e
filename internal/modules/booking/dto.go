package booking

import "time"

type CreateBookingRequest struct {
	ItemID    int64     `json:"item_id"`
	RenterID  int64     `json:"-"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

type dateRangeBody struct {
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
}

type rejectBody struct {
	Reason string `json:"reason"`
}
