package domain

import "time"

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "PENDING"
	PaymentSuccess PaymentStatus = "SUCCESS"
	PaymentFailed  PaymentStatus = "FAILED"
)

// Payment links a booking to one payment attempt. Re-attempts create new
// rows; at most one row per booking ever reaches SUCCESS.
type Payment struct {
	ID            int64         `gorm:"primaryKey" json:"id"`
	BookingID     int64         `gorm:"index;not null" json:"booking_id"`
	RenterID      int64         `gorm:"index;not null" json:"renter_id"`
	Amount        float64       `json:"amount"`
	DepositAmount float64       `json:"deposit_amount"`
	RentalCharge  float64       `json:"rental_charge"`
	PlatformFee   float64       `json:"platform_fee"`
	OrderID       string        `gorm:"uniqueIndex;type:varchar(64);not null" json:"order_id"`
	TransactionID string        `gorm:"type:varchar(128)" json:"transaction_id,omitempty"`
	Status        PaymentStatus `gorm:"type:varchar(20);default:'PENDING';index" json:"status"`
	FailureReason string        `gorm:"type:text" json:"failure_reason,omitempty"`
	SettledAt     *time.Time    `json:"settled_at,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

func (Payment) TableName() string { return "payments" }
