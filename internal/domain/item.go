package domain

import "time"

type Item struct {
	ID             int64     `json:"id"`
	OwnerID        int64     `json:"owner_id" validate:"required"`
	Name           string    `json:"name" validate:"required"`
	Description    string    `json:"description" gorm:"type:text"`
	ConditionNotes string    `json:"condition_notes,omitempty" gorm:"type:text"`
	Category       string    `json:"category,omitempty"`
	Location       string    `json:"location,omitempty"`
	PricePerDay    float64   `json:"price_per_day" validate:"required,gt=0"`
	DepositAmount  float64   `json:"deposit_amount" validate:"gte=0"`
	// IsAvailable is a derived cache flipped only by the booking arbitrator.
	IsAvailable bool `json:"is_available"`
	// Delisted is the owner's hard-disable switch; a delisted item accepts
	// no new booking requests.
	Delisted  bool      `json:"delisted"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Owner *User `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
}
