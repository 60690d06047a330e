package catalog

type CreateItemRequest struct {
	Name           string  `json:"name" binding:"required"`
	Description    string  `json:"description"`
	ConditionNotes string  `json:"condition_notes"`
	Category       string  `json:"category"`
	Location       string  `json:"location"`
	PricePerDay    float64 `json:"price_per_day" binding:"required,gt=0"`
	DepositAmount  float64 `json:"deposit_amount" binding:"gte=0"`
}

type UpdateItemRequest struct {
	Name           *string  `json:"name"`
	Description    *string  `json:"description"`
	ConditionNotes *string  `json:"condition_notes"`
	Category       *string  `json:"category"`
	Location       *string  `json:"location"`
	PricePerDay    *float64 `json:"price_per_day"`
	DepositAmount  *float64 `json:"deposit_amount"`
}
