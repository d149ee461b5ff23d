package models

// Procedure represents a billable procedure in the catalog. Price edits are
// not versioned: visits always cost against the current price, so changing a
// price reprices historical visits on the next read.
type Procedure struct {
	BaseModel
	Name        string  `gorm:"size:255;not null" json:"name"`
	PriceJod    float64 `gorm:"type:decimal(10,2);not null" json:"priceJod"`
	Description string  `gorm:"type:text" json:"description,omitempty"`
}
