package models

import (
	"time"
)

// Payment represents money received from a patient.
type Payment struct {
	BaseModel
	PatientID   string    `gorm:"size:36;index" json:"patientId"`
	AmountJod   float64   `gorm:"type:decimal(10,2);not null" json:"amountJod"`
	PaymentDate time.Time `json:"paymentDate"`
	RecordedBy  string    `gorm:"size:36;index" json:"recordedBy"`
	Notes       string    `gorm:"type:text" json:"notes,omitempty"`

	// Relations
	Patient  Patient `gorm:"foreignKey:PatientID" json:"-"`
	Recorder User    `gorm:"foreignKey:RecordedBy" json:"-"`
}
