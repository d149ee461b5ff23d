package models

import (
	"time"
)

// Visit represents a completed or in-progress patient visit. Its cost is
// never stored: it is the sum over its line items of the procedure's current
// price times quantity, evaluated at read time.
type Visit struct {
	BaseModel
	PatientID string    `gorm:"size:36;index" json:"patientId"`
	DoctorID  string    `gorm:"size:36;index" json:"doctorId"`
	VisitDate time.Time `json:"visitDate"`
	Status    string    `gorm:"size:20;default:'in_progress'" json:"status"`
	Notes     string    `gorm:"type:text" json:"notes,omitempty"`

	// Relations
	Patient    Patient          `gorm:"foreignKey:PatientID" json:"-"`
	Doctor     User             `gorm:"foreignKey:DoctorID" json:"-"`
	Procedures []VisitProcedure `gorm:"foreignKey:VisitID" json:"-"`
}

// VisitProcedure is one line item of a visit: a procedure and a quantity.
// Line items are owned by their visit and are not addressable on their own
// after creation.
type VisitProcedure struct {
	BaseModel
	VisitID     string `gorm:"size:36;index" json:"visitId"`
	ProcedureID string `gorm:"size:36;index" json:"procedureId"`
	Quantity    int    `gorm:"default:1" json:"quantity"`

	// Relations
	Visit     Visit     `gorm:"foreignKey:VisitID" json:"-"`
	Procedure Procedure `gorm:"foreignKey:ProcedureID" json:"-"`
}
