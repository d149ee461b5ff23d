package models

// Patient represents a clinic patient. The outstanding balance is never
// stored; it is derived from visits and payments on every read.
type Patient struct {
	BaseModel
	Name           string `gorm:"size:255;not null" json:"name"`
	Phone          string `gorm:"size:50;not null" json:"phone"`
	Email          string `gorm:"size:255" json:"email,omitempty"`
	DateOfBirth    string `gorm:"size:20" json:"dateOfBirth,omitempty"`
	Address        string `gorm:"size:255" json:"address,omitempty"`
	MedicalHistory string `gorm:"type:text" json:"medicalHistory,omitempty"`
	Notes          string `gorm:"type:text" json:"notes,omitempty"`

	// Relations (not always preloaded)
	Appointments []Appointment  `gorm:"foreignKey:PatientID" json:"-"`
	Visits       []Visit        `gorm:"foreignKey:PatientID" json:"-"`
	Payments     []Payment      `gorm:"foreignKey:PatientID" json:"-"`
	Images       []MedicalImage `gorm:"foreignKey:PatientID" json:"-"`
}
