package models

// Appointment represents a scheduled appointment between a patient and a
// doctor. Overlapping appointments are allowed; there is no conflict check.
type Appointment struct {
	BaseModel
	PatientID       string `gorm:"size:36;index" json:"patientId"`
	DoctorID        string `gorm:"size:36;index" json:"doctorId"`
	AppointmentDate string `gorm:"size:20;not null" json:"appointmentDate"`
	AppointmentTime string `gorm:"size:20;not null" json:"appointmentTime"`
	DurationMinutes int    `gorm:"default:30" json:"durationMinutes"`
	Status          string `gorm:"size:20;default:'scheduled'" json:"status"`
	Notes           string `gorm:"type:text" json:"notes,omitempty"`

	// Relations
	Patient Patient `gorm:"foreignKey:PatientID" json:"-"`
	Doctor  User    `gorm:"foreignKey:DoctorID" json:"-"`
}
