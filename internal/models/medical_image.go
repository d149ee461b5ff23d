package models

import (
	"time"
)

// MedicalImage represents an uploaded medical image. The binary lives on
// disk under the uploads directory; ImagePath is relative to it.
type MedicalImage struct {
	BaseModel
	PatientID   string    `gorm:"size:36;index" json:"patientId"`
	UploadedBy  string    `gorm:"size:36;index" json:"uploadedBy"`
	ImagePath   string    `gorm:"size:512;not null" json:"imagePath"`
	ImageType   string    `gorm:"size:50;not null" json:"imageType"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	UploadDate  time.Time `json:"uploadDate"`

	// Relations
	Patient  Patient `gorm:"foreignKey:PatientID" json:"-"`
	Uploader User    `gorm:"foreignKey:UploadedBy" json:"-"`
}
