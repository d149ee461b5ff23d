package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Role enum
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleDoctor       Role = "doctor"
	RoleReceptionist Role = "receptionist"
)

// User represents a staff account in the system
type User struct {
	BaseModel
	Username             string `gorm:"uniqueIndex;size:255;not null" json:"username"`
	PasswordHash         string `gorm:"size:255;not null" json:"-"` // Never send password hash in JSON
	FullName             string `gorm:"size:255;not null" json:"fullName"`
	Role                 Role   `gorm:"size:20;not null" json:"role"`
	IsFirstLogin         bool   `gorm:"default:true" json:"isFirstLogin"`
	SessionDurationHours int    `gorm:"default:8" json:"sessionDurationHours"`

	// Relations (not always preloaded)
	Sessions           []Session      `gorm:"foreignKey:UserID" json:"-"`
	DoctorAppointments []Appointment  `gorm:"foreignKey:DoctorID" json:"-"`
	DoctorVisits       []Visit        `gorm:"foreignKey:DoctorID" json:"-"`
	RecordedPayments   []Payment      `gorm:"foreignKey:RecordedBy" json:"-"`
	UploadedImages     []MedicalImage `gorm:"foreignKey:UploadedBy" json:"-"`
}

// UserSanitized represents the user data that is safe to send in API responses.
type UserSanitized struct {
	ID                   string    `json:"id"`
	Username             string    `json:"username"`
	FullName             string    `json:"fullName"`
	Role                 Role      `json:"role"`
	IsFirstLogin         bool      `json:"isFirstLogin"`
	SessionDurationHours int       `json:"sessionDurationHours"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

// SetPassword hashes a password and sets it on the user
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

// CheckPassword compares a password with the user's hashed password.
// bcrypt's comparison is constant time.
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

// Sanitize creates a UserSanitized struct from a User model, excluding sensitive data.
func (u *User) Sanitize() UserSanitized {
	return UserSanitized{
		ID:                   u.ID,
		Username:             u.Username,
		FullName:             u.FullName,
		Role:                 u.Role,
		IsFirstLogin:         u.IsFirstLogin,
		SessionDurationHours: u.SessionDurationHours,
		CreatedAt:            u.CreatedAt,
		UpdatedAt:            u.UpdatedAt,
	}
}
