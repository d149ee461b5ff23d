package models

import (
	"gorm.io/gorm"
)

// EnsureDefaultAdmin creates the default admin account on first startup so
// the system is reachable before any users exist. The account keeps its
// first-login flag until the password is changed.
func EnsureDefaultAdmin(db *gorm.DB, password string, sessionHours int) error {
	var count int64
	if err := db.Model(&User{}).Where("username = ?", "admin").Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	admin := User{
		Username:             "admin",
		FullName:             "System Administrator",
		Role:                 RoleAdmin,
		IsFirstLogin:         true,
		SessionDurationHours: sessionHours,
	}
	if err := admin.SetPassword(password); err != nil {
		return err
	}
	return db.Create(&admin).Error
}
