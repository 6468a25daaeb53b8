package model

import "time"

// User is an account identified by a unique email address.
// ResetTokenHash holds a sha256 of the outstanding password-reset token
// and is empty when no reset is pending.
type User struct {
	ID             uint   `gorm:"primaryKey"`
	Email          string `gorm:"uniqueIndex"`
	Name           string
	PasswordHash   string
	ResetTokenHash string `gorm:"index"`
	ResetExpiresAt *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
