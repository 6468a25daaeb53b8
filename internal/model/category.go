package model

import "time"

// Category groups tasks by area (work, school, shopping, etc.).
// (UserID, Name) pairs are kept unique by a pre-insert check in the
// category service, not by a storage constraint.
type Category struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index"`
	Name      string `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Tasks     []Task `gorm:"foreignKey:CategoryID"`
}
