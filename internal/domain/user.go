// Package domain defines the persisted entities of the application.
package domain

import "time"

// User represents a registered account.
type User struct {
	ID        uint      `gorm:"primaryKey"`
	Username  string    `gorm:"type:varchar(191);uniqueIndex:idx_username;not null"`
	Email     string    `gorm:"type:varchar(191);uniqueIndex:idx_email"`
	Password  string    `gorm:"type:text;not null"` // bcrypt hash, never the plaintext
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
