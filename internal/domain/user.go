package domain

// User Model
type User struct {
	ID       uint   `gorm:"primaryKey" json:"_id"`                      // Primary key
	Username string `gorm:"not null" json:"username"`                   // Display name
	Email    string `gorm:"size:191;uniqueIndex;not null" json:"email"` // Unique login key and token claim
	Password string `gorm:"not null" json:"password,omitempty"`         // Hashed password, never the plaintext
	IsActive bool   `gorm:"not null;default:true" json:"isActive"`      // Soft delete flag, gates login
}
