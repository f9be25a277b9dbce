package entities

import "time"

// User is the relational credential row: one row per user, keyed by the
// normalized email. Only the password hash is stored, never the raw
// password.
type User struct {
	Email        string    `gorm:"primaryKey;size:254" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Requires2FA  bool      `gorm:"column:requires_2fa;not null" json:"requires_2fa"`
	CreatedAt    time.Time `json:"created_at"`
}

func (User) TableName() string {
	return "users"
}
