package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents a registered account. PasswordHash is nullable to leave
// room for social-auth accounts that never set one.
type User struct {
	ID           string  `gorm:"type:char(36);primaryKey" json:"id"`
	Email        string  `gorm:"size:120;uniqueIndex;not null" json:"email"`
	Password     string  `gorm:"-" json:"-"` // input only, not stored in db
	PasswordHash *string `gorm:"size:128" json:"-"`

	FirstName *string `gorm:"size:50" json:"first_name"`
	LastName  *string `gorm:"size:50" json:"last_name"`
	Phone     *string `gorm:"size:20" json:"phone"`

	IsActive   bool `gorm:"default:true;not null" json:"is_active"`
	IsVerified bool `gorm:"default:false;not null" json:"is_verified"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	LastLogin *time.Time `json:"last_login"`

	Memorials []Memorial `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.Email = strings.ToLower(u.Email)
	return nil
}

// FullName falls back to first name, last name, then the email local part.
func (u *User) FullName() string {
	first := ""
	last := ""
	if u.FirstName != nil {
		first = *u.FirstName
	}
	if u.LastName != nil {
		last = *u.LastName
	}
	switch {
	case first != "" && last != "":
		return first + " " + last
	case first != "":
		return first
	case last != "":
		return last
	}
	return strings.SplitN(u.Email, "@", 2)[0]
}

// SafeUser represents a user without sensitive information
type SafeUser struct {
	ID         string     `json:"id"`
	Email      string     `json:"email"`
	FirstName  *string    `json:"first_name"`
	LastName   *string    `json:"last_name"`
	FullName   string     `json:"full_name"`
	Phone      *string    `json:"phone"`
	IsActive   bool       `json:"is_active"`
	IsVerified bool       `json:"is_verified"`
	CreatedAt  time.Time  `json:"created_at"`
	LastLogin  *time.Time `json:"last_login"`
}

// ToSafeUser converts a User to a SafeUser
func (u *User) ToSafeUser() SafeUser {
	return SafeUser{
		ID:         u.ID,
		Email:      u.Email,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		FullName:   u.FullName(),
		Phone:      u.Phone,
		IsActive:   u.IsActive,
		IsVerified: u.IsVerified,
		CreatedAt:  u.CreatedAt,
		LastLogin:  u.LastLogin,
	}
}
