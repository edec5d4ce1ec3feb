package model

import (
	"gorm.io/gorm"

	"golang.org/x/crypto/bcrypt"
)

// Role codes used by the factory service.
const (
	RoleAdmin   = "ADMIN"
	RoleManager = "GERENTE"
)

// User is an account of the factory service.
type User struct {
	ID           ID       `gorm:"type:varchar(64);primaryKey" json:"id"`
	Email        string   `gorm:"type:varchar(255);uniqueIndex;not null" json:"email" validate:"required,email"`
	Name         string   `gorm:"type:varchar(255)" json:"name"`
	Roles        []string `gorm:"serializer:json" json:"roles"`
	PasswordHash string   `gorm:"type:varchar(255)" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = NewID("usr")
	}
	return nil
}

// SetPassword hashes and sets the user's password
func (u *User) SetPassword(password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashed)
	return nil
}

// CheckPassword verifies if the provided password matches the stored hash
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// HasRole reports whether the user holds the given role code.
func (u *User) HasRole(code string) bool {
	for _, r := range u.Roles {
		if r == code {
			return true
		}
	}
	return false
}

// SignUpRequest is the payload of the sign-up endpoint.
type SignUpRequest struct {
	Email    string   `json:"email" validate:"required,email"`
	Password string   `json:"password" validate:"required,min=6"`
	Roles    []string `json:"roles" validate:"required,min=1,dive,oneof=ADMIN GERENTE"`
}
