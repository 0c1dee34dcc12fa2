package ds

import (
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	RoleViewer = "viewer"
	RoleAdmin  = "admin"
)

// @Schema(description="User allowed to load catalog data")
type User struct {
	UserID   int    `gorm:"primaryKey;column:user_id" json:"user_id"`
	Login    string `gorm:"column:login;unique" json:"login"`
	Password string `gorm:"column:password" json:"password,omitempty"`
	Role     string `gorm:"column:role" json:"role"` // "viewer" | "admin"
}

// BeforeCreate hashes the plain password before insert.
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

func (User) TableName() string {
	return "users"
}
