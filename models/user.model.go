package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Name                string     `json:"name"`
	Email               string     `json:"email" gorm:"unique;not null"`
	Phone               string     `json:"phone" gorm:"default:''"`
	Username            string     `json:"username" gorm:"unique;not null"`
	Password            string     `json:"-" gorm:"not null"`
	Role                string     `json:"role" gorm:"default:'USER'"` // USER, ADMIN
	ProfileImage        string     `json:"profile_image" gorm:"default:''"`
	LastLogin           *time.Time `json:"last_login"`
	FailedLoginAttempts int        `json:"-" gorm:"default:0"`
	IsDeleted           bool       `json:"-" gorm:"default:false"`
}

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)
