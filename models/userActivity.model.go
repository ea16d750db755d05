package models

import "gorm.io/gorm"

// UserActivity is the server-side login/logout audit trail.
type UserActivity struct {
	gorm.Model
	UserID    uint   `json:"user_id" gorm:"index;not null"`
	Username  string `json:"username"`
	Action    string `json:"action"` // LOGIN, LOGOUT, LOGIN_FAILED
	IPAddress string `json:"ip_address"`
	UserAgent string `json:"user_agent"`
	IsDeleted bool   `json:"-" gorm:"default:false"`
}

const (
	ActivityLogin       = "LOGIN"
	ActivityLogout      = "LOGOUT"
	ActivityLoginFailed = "LOGIN_FAILED"
)
