package models

import (
	"fmt"
	"strings"
	"time"
)

// Role is the closed set of roles a user can hold. Tokens carry the role as a
// plain string claim, so anything read back from a token goes through
// ParseRole again.
type Role string

const (
	RoleStudent Role = "STUDENT"
	RoleAdmin   Role = "ADMIN"
)

func ParseRole(s string) (Role, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(RoleStudent):
		return RoleStudent, nil
	case string(RoleAdmin):
		return RoleAdmin, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// Statuses written by the reservation workflow itself. Incoming status updates
// are stored as-is and compared case-insensitively, so administrative states
// outside this set pass through untouched.
const (
	RequestPending  = "PENDING"
	RequestApproved = "APPROVED"
	RequestRejected = "REJECTED"
)

const (
	AssetAvailable = "AVAILABLE"
	AssetReserved  = "RESERVED"
)

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string `gorm:"unique;not null"          json:"username"`
	PasswordHash string `gorm:"not null"                 json:"-"`
	Role         Role   `gorm:"not null;default:STUDENT" json:"role"`
}

type Asset struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string `gorm:"not null"                 json:"name"`
	Type     string `json:"type"`
	Quantity int    `json:"quantity"`
	Status   string `gorm:"size:50"                  json:"status"`
}

// Request references its user and asset weakly: deleting a request never
// touches them. The reverse direction is kept safe by the referential guard
// in the user service.
type Request struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      uint      `gorm:"index;not null"           json:"user_id"`
	User        User      `gorm:"foreignKey:UserID"        json:"user"`
	AssetID     uint      `gorm:"index;not null"           json:"asset_id"`
	Asset       Asset     `gorm:"foreignKey:AssetID"       json:"asset"`
	Status      string    `gorm:"size:50"                  json:"status"`
	Comments    string    `gorm:"size:500"                 json:"comments"`
	RequestDate time.Time `json:"request_date"`
}
