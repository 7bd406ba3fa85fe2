// Package domain contains persisted entities and the role order; no
// transport or storage logic lives here.
package domain

import (
	"errors"
	"time"
)

const (
	MaxNameLen    = 64
	MaxRoomName   = 100
	MaxContentLen = 2000
)

var (
	ErrNameEmpty   = errors.New("name empty")
	ErrNameTooLong = errors.New("name too long")
)

type UserID string

type User struct {
	ID        UserID    `gorm:"primarykey;size:36" json:"id"`
	Email     string    `gorm:"size:254;uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"size:72;not null" json:"-"`
	Name      string    `gorm:"size:64;not null" json:"name"`
	Avatar    string    `gorm:"size:500" json:"avatar,omitempty"`
	IsAdmin   bool      `gorm:"default:false" json:"isAdmin"`
	IsOnline  bool      `gorm:"default:false" json:"isOnline"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (User) TableName() string { return "users" }

func (u *User) SetName(name string) error {
	if len(name) == 0 {
		return ErrNameEmpty
	}
	if len(name) > MaxNameLen {
		return ErrNameTooLong
	}
	u.Name = name
	return nil
}
