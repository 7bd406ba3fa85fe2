package domain

import "time"

type MessageKind string

const (
	MessageText MessageKind = "TEXT"
)

type Message struct {
	ID        string      `gorm:"primarykey;size:36" json:"id"`
	Content   string      `gorm:"size:2000;not null" json:"content"`
	Kind      MessageKind `gorm:"size:16;not null;default:TEXT" json:"kind"`
	RoomID    RoomID      `gorm:"size:36;not null;index" json:"roomId"`
	UserID    UserID      `gorm:"size:36;not null;index" json:"userId"`
	CreatedAt time.Time   `json:"createdAt"`
}

func (Message) TableName() string { return "messages" }
