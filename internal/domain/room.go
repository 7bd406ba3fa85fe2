package domain

import "time"

type RoomID string

type Room struct {
	ID          RoomID    `gorm:"primarykey;size:36" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Description string    `gorm:"size:500" json:"description,omitempty"`
	IsPublic    bool      `gorm:"not null;default:true" json:"isPublic"`
	// Password holds the bcrypt hash of the room secret; empty for
	// rooms without one. Never serialized.
	Password  string    `gorm:"size:72" json:"-"`
	OwnerID   UserID    `gorm:"size:36;not null;index" json:"ownerId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Room) TableName() string { return "rooms" }

// RoomMember is the durable (room, user) association. Exactly one
// member per room holds RoleOwner, created together with the room and
// never reassigned.
type RoomMember struct {
	ID        string    `gorm:"primarykey;size:36" json:"id"`
	RoomID    RoomID    `gorm:"size:36;not null;index:idx_room_user,unique" json:"roomId"`
	UserID    UserID    `gorm:"size:36;not null;index:idx_room_user,unique" json:"userId"`
	Role      Role      `gorm:"size:16;not null;default:PARTICIPANT" json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func (RoomMember) TableName() string { return "room_members" }
