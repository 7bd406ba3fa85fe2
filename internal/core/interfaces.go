package core

import "github.com/linkmeet/linkmeet/internal/domain"

// Frame is a marshaled outbound event.
type Frame []byte

// ConnID is the gateway-issued identity of one live connection.
type ConnID string

// SignalConnection abstracts the transport endpoint of a connection.
// Owned by the adapter; the adapter must Close() it.
type SignalConnection interface {
	TrySend(Frame) error
	Close()
}

// MemberInfo is the display metadata a client registers for itself.
type MemberInfo struct {
	UserID      string `json:"userId,omitempty"`
	DisplayName string `json:"displayName"`
}

// PresenceMember is a read-only view of one connection inside a room.
type PresenceMember struct {
	ConnID      ConnID `json:"connectionId"`
	UserID      string `json:"userId,omitempty"`
	DisplayName string `json:"displayName"`
}

// Recipient pairs a connection identity with its live endpoint for
// delivery. Lists of recipients are snapshots taken atomically by the
// registry.
type Recipient struct {
	ID   ConnID
	Conn SignalConnection
}

// Departure describes a connection removed from a room, together with
// the members still present at the moment of removal.
type Departure struct {
	Room      domain.RoomID
	Member    PresenceMember
	Remaining []Recipient
}
