package app

import (
	"encoding/json"

	"github.com/linkmeet/linkmeet/internal/core"
	"github.com/linkmeet/linkmeet/internal/domain"
)

// Outbound event envelopes. Names mirror what clients subscribe to;
// every event carries a "type" discriminator.

type userJoinedEvent struct {
	Type        string      `json:"type"`
	ConnID      core.ConnID `json:"connectionId"`
	DisplayName string      `json:"displayName"`
}

type userLeftEvent struct {
	Type        string      `json:"type"`
	ConnID      core.ConnID `json:"connectionId"`
	DisplayName string      `json:"displayName"`
}

// leftEvent acknowledges a leave-room back to the leaver; the remaining
// members get user-left instead.
type leftEvent struct {
	Type string        `json:"type"`
	Room domain.RoomID `json:"roomId"`
}

type roomMembersEvent struct {
	Type    string                `json:"type"`
	Room    domain.RoomID         `json:"roomId"`
	Members []core.PresenceMember `json:"members"`
}

type chatMessageEvent struct {
	Type        string      `json:"type"`
	ID          string      `json:"id"`
	Content     string      `json:"content"`
	DisplayName string      `json:"displayName"`
	SenderID    core.ConnID `json:"senderId"`
	Timestamp   string      `json:"timestamp"`
	Kind        string      `json:"kind"`
}

type typingEvent struct {
	Type        string      `json:"type"`
	DisplayName string      `json:"displayName"`
	SenderID    core.ConnID `json:"senderId"`
}

type stopTypingEvent struct {
	Type     string      `json:"type"`
	SenderID core.ConnID `json:"senderId"`
}

// forwardEvent wraps a targeted signaling payload. The payload is
// forwarded verbatim; only the sender annotation is added.
type forwardEvent struct {
	Type     string          `json:"type"`
	Payload  json.RawMessage `json:"payload"`
	SenderID core.ConnID     `json:"senderId"`
	Room     domain.RoomID   `json:"roomId"`
}

type readyEvent struct {
	Type     string        `json:"type"`
	SenderID core.ConnID   `json:"senderId"`
	Room     domain.RoomID `json:"roomId"`
}

type errorEvent struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}
