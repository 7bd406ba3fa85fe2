package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/linkmeet/linkmeet/internal/domain"
	"github.com/linkmeet/linkmeet/internal/store"
)

// Messages serves durable chat history. The live broadcast of a chat
// message is the router's concern and independent of persistence here.
type Messages struct {
	messages *store.Messages
	members  *store.Members
}

func NewMessages(st *store.Store) *Messages {
	return &Messages{messages: st.Messages, members: st.Members}
}

// List returns the recent history of a room, members only.
func (s *Messages) List(ctx context.Context, roomID domain.RoomID, callerID domain.UserID) ([]store.MessageRow, error) {
	if err := s.requireMember(ctx, roomID, callerID); err != nil {
		return nil, err
	}
	out, err := s.messages.ListRecent(ctx, roomID)
	if err != nil {
		return nil, internal(err)
	}
	return out, nil
}

// Send persists a text message authored by a member of the room.
func (s *Messages) Send(ctx context.Context, roomID domain.RoomID, callerID domain.UserID, content string) (*domain.Message, error) {
	if content == "" || len(content) > domain.MaxContentLen {
		return nil, fmt.Errorf("message content: %w", domain.ErrBadRequest)
	}
	if err := s.requireMember(ctx, roomID, callerID); err != nil {
		return nil, err
	}
	m := &domain.Message{
		ID:        uuid.NewString(),
		Content:   content,
		Kind:      domain.MessageText,
		RoomID:    roomID,
		UserID:    callerID,
		CreatedAt: time.Now(),
	}
	if err := s.messages.Create(ctx, m); err != nil {
		return nil, internal(err)
	}
	return m, nil
}

// Delete removes a message; allowed for its author or for a member of
// the room with rank MODERATOR or higher.
func (s *Messages) Delete(ctx context.Context, messageID string, callerID domain.UserID) error {
	m, err := s.messages.FindByID(ctx, messageID)
	if err != nil {
		return internal(err)
	}
	if m.UserID != callerID {
		member, err := s.members.Find(ctx, m.RoomID, callerID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("not author or moderator: %w", domain.ErrForbidden)
			}
			return internal(err)
		}
		if member.Role.Rank() < domain.RoleModerator.Rank() {
			return fmt.Errorf("not author or moderator: %w", domain.ErrForbidden)
		}
	}
	if err := s.messages.Delete(ctx, messageID); err != nil {
		return internal(err)
	}
	log.Info().Str("module", "app.messages").Str("message", messageID).
		Str("by", string(callerID)).Msg("message deleted")
	return nil
}

func (s *Messages) requireMember(ctx context.Context, roomID domain.RoomID, callerID domain.UserID) error {
	if _, err := s.members.Find(ctx, roomID, callerID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("not a member: %w", domain.ErrForbidden)
		}
		return internal(err)
	}
	return nil
}
