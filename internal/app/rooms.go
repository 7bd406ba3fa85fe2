// Package app holds the services: room membership authorization, chat
// history, accounts, and the live presence registry plus signaling
// router they feed.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/linkmeet/linkmeet/internal/auth"
	"github.com/linkmeet/linkmeet/internal/domain"
	"github.com/linkmeet/linkmeet/internal/store"
)

// Rooms executes membership-affecting operations against the store,
// enforcing the role hierarchy on every mutation.
type Rooms struct {
	rooms   *store.Rooms
	members *store.Members
	hasher  *auth.PasswordHasher
}

func NewRooms(st *store.Store, hasher *auth.PasswordHasher) *Rooms {
	return &Rooms{rooms: st.Rooms, members: st.Members, hasher: hasher}
}

type RoomParams struct {
	Name        string
	Description string
	IsPublic    bool
	Password    string
}

// Create persists the room together with its OWNER membership.
func (s *Rooms) Create(ctx context.Context, ownerID domain.UserID, p RoomParams) (*domain.Room, error) {
	if p.Name == "" || len(p.Name) > domain.MaxRoomName {
		return nil, fmt.Errorf("room name: %w", domain.ErrBadRequest)
	}
	room := &domain.Room{
		ID:          domain.RoomID(uuid.NewString()),
		Name:        p.Name,
		Description: p.Description,
		IsPublic:    p.IsPublic,
		OwnerID:     ownerID,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if p.Password != "" {
		hash, err := s.hasher.Hash(p.Password)
		if err != nil {
			return nil, fmt.Errorf("hash room secret: %w", domain.ErrInternal)
		}
		room.Password = hash
	}
	if err := s.rooms.CreateWithOwner(ctx, room); err != nil {
		return nil, internal(err)
	}
	log.Info().Str("module", "app.rooms").Str("room", string(room.ID)).
		Str("owner", string(ownerID)).Msg("room created")
	return room, nil
}

func (s *Rooms) ListPublic(ctx context.Context) ([]store.RoomSummary, error) {
	out, err := s.rooms.ListPublic(ctx)
	if err != nil {
		return nil, internal(err)
	}
	return out, nil
}

// Get fetches a room; private rooms are visible to members only.
func (s *Rooms) Get(ctx context.Context, roomID domain.RoomID, callerID domain.UserID) (*domain.Room, error) {
	room, err := s.rooms.FindByID(ctx, roomID)
	if err != nil {
		return nil, internal(err)
	}
	if !room.IsPublic {
		if _, err := s.members.Find(ctx, roomID, callerID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("not a member: %w", domain.ErrForbidden)
			}
			return nil, internal(err)
		}
	}
	return room, nil
}

// Update mutates name/description/visibility/secret; owner only. A new
// secret goes through the shared hasher, an empty one keeps the stored
// hash.
func (s *Rooms) Update(ctx context.Context, roomID domain.RoomID, callerID domain.UserID, p RoomParams) (*domain.Room, error) {
	room, err := s.rooms.FindByID(ctx, roomID)
	if err != nil {
		return nil, internal(err)
	}
	if room.OwnerID != callerID {
		return nil, fmt.Errorf("not the owner: %w", domain.ErrForbidden)
	}
	if p.Name != "" {
		if len(p.Name) > domain.MaxRoomName {
			return nil, fmt.Errorf("room name: %w", domain.ErrBadRequest)
		}
		room.Name = p.Name
	}
	room.Description = p.Description
	room.IsPublic = p.IsPublic
	if p.Password != "" {
		hash, err := s.hasher.Hash(p.Password)
		if err != nil {
			return nil, fmt.Errorf("hash room secret: %w", domain.ErrInternal)
		}
		room.Password = hash
	}
	room.UpdatedAt = time.Now()
	if err := s.rooms.Update(ctx, room); err != nil {
		return nil, internal(err)
	}
	return room, nil
}

// Delete destroys the room, cascading memberships and messages; owner
// only.
func (s *Rooms) Delete(ctx context.Context, roomID domain.RoomID, callerID domain.UserID) error {
	room, err := s.rooms.FindByID(ctx, roomID)
	if err != nil {
		return internal(err)
	}
	if room.OwnerID != callerID {
		return fmt.Errorf("not the owner: %w", domain.ErrForbidden)
	}
	if err := s.rooms.Delete(ctx, roomID); err != nil {
		return internal(err)
	}
	log.Info().Str("module", "app.rooms").Str("room", string(roomID)).Msg("room deleted")
	return nil
}

// Join adds the caller as PARTICIPANT. Private rooms require the secret:
// a missing secret fails before any comparison is attempted.
func (s *Rooms) Join(ctx context.Context, roomID domain.RoomID, callerID domain.UserID, secret string) (*domain.RoomMember, error) {
	room, err := s.rooms.FindByID(ctx, roomID)
	if err != nil {
		return nil, internal(err)
	}
	if _, err := s.members.Find(ctx, roomID, callerID); err == nil {
		return nil, fmt.Errorf("already a member: %w", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, internal(err)
	}
	if !room.IsPublic {
		if secret == "" {
			return nil, fmt.Errorf("secret required: %w", domain.ErrUnauthorized)
		}
		if !s.hasher.Verify(secret, room.Password) {
			return nil, fmt.Errorf("invalid secret: %w", domain.ErrUnauthorized)
		}
	}
	m := &domain.RoomMember{
		ID:        uuid.NewString(),
		RoomID:    roomID,
		UserID:    callerID,
		Role:      domain.RoleParticipant,
		CreatedAt: time.Now(),
	}
	if err := s.members.Create(ctx, m); err != nil {
		return nil, internal(err)
	}
	log.Info().Str("module", "app.rooms").Str("room", string(roomID)).
		Str("user", string(callerID)).Msg("member joined")
	return m, nil
}

// Leave removes the caller's membership. The owner cannot leave; the
// room must be deleted instead.
func (s *Rooms) Leave(ctx context.Context, roomID domain.RoomID, callerID domain.UserID) error {
	m, err := s.members.Find(ctx, roomID, callerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("not a member: %w", domain.ErrBadRequest)
		}
		return internal(err)
	}
	if m.Role == domain.RoleOwner {
		return fmt.Errorf("owner must delete the room: %w", domain.ErrForbidden)
	}
	if err := s.members.Delete(ctx, m.ID); err != nil {
		return internal(err)
	}
	return nil
}

func (s *Rooms) Members(ctx context.Context, roomID domain.RoomID) ([]store.MemberRow, error) {
	if _, err := s.rooms.FindByID(ctx, roomID); err != nil {
		return nil, internal(err)
	}
	out, err := s.members.ListByRoom(ctx, roomID)
	if err != nil {
		return nil, internal(err)
	}
	return out, nil
}

// UpdateMemberRole sets the target's role. The OWNER role is assigned
// only at room creation and can never be granted or taken here.
func (s *Rooms) UpdateMemberRole(ctx context.Context, roomID domain.RoomID, callerID, targetID domain.UserID, role domain.Role) (*domain.RoomMember, error) {
	if role == domain.RoleOwner {
		return nil, fmt.Errorf("owner role is not assignable: %w", domain.ErrForbidden)
	}
	target, err := s.authorizeMemberAction(ctx, roomID, callerID, targetID)
	if err != nil {
		return nil, err
	}
	if err := s.members.UpdateRole(ctx, target.ID, role); err != nil {
		return nil, internal(err)
	}
	target.Role = role
	log.Info().Str("module", "app.rooms").Str("room", string(roomID)).
		Str("target", string(targetID)).Str("role", string(role)).Msg("member role updated")
	return target, nil
}

// RemoveMember deletes the target's membership under the same tier
// rules as a role change.
func (s *Rooms) RemoveMember(ctx context.Context, roomID domain.RoomID, callerID, targetID domain.UserID) error {
	target, err := s.authorizeMemberAction(ctx, roomID, callerID, targetID)
	if err != nil {
		return err
	}
	if err := s.members.Delete(ctx, target.ID); err != nil {
		return internal(err)
	}
	log.Info().Str("module", "app.rooms").Str("room", string(roomID)).
		Str("target", string(targetID)).Msg("member removed")
	return nil
}

// authorizeMemberAction loads caller and target memberships and applies
// the role comparator: the caller's tier must strictly dominate the
// target's, the owner is never a target, and a moderator only acts on
// participants.
func (s *Rooms) authorizeMemberAction(ctx context.Context, roomID domain.RoomID, callerID, targetID domain.UserID) (*domain.RoomMember, error) {
	caller, err := s.members.Find(ctx, roomID, callerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("caller not a member: %w", domain.ErrForbidden)
		}
		return nil, internal(err)
	}
	target, err := s.members.Find(ctx, roomID, targetID)
	if err != nil {
		return nil, internal(err)
	}
	if !caller.Role.CanActOn(target.Role) {
		return nil, fmt.Errorf("role %s cannot act on %s: %w", caller.Role, target.Role, domain.ErrForbidden)
	}
	return target, nil
}

// CheckPresenceJoin implements the router's MembershipChecker: a room
// known to the store admits only its durable members; rooms unknown to
// the store stay open for ad-hoc signaling sessions.
func (s *Rooms) CheckPresenceJoin(ctx context.Context, roomID domain.RoomID, userID domain.UserID) error {
	if _, err := s.rooms.FindByID(ctx, roomID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return internal(err)
	}
	if _, err := s.members.Find(ctx, roomID, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("not a member: %w", domain.ErrForbidden)
		}
		return internal(err)
	}
	return nil
}

// internal passes taxonomy errors through and wraps everything else as
// a collaborator failure.
func internal(err error) error {
	switch {
	case errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrForbidden),
		errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrConflict),
		errors.Is(err, domain.ErrBadRequest):
		return err
	}
	return fmt.Errorf("%v: %w", err, domain.ErrInternal)
}
