package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/linkmeet/linkmeet/internal/domain"
)

type Members struct {
	db *gorm.DB
}

func (r *Members) Find(ctx context.Context, roomID domain.RoomID, userID domain.UserID) (*domain.RoomMember, error) {
	var m domain.RoomMember
	err := r.db.WithContext(ctx).
		First(&m, "room_id = ? AND user_id = ?", roomID, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("member %s in room %s: %w", userID, roomID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find member: %w", err)
	}
	return &m, nil
}

// MemberRow is a listing row joining member and user display fields.
type MemberRow struct {
	domain.RoomMember
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

// ListByRoom returns members ordered OWNER first, then MODERATOR,
// then PARTICIPANT.
func (r *Members) ListByRoom(ctx context.Context, roomID domain.RoomID) ([]MemberRow, error) {
	var out []MemberRow
	err := r.db.WithContext(ctx).Model(&domain.RoomMember{}).
		Select("room_members.*, users.name, users.avatar").
		Joins("JOIN users ON users.id = room_members.user_id").
		Where("room_members.room_id = ?", roomID).
		Order(`CASE room_members.role
			WHEN 'OWNER' THEN 0
			WHEN 'MODERATOR' THEN 1
			ELSE 2 END`).
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return out, nil
}

func (r *Members) Create(ctx context.Context, m *domain.RoomMember) error {
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("already a member: %w", domain.ErrConflict)
		}
		return fmt.Errorf("failed to create member: %w", err)
	}
	return nil
}

func (r *Members) UpdateRole(ctx context.Context, id string, role domain.Role) error {
	result := r.db.WithContext(ctx).Model(&domain.RoomMember{}).
		Where("id = ?", id).Update("role", role)
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to update role: %w", err)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("member %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *Members) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&domain.RoomMember{}, "id = ?", id)
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to delete member: %w", err)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("member %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
