package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/linkmeet/linkmeet/internal/domain"
)

type Rooms struct {
	db *gorm.DB
}

// RoomSummary is a listing row: the room plus its durable member count.
type RoomSummary struct {
	domain.Room
	MemberCount int64 `json:"memberCount"`
}

// CreateWithOwner persists the room and its OWNER membership in one
// transaction. A room never exists without its owner member.
func (r *Rooms) CreateWithOwner(ctx context.Context, room *domain.Room) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(room).Error; err != nil {
			return err
		}
		owner := &domain.RoomMember{
			ID:        uuid.NewString(),
			RoomID:    room.ID,
			UserID:    room.OwnerID,
			Role:      domain.RoleOwner,
			CreatedAt: time.Now(),
		}
		return tx.Create(owner).Error
	})
	if err != nil {
		return fmt.Errorf("failed to create room: %w", err)
	}
	return nil
}

func (r *Rooms) FindByID(ctx context.Context, id domain.RoomID) (*domain.Room, error) {
	var room domain.Room
	if err := r.db.WithContext(ctx).First(&room, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("room %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find room: %w", err)
	}
	return &room, nil
}

// ListPublic returns public rooms newest-first with member counts.
func (r *Rooms) ListPublic(ctx context.Context) ([]RoomSummary, error) {
	var out []RoomSummary
	err := r.db.WithContext(ctx).Model(&domain.Room{}).
		Select("rooms.*, (?) AS member_count",
			r.db.Model(&domain.RoomMember{}).Select("count(*)").Where("room_members.room_id = rooms.id"),
		).
		Where("is_public = ?", true).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	return out, nil
}

func (r *Rooms) Update(ctx context.Context, room *domain.Room) error {
	result := r.db.WithContext(ctx).Model(&domain.Room{}).Where("id = ?", room.ID).
		Updates(map[string]any{
			"name":        room.Name,
			"description": room.Description,
			"is_public":   room.IsPublic,
			"password":    room.Password,
		})
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to update room: %w", err)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("room %s: %w", room.ID, domain.ErrNotFound)
	}
	return nil
}

// Delete removes the room and cascades memberships and messages.
func (r *Rooms) Delete(ctx context.Context, id domain.RoomID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&domain.Message{}, "room_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&domain.RoomMember{}, "room_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&domain.Room{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("room %s: %w", id, domain.ErrNotFound)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete room: %w", err)
	}
	return nil
}
