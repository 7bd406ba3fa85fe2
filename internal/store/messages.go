package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/linkmeet/linkmeet/internal/domain"
)

// HistoryLimit caps how many recent messages a listing returns.
const HistoryLimit = 100

type Messages struct {
	db *gorm.DB
}

// MessageRow joins a message with its author's display fields.
type MessageRow struct {
	domain.Message
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

// ListRecent returns the most recent messages of a room, oldest first.
func (r *Messages) ListRecent(ctx context.Context, roomID domain.RoomID) ([]MessageRow, error) {
	var out []MessageRow
	err := r.db.WithContext(ctx).Model(&domain.Message{}).
		Select("messages.*, users.name, users.avatar").
		Joins("JOIN users ON users.id = messages.user_id").
		Where("messages.room_id = ?", roomID).
		Order("messages.created_at DESC").
		Limit(HistoryLimit).
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	// Query is newest-first for the limit; callers want oldest first.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

func (r *Messages) Create(ctx context.Context, m *domain.Message) error {
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

func (r *Messages) FindByID(ctx context.Context, id string) (*domain.Message, error) {
	var m domain.Message
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("message %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find message: %w", err)
	}
	return &m, nil
}

func (r *Messages) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&domain.Message{}, "id = ?", id)
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("message %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
