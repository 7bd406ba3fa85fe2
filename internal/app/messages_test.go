package app

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/linkmeet/linkmeet/internal/auth"
	"github.com/linkmeet/linkmeet/internal/domain"
	"github.com/linkmeet/linkmeet/internal/store"
)

func TestMessagesMemberOnly(t *testing.T) {
	st := setupStore(t)
	rooms := NewRooms(st, auth.NewPasswordHasher())
	msgs := NewMessages(st)
	ctx := context.Background()
	ownerID := seedUser(t, st, "o")
	outsider := seedUser(t, st, "x")

	room, err := rooms.Create(ctx, ownerID, RoomParams{Name: "general", IsPublic: true})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if _, err := msgs.Send(ctx, room.ID, outsider, "hi"); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("outsider Send() error = %v, want ErrForbidden", err)
	}
	if _, err := msgs.List(ctx, room.ID, outsider); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("outsider List() error = %v, want ErrForbidden", err)
	}

	if _, err := msgs.Send(ctx, room.ID, ownerID, ""); !errors.Is(err, domain.ErrBadRequest) {
		t.Errorf("empty Send() error = %v, want ErrBadRequest", err)
	}

	m, err := msgs.Send(ctx, room.ID, ownerID, "hello")
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if m.Kind != domain.MessageText {
		t.Errorf("message kind = %s, want TEXT", m.Kind)
	}

	rows, err := msgs.List(ctx, room.ID, ownerID)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(rows) != 1 || rows[0].Content != "hello" {
		t.Errorf("List() = %+v", rows)
	}
}

func TestMessagesHistoryOrderAndLimit(t *testing.T) {
	st := setupStore(t)
	rooms := NewRooms(st, auth.NewPasswordHasher())
	msgs := NewMessages(st)
	ctx := context.Background()
	ownerID := seedUser(t, st, "o")

	room, err := rooms.Create(ctx, ownerID, RoomParams{Name: "general", IsPublic: true})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	for i := 0; i < store.HistoryLimit+5; i++ {
		if _, err := msgs.Send(ctx, room.ID, ownerID, fmt.Sprintf("m%03d", i)); err != nil {
			t.Fatalf("Send() error = %v", err)
		}
	}

	rows, err := msgs.List(ctx, room.ID, ownerID)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(rows) != store.HistoryLimit {
		t.Fatalf("history size = %d, want %d", len(rows), store.HistoryLimit)
	}
	for i := 1; i < len(rows); i++ {
		if rows[i-1].CreatedAt.After(rows[i].CreatedAt) {
			t.Fatalf("history not oldest-first at index %d", i)
		}
	}
}

func TestMessagesDeletePermissions(t *testing.T) {
	st := setupStore(t)
	rooms := NewRooms(st, auth.NewPasswordHasher())
	msgs := NewMessages(st)
	ctx := context.Background()
	ownerID := seedUser(t, st, "o")
	modID := seedUser(t, st, "m")
	author := seedUser(t, st, "a")
	peer := seedUser(t, st, "p")

	room, err := rooms.Create(ctx, ownerID, RoomParams{Name: "general", IsPublic: true})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	for _, id := range []domain.UserID{modID, author, peer} {
		if _, err := rooms.Join(ctx, room.ID, id, ""); err != nil {
			t.Fatalf("Join() error = %v", err)
		}
	}
	if _, err := rooms.UpdateMemberRole(ctx, room.ID, ownerID, modID, domain.RoleModerator); err != nil {
		t.Fatalf("promote error = %v", err)
	}

	send := func() string {
		t.Helper()
		m, err := msgs.Send(ctx, room.ID, author, "to be judged")
		if err != nil {
			t.Fatalf("Send() error = %v", err)
		}
		return m.ID
	}

	// A peer participant cannot delete someone else's message.
	id := send()
	if err := msgs.Delete(ctx, id, peer); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("peer Delete() error = %v, want ErrForbidden", err)
	}

	// The author, a moderator, and the owner all can.
	for name, caller := range map[string]domain.UserID{"author": author, "moderator": modID, "owner": ownerID} {
		id := send()
		if err := msgs.Delete(ctx, id, caller); err != nil {
			t.Errorf("%s Delete() error = %v", name, err)
		}
	}

	if err := msgs.Delete(ctx, "missing", ownerID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("missing Delete() error = %v, want ErrNotFound", err)
	}
}

func TestMessagesDeleteStoreFailureIsInternal(t *testing.T) {
	st := setupStore(t)
	rooms := NewRooms(st, auth.NewPasswordHasher())
	msgs := NewMessages(st)
	ctx := context.Background()
	ownerID := seedUser(t, st, "o")
	peer := seedUser(t, st, "p")

	room, err := rooms.Create(ctx, ownerID, RoomParams{Name: "general", IsPublic: true})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := rooms.Join(ctx, room.ID, peer, ""); err != nil {
		t.Fatalf("Join() error = %v", err)
	}
	m, err := msgs.Send(ctx, room.ID, ownerID, "hello")
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	// Break the membership lookup without touching the message itself;
	// the caller's permission can no longer be established.
	if err := st.DB.Migrator().DropTable(&domain.RoomMember{}); err != nil {
		t.Fatalf("drop table error = %v", err)
	}

	err = msgs.Delete(ctx, m.ID, peer)
	if !errors.Is(err, domain.ErrInternal) {
		t.Errorf("Delete() with broken store error = %v, want ErrInternal", err)
	}
	if errors.Is(err, domain.ErrForbidden) {
		t.Error("store failure must not masquerade as a permission denial")
	}
}
