package app

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/linkmeet/linkmeet/internal/core"
	"github.com/linkmeet/linkmeet/internal/domain"
)

// MembershipChecker lets the router consult durable membership before a
// presence join. Implementations return nil when the join may proceed.
type MembershipChecker interface {
	CheckPresenceJoin(ctx context.Context, roomID domain.RoomID, userID domain.UserID) error
}

// Router turns inbound signaling events into registry mutations and
// outbound deliveries: room-wide broadcast for chat/typing/presence
// events, unicast for targeted WebRTC negotiation.
type Router struct {
	Registry   *Registry
	Membership MembershipChecker // optional
}

func NewRouter(reg *Registry, membership MembershipChecker) *Router {
	return &Router{Registry: reg, Membership: membership}
}

// Connect registers a new connection endpoint with the registry.
func (rt *Router) Connect(id core.ConnID, conn core.SignalConnection) {
	rt.Registry.Register(id, conn)
}

// RegisterPresence records the display metadata the client announced.
func (rt *Router) RegisterPresence(id core.ConnID, info core.MemberInfo) {
	rt.Registry.UpdateInfo(id, info)
}

// Join moves the connection into roomID. Ordering: the previous room
// (if any) sees user-left before the new room sees user-joined, and the
// joiner receives the member list computed by the same mutation.
func (rt *Router) Join(ctx context.Context, id core.ConnID, roomID domain.RoomID, info core.MemberInfo) error {
	if rt.Membership != nil && info.UserID != "" {
		if err := rt.Membership.CheckPresenceJoin(ctx, roomID, domain.UserID(info.UserID)); err != nil {
			log.Warn().Str("module", "app.router").Str("conn", string(id)).
				Str("room", string(roomID)).Err(err).Msg("presence join refused")
			return err
		}
	}

	res, ok := rt.Registry.Assign(id, roomID, info)
	if !ok {
		return domain.ErrBadRequest
	}

	if res.Departure != nil {
		rt.broadcastDeparture(res.Departure)
	}

	joined := userJoinedEvent{
		Type:        "user-joined",
		ConnID:      id,
		DisplayName: displayName(info.DisplayName),
	}
	rt.deliver(res.Peers, joined)

	if conn, ok := rt.Registry.Conn(id); ok {
		_ = rt.send(conn, roomMembersEvent{Type: "room-members", Room: roomID, Members: res.Members})
	}

	log.Info().Str("module", "app.router").Str("conn", string(id)).
		Str("room", string(roomID)).Msg("joined room")
	return nil
}

// Leave removes the connection from roomID and notifies the remaining
// members. The transport stays open.
func (rt *Router) Leave(id core.ConnID, roomID domain.RoomID) {
	dep, ok := rt.Registry.Unassign(id, roomID)
	if !ok {
		return
	}
	rt.broadcastDeparture(dep)
	if conn, ok := rt.Registry.Conn(id); ok {
		_ = rt.send(conn, leftEvent{Type: "left", Room: roomID})
	}
	log.Info().Str("module", "app.router").Str("conn", string(id)).
		Str("room", string(roomID)).Msg("left room")
}

// Disconnect is the transport-level cleanup: presence is fully released
// before the router considers the connection gone.
func (rt *Router) Disconnect(id core.ConnID) {
	for _, dep := range rt.Registry.RemoveConn(id) {
		rt.broadcastDeparture(&dep)
	}
}

// Chat broadcasts a message to the whole room, the sender included.
func (rt *Router) Chat(id core.ConnID, roomID domain.RoomID, content, name string) {
	ev := chatMessageEvent{
		Type:        "chat-message",
		ID:          uuid.NewString(),
		Content:     content,
		DisplayName: displayName(name),
		SenderID:    id,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Kind:        string(domain.MessageText),
	}
	rt.deliver(rt.Registry.Recipients(roomID), ev)
}

// Typing notifies the room that the sender started typing; the sender
// itself is excluded to avoid echo.
func (rt *Router) Typing(id core.ConnID, roomID domain.RoomID, name string) {
	ev := typingEvent{Type: "typing", DisplayName: displayName(name), SenderID: id}
	rt.deliverExcept(rt.Registry.Recipients(roomID), id, ev)
}

func (rt *Router) StopTyping(id core.ConnID, roomID domain.RoomID) {
	ev := stopTypingEvent{Type: "stop-typing", SenderID: id}
	rt.deliverExcept(rt.Registry.Recipients(roomID), id, ev)
}

// Forward relays a targeted offer/answer/ice-candidate to exactly one
// connection, annotated with the sender so the recipient can reply. The
// payload is never inspected.
func (rt *Router) Forward(kind string, from, target core.ConnID, roomID domain.RoomID, payload json.RawMessage) error {
	conn, ok := rt.Registry.Conn(target)
	if !ok {
		return domain.ErrNotFound
	}
	if err := rt.send(conn, forwardEvent{Type: kind, Payload: payload, SenderID: from, Room: roomID}); err != nil {
		return err
	}
	log.Debug().Str("module", "app.router").Str("kind", kind).
		Str("from", string(from)).Str("to", string(target)).Msg("forwarded signal")
	return nil
}

// Ready announces to the rest of the room that the sender is ready to
// negotiate.
func (rt *Router) Ready(id core.ConnID, roomID domain.RoomID) {
	ev := readyEvent{Type: "ready", SenderID: id, Room: roomID}
	rt.deliverExcept(rt.Registry.Recipients(roomID), id, ev)
}

// NotifyError reports a handling failure back to the sender instead of
// dropping it silently.
func (rt *Router) NotifyError(id core.ConnID, msg string) {
	if conn, ok := rt.Registry.Conn(id); ok {
		_ = rt.send(conn, errorEvent{Type: "error", Error: msg})
	}
}

func (rt *Router) broadcastDeparture(dep *core.Departure) {
	ev := userLeftEvent{
		Type:        "user-left",
		ConnID:      dep.Member.ConnID,
		DisplayName: displayName(dep.Member.DisplayName),
	}
	rt.deliver(dep.Remaining, ev)
}

func (rt *Router) deliver(to []core.Recipient, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "app.router").Msg("event marshal")
		return
	}
	for _, rc := range to {
		// Best-effort: a slow consumer loses the frame, not the room.
		if err := rc.Conn.TrySend(b); err != nil {
			log.Warn().Str("module", "app.router").Str("conn", string(rc.ID)).Err(err).Msg("dropped frame")
		}
	}
}

func (rt *Router) deliverExcept(to []core.Recipient, except core.ConnID, v any) {
	filtered := to[:0]
	for _, rc := range to {
		if rc.ID != except {
			filtered = append(filtered, rc)
		}
	}
	rt.deliver(filtered, v)
}

func (rt *Router) send(conn core.SignalConnection, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "app.router").Msg("event marshal")
		return err
	}
	if err := conn.TrySend(b); err != nil {
		log.Warn().Str("module", "app.router").Err(err).Msg("dropped frame")
		return err
	}
	return nil
}

func displayName(name string) string {
	if name == "" {
		return "Anonymous"
	}
	return name
}
