package app

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/linkmeet/linkmeet/internal/core"
	"github.com/linkmeet/linkmeet/internal/domain"
)

type connEntry struct {
	conn core.SignalConnection
	info core.MemberInfo
	room domain.RoomID // empty while not assigned
}

// Registry is the single authority for live presence: which connections
// exist, their display metadata, and which room each one is in. Every
// operation is atomic under one lock, so a caller never observes a
// partially applied mutation.
type Registry struct {
	mu    sync.RWMutex
	conns map[core.ConnID]*connEntry
	rooms map[domain.RoomID]map[core.ConnID]core.MemberInfo
}

func NewRegistry() *Registry {
	return &Registry{
		conns: make(map[core.ConnID]*connEntry),
		rooms: make(map[domain.RoomID]map[core.ConnID]core.MemberInfo),
	}
}

// Register records a new connection. Idempotent per id: re-registering
// replaces the transport endpoint but keeps any room assignment.
func (r *Registry) Register(id core.ConnID, conn core.SignalConnection) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.conns[id]; ok {
		e.conn = conn
		return
	}
	r.conns[id] = &connEntry{conn: conn}
	log.Info().Str("module", "app.registry").Str("conn", string(id)).Msg("connection registered")
}

// UpdateInfo sets the display metadata supplied by the client.
func (r *Registry) UpdateInfo(id core.ConnID, info core.MemberInfo) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.conns[id]; ok {
		e.info = info
	}
}

// AssignResult is everything Assign computes under its lock: the
// departure from the previous room (if any), the full member list of
// the new room including the joiner, and the endpoints of the other
// members for the joined broadcast.
type AssignResult struct {
	Departure *core.Departure
	Members   []core.PresenceMember
	Peers     []core.Recipient
}

// Assign puts the connection into roomID. A connection belongs to at
// most one room, so an existing assignment is released first and its
// departure returned for broadcast.
func (r *Registry) Assign(id core.ConnID, roomID domain.RoomID, info core.MemberInfo) (AssignResult, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.conns[id]
	if !ok {
		return AssignResult{}, false
	}
	if info.DisplayName != "" || info.UserID != "" {
		e.info = info
	}

	var res AssignResult
	if e.room != "" && e.room != roomID {
		res.Departure = r.evictLocked(id, e.room)
	}

	members, ok := r.rooms[roomID]
	if !ok {
		members = make(map[core.ConnID]core.MemberInfo)
		r.rooms[roomID] = members
	}
	members[id] = e.info
	e.room = roomID

	for cid, mi := range members {
		res.Members = append(res.Members, core.PresenceMember{
			ConnID:      cid,
			UserID:      mi.UserID,
			DisplayName: mi.DisplayName,
		})
		if cid == id {
			continue
		}
		if pe, ok := r.conns[cid]; ok {
			res.Peers = append(res.Peers, core.Recipient{ID: cid, Conn: pe.conn})
		}
	}

	log.Info().Str("module", "app.registry").Str("conn", string(id)).
		Str("room", string(roomID)).Int("members", len(members)).Msg("assigned to room")
	return res, true
}

// Unassign removes the connection from roomID and reports the departure
// for broadcast. Returns false when the connection was not present.
func (r *Registry) Unassign(id core.ConnID, roomID domain.RoomID) (*core.Departure, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.conns[id]
	if !ok || e.room != roomID {
		return nil, false
	}
	dep := r.evictLocked(id, roomID)
	e.room = ""
	return dep, dep != nil
}

// RemoveConn handles transport disconnect: the connection leaves every
// room presence entry containing it and its registration is dropped.
func (r *Registry) RemoveConn(id core.ConnID) []core.Departure {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []core.Departure
	// A connection is in at most one room, but sweep all entries so a
	// stale map can never survive a disconnect.
	for roomID, members := range r.rooms {
		if _, ok := members[id]; ok {
			if dep := r.evictLocked(id, roomID); dep != nil {
				out = append(out, *dep)
			}
		}
	}
	delete(r.conns, id)
	log.Info().Str("module", "app.registry").Str("conn", string(id)).Msg("connection removed")
	return out
}

// evictLocked removes id from roomID's presence map, deleting the map
// when it empties. Caller holds the write lock.
func (r *Registry) evictLocked(id core.ConnID, roomID domain.RoomID) *core.Departure {
	members, ok := r.rooms[roomID]
	if !ok {
		return nil
	}
	info, ok := members[id]
	if !ok {
		return nil
	}
	delete(members, id)
	if len(members) == 0 {
		delete(r.rooms, roomID)
	}

	dep := &core.Departure{
		Room: roomID,
		Member: core.PresenceMember{
			ConnID:      id,
			UserID:      info.UserID,
			DisplayName: info.DisplayName,
		},
	}
	for cid := range members {
		if e, ok := r.conns[cid]; ok {
			dep.Remaining = append(dep.Remaining, core.Recipient{ID: cid, Conn: e.conn})
		}
	}
	return dep
}

// RoomOf reports the room the connection is currently assigned to.
func (r *Registry) RoomOf(id core.ConnID) (domain.RoomID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.conns[id]
	if !ok || e.room == "" {
		return "", false
	}
	return e.room, true
}

// Info returns the registered display metadata of a connection.
func (r *Registry) Info(id core.ConnID) (core.MemberInfo, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.conns[id]
	if !ok {
		return core.MemberInfo{}, false
	}
	return e.info, true
}

// Conn returns the live endpoint of a connection for unicast delivery.
func (r *Registry) Conn(id core.ConnID) (core.SignalConnection, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.conns[id]
	if !ok {
		return nil, false
	}
	return e.conn, true
}

// Recipients snapshots the endpoints of every connection currently in
// the room.
func (r *Registry) Recipients(roomID domain.RoomID) []core.Recipient {
	r.mu.RLock()
	defer r.mu.RUnlock()
	members, ok := r.rooms[roomID]
	if !ok {
		return nil
	}
	out := make([]core.Recipient, 0, len(members))
	for cid := range members {
		if e, ok := r.conns[cid]; ok {
			out = append(out, core.Recipient{ID: cid, Conn: e.conn})
		}
	}
	return out
}

// Snapshot returns the member list of a room.
func (r *Registry) Snapshot(roomID domain.RoomID) []core.PresenceMember {
	r.mu.RLock()
	defer r.mu.RUnlock()
	members, ok := r.rooms[roomID]
	if !ok {
		return nil
	}
	out := make([]core.PresenceMember, 0, len(members))
	for cid, info := range members {
		out = append(out, core.PresenceMember{
			ConnID:      cid,
			UserID:      info.UserID,
			DisplayName: info.DisplayName,
		})
	}
	return out
}
