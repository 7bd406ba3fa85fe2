package app

import (
	"fmt"
	"sync"
	"testing"

	"github.com/linkmeet/linkmeet/internal/core"
)

func TestRegistryAssignAndSnapshot(t *testing.T) {
	reg := NewRegistry()
	reg.Register("c1", newFakeConn())
	reg.Register("c2", newFakeConn())

	res, ok := reg.Assign("c1", "lobby", core.MemberInfo{UserID: "u1", DisplayName: "Alice"})
	if !ok {
		t.Fatal("Assign() of registered connection failed")
	}
	if res.Departure != nil {
		t.Error("first join should have no departure")
	}
	if len(res.Members) != 1 || len(res.Peers) != 0 {
		t.Fatalf("first joiner: members=%d peers=%d, want 1/0", len(res.Members), len(res.Peers))
	}

	res, _ = reg.Assign("c2", "lobby", core.MemberInfo{DisplayName: "Bob"})
	if len(res.Members) != 2 {
		t.Errorf("member list = %d, want 2", len(res.Members))
	}
	if len(res.Peers) != 1 || res.Peers[0].ID != "c1" {
		t.Errorf("peers = %+v, want just c1", res.Peers)
	}
}

func TestRegistryAssignUnregistered(t *testing.T) {
	reg := NewRegistry()
	if _, ok := reg.Assign("ghost", "lobby", core.MemberInfo{}); ok {
		t.Error("Assign() of unregistered connection should fail")
	}
}

func TestRegistrySingleRoomInvariant(t *testing.T) {
	reg := NewRegistry()
	reg.Register("c1", newFakeConn())
	reg.Register("witness", newFakeConn())
	reg.Assign("witness", "a", core.MemberInfo{DisplayName: "W"})
	reg.Assign("c1", "a", core.MemberInfo{DisplayName: "Alice"})

	res, _ := reg.Assign("c1", "b", core.MemberInfo{DisplayName: "Alice"})
	if res.Departure == nil {
		t.Fatal("moving rooms must report a departure from the old room")
	}
	if res.Departure.Room != "a" || res.Departure.Member.ConnID != "c1" {
		t.Errorf("departure = %+v, want c1 leaving room a", res.Departure)
	}
	if len(res.Departure.Remaining) != 1 || res.Departure.Remaining[0].ID != "witness" {
		t.Errorf("remaining = %+v, want just witness", res.Departure.Remaining)
	}

	if got := len(reg.Snapshot("a")); got != 1 {
		t.Errorf("room a still has %d members, want 1", got)
	}
	if room, _ := reg.RoomOf("c1"); room != "b" {
		t.Errorf("RoomOf(c1) = %q, want b", room)
	}
	for _, m := range reg.Snapshot("a") {
		if m.ConnID == "c1" {
			t.Error("c1 present in both rooms")
		}
	}
}

func TestRegistryUnassignEvictsEmptyRoom(t *testing.T) {
	reg := NewRegistry()
	reg.Register("c1", newFakeConn())
	reg.Assign("c1", "solo", core.MemberInfo{DisplayName: "Alice"})

	dep, ok := reg.Unassign("c1", "solo")
	if !ok || dep == nil {
		t.Fatal("Unassign() of present member failed")
	}
	if dep.Member.DisplayName != "Alice" {
		t.Errorf("departure metadata = %+v", dep.Member)
	}
	if got := reg.Snapshot("solo"); got != nil {
		t.Errorf("empty room entry survived: %+v", got)
	}

	// The next join behaves as a first joiner again.
	res, _ := reg.Assign("c1", "solo", core.MemberInfo{DisplayName: "Alice"})
	if len(res.Members) != 1 || len(res.Peers) != 0 {
		t.Errorf("rejoin after eviction: members=%d peers=%d, want 1/0", len(res.Members), len(res.Peers))
	}
}

func TestRegistryUnassignAbsent(t *testing.T) {
	reg := NewRegistry()
	reg.Register("c1", newFakeConn())
	if _, ok := reg.Unassign("c1", "nowhere"); ok {
		t.Error("Unassign() without assignment should report absence")
	}
}

func TestRegistryRemoveConn(t *testing.T) {
	reg := NewRegistry()
	reg.Register("c1", newFakeConn())
	reg.Register("c2", newFakeConn())
	reg.Assign("c1", "lobby", core.MemberInfo{DisplayName: "Alice"})
	reg.Assign("c2", "lobby", core.MemberInfo{DisplayName: "Bob"})

	deps := reg.RemoveConn("c1")
	if len(deps) != 1 {
		t.Fatalf("departures = %d, want 1", len(deps))
	}
	if deps[0].Room != "lobby" || deps[0].Member.ConnID != "c1" {
		t.Errorf("departure = %+v", deps[0])
	}
	if _, ok := reg.Conn("c1"); ok {
		t.Error("connection metadata survived RemoveConn")
	}
	if got := len(reg.Snapshot("lobby")); got != 1 {
		t.Errorf("lobby has %d members, want 1", got)
	}

	// Removing the last member evicts the room entry too.
	reg.RemoveConn("c2")
	if got := reg.Snapshot("lobby"); got != nil {
		t.Errorf("empty room entry survived: %+v", got)
	}
}

func TestRegistryRegisterIdempotent(t *testing.T) {
	reg := NewRegistry()
	reg.Register("c1", newFakeConn())
	reg.Assign("c1", "lobby", core.MemberInfo{DisplayName: "Alice"})

	replacement := newFakeConn()
	reg.Register("c1", replacement)

	if room, ok := reg.RoomOf("c1"); !ok || room != "lobby" {
		t.Errorf("re-register dropped room assignment: %q %v", room, ok)
	}
	if conn, _ := reg.Conn("c1"); conn != replacement {
		t.Error("re-register did not replace the endpoint")
	}
}

func TestRegistryConcurrentJoinLeave(t *testing.T) {
	reg := NewRegistry()

	const n = 64
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := core.ConnID(fmt.Sprintf("c%d", i))
			reg.Register(id, newFakeConn())
			reg.Assign(id, "lobby", core.MemberInfo{DisplayName: fmt.Sprintf("u%d", i)})
			if i%2 == 0 {
				reg.Assign(id, "side", core.MemberInfo{DisplayName: fmt.Sprintf("u%d", i)})
			}
			if i%4 == 0 {
				reg.RemoveConn(id)
			}
		}(i)
	}
	wg.Wait()

	// Every surviving connection is in exactly one of the two rooms.
	seen := make(map[core.ConnID]int)
	for _, m := range reg.Snapshot("lobby") {
		seen[m.ConnID]++
	}
	for _, m := range reg.Snapshot("side") {
		seen[m.ConnID]++
	}
	for id, count := range seen {
		if count > 1 {
			t.Errorf("connection %s present in multiple rooms", id)
		}
	}
	if len(seen) != n-n/4 {
		t.Errorf("present connections = %d, want %d", len(seen), n-n/4)
	}
}
