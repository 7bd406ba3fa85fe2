package domain

import "fmt"

// Role is a member's rank inside one room. Roles are per-room; the same
// user can be OWNER in one room and PARTICIPANT in another.
type Role string

const (
	RoleOwner       Role = "OWNER"
	RoleModerator   Role = "MODERATOR"
	RoleParticipant Role = "PARTICIPANT"
)

// ParseRole accepts the canonical uppercase spelling only.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleOwner, RoleModerator, RoleParticipant:
		return Role(s), nil
	default:
		return "", fmt.Errorf("%w: unknown role %q", ErrBadRequest, s)
	}
}

// Rank orders roles for comparison. Unknown roles rank below everything.
func (r Role) Rank() int {
	switch r {
	case RoleOwner:
		return 3
	case RoleModerator:
		return 2
	case RoleParticipant:
		return 1
	default:
		return 0
	}
}

// CanActOn reports whether a member holding r may moderate a member
// holding target. The owner is never a valid target, and moderators may
// only act on participants; everything else reduces to strict rank
// dominance.
func (r Role) CanActOn(target Role) bool {
	if target == RoleOwner {
		return false
	}
	return r.Rank() > target.Rank()
}
