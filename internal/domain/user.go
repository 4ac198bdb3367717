package domain

import "time"

type UserRole string

const (
	RolePerformer UserRole = "performer"
	RoleHost      UserRole = "host"
	RoleAdmin     UserRole = "admin"
)

type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         UserRole  `json:"role"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Principal is the acting identity attached to a request after
// authentication: just an id and a role, nothing else.
type Principal struct {
	UserID int64
	Role   UserRole
}

// CanManageEvent reports whether the principal may perform host-level
// mutations on the event (setting a showcase lineup). Admins may manage
// any event; hosts only their own.
func (p Principal) CanManageEvent(e *Event) bool {
	return p.Role == RoleAdmin || (p.Role == RoleHost && e.HostID == p.UserID)
}
