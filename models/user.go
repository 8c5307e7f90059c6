package models

// Role enumerates the access levels the platform knows about.
type Role string

const (
	RoleMember     Role = "member"
	RoleCoach      Role = "coach"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

// IsPrivileged reports whether a role is exempt from participant-only restrictions.
func IsPrivileged(r Role) bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// User is the identity-directory view this service consumes. Account management
// lives in a separate service; here we only resolve ids to roles and timezones.
type User struct {
	ID       string `bson:"id" json:"id"`
	Name     string `bson:"name" json:"name"`
	Email    string `bson:"email" json:"email"`
	Role     Role   `bson:"role" json:"role"`
	Timezone string `bson:"timezone,omitempty" json:"timezone,omitempty"`
}

// Actor identifies the authenticated caller of an operation.
type Actor struct {
	ID   string
	Role Role
}

func (a Actor) IsPrivileged() bool { return IsPrivileged(a.Role) }
