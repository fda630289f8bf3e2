package descriptor

// Role is the part of an HTTP request a parameter feeds.
type Role uint8

const (
	// RoleNone marks an untagged parameter. It is accepted and ignored.
	RoleNone Role = iota
	RolePath
	RoleQuery
	RoleHeader
	RoleBody
)

// String returns the role name.
func (r Role) String() string {
	switch r {
	case RolePath:
		return "path"
	case RoleQuery:
		return "query"
	case RoleHeader:
		return "header"
	case RoleBody:
		return "body"
	default:
		return "none"
	}
}
