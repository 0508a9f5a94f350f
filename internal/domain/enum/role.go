package enum

// Role represents a user's role in the pipeline
type Role string

const (
	RoleAdmin      Role = "Admin"
	RoleSupervisor Role = "Supervisor"
	RoleVendedor   Role = "Vendedor"
)

// IsManager reports whether the role has cross-seller visibility.
// Admins and supervisors are managers; sellers only see their own leads.
func (r Role) IsManager() bool {
	return r == RoleAdmin || r == RoleSupervisor
}

// IsValid reports whether the role is one of the known roles
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleSupervisor, RoleVendedor:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

// ParseRole converts a string into a Role, falling back to Vendedor
func ParseRole(s string) Role {
	r := Role(s)
	if !r.IsValid() {
		return RoleVendedor
	}
	return r
}
