package domain

// Role is a user's privilege level in the POS
type Role string

// Roles, ordered from least to most privileged
const (
	RoleCashier    Role = "Cashier"     // Takes orders at the register
	RoleAdmin      Role = "Admin"       // Manages expenses and views reports
	RoleSuperAdmin Role = "Super Admin" // Manages user accounts
)

// roleLevels ranks each role for "at least this privileged" checks
var roleLevels = map[Role]int{
	RoleCashier:    1, // Lowest privilege
	RoleAdmin:      2, // Mid privilege
	RoleSuperAdmin: 3, // Highest privilege
}

// Level returns the role's rank in the hierarchy; unknown roles rank 0
// and therefore fail every gate
func (r Role) Level() int {
	return roleLevels[r]
}

// AtLeast reports whether the role meets the required privilege level
func (r Role) AtLeast(required Role) bool {
	return r.Level() >= required.Level()
}

// Valid reports whether the role is one of the known roles
func (r Role) Valid() bool {
	return r.Level() > 0
}
