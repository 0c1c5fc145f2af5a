package domain

type (
	// Role represents the role of an actor on the platform.
	Role string
)

// List of possible actor roles
const (
	RoleCustomer Role = "customer"
	RoleVendor   Role = "vendor"
	RoleRider    Role = "rider"
	RoleAdmin    Role = "admin"
)

var allowedRoles = [...]Role{RoleCustomer, RoleVendor, RoleRider, RoleAdmin}

// Valid checks if the Role is valid
func (r Role) Valid() bool {
	for _, v := range allowedRoles {
		if r == v {
			return true
		}
	}
	return false
}

// Actor identifies who is performing an operation. Identity is always passed
// explicitly; nothing in the service reads it from ambient state.
type Actor struct {
	ID   string
	Role Role
}
