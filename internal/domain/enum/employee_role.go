package enum

import "fmt"

// EmployeeRole is the commission role of an employee. Roles are a closed set
// validated when tenant configuration is loaded; the old system normalized
// free-form brand-specific role aliases at every lookup instead.
type EmployeeRole string

const (
	RoleMechanic   EmployeeRole = "mechanic"
	RoleAdvisor    EmployeeRole = "advisor"
	RoleDetailer   EmployeeRole = "detailer"
	RoleApprentice EmployeeRole = "apprentice"
	RoleManager    EmployeeRole = "manager"
)

// EmployeeRoles lists every valid role.
var EmployeeRoles = []EmployeeRole{
	RoleMechanic,
	RoleAdvisor,
	RoleDetailer,
	RoleApprentice,
	RoleManager,
}

// ParseEmployeeRole validates a role string.
func ParseEmployeeRole(s string) (EmployeeRole, error) {
	role := EmployeeRole(s)
	if !role.Valid() {
		return "", fmt.Errorf("unknown employee role %q", s)
	}
	return role, nil
}

// Valid reports whether the role is one of the known values.
func (r EmployeeRole) Valid() bool {
	for _, known := range EmployeeRoles {
		if r == known {
			return true
		}
	}
	return false
}

func (r EmployeeRole) String() string {
	return string(r)
}
