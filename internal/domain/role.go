package domain

import "slices"

// Role represents a user role in the system
type Role string

const (
	// RoleSuperadmin operates the platform and may act on any institution
	RoleSuperadmin Role = "superadmin"

	// RoleDirector manages one institution
	RoleDirector Role = "director"

	// RoleDocente is a teacher within one institution
	RoleDocente Role = "docente"

	// RoleApoderado is a guardian of one or more students
	RoleApoderado Role = "apoderado"

	// RoleEstudiante is a student
	RoleEstudiante Role = "estudiante"
)

// ValidRoles contains all valid roles in the system
var ValidRoles = []Role{RoleSuperadmin, RoleDirector, RoleDocente, RoleApoderado, RoleEstudiante}

// Capability is a named permission granted to roles.
type Capability string

const (
	// CapCrossTenant lets a principal act on institutions other than its own.
	CapCrossTenant       Capability = "tenancy.cross_tenant"
	CapManageTenants     Capability = "tenancy.manage"
	CapReadSecurity      Capability = "security.events.read"
	CapReadInstitution   Capability = "institution.read"
	CapManageInstitution Capability = "institution.manage"
	CapReadAcademics     Capability = "academics.read"
	CapWriteAcademics    Capability = "academics.write"
)

var roleCapabilities = map[Role][]Capability{
	RoleSuperadmin: {
		CapCrossTenant, CapManageTenants, CapReadSecurity,
		CapReadInstitution, CapManageInstitution, CapReadAcademics, CapWriteAcademics,
	},
	RoleDirector:   {CapReadInstitution, CapManageInstitution, CapReadAcademics, CapWriteAcademics},
	RoleDocente:    {CapReadInstitution, CapReadAcademics, CapWriteAcademics},
	RoleApoderado:  {CapReadInstitution, CapReadAcademics},
	RoleEstudiante: {CapReadInstitution, CapReadAcademics},
}

// IsValidRole checks if a given role is valid
func IsValidRole(role string) bool {
	return slices.Contains(ValidRoles, Role(role))
}

// Can reports whether the role carries the capability.
func (r Role) Can(c Capability) bool {
	return slices.Contains(roleCapabilities[r], c)
}

// ParseRoles keeps the recognised roles from raw claim values.
func ParseRoles(raw []string) []Role {
	roles := make([]Role, 0, len(raw))
	for _, r := range raw {
		if IsValidRole(r) {
			roles = append(roles, Role(r))
		}
	}
	return roles
}

// HasAnyRole checks if a slice of roles contains any of the specified roles
func HasAnyRole(roles []Role, requiredRoles ...Role) bool {
	for _, required := range requiredRoles {
		if slices.Contains(roles, required) {
			return true
		}
	}
	return false
}
