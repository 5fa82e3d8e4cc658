package domain

import "github.com/google/uuid"

// Role is the closed set of caller roles.
type Role string

const (
	RoleSuperAdmin Role = "SUPER_ADMIN"
	RoleCompany    Role = "COMPANY"
	RoleClient     Role = "CLIENT"
)

// Side decides who counts as the counter-party of a status change.
type Side int

const (
	SideNone Side = iota
	SideClient
	SideCompany
)

// Scope restricts which appointments a role sees or may manage.
type Scope int

const (
	ScopeNone Scope = iota
	ScopeOwn
	ScopeCompany
	ScopeAll
)

// Permissions describes what a role may do in the booking core.
type Permissions struct {
	CanBook         bool
	CanBookOnBehalf bool
	Side            Side
	ListScope       Scope
	ManageScope     Scope
}

// rolePermissions is the single role-to-permission table consulted by every operation.
var rolePermissions = map[Role]Permissions{
	RoleSuperAdmin: {
		CanBook:         true,
		CanBookOnBehalf: true,
		Side:            SideCompany,
		ListScope:       ScopeCompany,
		ManageScope:     ScopeAll,
	},
	RoleCompany: {
		Side:        SideCompany,
		ListScope:   ScopeCompany,
		ManageScope: ScopeCompany,
	},
	RoleClient: {
		CanBook:     true,
		Side:        SideClient,
		ListScope:   ScopeOwn,
		ManageScope: ScopeOwn,
	},
}

// Permissions returns the zero value for unknown roles, which grants nothing.
func (r Role) Permissions() Permissions {
	return rolePermissions[r]
}

func (r Role) IsValid() bool {
	_, ok := rolePermissions[r]
	return ok
}

// Caller is the authenticated identity supplied by the session layer.
type Caller struct {
	UserID    uuid.UUID
	Role      Role
	CompanyID *uuid.UUID
}

// CanManage reports whether the caller may change the status of a.
func (c *Caller) CanManage(a *Appointment) bool {
	switch c.Role.Permissions().ManageScope {
	case ScopeAll:
		return true
	case ScopeCompany:
		return c.CompanyID != nil && *c.CompanyID == a.CompanyID
	case ScopeOwn:
		return c.UserID == a.ClientID
	default:
		return false
	}
}
