package models

// Role is the tagged set of actor roles known to the platform.
type Role string

const (
	RoleAnonymous     Role = "anonymous"
	RolePlatformAdmin Role = "platform_admin"
	RoleTenantAdmin   Role = "tenant_admin"
	RoleKitchenStaff  Role = "kitchen_staff"
	RoleDeliveryAgent Role = "delivery_agent"
)

// Valid reports whether r is a role a token may carry.
func (r Role) Valid() bool {
	switch r {
	case RolePlatformAdmin, RoleTenantAdmin, RoleKitchenStaff, RoleDeliveryAgent:
		return true
	}
	return false
}

// Actor is whoever performs an operation. The zero value is anonymous.
type Actor struct {
	UserID   string `json:"userId,omitempty"`
	TenantID string `json:"tenantId,omitempty"`
	Role     Role   `json:"role"`
}

// AnonymousActor is used for requests without a bearer token.
func AnonymousActor() Actor {
	return Actor{Role: RoleAnonymous}
}

func (a Actor) IsPlatformAdmin() bool {
	return a.Role == RolePlatformAdmin
}

func (a Actor) IsAnonymous() bool {
	return a.Role == "" || a.Role == RoleAnonymous
}
