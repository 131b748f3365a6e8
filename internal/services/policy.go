package services

import "food_orders_backend/internal/models"

// Operation names an externally callable core operation.
type Operation string

const (
	OpCreateOrder       Operation = "order.create"
	OpGetOrder          Operation = "order.get"
	OpListOrders        Operation = "order.list"
	OpUpdateOrderStatus Operation = "order.status_update"
	OpConfirmDelivery   Operation = "order.delivery_confirm"
	OpGetTracking       Operation = "tracking.get"
	OpPushTracking      Operation = "tracking.location_update"
	OpLookupRequest     Operation = "lookup.otp_request"
	OpLookupVerify      Operation = "lookup.otp_verify"
)

var (
	everyone = []models.Role{
		models.RoleAnonymous, models.RolePlatformAdmin, models.RoleTenantAdmin,
		models.RoleKitchenStaff, models.RoleDeliveryAgent,
	}
	staff = []models.Role{
		models.RolePlatformAdmin, models.RoleTenantAdmin, models.RoleKitchenStaff, models.RoleDeliveryAgent,
	}
)

// OperationRoles lists the roles allowed to invoke each operation.
var OperationRoles = map[Operation][]models.Role{
	OpCreateOrder:       everyone,
	OpGetOrder:          everyone,
	OpListOrders:        staff,
	OpUpdateOrderStatus: {models.RolePlatformAdmin, models.RoleTenantAdmin, models.RoleKitchenStaff},
	OpConfirmDelivery:   {models.RolePlatformAdmin, models.RoleTenantAdmin, models.RoleDeliveryAgent},
	OpGetTracking:       everyone,
	OpPushTracking:      {models.RolePlatformAdmin, models.RoleTenantAdmin, models.RoleDeliveryAgent},
	OpLookupRequest:     everyone,
	OpLookupVerify:      everyone,
}

func roleOf(actor models.Actor) models.Role {
	if actor.IsAnonymous() {
		return models.RoleAnonymous
	}
	return actor.Role
}

// Authorize returns ErrForbidden unless the actor's role may run op.
func Authorize(actor models.Actor, op Operation) error {
	role := roleOf(actor)
	for _, allowed := range OperationRoles[op] {
		if allowed == role {
			return nil
		}
	}
	return ErrForbidden
}

// CanAccess reports whether actor may act on resources owned by resourceTenant.
func CanAccess(actor models.Actor, resourceTenant string) bool {
	if actor.IsPlatformAdmin() {
		return true
	}
	return !actor.IsAnonymous() && actor.TenantID != "" && actor.TenantID == resourceTenant
}

// canRead extends CanAccess for reads by order id: an anonymous customer
// holding the order id may read that order and its tracking.
func canRead(actor models.Actor, resourceTenant string) bool {
	return actor.IsAnonymous() || CanAccess(actor, resourceTenant)
}
