package domain

import "slices"

// Role is the closed set of per-tenant roles. A membership carries exactly one.
type Role string

const (
	// RoleOwner controls the tenant itself: settings, billing, memberships.
	RoleOwner Role = "owner"

	// RoleManager runs day-to-day operations and manages other members.
	RoleManager Role = "manager"

	// RoleKitchen prepares orders and moves them through the kitchen statuses.
	RoleKitchen Role = "kitchen"

	// RoleDelivery handles assigned deliveries.
	RoleDelivery Role = "delivery"

	// RoleCustomer places and cancels their own orders.
	RoleCustomer Role = "customer"
)

// ValidRoles contains all valid roles in the system.
var ValidRoles = []Role{RoleOwner, RoleManager, RoleKitchen, RoleDelivery, RoleCustomer}

// Capability is a named operation a role may perform inside its tenant.
type Capability string

const (
	CapManageTenant     Capability = "manage_tenant"
	CapManageMembers    Capability = "manage_members"
	CapAdvanceOrders    Capability = "advance_orders"
	CapOverrideTerminal Capability = "override_terminal"
	CapVerifyPayments   Capability = "verify_payments"
	CapReadAuditLog     Capability = "read_audit_log"
	CapPlaceOrders      Capability = "place_orders"
)

// roleCapabilities is the single lookup table for role checks. Every (role,
// capability) pair is answered here; nothing else in the codebase hardcodes a
// role comparison.
var roleCapabilities = map[Role][]Capability{
	RoleOwner: {
		CapManageTenant, CapManageMembers, CapAdvanceOrders,
		CapOverrideTerminal, CapVerifyPayments, CapReadAuditLog, CapPlaceOrders,
	},
	RoleManager: {
		CapManageTenant, CapManageMembers, CapAdvanceOrders,
		CapOverrideTerminal, CapVerifyPayments, CapReadAuditLog, CapPlaceOrders,
	},
	RoleKitchen:  {CapAdvanceOrders},
	RoleDelivery: {CapAdvanceOrders},
	RoleCustomer: {CapPlaceOrders},
}

// IsValidRole checks if a given role string is part of the closed set.
func IsValidRole(role string) bool {
	return slices.Contains(ValidRoles, Role(role))
}

// Can reports whether the role grants the capability. Unknown roles grant
// nothing.
func (r Role) Can(c Capability) bool {
	return slices.Contains(roleCapabilities[r], c)
}

// IsAdmin reports whether the role may administer the tenant.
func (r Role) IsAdmin() bool {
	return r.Can(CapManageMembers)
}

// IsStaff reports whether the role works orders on behalf of the tenant.
func (r Role) IsStaff() bool {
	return r.Can(CapAdvanceOrders)
}
