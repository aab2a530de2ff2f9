package services

import (
	"errors"

	"orderflow/internal/core/domain/model/auth"
	"orderflow/internal/core/domain/model/kernel"
)

// ErrForbidden is returned by every failed policy check. Callers translate
// it to an access-denied response without retrying.
var ErrForbidden = errors.New("forbidden")

// Capability names an action a role set may exercise. Capabilities are
// checked by value equality against a static table; there is no dynamic
// policy loading.
type Capability int

const (
	// CapabilityManageProducts allows creating and updating catalog products.
	CapabilityManageProducts Capability = iota + 1

	// CapabilityBrowseAllOrders allows reading any order regardless of ownership.
	CapabilityBrowseAllOrders

	// CapabilityActAsCourier marks roles that may appear as the courier in filters.
	CapabilityActAsCourier

	// CapabilityInspectAnyBucket allows reading any user's bucket.
	CapabilityInspectAnyBucket

	// CapabilityInspectOrderItems allows reading any order's items.
	CapabilityInspectOrderItems

	// CapabilityViewProductTypes exposes the product_type catalog field,
	// which is masked for ordinary users and couriers.
	CapabilityViewProductTypes
)

// PolicyEngine evaluates role-based capability checks. It is pure and
// deterministic: the capability table is fixed at construction and every
// decision depends only on the supplied claims and subject.
type PolicyEngine struct {
	table map[Capability]map[auth.Role]struct{}
}

// NewPolicyEngine creates the engine with the platform's static policy matrix.
func NewPolicyEngine() PolicyEngine {
	return PolicyEngine{
		table: map[Capability]map[auth.Role]struct{}{
			CapabilityManageProducts: roleSet(auth.RoleAdmin),
			CapabilityBrowseAllOrders: roleSet(
				auth.RoleAnalyst,
				auth.RoleAdmin,
			),
			CapabilityActAsCourier: roleSet(
				auth.RoleCourier,
				auth.RoleAdmin,
			),
			CapabilityInspectAnyBucket:  roleSet(auth.RoleAdmin),
			CapabilityInspectOrderItems: roleSet(auth.RoleAdmin),
			CapabilityViewProductTypes: roleSet(
				auth.RoleAnalyst,
				auth.RoleAdmin,
			),
		},
	}
}

func roleSet(roles ...auth.Role) map[auth.Role]struct{} {
	set := make(map[auth.Role]struct{}, len(roles))
	for _, r := range roles {
		set[r] = struct{}{}
	}
	return set
}

// HasAccess reports whether the caller's role holds the capability.
func (p PolicyEngine) HasAccess(capability Capability, claims auth.Claims) bool {
	roles, ok := p.table[capability]
	if !ok {
		return false
	}
	_, ok = roles[claims.Role()]
	return ok
}

// HasAccessToOrder succeeds if the caller holds the capability, or is the
// user who placed the order, or is the courier delivering it. The identity
// branches compare ids only; the caller's role plays no part in them.
func (p PolicyEngine) HasAccessToOrder(capability Capability, claims auth.Claims, userID, courierID kernel.UUID) error {
	if p.HasAccess(capability, claims) {
		return nil
	}
	if claims.UserID().IsEqual(userID) || claims.UserID().IsEqual(courierID) {
		return nil
	}
	return ErrForbidden
}

// HasAccessByIdentity succeeds only if the caller is the subject itself.
// Used to gate operations that act on a user's own data.
func (p PolicyEngine) HasAccessByIdentity(claims auth.Claims, subjectID kernel.UUID) error {
	if claims.UserID().IsEqual(subjectID) {
		return nil
	}
	return ErrForbidden
}

// HasAccessToFilters gates order browsing by filter values. Access is
// granted to analysts/admins unconditionally, to couriers filtering on
// their own courier id, and to any caller filtering on their own user id.
func (p PolicyEngine) HasAccessToFilters(claims auth.Claims, courierFilter, userFilter *kernel.UUID) error {
	if p.HasAccess(CapabilityBrowseAllOrders, claims) {
		return nil
	}
	if courierFilter != nil && courierFilter.IsEqual(claims.UserID()) &&
		p.HasAccess(CapabilityActAsCourier, claims) {
		return nil
	}
	if userFilter != nil && userFilter.IsEqual(claims.UserID()) {
		return nil
	}
	return ErrForbidden
}
