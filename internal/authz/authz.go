// Package authz decides whether an acting user may perform an operation on
// a target resource. Decisions are pure functions over entities the caller
// already loaded; nothing here touches the database.
package authz

import (
	"queue-booking/internal/data/entity"
	"queue-booking/pkg/apperrors"
)

// CanCreateOrganization allows only users who went through
// become-organization.
func CanCreateOrganization(actor *entity.User) error {
	if actor.IsOrganization {
		return nil
	}
	return apperrors.Forbidden("You must become an organization first (POST /api/users/become-organization)")
}

// CanManageOrganization allows the owner and admins. Covers updates,
// stats and booking listings.
func CanManageOrganization(actor *entity.User, org *entity.Organization) error {
	if actor.Role == entity.RoleAdmin {
		return nil
	}
	if org.OwnerID == actor.ID {
		return nil
	}
	return apperrors.Forbidden("Not authorized to manage this organization")
}

// CanManageBranch allows the owner of the branch's organization and admins.
// The owning organization is passed in resolved; branches carry no owner of
// their own.
func CanManageBranch(actor *entity.User, org *entity.Organization) error {
	if actor.Role == entity.RoleAdmin {
		return nil
	}
	if org.OwnerID == actor.ID {
		return nil
	}
	return apperrors.Forbidden("Not authorized to manage this branch")
}

// CanCancelSlot allows the booker, the owner of the branch's organization,
// and admins.
func CanCancelSlot(actor *entity.User, slot *entity.QueueSlot, org *entity.Organization) error {
	if slot.UserID == actor.ID {
		return nil
	}
	return canSettleSlot(actor, org)
}

// CanConfirmSlot allows only the organization side: the owner of the
// branch's organization and admins. A booker cannot confirm their own slot.
func CanConfirmSlot(actor *entity.User, org *entity.Organization) error {
	return canSettleSlot(actor, org)
}

func canSettleSlot(actor *entity.User, org *entity.Organization) error {
	if actor.Role == entity.RoleAdmin {
		return nil
	}
	if org.OwnerID == actor.ID {
		return nil
	}
	return apperrors.Forbidden("Not authorized to change this booking")
}
